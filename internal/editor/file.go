package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/gokilo/internal/logging"
	"github.com/yaklabco/gokilo/pkg/buffer"
	"github.com/yaklabco/gokilo/pkg/fsutil"
)

// Open loads filename into the editor. A file that does not exist yet gives
// an empty document bound to that name; save will create it.
func (e *Editor) Open(ctx context.Context, filename string) error {
	lines, info, err := fsutil.ReadLines(ctx, filename)
	switch {
	case errors.Is(err, fsutil.ErrNotFound):
		e.logger.Info("new file", logging.FieldPath, filename)
	case err != nil:
		return fmt.Errorf("open %s: %w", filename, err)
	}

	e.filename = filename
	e.fileInfo = info
	e.cursor = buffer.Position{}
	e.doc = buffer.New()
	e.doc.Load(lines, nil)
	e.selectSyntax()

	e.logger.Info("opened",
		logging.FieldPath, filename,
		logging.FieldLines, e.doc.Len(),
		logging.FieldFileType, e.st.FileType(),
	)
	return nil
}

// Save writes the document to its file, prompting for a name first when the
// document is untitled. Failures are reported in the message bar; only a
// failure to read the prompt is returned.
func (e *Editor) Save(ctx context.Context) error {
	if e.filename == "" {
		name, err := e.Prompt(ctx, "Save as: %s (ESC to cancel)", nil)
		if err != nil {
			return err
		}
		if name == "" {
			e.SetStatus("Save aborted")
			return nil
		}
		e.filename = name
		e.fileInfo = nil
		e.selectSyntax()
	}

	if e.fileInfo != nil && !e.overwritePending {
		modified, err := fsutil.CheckModified(ctx, e.fileInfo)
		if err != nil {
			e.logger.Warn("modification check failed", logging.FieldPath, e.filename, logging.FieldError, err)
		}
		if modified {
			e.overwritePending = true
			e.SetStatus("File changed on disk since it was read. Press Ctrl-S again to overwrite.")
			e.logger.Warn("file changed on disk", logging.FieldPath, e.filename)
			return nil
		}
	}
	e.overwritePending = false

	content := e.doc.Bytes()
	if err := e.write(ctx, content); err != nil {
		e.SetStatus("Can't save! I/O error: %v", err)
		e.logger.Error("save failed", logging.FieldPath, e.filename, logging.FieldError, err)
		return nil
	}

	e.doc.MarkClean()
	e.quitTimes = quitTimes
	e.SetStatus("%d bytes written to disk", len(content))
	e.logger.Info("saved", logging.FieldPath, e.filename, logging.FieldBytes, len(content))
	return nil
}

// write backs up the current file if configured, replaces it atomically
// and records what was written.
func (e *Editor) write(ctx context.Context, content []byte) error {
	created, err := fsutil.CreateBackup(ctx, e.filename, e.backups)
	if err != nil {
		return err
	}
	if created {
		e.logger.Debug("backup created",
			logging.FieldPath, e.filename,
			logging.FieldBackup, fsutil.BackupPath(e.filename, e.backups.Mode),
		)
	}

	if err := fsutil.WriteAtomic(ctx, e.filename, content, fsutil.ModeOf(e.filename)); err != nil {
		return err
	}

	info, err := fsutil.Snapshot(e.filename, content)
	if err != nil {
		e.logger.Warn("snapshot failed", logging.FieldPath, e.filename, logging.FieldError, err)
	}
	e.fileInfo = info
	return nil
}
