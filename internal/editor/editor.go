// Package editor ties the document, key decoder, renderer and file operations
// into one interactive session.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gokilo/internal/logging"
	"github.com/yaklabco/gokilo/pkg/buffer"
	"github.com/yaklabco/gokilo/pkg/config"
	"github.com/yaklabco/gokilo/pkg/fsutil"
	"github.com/yaklabco/gokilo/pkg/keys"
	"github.com/yaklabco/gokilo/pkg/langdetect"
	"github.com/yaklabco/gokilo/pkg/screen"
	"github.com/yaklabco/gokilo/pkg/syntax"
	"github.com/yaklabco/gokilo/pkg/viewport"
)

const (
	// quitTimes is how many extra Ctrl-Q presses a dirty document needs.
	quitTimes = 3

	// reservedRows are taken by the status and message bars.
	reservedRows = 2

	helpMessage = "HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-F = find"
)

// keyReader yields decoded keys. *keys.Decoder is the production source.
type keyReader interface {
	ReadKey(ctx context.Context) (keys.Key, error)
}

// Options configures a new Editor.
type Options struct {
	// Config supplies the syntax table, detection and backup settings.
	// Nil means defaults.
	Config *config.Config

	// Logger receives diagnostics. It must not write to the terminal.
	// Nil discards.
	Logger *log.Logger

	// Version is shown in the welcome banner.
	Version string

	// Now replaces time.Now, for tests.
	Now func() time.Time
}

// Editor is one editing session over a single document.
type Editor struct {
	doc    *buffer.Document
	cursor buffer.Position
	view   viewport.Viewport

	// rows and cols are the text area, bars excluded.
	rows int
	cols int

	filename string
	fileInfo *fsutil.FileInfo
	st       syntax.State

	syntaxes []syntax.Syntax
	detect   bool
	backups  fsutil.BackupConfig

	message   screen.Message
	quitTimes int

	// overwritePending is set after a save was refused because the file
	// changed on disk. The next Ctrl-S writes anyway.
	overwritePending bool

	input   keyReader
	out     io.Writer
	logger  *log.Logger
	now     func() time.Time
	version string
}

// New returns an editor reading keys from in and drawing to out on a
// screen of the given size. Two rows are reserved for the bars.
func New(in io.Reader, out io.Writer, cols, rows int, opts Options) *Editor {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	backups := fsutil.DefaultBackupConfig()
	backups.Enabled = cfg.BackupsEnabled()
	if cfg.Backups.Mode != "" {
		backups.Mode = fsutil.BackupMode(cfg.Backups.Mode)
	}

	return &Editor{
		doc:       buffer.New(),
		rows:      max(rows-reservedRows, 1),
		cols:      max(cols, 1),
		syntaxes:  cfg.SyntaxTable(),
		detect:    cfg.DetectLanguageEnabled(),
		backups:   backups,
		quitTimes: quitTimes,
		input:     keys.NewDecoder(in),
		out:       out,
		logger:    logger,
		now:       now,
		version:   opts.Version,
	}
}

// Run draws the screen and processes keys until the user quits or ctx is done.
// The screen is cleared on a normal quit and when ctx is cancelled.
func (e *Editor) Run(ctx context.Context) error {
	e.SetStatus(helpMessage)

	for {
		if err := e.Refresh(); err != nil {
			return err
		}

		key, err := e.input.ReadKey(ctx)
		if err != nil {
			return e.stop(ctx, err)
		}
		e.logger.Debug("key", logging.FieldKey, key.String())

		quit, err := e.ProcessKey(ctx, key)
		if err != nil {
			return e.stop(ctx, err)
		}
		if quit {
			e.logger.Info("quit", logging.FieldDirty, e.doc.Dirty())
			return screen.Clear(e.out)
		}
	}
}

// stop ends Run with err. A cancelled session leaves a clean screen behind.
func (e *Editor) stop(ctx context.Context, err error) error {
	if ctx.Err() == nil {
		return err
	}
	e.logger.Info("interrupted", logging.FieldDirty, e.doc.Dirty(), logging.FieldError, err)
	if clearErr := screen.Clear(e.out); clearErr != nil {
		return errors.Join(err, clearErr)
	}
	return err
}

// Refresh scrolls the viewport to the cursor and redraws the screen.
func (e *Editor) Refresh() error {
	e.view.Scroll(e.doc, e.cursor.X, e.cursor.Y, e.rows, e.cols)

	return screen.Draw(e.out, &screen.Frame{
		Doc:      e.doc,
		View:     e.view,
		Cursor:   e.cursor,
		Rows:     e.rows,
		Cols:     e.cols,
		Filename: e.filename,
		FileType: e.st.FileType(),
		Dirty:    e.doc.Dirty(),
		Message:  e.message,
		Now:      e.now(),
		Banner:   fmt.Sprintf("Gokilo editor -- version %s", e.version),
	})
}

// SetStatus shows a formatted message in the message bar.
func (e *Editor) SetStatus(format string, args ...any) {
	e.message = screen.Message{Text: fmt.Sprintf(format, args...), Set: e.now()}
}

// Status returns the current message bar text, expired or not.
func (e *Editor) Status() string {
	return e.message.Text
}

// Document returns the document being edited.
func (e *Editor) Document() *buffer.Document {
	return e.doc
}

// Cursor returns the cursor position in content space.
func (e *Editor) Cursor() buffer.Position {
	return e.cursor
}

// Filename returns the bound file name, or "" for an untitled document.
func (e *Editor) Filename() string {
	return e.filename
}

// FileType returns the active syntax name, or "" when highlighting is off.
func (e *Editor) FileType() string {
	return e.st.FileType()
}

// selectSyntax picks the syntax for the current filename and rehighlights.
// When the extension table misses and detection is on, the document content
// is offered to the language detector.
func (e *Editor) selectSyntax() {
	e.st = syntax.State{Syntax: syntax.Select(e.filename, e.syntaxes)}

	if e.st.Syntax == nil && e.detect && e.filename != "" {
		if name := langdetect.Detect(e.filename, e.head()); name != "" {
			e.st.Syntax = syntax.ByFileType(name, e.syntaxes)
		}
	}

	e.doc.Rehighlight(&e.st)
	e.logger.Debug("syntax selected",
		logging.FieldPath, e.filename,
		logging.FieldFileType, e.st.FileType(),
	)
}

// head returns up to langdetect.HeadSize bytes from the start of the document.
func (e *Editor) head() []byte {
	out := make([]byte, 0, langdetect.HeadSize)
	for _, row := range e.doc.Rows() {
		if len(out) >= langdetect.HeadSize {
			break
		}
		out = append(out, row.Chars()...)
		out = append(out, '\n')
	}
	if len(out) > langdetect.HeadSize {
		out = out[:langdetect.HeadSize]
	}
	return out
}
