package editor

import (
	"context"

	"github.com/yaklabco/gokilo/internal/logging"
	"github.com/yaklabco/gokilo/pkg/keys"
	"github.com/yaklabco/gokilo/pkg/search"
)

// Find runs an incremental search. Each key in the prompt moves to the next
// match; arrows choose the direction. Escape puts the cursor and viewport
// back where they were.
func (e *Editor) Find(ctx context.Context) error {
	savedCursor := e.cursor
	savedView := e.view

	finder := search.New()
	defer finder.Restore(e.doc)

	query, err := e.Prompt(ctx, "Search: %s (Use ESC/Arrows/Enter)", func(input string, key keys.Key) {
		match, ok := finder.Update(e.doc, input, key, &e.cursor, &e.view)
		if ok {
			e.logger.Debug("search match",
				logging.FieldQuery, input,
				logging.FieldRow, match.Row,
				logging.FieldColumn, match.Column,
			)
		}
	})
	if err != nil {
		return err
	}

	if query == "" {
		e.cursor = savedCursor
		e.view = savedView
	}
	return nil
}
