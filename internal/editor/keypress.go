package editor

import (
	"context"

	"github.com/yaklabco/gokilo/internal/logging"
	"github.com/yaklabco/gokilo/pkg/keys"
)

// ProcessKey applies one key to the session. It reports true when the
// session should end.
func (e *Editor) ProcessKey(ctx context.Context, key keys.Key) (bool, error) {
	if !key.IsByte(keys.Ctrl('s')) {
		e.overwritePending = false
	}

	switch {
	case key.IsByte(keys.Enter):
		e.cursor = e.doc.InsertNewline(e.cursor, &e.st)

	case key.IsByte(keys.Ctrl('q')):
		if e.doc.Dirty() {
			e.quitTimes--
			if e.quitTimes > 0 {
				e.SetStatus("WARNING!!! File has unsaved changes. Press Ctrl-Q %d more times to quit.", e.quitTimes)
				e.logger.Debug("quit refused", logging.FieldDirty, true, "remaining", e.quitTimes)
				return false, nil
			}
		}
		return true, nil

	case key.IsByte(keys.Ctrl('s')):
		return false, e.Save(ctx)

	case key.IsByte(keys.Ctrl('f')):
		return false, e.Find(ctx)

	case key.IsFunction(keys.Backspace), key.IsByte(keys.Ctrl('h')), key.IsFunction(keys.Delete):
		if key.IsFunction(keys.Delete) {
			e.moveCursor(keys.ArrowRight)
		}
		e.cursor = e.doc.DeleteChar(e.cursor, &e.st)

	case key.IsFunction(keys.Home):
		e.cursor.X = 0

	case key.IsFunction(keys.End):
		if row := e.doc.Row(e.cursor.Y); row != nil {
			e.cursor.X = row.Size()
		}

	case key.IsFunction(keys.PageUp), key.IsFunction(keys.PageDown):
		e.page(key.Function)

	case key.Kind == keys.KindArrow:
		e.moveCursor(key.Arrow)

	case key.IsByte(keys.Ctrl('l')), key.IsByte(keys.Escape):

	case key.Kind == keys.KindByte:
		e.cursor = e.doc.InsertChar(e.cursor, key.Byte, &e.st)
	}

	return false, nil
}

// moveCursor moves one step in direction. Left and Right wrap across line
// ends. The column is then clamped to the new row.
func (e *Editor) moveCursor(direction keys.Arrow) {
	row := e.doc.Row(e.cursor.Y)

	switch direction {
	case keys.ArrowLeft:
		if e.cursor.X > 0 {
			e.cursor.X--
		} else if e.cursor.Y > 0 {
			e.cursor.Y--
			e.cursor.X = e.doc.Row(e.cursor.Y).Size()
		}
	case keys.ArrowRight:
		if row != nil && e.cursor.X < row.Size() {
			e.cursor.X++
		} else if row != nil && e.cursor.X == row.Size() {
			e.cursor.Y++
			e.cursor.X = 0
		}
	case keys.ArrowUp:
		if e.cursor.Y > 0 {
			e.cursor.Y--
		}
	case keys.ArrowDown:
		if e.cursor.Y < e.doc.Len() {
			e.cursor.Y++
		}
	}

	size := 0
	if row := e.doc.Row(e.cursor.Y); row != nil {
		size = row.Size()
	}
	e.cursor.X = min(e.cursor.X, size)
}

// page moves the cursor to the top or bottom screen edge, then one screen
// further in the same direction.
func (e *Editor) page(f keys.Function) {
	direction := keys.ArrowUp
	if f == keys.PageUp {
		e.cursor.Y = e.view.RowOffset
	} else {
		direction = keys.ArrowDown
		e.cursor.Y = min(e.view.RowOffset+e.rows-1, e.doc.Len())
	}

	for range e.rows {
		e.moveCursor(direction)
	}
}
