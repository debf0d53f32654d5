// Package buffer holds the rows of an open document and the editing
// operations that mutate them.
//
// Every operation that changes a row re-derives that row's render form and
// highlight immediately, so Row.Rendered and Row.Highlight are never stale
// with respect to Row.Chars. The syntax state is passed in explicitly; only
// the edited row is rescanned.
package buffer

import (
	"github.com/yaklabco/gokilo/pkg/syntax"
)

// Position is a cursor location in content-space.
// Y == Document.Len() addresses the empty line past the end of the document.
type Position struct {
	X int
	Y int
}

// Document is an ordered sequence of rows plus a dirty flag.
type Document struct {
	rows  []*Row
	dirty bool
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// Len returns the number of rows.
func (d *Document) Len() int { return len(d.rows) }

// Row returns row y, or nil when y is out of range.
func (d *Document) Row(y int) *Row {
	if y < 0 || y >= len(d.rows) {
		return nil
	}
	return d.rows[y]
}

// Rows returns the rows in order. The slice must not be modified.
func (d *Document) Rows() []*Row { return d.rows }

// Chars returns the stored bytes of row y.
func (d *Document) Chars(y int) []byte {
	if row := d.Row(y); row != nil {
		return row.chars
	}
	return nil
}

// Dirty reports whether the document changed since it was loaded or saved.
func (d *Document) Dirty() bool { return d.dirty }

// MarkClean clears the dirty flag after a successful save.
func (d *Document) MarkClean() { d.dirty = false }

// Load appends lines as rows without marking the document dirty.
func (d *Document) Load(lines [][]byte, st *syntax.State) {
	for _, line := range lines {
		d.insertRow(len(d.rows), line, st)
	}
}

// Rehighlight rescans the whole document in row order.
func (d *Document) Rehighlight(st *syntax.State) {
	syntax.HighlightDocument(d.rows, st)
}

// InsertRow inserts a row holding content at index at.
// It does nothing when at is outside [0, Len()].
func (d *Document) InsertRow(at int, content []byte, st *syntax.State) {
	if d.insertRow(at, content, st) {
		d.dirty = true
	}
}

func (d *Document) insertRow(at int, content []byte, st *syntax.State) bool {
	if at < 0 || at > len(d.rows) {
		return false
	}
	d.rows = append(d.rows, nil)
	copy(d.rows[at+1:], d.rows[at:])
	d.rows[at] = newRow(content, st)
	return true
}

func (d *Document) deleteRow(at int) {
	if at < 0 || at >= len(d.rows) {
		return
	}
	copy(d.rows[at:], d.rows[at+1:])
	d.rows[len(d.rows)-1] = nil
	d.rows = d.rows[:len(d.rows)-1]
	d.dirty = true
}

// InsertChar inserts c at pos and returns the cursor position after it.
// At the sentinel line an empty row is created first. A column outside the
// row is clamped to the row end.
func (d *Document) InsertChar(pos Position, c byte, st *syntax.State) Position {
	if pos.Y < 0 || pos.Y > len(d.rows) {
		return pos
	}
	if pos.Y == len(d.rows) {
		d.insertRow(pos.Y, nil, st)
	}
	row := d.rows[pos.Y]
	at := pos.X
	if at < 0 || at > row.Size() {
		at = row.Size()
	}
	row.insertByte(at, c, st)
	d.dirty = true
	return Position{X: at + 1, Y: pos.Y}
}

// InsertNewline splits the row at pos and returns the start of the new line.
func (d *Document) InsertNewline(pos Position, st *syntax.State) Position {
	if pos.Y < 0 || pos.Y > len(d.rows) {
		return pos
	}
	if pos.X <= 0 || pos.Y == len(d.rows) {
		d.insertRow(pos.Y, nil, st)
	} else {
		row := d.rows[pos.Y]
		at := min(pos.X, row.Size())
		tail := append([]byte(nil), row.chars[at:]...)
		row.truncate(at, st)
		d.insertRow(pos.Y+1, tail, st)
	}
	d.dirty = true
	return Position{X: 0, Y: pos.Y + 1}
}

// DeleteChar removes the byte before pos and returns the new cursor position.
// At column 0 the row is joined onto the end of the previous row.
// Nothing happens at the sentinel line or at the very start of the document.
func (d *Document) DeleteChar(pos Position, st *syntax.State) Position {
	if pos.Y < 0 || pos.Y >= len(d.rows) {
		return pos
	}
	if pos.X == 0 && pos.Y == 0 {
		return pos
	}

	row := d.rows[pos.Y]
	if pos.X > 0 {
		at := min(pos.X, row.Size()) - 1
		if row.deleteByte(at, st) {
			d.dirty = true
		}
		return Position{X: at, Y: pos.Y}
	}

	prev := d.rows[pos.Y-1]
	joinAt := prev.Size()
	prev.appendBytes(row.chars, st)
	d.deleteRow(pos.Y)
	return Position{X: joinAt, Y: pos.Y - 1}
}

// Bytes serializes the document: every row followed by a newline.
func (d *Document) Bytes() []byte {
	size := 0
	for _, row := range d.rows {
		size += row.Size() + 1
	}
	out := make([]byte, 0, size)
	for _, row := range d.rows {
		out = append(out, row.chars...)
		out = append(out, '\n')
	}
	return out
}
