// Package search implements incremental find over a document.
//
// A Controller is fed one key at a time while the find prompt is open. It
// moves the cursor to the next row whose render form contains the query and
// paints the match with syntax.Match. The painted row's previous highlight is
// kept as the single active override and put back before the next key is
// evaluated.
package search

import (
	"bytes"

	"github.com/yaklabco/gokilo/pkg/buffer"
	"github.com/yaklabco/gokilo/pkg/keys"
	"github.com/yaklabco/gokilo/pkg/syntax"
	"github.com/yaklabco/gokilo/pkg/viewport"
)

// override is a row whose highlight was replaced by a match overlay.
type override struct {
	row   int
	saved []syntax.Class
}

// Controller holds the state of one find session.
type Controller struct {
	lastMatch int
	direction int
	active    *override
}

// New returns a Controller ready for a fresh find session.
func New() *Controller {
	return &Controller{lastMatch: -1, direction: 1}
}

// Match describes where the last Update landed.
type Match struct {
	Row    int
	Column int // content-space
	Offset int // render-space
}

// Update handles one prompt key with the current query. It returns the match
// it moved to, if any. Enter and Escape only reset the controller; restoring
// the pre-search cursor on Escape is left to the caller.
func (c *Controller) Update(
	doc *buffer.Document,
	query string,
	key keys.Key,
	cursor *buffer.Position,
	vp *viewport.Viewport,
) (Match, bool) {
	c.Restore(doc)

	switch {
	case key.IsArrow(keys.ArrowRight), key.IsArrow(keys.ArrowDown):
		c.direction = 1
	case key.IsArrow(keys.ArrowLeft), key.IsArrow(keys.ArrowUp):
		c.direction = -1
	case key.IsByte(keys.Enter), key.IsByte(keys.Escape):
		c.reset()
		return Match{}, false
	default:
		c.reset()
	}

	if query == "" || doc.Len() == 0 {
		return Match{}, false
	}
	if c.lastMatch == -1 {
		c.direction = 1
	}

	needle := []byte(query)
	current := c.lastMatch
	for range doc.Len() {
		current += c.direction
		switch {
		case current < 0:
			current = doc.Len() - 1
		case current >= doc.Len():
			current = 0
		}

		row := doc.Row(current)
		off := bytes.Index(row.Rendered(), needle)
		if off < 0 {
			continue
		}

		c.lastMatch = current
		cursor.Y = current
		cursor.X = viewport.ColumnForRender(row.Chars(), off)
		vp.RowOffset = doc.Len()

		hl := row.Highlight()
		c.active = &override{row: current, saved: append([]syntax.Class(nil), hl...)}
		for i := off; i < off+len(needle) && i < len(hl); i++ {
			hl[i] = syntax.Match
		}
		return Match{Row: current, Column: cursor.X, Offset: off}, true
	}

	return Match{}, false
}

// Restore puts back the highlight of the row painted by the last match, if any.
func (c *Controller) Restore(doc *buffer.Document) {
	if c.active == nil {
		return
	}
	if row := doc.Row(c.active.row); row != nil && len(c.active.saved) == len(row.Highlight()) {
		row.SetHighlight(c.active.saved)
	}
	c.active = nil
}

// Overriding reports whether a row currently carries a match overlay.
func (c *Controller) Overriding() (int, bool) {
	if c.active == nil {
		return 0, false
	}
	return c.active.row, true
}

func (c *Controller) reset() {
	c.lastMatch = -1
	c.direction = 1
}
