package buffer

import (
	"github.com/yaklabco/gokilo/pkg/syntax"
	"github.com/yaklabco/gokilo/pkg/viewport"
)

// Row is one line of a document.
//
// chars holds the line exactly as stored on disk, without the newline.
// render is chars with tabs expanded, and hl has one class per render byte.
type Row struct {
	chars  []byte
	render []byte
	hl     []syntax.Class
}

func newRow(content []byte, st *syntax.State) *Row {
	row := &Row{chars: append([]byte(nil), content...)}
	row.update(st)
	return row
}

// Chars returns the stored bytes. The slice must not be modified.
func (r *Row) Chars() []byte { return r.chars }

// Size returns the number of stored bytes.
func (r *Row) Size() int { return len(r.chars) }

// Rendered returns the tab-expanded bytes.
func (r *Row) Rendered() []byte { return r.render }

// Highlight returns the class of each rendered byte.
func (r *Row) Highlight() []syntax.Class { return r.hl }

// SetHighlight replaces the highlight classes. len(hl) must equal len(Rendered()).
func (r *Row) SetHighlight(hl []syntax.Class) { r.hl = hl }

// update rebuilds render from chars and rescans this row only.
func (r *Row) update(st *syntax.State) {
	tabs := 0
	for _, b := range r.chars {
		if b == '\t' {
			tabs++
		}
	}

	render := r.render[:0]
	if cap(render) < len(r.chars)+tabs*(viewport.TabStop-1) {
		render = make([]byte, 0, len(r.chars)+tabs*(viewport.TabStop-1))
	}
	for _, b := range r.chars {
		if b != '\t' {
			render = append(render, b)
			continue
		}
		render = append(render, ' ')
		for len(render)%viewport.TabStop != 0 {
			render = append(render, ' ')
		}
	}
	r.render = render
	r.hl = syntax.HighlightRow(r.render, r.hl, st)
}

func (r *Row) insertByte(at int, b byte, st *syntax.State) {
	if at < 0 || at > len(r.chars) {
		at = len(r.chars)
	}
	r.chars = append(r.chars, 0)
	copy(r.chars[at+1:], r.chars[at:])
	r.chars[at] = b
	r.update(st)
}

func (r *Row) deleteByte(at int, st *syntax.State) bool {
	if at < 0 || at >= len(r.chars) {
		return false
	}
	r.chars = append(r.chars[:at], r.chars[at+1:]...)
	r.update(st)
	return true
}

func (r *Row) appendBytes(b []byte, st *syntax.State) {
	r.chars = append(r.chars, b...)
	r.update(st)
}

func (r *Row) truncate(at int, st *syntax.State) {
	r.chars = r.chars[:at]
	r.update(st)
}
