// Package viewport maps between content-space and render-space columns and
// keeps the cursor inside the visible window.
package viewport

// TabStop is the width of a tab stop in render columns.
const TabStop = 8

// RenderColumn returns the render-space column of content column x in chars.
// x is clamped to [0, len(chars)].
func RenderColumn(chars []byte, x int) int {
	if x > len(chars) {
		x = len(chars)
	}
	rx := 0
	for i := 0; i < x; i++ {
		rx = advance(rx, chars[i])
	}
	return rx
}

// ColumnForRender returns the first content column whose cumulative render
// width exceeds rx, or len(chars) when rx lies past the end of the row.
func ColumnForRender(chars []byte, rx int) int {
	cur := 0
	for cx, b := range chars {
		cur = advance(cur, b)
		if cur > rx {
			return cx
		}
	}
	return len(chars)
}

func advance(rx int, b byte) int {
	if b == '\t' {
		return rx + (TabStop - 1) - (rx % TabStop) + 1
	}
	return rx + 1
}

// Source exposes the rows a Viewport scrolls over.
type Source interface {
	Len() int
	Chars(y int) []byte
}

// Viewport is the visible window into a document, in render-space.
type Viewport struct {
	RowOffset int
	ColOffset int

	// RenderX is the cursor's render column, recomputed by Scroll.
	RenderX int
}

// Scroll recomputes RenderX for the cursor at (x, y) and moves the offsets
// just far enough that the cursor is visible on a rows×cols screen.
func (v *Viewport) Scroll(src Source, x, y, rows, cols int) {
	v.RenderX = 0
	if y < src.Len() {
		v.RenderX = RenderColumn(src.Chars(y), x)
	}

	if y < v.RowOffset {
		v.RowOffset = y
	}
	if y >= v.RowOffset+rows {
		v.RowOffset = y - rows + 1
	}
	if v.RenderX < v.ColOffset {
		v.ColOffset = v.RenderX
	}
	if v.RenderX >= v.ColOffset+cols {
		v.ColOffset = v.RenderX - cols + 1
	}
}
