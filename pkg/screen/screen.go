// Package screen composes complete terminal frames for the editor.
//
// A frame is built in memory and handed to the terminal in one write so the
// user never sees a half-drawn screen.
package screen

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/yaklabco/gokilo/pkg/buffer"
	"github.com/yaklabco/gokilo/pkg/syntax"
	"github.com/yaklabco/gokilo/pkg/viewport"
)

// MessageTimeout is how long a status message stays on screen.
const MessageTimeout = 5 * time.Second

// Escape sequences used by the renderer.
const (
	hideCursor   = "\x1b[?25l"
	showCursor   = "\x1b[?25h"
	cursorHome   = "\x1b[H"
	eraseLine    = "\x1b[K"
	clearScreen  = "\x1b[2J"
	inverseVideo = "\x1b[7m"
	resetSGR     = "\x1b[m"
	defaultColor = "\x1b[39m"
	lineBreak    = "\r\n"
)

// Message is a transient status line text and the moment it was set.
type Message struct {
	Text string
	Set  time.Time
}

// Visible reports whether the message is still young enough to draw at now.
func (m Message) Visible(now time.Time) bool {
	return m.Text != "" && now.Sub(m.Set) < MessageTimeout
}

// Frame is everything needed to draw one screen.
type Frame struct {
	Doc    *buffer.Document
	View   viewport.Viewport
	Cursor buffer.Position

	// Rows and Cols describe the text area; the two bars are drawn below it.
	Rows int
	Cols int

	Filename string
	FileType string
	Dirty    bool

	Message Message
	Now     time.Time

	// Banner is shown a third of the way down an empty document.
	Banner string
}

// Render returns the bytes of the frame.
func Render(f *Frame) []byte {
	var out bytes.Buffer
	out.Grow((f.Rows + 2) * (f.Cols + 16))

	out.WriteString(hideCursor)
	out.WriteString(cursorHome)

	drawRows(&out, f)
	drawStatusBar(&out, f)
	drawMessageBar(&out, f)

	fmt.Fprintf(&out, "\x1b[%d;%dH", f.Cursor.Y-f.View.RowOffset+1, f.View.RenderX-f.View.ColOffset+1)
	out.WriteString(showCursor)

	return out.Bytes()
}

// Draw renders f and writes it to w in a single call.
func Draw(w io.Writer, f *Frame) error {
	if _, err := w.Write(Render(f)); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Clear erases the terminal and homes the cursor.
func Clear(w io.Writer) error {
	if _, err := io.WriteString(w, clearScreen+cursorHome); err != nil {
		return fmt.Errorf("clear screen: %w", err)
	}
	return nil
}

func drawRows(out *bytes.Buffer, f *Frame) {
	for y := 0; y < f.Rows; y++ {
		fileRow := y + f.View.RowOffset
		if fileRow >= f.Doc.Len() {
			if f.Doc.Len() == 0 && y == f.Rows/3 && f.Banner != "" {
				drawBanner(out, f.Banner, f.Cols)
			} else {
				out.WriteByte('~')
			}
		} else {
			drawText(out, f.Doc.Row(fileRow), f.View.ColOffset, f.Cols)
		}
		out.WriteString(eraseLine)
		out.WriteString(lineBreak)
	}
}

func drawBanner(out *bytes.Buffer, banner string, cols int) {
	if len(banner) > cols {
		banner = banner[:cols]
	}
	padding := (cols - len(banner)) / 2
	if padding > 0 {
		out.WriteByte('~')
		padding--
	}
	for ; padding > 0; padding-- {
		out.WriteByte(' ')
	}
	out.WriteString(banner)
}

// drawText emits the visible slice of a row, switching color only when the
// highlight class changes.
func drawText(out *bytes.Buffer, row *buffer.Row, colOffset, cols int) {
	render := row.Rendered()
	hl := row.Highlight()
	if colOffset >= len(render) {
		return
	}
	end := min(len(render), colOffset+cols)

	current := syntax.Normal
	for i := colOffset; i < end; i++ {
		class := hl[i]
		if class != current {
			out.WriteString("\x1b[")
			out.WriteString(strconv.Itoa(class.Color()))
			out.WriteByte('m')
			current = class
		}
		out.WriteByte(render[i])
	}
	out.WriteString(defaultColor)
}

func drawStatusBar(out *bytes.Buffer, f *Frame) {
	out.WriteString(inverseVideo)

	name := f.Filename
	if name == "" {
		name = "[No Name]"
	}
	left := fmt.Sprintf("%s - %d lines", name, f.Doc.Len())
	if f.Dirty {
		left += " (modified)"
	}
	fileType := f.FileType
	if fileType == "" {
		fileType = "no ft"
	}
	right := fmt.Sprintf("%s | %d/%d", fileType, f.Cursor.Y+1, f.Doc.Len())

	if len(left) > f.Cols {
		left = left[:f.Cols]
	}
	out.WriteString(left)
	for n := len(left); n < f.Cols; n++ {
		if f.Cols-n == len(right) {
			out.WriteString(right)
			break
		}
		out.WriteByte(' ')
	}

	out.WriteString(resetSGR)
	out.WriteString(lineBreak)
}

func drawMessageBar(out *bytes.Buffer, f *Frame) {
	out.WriteString(eraseLine)
	if !f.Message.Visible(f.Now) {
		return
	}
	text := f.Message.Text
	if len(text) > f.Cols {
		text = text[:f.Cols]
	}
	out.WriteString(text)
}
