// Package keys decodes raw terminal input into logical key events.
package keys

import "fmt"

// Escape is the ESC control byte.
const Escape byte = 0x1b

// Enter is the byte a raw-mode terminal sends for the Return key.
const Enter byte = '\r'

// backspaceByte is the DEL byte most terminals send for Backspace.
const backspaceByte byte = 127

// Ctrl returns the byte produced by holding Ctrl with c.
func Ctrl(c byte) byte {
	return c & 0x1f
}

// Kind tags the variant held by a Key.
type Kind uint8

const (
	// KindByte is a literal or control byte.
	KindByte Kind = iota
	// KindArrow is a cursor arrow.
	KindArrow
	// KindFunction is a navigation or editing key.
	KindFunction
)

// Arrow identifies a cursor arrow key.
type Arrow uint8

const (
	ArrowUp Arrow = iota
	ArrowDown
	ArrowLeft
	ArrowRight
)

// Function identifies a navigation or editing key.
type Function uint8

const (
	PageUp Function = iota
	PageDown
	Home
	End
	Delete
	Backspace
)

// Key is one decoded key event. Exactly one of Arrow, Function or Byte is
// meaningful, selected by Kind.
type Key struct {
	Kind     Kind
	Arrow    Arrow
	Function Function
	Byte     byte
}

// ByteKey returns a Key for the literal byte b.
func ByteKey(b byte) Key { return Key{Kind: KindByte, Byte: b} }

// ArrowKey returns a Key for arrow a.
func ArrowKey(a Arrow) Key { return Key{Kind: KindArrow, Arrow: a} }

// FunctionKey returns a Key for function f.
func FunctionKey(f Function) Key { return Key{Kind: KindFunction, Function: f} }

// IsByte reports whether k is the literal byte b.
func (k Key) IsByte(b byte) bool {
	return k.Kind == KindByte && k.Byte == b
}

// IsArrow reports whether k is arrow a.
func (k Key) IsArrow(a Arrow) bool {
	return k.Kind == KindArrow && k.Arrow == a
}

// IsFunction reports whether k is function f.
func (k Key) IsFunction(f Function) bool {
	return k.Kind == KindFunction && k.Function == f
}

func (a Arrow) String() string {
	switch a {
	case ArrowUp:
		return "up"
	case ArrowDown:
		return "down"
	case ArrowLeft:
		return "left"
	case ArrowRight:
		return "right"
	default:
		return "arrow?"
	}
}

func (f Function) String() string {
	switch f {
	case PageUp:
		return "page-up"
	case PageDown:
		return "page-down"
	case Home:
		return "home"
	case End:
		return "end"
	case Delete:
		return "delete"
	case Backspace:
		return "backspace"
	default:
		return "function?"
	}
}

// String renders the key for logs.
func (k Key) String() string {
	switch k.Kind {
	case KindArrow:
		return k.Arrow.String()
	case KindFunction:
		return k.Function.String()
	default:
		if k.Byte < 0x20 {
			return fmt.Sprintf("ctrl-%c", k.Byte|0x60)
		}
		return fmt.Sprintf("%q", k.Byte)
	}
}
