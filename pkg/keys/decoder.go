package keys

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// decodeState is a state of the escape-sequence automaton.
type decodeState uint8

const (
	stateGround   decodeState = iota // expecting a fresh key
	stateEscape                      // seen ESC
	stateCSI                         // seen ESC [
	stateCSIDigit                    // seen ESC [ <digit>
	stateSS3                         // seen ESC O
)

// Decoder turns a byte stream into key events.
//
// The reader is expected to behave like a raw-mode terminal with a short read
// timeout: a read may return no data, which the decoder treats as "no byte
// yet" for the first byte of a key and as "sequence ended" inside an escape
// sequence.
type Decoder struct {
	r   io.Reader
	buf [1]byte
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// ReadKey blocks until one key is available. Empty reads are retried until
// ctx is done.
func (d *Decoder) ReadKey(ctx context.Context) (Key, error) {
	var first byte
	for {
		select {
		case <-ctx.Done():
			return Key{}, fmt.Errorf("read key: %w", ctx.Err())
		default:
		}

		b, ok, err := d.next()
		if err != nil {
			return Key{}, err
		}
		if ok {
			first = b
			break
		}
	}

	return d.decode(first), nil
}

// next performs a single read. ok is false when the read produced no byte.
func (d *Decoder) next() (byte, bool, error) {
	n, err := d.r.Read(d.buf[:])
	if n == 1 {
		return d.buf[0], true, nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return 0, false, nil
	}
	return 0, false, fmt.Errorf("read input: %w", err)
}

// follow reads one byte of an escape sequence. Any failure ends the sequence.
func (d *Decoder) follow() (byte, bool) {
	b, ok, err := d.next()
	if err != nil {
		return 0, false
	}
	return b, ok
}

// decode runs the automaton starting from first. At most three bytes beyond
// first are consumed.
func (d *Decoder) decode(first byte) Key {
	state := stateGround
	var final byte

	for {
		switch state {
		case stateGround:
			switch first {
			case Escape:
				state = stateEscape
			case backspaceByte:
				return FunctionKey(Backspace)
			default:
				return ByteKey(first)
			}

		case stateEscape:
			introducer, ok := d.follow()
			if !ok {
				return ByteKey(Escape)
			}
			if final, ok = d.follow(); !ok {
				return ByteKey(Escape)
			}
			switch introducer {
			case '[':
				state = stateCSI
			case 'O', '0':
				state = stateSS3
			default:
				return ByteKey(Escape)
			}

		case stateCSI:
			if isDigit(final) {
				state = stateCSIDigit
				continue
			}
			return csiFinal(final)

		case stateCSIDigit:
			tilde, ok := d.follow()
			if !ok || tilde != '~' {
				return ByteKey(Escape)
			}
			return tildeKey(final)

		case stateSS3:
			return ss3Final(final)

		default:
			return ByteKey(Escape)
		}
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func csiFinal(b byte) Key {
	switch b {
	case 'A':
		return ArrowKey(ArrowUp)
	case 'B':
		return ArrowKey(ArrowDown)
	case 'C':
		return ArrowKey(ArrowRight)
	case 'D':
		return ArrowKey(ArrowLeft)
	case 'H':
		return FunctionKey(Home)
	case 'F':
		return FunctionKey(End)
	default:
		return ByteKey(Escape)
	}
}

func ss3Final(b byte) Key {
	switch b {
	case 'H':
		return FunctionKey(Home)
	case 'F':
		return FunctionKey(End)
	default:
		return ByteKey(Escape)
	}
}

func tildeKey(digit byte) Key {
	switch digit {
	case '1', '7':
		return FunctionKey(Home)
	case '3':
		return FunctionKey(Delete)
	case '4', '8':
		return FunctionKey(End)
	case '5':
		return FunctionKey(PageUp)
	case '6':
		return FunctionKey(PageDown)
	default:
		return ByteKey(Escape)
	}
}
