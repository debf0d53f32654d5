package editor

import (
	"context"

	"github.com/yaklabco/gokilo/pkg/keys"
)

// PromptFunc is called after every key typed into a prompt, with the input
// so far and the key itself.
type PromptFunc func(input string, key keys.Key)

// Prompt reads a line of input in the message bar. template holds one %s
// where the input is shown. Enter accepts a non-empty input. Escape cancels
// and returns "". callback may be nil.
func (e *Editor) Prompt(ctx context.Context, template string, callback PromptFunc) (string, error) {
	var input []byte

	for {
		e.SetStatus(template, input)
		if err := e.Refresh(); err != nil {
			return "", err
		}

		key, err := e.input.ReadKey(ctx)
		if err != nil {
			return "", err
		}

		switch {
		case key.IsFunction(keys.Backspace), key.IsFunction(keys.Delete), key.IsByte(keys.Ctrl('h')):
			if len(input) > 0 {
				input = input[:len(input)-1]
			}

		case key.IsByte(keys.Escape):
			e.SetStatus("")
			if callback != nil {
				callback(string(input), key)
			}
			return "", nil

		case key.IsByte(keys.Enter):
			if len(input) > 0 {
				e.SetStatus("")
				if callback != nil {
					callback(string(input), key)
				}
				return string(input), nil
			}

		case key.Kind == keys.KindByte && isPrintable(key.Byte):
			input = append(input, key.Byte)
		}

		if callback != nil {
			callback(string(input), key)
		}
	}
}

func isPrintable(b byte) bool {
	return b >= ' ' && b < 127
}
