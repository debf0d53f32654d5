package editor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gokilo/pkg/buffer"
	"github.com/yaklabco/gokilo/pkg/config"
	"github.com/yaklabco/gokilo/pkg/fsutil"
	"github.com/yaklabco/gokilo/pkg/keys"
	"github.com/yaklabco/gokilo/pkg/syntax"
)

// script feeds a fixed key sequence. hooks[i] runs before key i is returned.
type script struct {
	keys  []keys.Key
	read  int
	hooks map[int]func()
}

func (s *script) ReadKey(ctx context.Context) (keys.Key, error) {
	if hook := s.hooks[s.read]; hook != nil {
		hook()
	}
	if err := ctx.Err(); err != nil {
		return keys.Key{}, fmt.Errorf("read key: %w", err)
	}
	if s.read >= len(s.keys) {
		return keys.Key{}, io.EOF
	}
	k := s.keys[s.read]
	s.read++
	return k, nil
}

func typed(text string) []keys.Key {
	out := make([]keys.Key, 0, len(text))
	for i := range len(text) {
		out = append(out, keys.ByteKey(text[i]))
	}
	return out
}

func seq(parts ...[]keys.Key) []keys.Key {
	var out []keys.Key
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func one(k keys.Key) []keys.Key { return []keys.Key{k} }

var (
	ctrlQ  = keys.ByteKey(keys.Ctrl('q'))
	ctrlS  = keys.ByteKey(keys.Ctrl('s'))
	ctrlF  = keys.ByteKey(keys.Ctrl('f'))
	enter  = keys.ByteKey(keys.Enter)
	escape = keys.ByteKey(keys.Escape)
)

func newTestEditor(t *testing.T, out io.Writer, input ...keys.Key) (*Editor, *script) {
	t.Helper()

	if out == nil {
		out = io.Discard
	}
	e := New(bytes.NewReader(nil), out, 80, 24, Options{
		Version: "test",
		Now:     func() time.Time { return time.Unix(1_700_000_000, 0) },
	})
	s := &script{keys: input}
	e.input = s
	return e, s
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func press(t *testing.T, e *Editor, ks ...keys.Key) {
	t.Helper()

	for _, k := range ks {
		quit, err := e.ProcessKey(context.Background(), k)
		require.NoError(t, err)
		require.False(t, quit, "unexpected quit on %s", k)
	}
}

func rowStrings(doc *buffer.Document) []string {
	out := make([]string, 0, doc.Len())
	for _, row := range doc.Rows() {
		out = append(out, string(row.Chars()))
	}
	return out
}

func TestNew_ReservesBarRows(t *testing.T) {
	t.Parallel()

	e := New(bytes.NewReader(nil), io.Discard, 80, 24, Options{})
	assert.Equal(t, 22, e.rows)
	assert.Equal(t, 80, e.cols)

	tiny := New(bytes.NewReader(nil), io.Discard, 0, 1, Options{})
	assert.Equal(t, 1, tiny.rows)
	assert.Equal(t, 1, tiny.cols)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("existing file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "main.c", "int x = 1;\r\nchar *s = \"a\";\n")
		e, _ := newTestEditor(t, nil)
		require.NoError(t, e.Open(context.Background(), path))

		assert.Equal(t, []string{"int x = 1;", `char *s = "a";`}, rowStrings(e.Document()))
		assert.Equal(t, "c", e.FileType())
		assert.False(t, e.Document().Dirty())
		assert.Equal(t, syntax.Number, e.Document().Row(0).Highlight()[8])
	})

	t.Run("missing file binds the name", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "new.txt")
		e, _ := newTestEditor(t, nil)
		require.NoError(t, e.Open(context.Background(), path))

		assert.Equal(t, 0, e.Document().Len())
		assert.Equal(t, path, e.Filename())
		assert.Empty(t, e.FileType())
	})

	t.Run("directory is an error", func(t *testing.T) {
		t.Parallel()

		e, _ := newTestEditor(t, nil)
		err := e.Open(context.Background(), t.TempDir())
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("content detection without a known extension", func(t *testing.T) {
		t.Parallel()

		on := true
		cfg := config.NewConfig()
		cfg.DetectLanguage = &on
		path := writeFile(t, "runme", "#!/bin/sh\necho 'hi'\n")

		e := New(bytes.NewReader(nil), io.Discard, 80, 24, Options{Config: cfg})
		require.NoError(t, e.Open(context.Background(), path))
		assert.Equal(t, "shell", e.FileType())
	})

	t.Run("unknown extension is plain by default", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"notes.txt", "deploy"} {
			path := writeFile(t, name, "#!/bin/sh\necho 42\n")
			e := New(bytes.NewReader(nil), io.Discard, 80, 24, Options{})
			require.NoError(t, e.Open(context.Background(), path))

			assert.Empty(t, e.FileType(), name)
			for _, class := range e.Document().Row(1).Highlight() {
				assert.Equal(t, syntax.Normal, class, name)
			}
		}
	})
}

func TestEnterAtEndOfLine(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "words.txt", "foo\nbar\nbaz\n")
	e, _ := newTestEditor(t, nil)
	require.NoError(t, e.Open(context.Background(), path))

	press(t, e, keys.ArrowKey(keys.ArrowDown), keys.FunctionKey(keys.End), enter)

	assert.Equal(t, []string{"foo", "bar", "", "baz"}, rowStrings(e.Document()))
	assert.Equal(t, buffer.Position{X: 0, Y: 2}, e.Cursor())
	assert.True(t, e.Document().Dirty())
}

func TestQuitCountdown(t *testing.T) {
	t.Parallel()

	e, _ := newTestEditor(t, nil)
	press(t, e, typed("x")...)

	ctx := context.Background()
	for _, remaining := range []int{2, 1} {
		quit, err := e.ProcessKey(ctx, ctrlQ)
		require.NoError(t, err)
		assert.False(t, quit)
		assert.Contains(t, e.Status(), "WARNING!!!")
		assert.Contains(t, e.Status(), fmt.Sprintf("%d more times", remaining))
	}

	quit, err := e.ProcessKey(ctx, ctrlQ)
	require.NoError(t, err)
	assert.True(t, quit, "third Ctrl-Q should exit")
}

func TestQuitCleanDocumentExitsAtOnce(t *testing.T) {
	t.Parallel()

	e, _ := newTestEditor(t, nil)
	quit, err := e.ProcessKey(context.Background(), ctrlQ)
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestSaveResetsQuitCountdown(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "notes.txt")
	e, _ := newTestEditor(t, nil)
	require.NoError(t, e.Open(context.Background(), path))

	press(t, e, typed("a")...)
	press(t, e, ctrlQ, ctrlQ, ctrlS)
	assert.Equal(t, quitTimes, e.quitTimes)

	press(t, e, typed("b")...)
	press(t, e, ctrlQ, ctrlQ)
	quit, err := e.ProcessKey(context.Background(), ctrlQ)
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestRun_DrawsAndClearsOnQuit(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	e, _ := newTestEditor(t, &out, ctrlQ)
	require.NoError(t, e.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Gokilo editor -- version test")
	assert.Contains(t, got, helpMessage)
	assert.True(t, strings.HasSuffix(got, "\x1b[2J\x1b[H"))
}

func TestRun_ClearsScreenWhenCancelled(t *testing.T) {
	t.Parallel()

	t.Run("while editing", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		e, s := newTestEditor(t, &out, typed("ab")...)
		s.hooks = map[int]func(){1: cancel}

		err := e.Run(ctx)
		require.ErrorIs(t, err, context.Canceled)
		assert.True(t, strings.HasSuffix(out.String(), "\x1b[2J\x1b[H"))
		assert.Equal(t, []string{"a"}, rowStrings(e.Document()))
	})

	t.Run("inside a prompt", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		e, s := newTestEditor(t, &out, seq(one(ctrlF), typed("x"))...)
		s.hooks = map[int]func(){2: cancel}

		err := e.Run(ctx)
		require.ErrorIs(t, err, context.Canceled)
		assert.True(t, strings.HasSuffix(out.String(), "\x1b[2J\x1b[H"))
	})
}

func TestRun_ReturnsInputError(t *testing.T) {
	t.Parallel()

	e, _ := newTestEditor(t, nil, typed("ab")...)
	err := e.Run(context.Background())
	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, []string{"ab"}, rowStrings(e.Document()))
}

func TestMoveCursor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		start buffer.Position
		keys  []keys.Key
		want  buffer.Position
	}{
		{"left wraps to previous line end", buffer.Position{X: 0, Y: 1}, one(keys.ArrowKey(keys.ArrowLeft)), buffer.Position{X: 5, Y: 0}},
		{"left at origin stays", buffer.Position{}, one(keys.ArrowKey(keys.ArrowLeft)), buffer.Position{}},
		{"right wraps to next line start", buffer.Position{X: 5, Y: 0}, one(keys.ArrowKey(keys.ArrowRight)), buffer.Position{X: 0, Y: 1}},
		{"down clamps column", buffer.Position{X: 5, Y: 0}, one(keys.ArrowKey(keys.ArrowDown)), buffer.Position{X: 2, Y: 1}},
		{"down reaches the line after the last", buffer.Position{X: 1, Y: 2}, one(keys.ArrowKey(keys.ArrowDown)), buffer.Position{X: 0, Y: 3}},
		{"down stops past the end", buffer.Position{Y: 3}, one(keys.ArrowKey(keys.ArrowDown)), buffer.Position{Y: 3}},
		{"up at top stays", buffer.Position{X: 3}, one(keys.ArrowKey(keys.ArrowUp)), buffer.Position{X: 3}},
		{"home", buffer.Position{X: 4}, one(keys.FunctionKey(keys.Home)), buffer.Position{}},
		{"end", buffer.Position{Y: 2}, one(keys.FunctionKey(keys.End)), buffer.Position{X: 4, Y: 2}},
		{"end past the last line", buffer.Position{Y: 3}, one(keys.FunctionKey(keys.End)), buffer.Position{Y: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, "m.txt", "hello\nhi\nyoyo\n")
			e, _ := newTestEditor(t, nil)
			require.NoError(t, e.Open(context.Background(), path))
			e.cursor = tt.start

			press(t, e, tt.keys...)
			assert.Equal(t, tt.want, e.Cursor())
		})
	}
}

func TestPageUpDown(t *testing.T) {
	t.Parallel()

	lines := make([]string, 100)
	for i := range lines {
		lines[i] = "line"
	}
	path := writeFile(t, "long.txt", strings.Join(lines, "\n")+"\n")

	e, _ := newTestEditor(t, nil)
	require.NoError(t, e.Open(context.Background(), path))

	press(t, e, keys.FunctionKey(keys.PageDown))
	assert.Equal(t, 2*e.rows-1, e.Cursor().Y)

	require.NoError(t, e.Refresh())
	press(t, e, keys.FunctionKey(keys.PageUp))
	assert.Equal(t, max(e.view.RowOffset-e.rows, 0), e.Cursor().Y)

	e.cursor = buffer.Position{Y: 95}
	require.NoError(t, e.Refresh())
	press(t, e, keys.FunctionKey(keys.PageDown))
	assert.Equal(t, 100, e.Cursor().Y, "page down stops on the line after the last")
}

func TestDeleteKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		start buffer.Position
		key   keys.Key
		want  []string
		pos   buffer.Position
	}{
		{"backspace", buffer.Position{X: 2}, keys.FunctionKey(keys.Backspace), []string{"ac", "de"}, buffer.Position{X: 1}},
		{"ctrl-h", buffer.Position{X: 2}, keys.ByteKey(keys.Ctrl('h')), []string{"ac", "de"}, buffer.Position{X: 1}},
		{"delete removes under cursor", buffer.Position{X: 1}, keys.FunctionKey(keys.Delete), []string{"ac", "de"}, buffer.Position{X: 1}},
		{"delete at line end joins", buffer.Position{X: 3}, keys.FunctionKey(keys.Delete), []string{"abcde"}, buffer.Position{X: 3}},
		{"backspace at column 0 joins", buffer.Position{Y: 1}, keys.FunctionKey(keys.Backspace), []string{"abcde"}, buffer.Position{X: 3}},
		{"backspace at origin", buffer.Position{}, keys.FunctionKey(keys.Backspace), []string{"abc", "de"}, buffer.Position{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, "d.txt", "abc\nde\n")
			e, _ := newTestEditor(t, nil)
			require.NoError(t, e.Open(context.Background(), path))
			e.cursor = tt.start

			press(t, e, tt.key)
			assert.Equal(t, tt.want, rowStrings(e.Document()))
			assert.Equal(t, tt.pos, e.Cursor())
		})
	}
}

func TestNoOpKeys(t *testing.T) {
	t.Parallel()

	e, _ := newTestEditor(t, nil)
	press(t, e, escape, keys.ByteKey(keys.Ctrl('l')))
	assert.Equal(t, 0, e.Document().Len())
	assert.False(t, e.Document().Dirty())
}

func TestControlBytesInsertLiterally(t *testing.T) {
	t.Parallel()

	e, _ := newTestEditor(t, nil)
	press(t, e, keys.ByteKey('\t'), keys.ByteKey(keys.Ctrl('b')))
	assert.Equal(t, []string{"\t\x02"}, rowStrings(e.Document()))
}
