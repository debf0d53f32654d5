package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gokilo/pkg/syntax"
)

const (
	N = syntax.Normal
	D = syntax.Number
	S = syntax.String
)

func numbersOnly() *syntax.Syntax {
	return &syntax.Syntax{FileType: "num", Extensions: []string{"num"}, Flags: syntax.Flags{Numbers: true}}
}

func both() *syntax.Syntax {
	return &syntax.Syntax{FileType: "c", Extensions: []string{"c"}, Flags: syntax.Flags{Numbers: true, Strings: true}}
}

func TestHighlightRow_Numbers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []syntax.Class
	}{
		{"digit after identifier stays normal", "a1 23", []syntax.Class{N, N, N, D, D}},
		{"leading digits", "42", []syntax.Class{D, D}},
		{"after paren", "f(7)", []syntax.Class{N, N, D, N}},
		{"after operator", "x=10;", []syntax.Class{N, N, D, D, N}},
		{"empty", "", []syntax.Class{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			st := &syntax.State{Syntax: numbersOnly()}
			got := syntax.HighlightRow([]byte(tt.input), nil, st)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHighlightRow_StringsDisabledIgnoresQuotes(t *testing.T) {
	t.Parallel()

	st := &syntax.State{Syntax: numbersOnly()}
	got := syntax.HighlightRow([]byte(`"1"`), nil, st)

	assert.Equal(t, []syntax.Class{N, N, N}, got)
	assert.Zero(t, st.InString)
}

func TestHighlightRow_Strings(t *testing.T) {
	t.Parallel()

	st := &syntax.State{Syntax: both()}
	got := syntax.HighlightRow([]byte(`x="a\"b" 1`), nil, st)

	assert.Equal(t, []syntax.Class{N, N, S, S, S, S, S, S, N, D}, got)
	assert.Zero(t, st.InString, "string should be closed")
}

func TestHighlightRow_SecondaryQuote(t *testing.T) {
	t.Parallel()

	st := &syntax.State{Syntax: both()}
	got := syntax.HighlightRow([]byte(`'a'`), nil, st)

	assert.Equal(t, []syntax.Class{S, S, S}, got)
	assert.Zero(t, st.InString)
}

func TestHighlightRow_UnterminatedStringCarriesOver(t *testing.T) {
	t.Parallel()

	st := &syntax.State{Syntax: both()}
	first := syntax.HighlightRow([]byte(`s = "abc`), nil, st)
	require.Equal(t, byte('"'), st.InString)
	assert.Equal(t, S, first[len(first)-1])

	second := syntax.HighlightRow([]byte(`de" 5`), nil, st)
	assert.Equal(t, []syntax.Class{S, S, S, N, D}, second)
	assert.Zero(t, st.InString)
}

func TestHighlightRow_NoSyntax(t *testing.T) {
	t.Parallel()

	st := &syntax.State{InString: '"'}
	got := syntax.HighlightRow([]byte(`"12"`), nil, st)

	assert.Equal(t, []syntax.Class{N, N, N, N}, got)
	assert.Equal(t, byte('"'), st.InString, "state must be untouched without a syntax")
}

func TestHighlightRow_ReusesStorage(t *testing.T) {
	t.Parallel()

	buf := make([]syntax.Class, 0, 16)
	st := &syntax.State{Syntax: numbersOnly()}
	got := syntax.HighlightRow([]byte("12"), buf, st)

	require.Len(t, got, 2)
	assert.Equal(t, 16, cap(got))
}

type line struct {
	render []byte
	hl     []syntax.Class
}

func (l *line) Rendered() []byte { return l.render }

func (l *line) Highlight() []syntax.Class { return l.hl }

func (l *line) SetHighlight(hl []syntax.Class) { l.hl = hl }

func TestHighlightDocument_ThreadsState(t *testing.T) {
	t.Parallel()

	lines := []*line{
		{render: []byte(`a "b`)},
		{render: []byte(`c`)},
		{render: []byte(`d" 9`)},
	}
	st := &syntax.State{Syntax: both(), InString: '\''}

	syntax.HighlightDocument(lines, st)

	assert.Equal(t, []syntax.Class{N, N, S, S}, lines[0].hl)
	assert.Equal(t, []syntax.Class{S}, lines[1].hl)
	assert.Equal(t, []syntax.Class{S, S, N, D}, lines[2].hl)
	assert.Zero(t, st.InString)
}

func TestClassColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 31, syntax.Number.Color())
	assert.Equal(t, 34, syntax.Match.Color())
	assert.Equal(t, 35, syntax.String.Color())
	assert.Equal(t, 39, syntax.Normal.Color())
	assert.Equal(t, 37, syntax.Class(99).Color())
}

func BenchmarkHighlightRow(b *testing.B) {
	syn := syntax.ByFileType("c", syntax.Builtins())
	line := []byte(`for (int i = 0; i < 1024; i++) { printf("%d: %s\n", i, "value 42"); }`)
	var hl []syntax.Class

	for b.Loop() {
		st := &syntax.State{Syntax: syn}
		hl = syntax.HighlightRow(line, hl, st)
	}
}
