package buffer_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gokilo/pkg/buffer"
	"github.com/yaklabco/gokilo/pkg/syntax"
)

func load(t *testing.T, lines ...string) (*buffer.Document, *syntax.State) {
	t.Helper()

	st := &syntax.State{}
	doc := buffer.New()
	raw := make([][]byte, 0, len(lines))
	for _, line := range lines {
		raw = append(raw, []byte(line))
	}
	doc.Load(raw, st)
	require.False(t, doc.Dirty(), "Load must not dirty the document")
	return doc, st
}

func rowStrings(doc *buffer.Document) []string {
	out := make([]string, 0, doc.Len())
	for _, row := range doc.Rows() {
		out = append(out, string(row.Chars()))
	}
	return out
}

func TestInsertRow_OutOfRangeIsIgnored(t *testing.T) {
	t.Parallel()

	doc, st := load(t, "a")
	doc.InsertRow(5, []byte("x"), st)
	doc.InsertRow(-1, []byte("x"), st)

	assert.Equal(t, []string{"a"}, rowStrings(doc))
	assert.False(t, doc.Dirty())

	doc.InsertRow(1, []byte("b"), st)
	doc.InsertRow(0, []byte("z"), st)
	assert.Equal(t, []string{"z", "a", "b"}, rowStrings(doc))
	assert.True(t, doc.Dirty())
}

func TestInsertChar(t *testing.T) {
	t.Parallel()

	t.Run("creates row at sentinel", func(t *testing.T) {
		t.Parallel()

		doc := buffer.New()
		st := &syntax.State{}
		pos := doc.InsertChar(buffer.Position{}, 'h', st)
		pos = doc.InsertChar(pos, 'i', st)

		assert.Equal(t, buffer.Position{X: 2, Y: 0}, pos)
		assert.Equal(t, []string{"hi"}, rowStrings(doc))
		assert.True(t, doc.Dirty())
	})

	t.Run("clamps column to row end", func(t *testing.T) {
		t.Parallel()

		doc, st := load(t, "ab")
		pos := doc.InsertChar(buffer.Position{X: 40, Y: 0}, 'c', st)
		assert.Equal(t, "abc", string(doc.Row(0).Chars()))
		assert.Equal(t, 3, pos.X)

		pos = doc.InsertChar(buffer.Position{X: -3, Y: 0}, 'd', st)
		assert.Equal(t, "abcd", string(doc.Row(0).Chars()))
		assert.Equal(t, 4, pos.X)
	})

	t.Run("middle of row", func(t *testing.T) {
		t.Parallel()

		doc, st := load(t, "ac")
		pos := doc.InsertChar(buffer.Position{X: 1, Y: 0}, 'b', st)
		assert.Equal(t, "abc", string(doc.Row(0).Chars()))
		assert.Equal(t, buffer.Position{X: 2, Y: 0}, pos)
	})
}

func TestInsertNewline(t *testing.T) {
	t.Parallel()

	t.Run("end of second line", func(t *testing.T) {
		t.Parallel()

		doc, st := load(t, "foo", "bar", "baz")
		pos := doc.InsertNewline(buffer.Position{X: 3, Y: 1}, st)

		assert.Equal(t, []string{"foo", "bar", "", "baz"}, rowStrings(doc))
		assert.Equal(t, buffer.Position{X: 0, Y: 2}, pos)
		assert.True(t, doc.Dirty())
	})

	t.Run("column zero inserts above", func(t *testing.T) {
		t.Parallel()

		doc, st := load(t, "foo")
		pos := doc.InsertNewline(buffer.Position{X: 0, Y: 0}, st)

		assert.Equal(t, []string{"", "foo"}, rowStrings(doc))
		assert.Equal(t, buffer.Position{X: 0, Y: 1}, pos)
	})

	t.Run("splits row", func(t *testing.T) {
		t.Parallel()

		doc, st := load(t, "hello world")
		pos := doc.InsertNewline(buffer.Position{X: 5, Y: 0}, st)

		assert.Equal(t, []string{"hello", " world"}, rowStrings(doc))
		assert.Equal(t, buffer.Position{X: 0, Y: 1}, pos)
	})

	t.Run("sentinel line appends", func(t *testing.T) {
		t.Parallel()

		doc, st := load(t, "a")
		pos := doc.InsertNewline(buffer.Position{X: 0, Y: 1}, st)
		assert.Equal(t, []string{"a", ""}, rowStrings(doc))
		assert.Equal(t, buffer.Position{X: 0, Y: 2}, pos)
	})
}

func TestDeleteChar(t *testing.T) {
	t.Parallel()

	t.Run("removes previous byte", func(t *testing.T) {
		t.Parallel()

		doc, st := load(t, "abc")
		pos := doc.DeleteChar(buffer.Position{X: 2, Y: 0}, st)

		assert.Equal(t, "ac", string(doc.Row(0).Chars()))
		assert.Equal(t, buffer.Position{X: 1, Y: 0}, pos)
		assert.True(t, doc.Dirty())
	})

	t.Run("sentinel line is a no-op", func(t *testing.T) {
		t.Parallel()

		doc, st := load(t, "abc")
		pos := doc.DeleteChar(buffer.Position{X: 0, Y: 1}, st)

		assert.Equal(t, buffer.Position{X: 0, Y: 1}, pos)
		assert.False(t, doc.Dirty())
	})

	t.Run("document start is a no-op", func(t *testing.T) {
		t.Parallel()

		doc, st := load(t, "abc")
		pos := doc.DeleteChar(buffer.Position{}, st)

		assert.Equal(t, buffer.Position{}, pos)
		assert.Equal(t, []string{"abc"}, rowStrings(doc))
		assert.False(t, doc.Dirty())
	})

	t.Run("column zero joins with previous row", func(t *testing.T) {
		t.Parallel()

		doc, st := load(t, "foo", "bar", "baz")
		pos := doc.DeleteChar(buffer.Position{X: 0, Y: 1}, st)

		assert.Equal(t, []string{"foobar", "baz"}, rowStrings(doc))
		assert.Equal(t, buffer.Position{X: 3, Y: 0}, pos)
		assert.True(t, doc.Dirty())
	})
}

func TestRenderExpandsTabs(t *testing.T) {
	t.Parallel()

	doc, _ := load(t, "\tx", "abc\ty", "plain")

	assert.Equal(t, "        x", string(doc.Row(0).Rendered()))
	assert.Equal(t, "abc     y", string(doc.Row(1).Rendered()))
	assert.Equal(t, "plain", string(doc.Row(2).Rendered()))

	for _, row := range doc.Rows() {
		assert.Len(t, row.Highlight(), len(row.Rendered()))
	}
}

func TestInsertDeleteLengthInvariant(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	alphabet := []byte("ab\t1 \"")

	doc := buffer.New()
	st := &syntax.State{Syntax: &syntax.Syntax{Flags: syntax.Flags{Numbers: true, Strings: true}}}
	pos := buffer.Position{}
	net := 0

	for i := 0; i < 500; i++ {
		if pos.X > 0 && rng.Intn(3) == 0 {
			pos = doc.DeleteChar(pos, st)
			net--
		} else {
			pos.X = rng.Intn(net + 1)
			pos = doc.InsertChar(pos, alphabet[rng.Intn(len(alphabet))], st)
			net++
		}

		row := doc.Row(0)
		require.NotNil(t, row)
		require.Equal(t, net, row.Size())
		require.GreaterOrEqual(t, len(row.Rendered()), row.Size())
		require.Len(t, row.Highlight(), len(row.Rendered()))
		if !bytes.ContainsRune(row.Chars(), '\t') {
			require.Len(t, row.Rendered(), row.Size())
		}
	}
}

func TestBytes(t *testing.T) {
	t.Parallel()

	doc, _ := load(t, "foo", "", "b\taz")
	assert.Equal(t, "foo\n\nb\taz\n", string(doc.Bytes()))

	assert.Empty(t, buffer.New().Bytes())
}

func TestDocumentRoundTrip(t *testing.T) {
	t.Parallel()

	original := "package main\n\n\tfunc x() {}\n// \"quoted\"\n"
	lines := bytes.Split([]byte(original), []byte("\n"))
	lines = lines[:len(lines)-1]

	doc := buffer.New()
	doc.Load(lines, &syntax.State{})
	first := doc.Bytes()
	require.Equal(t, original, string(first))

	again := bytes.Split(first, []byte("\n"))
	doc2 := buffer.New()
	doc2.Load(again[:len(again)-1], &syntax.State{})
	assert.Equal(t, first, doc2.Bytes())
}

func TestRehighlightRescansAllRows(t *testing.T) {
	t.Parallel()

	doc, st := load(t, `x = "open`, `still 1`, `close" 2`)
	for _, row := range doc.Rows() {
		for _, class := range row.Highlight() {
			require.Equal(t, syntax.Normal, class)
		}
	}

	st.Syntax = &syntax.Syntax{FileType: "c", Flags: syntax.Flags{Numbers: true, Strings: true}}
	doc.Rehighlight(st)

	assert.Equal(t, syntax.String, doc.Row(1).Highlight()[6], "continued string covers digits")
	assert.Equal(t, syntax.Number, doc.Row(2).Highlight()[7])
	assert.Zero(t, st.InString)
}

func TestEditRehighlightsOnlyTheEditedRow(t *testing.T) {
	t.Parallel()

	st := &syntax.State{Syntax: &syntax.Syntax{FileType: "c", Flags: syntax.Flags{Numbers: true, Strings: true}}}
	doc := buffer.New()
	doc.Load([][]byte{[]byte("a"), []byte("b")}, st)

	pos := doc.InsertChar(buffer.Position{X: 1, Y: 0}, '"', st)
	assert.Equal(t, buffer.Position{X: 2, Y: 0}, pos)
	assert.Equal(t, []syntax.Class{syntax.Normal, syntax.String}, doc.Row(0).Highlight())
	assert.Equal(t, []syntax.Class{syntax.Normal}, doc.Row(1).Highlight(),
		"the next row keeps its old classes after a single-row edit")

	doc.Rehighlight(st)
	assert.Equal(t, []syntax.Class{syntax.String}, doc.Row(1).Highlight(),
		"a full rescan carries the open string into the next row")
}
