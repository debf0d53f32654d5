// Package syntax classifies every rendered byte of a row into a highlight class.
//
// The scanner is stateful across rows: a quoted string left open at the end of
// one row continues on the next. That continuation is carried in an explicit
// State value which callers thread through successive HighlightRow calls.
package syntax

import (
	"path/filepath"
	"strings"
)

// Class is the highlight category of a single rendered byte.
type Class uint8

const (
	Normal Class = iota
	Number
	String
	Match
)

// String returns the lowercase name of the class.
func (c Class) String() string {
	switch c {
	case Normal:
		return "normal"
	case Number:
		return "number"
	case String:
		return "string"
	case Match:
		return "match"
	default:
		return "unknown"
	}
}

// Color returns the SGR foreground code for the class.
func (c Class) Color() int {
	switch c {
	case Normal:
		return 39
	case Number:
		return 31
	case String:
		return 35
	case Match:
		return 34
	default:
		return 37
	}
}

// Flags toggles individual highlight rules.
type Flags struct {
	Numbers bool
	Strings bool
}

// Syntax describes how files of one type are highlighted.
type Syntax struct {
	FileType   string
	Extensions []string
	Flags      Flags

	// Quote is the secondary string delimiter; '"' always opens a string.
	Quote byte
}

// DefaultQuote is used when a Syntax leaves Quote unset.
const DefaultQuote = '\''

// MatchesFile reports whether filename's extension is one of s.Extensions.
// Extensions are compared without the leading dot.
func (s *Syntax) MatchesFile(filename string) bool {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		return false
	}
	for _, candidate := range s.Extensions {
		if strings.TrimPrefix(candidate, ".") == ext {
			return true
		}
	}
	return false
}

func (s *Syntax) quote() byte {
	if s.Quote == 0 {
		return DefaultQuote
	}
	return s.Quote
}

// State is the highlight continuation threaded between row scans.
type State struct {
	// Syntax is the active syntax, nil when highlighting is off.
	Syntax *Syntax

	// InString holds the delimiter of a string still open from a previous row,
	// or zero when no string is open.
	InString byte
}

// Active reports whether a syntax is selected.
func (st *State) Active() bool {
	return st != nil && st.Syntax != nil
}

// FileType returns the active file type name, or "" when none.
func (st *State) FileType() string {
	if !st.Active() {
		return ""
	}
	return st.Syntax.FileType
}

// Builtins returns the built-in syntax table. The returned slice is a fresh copy.
func Builtins() []Syntax {
	both := Flags{Numbers: true, Strings: true}
	return []Syntax{
		{FileType: "c", Extensions: []string{"c", "h", "cpp", "hpp", "cc"}, Flags: both, Quote: '\''},
		{FileType: "go", Extensions: []string{"go"}, Flags: both, Quote: '`'},
		{FileType: "rust", Extensions: []string{"rs", "toml"}, Flags: both, Quote: '\''},
		{FileType: "python", Extensions: []string{"py", "pyw"}, Flags: both, Quote: '\''},
		{FileType: "javascript", Extensions: []string{"js", "mjs", "cjs", "ts"}, Flags: both, Quote: '\''},
		{FileType: "shell", Extensions: []string{"sh", "bash", "zsh"}, Flags: both, Quote: '\''},
		{FileType: "yaml", Extensions: []string{"yml", "yaml"}, Flags: both, Quote: '\''},
		{FileType: "json", Extensions: []string{"json"}, Flags: both, Quote: '"'},
	}
}

// Select returns the first syntax whose extensions match filename, or nil.
func Select(filename string, syntaxes []Syntax) *Syntax {
	if filename == "" {
		return nil
	}
	for i := range syntaxes {
		if syntaxes[i].MatchesFile(filename) {
			return &syntaxes[i]
		}
	}
	return nil
}

// ByFileType returns the syntax whose FileType equals name (case-insensitive), or nil.
func ByFileType(name string, syntaxes []Syntax) *Syntax {
	if name == "" {
		return nil
	}
	for i := range syntaxes {
		if strings.EqualFold(syntaxes[i].FileType, name) {
			return &syntaxes[i]
		}
	}
	return nil
}
