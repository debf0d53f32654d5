// Package langdetect guesses a file's type when its extension is not in the
// syntax table. It uses go-enry on the file name and the leading bytes of the
// file, falling back to a few content patterns and the enry classifier.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// File types returned by Detect. They line up with the built-in syntax names.
const (
	TypeC          = "c"
	TypeGo         = "go"
	TypeRust       = "rust"
	TypePython     = "python"
	TypeJavaScript = "javascript"
	TypeShell      = "shell"
	TypeYAML       = "yaml"
	TypeJSON       = "json"
)

// HeadSize is how much of a file Detect looks at.
const HeadSize = 8 << 10

// classifierCandidates limits the classifier to languages that can be
// highlighted.
//
//nolint:gochecknoglobals // lookup table
var classifierCandidates = []string{
	"C", "C++", "Go", "Rust", "Python", "JavaScript", "TypeScript", "Shell", "YAML", "JSON",
}

//nolint:gochecknoglobals // lookup table
var enryNames = map[string]string{
	"C":           TypeC,
	"C++":         TypeC,
	"Objective-C": TypeC,
	"Go":          TypeGo,
	"Rust":        TypeRust,
	"TOML":        TypeRust,
	"Python":      TypePython,
	"JavaScript":  TypeJavaScript,
	"TypeScript":  TypeJavaScript,
	"Shell":       TypeShell,
	"YAML":        TypeYAML,
	"JSON":        TypeJSON,
}

// Detect returns a file type for filename and its leading content, or ""
// when no confident guess can be made. head may be empty for new files.
func Detect(filename string, head []byte) string {
	if len(head) > HeadSize {
		head = head[:HeadSize]
	}

	if filename != "" {
		if lang, safe := enry.GetLanguageByFilename(filename); safe {
			return normalize(lang)
		}
	}

	if len(head) == 0 || enry.IsBinary(head) {
		if filename == "" {
			return ""
		}
		if lang, safe := enry.GetLanguageByExtension(filename); safe {
			return normalize(lang)
		}
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang(head); safe {
		return normalize(lang)
	}
	if lang, safe := enry.GetLanguageByModeline(head); safe {
		return normalize(lang)
	}
	if filename != "" {
		if lang, safe := enry.GetLanguageByExtension(filename); safe {
			return normalize(lang)
		}
	}
	if lang := detectByPattern(head); lang != "" {
		return lang
	}
	if lang, safe := enry.GetLanguageByClassifier(head, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}
	return ""
}

// detectByPattern checks for constructs that strongly indicate a language.
func detectByPattern(content []byte) string {
	text := string(content)
	trimmed := bytes.TrimSpace(content)

	switch {
	case bytes.HasPrefix(trimmed, []byte("package ")):
		return TypeGo
	case isPython(text):
		return TypePython
	case isJSON(trimmed):
		return TypeJSON
	case strings.Contains(text, "fn main()"), strings.Contains(text, "println!"), strings.Contains(text, "let mut "):
		return TypeRust
	case strings.Contains(text, "console.log"), strings.Contains(text, "=>"):
		return TypeJavaScript
	case isYAML(content):
		return TypeYAML
	default:
		return ""
	}
}

func isPython(text string) bool {
	if strings.Contains(text, "def ") && strings.Contains(text, "):") {
		return true
	}
	return strings.Contains(text, "__name__") || strings.Contains(text, "__main__")
}

func isJSON(trimmed []byte) bool {
	return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`))
}

// isYAML counts "key: value" lines and top-level list items.
func isYAML(content []byte) bool {
	count := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.ContainsAny(line, "({") &&
			line[0] != '"' {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	return count >= 2
}

func normalize(lang string) string {
	if name, ok := enryNames[lang]; ok {
		return name
	}
	return strings.ToLower(lang)
}
