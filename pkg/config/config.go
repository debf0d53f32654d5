// Package config defines the editor's configuration types.
// These are plain data structures; discovery and layering live in
// internal/configloader.
package config

import (
	"github.com/yaklabco/gokilo/pkg/syntax"
)

// Log levels accepted in configuration.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Backup modes accepted in configuration.
const (
	BackupModeSidecar = "sidecar"
	BackupModeNone    = "none"
)

// SyntaxConfig describes a highlighting rule set supplied by the user.
type SyntaxConfig struct {
	FileType   string   `yaml:"filetype"`
	Extensions []string `yaml:"extensions"`
	Numbers    *bool    `yaml:"numbers,omitempty"`
	Strings    *bool    `yaml:"strings,omitempty"`

	// Quote is the extra string delimiter besides '"'. Empty means '\''.
	Quote string `yaml:"quote,omitempty"`
}

// BackupsConfig controls the sidecar copy made before a file is first
// overwritten.
type BackupsConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Mode    string `yaml:"mode,omitempty"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	// Syntaxes are consulted before the built-in syntax table.
	Syntaxes []SyntaxConfig `yaml:"syntaxes,omitempty"`

	// DetectLanguage enables content-based file type detection when no
	// syntax matches the file extension.
	DetectLanguage *bool `yaml:"detect_language,omitempty"`

	Backups BackupsConfig `yaml:"backups"`
	Log     LogConfig     `yaml:"log"`
}

// NewConfig returns a Config with defaults applied.
func NewConfig() *Config {
	return &Config{
		DetectLanguage: boolPtr(false),
		Backups: BackupsConfig{
			Enabled: boolPtr(false),
			Mode:    BackupModeSidecar,
		},
		Log: LogConfig{
			Level: LogLevelWarn,
		},
	}
}

// DetectLanguageEnabled reports the effective detect_language setting.
// Unset means disabled.
func (c *Config) DetectLanguageEnabled() bool {
	return c.DetectLanguage != nil && *c.DetectLanguage
}

// BackupsEnabled reports the effective backups.enabled setting.
func (c *Config) BackupsEnabled() bool {
	return c.Backups.Enabled != nil && *c.Backups.Enabled
}

// SyntaxTable returns the user syntaxes followed by the built-ins.
func (c *Config) SyntaxTable() []syntax.Syntax {
	table := make([]syntax.Syntax, 0, len(c.Syntaxes)+len(syntax.Builtins()))
	for _, sc := range c.Syntaxes {
		table = append(table, sc.Syntax())
	}
	return append(table, syntax.Builtins()...)
}

// Syntax converts the entry to a syntax.Syntax. Highlighting of numbers and
// strings defaults to on.
func (s SyntaxConfig) Syntax() syntax.Syntax {
	quote := byte(syntax.DefaultQuote)
	if s.Quote != "" {
		quote = s.Quote[0]
	}
	return syntax.Syntax{
		FileType:   s.FileType,
		Extensions: append([]string(nil), s.Extensions...),
		Flags: syntax.Flags{
			Numbers: s.Numbers == nil || *s.Numbers,
			Strings: s.Strings == nil || *s.Strings,
		},
		Quote: quote,
	}
}

func boolPtr(b bool) *bool {
	return &b
}
