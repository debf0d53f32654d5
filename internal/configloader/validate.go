package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gokilo/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "syntaxes[0].quote").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error, if known.
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors prevent the configuration from being used.
	Errors []ValidationError

	// Warnings are reported but do not stop loading.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	config.BackupModeSidecar: true,
	config.BackupModeNone:    true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownLogLevels = map[string]bool{
	config.LogLevelDebug: true,
	config.LogLevelInfo:  true,
	config.LogLevelWarn:  true,
	config.LogLevelError: true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "backups.mode",
			Value:   cfg.Backups.Mode,
			Message: fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode),
		})
	}

	if cfg.Log.Level != "" && !knownLogLevels[strings.ToLower(cfg.Log.Level)] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "log.level",
			Value:   cfg.Log.Level,
			Message: fmt.Sprintf("invalid log level %q; must be one of: debug, info, warn, error", cfg.Log.Level),
		})
	}

	validateSyntaxes(cfg, result)

	return result
}

func validateSyntaxes(cfg *config.Config, result *ValidationResult) {
	seen := make(map[string]int, len(cfg.Syntaxes))

	for i, sc := range cfg.Syntaxes {
		field := fmt.Sprintf("syntaxes[%d]", i)

		if strings.TrimSpace(sc.FileType) == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field + ".filetype",
				Message: "filetype must not be empty",
			})
		} else if prev, dup := seen[sc.FileType]; dup {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field + ".filetype",
				Value:   sc.FileType,
				Message: fmt.Sprintf("filetype %q already defined at syntaxes[%d]; the first entry wins", sc.FileType, prev),
			})
		} else {
			seen[sc.FileType] = i
		}

		if len(sc.Extensions) == 0 {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field + ".extensions",
				Message: "at least one extension is required",
			})
		}
		for j, ext := range sc.Extensions {
			if ext == "" || strings.HasPrefix(ext, ".") {
				result.Errors = append(result.Errors, ValidationError{
					Field:   fmt.Sprintf("%s.extensions[%d]", field, j),
					Value:   ext,
					Message: "extensions are written without the leading dot and must not be empty",
				})
			}
		}

		if len(sc.Quote) > 1 {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field + ".quote",
				Value:   sc.Quote,
				Message: "quote must be a single byte",
			})
		}
	}
}

// ValidateWithFile validates cfg and tags every finding with filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}

// IsValidLogLevel returns true if the log level is valid.
func IsValidLogLevel(level string) bool {
	return knownLogLevels[strings.ToLower(level)]
}
