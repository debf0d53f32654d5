package configloader

import "github.com/yaklabco/gokilo/pkg/config"

// merge combines two configurations, with override taking precedence over base.
//   - Strings: override wins when non-empty
//   - Pointers: override wins when non-nil, so a layer can turn a default off
//   - Syntaxes: override's entries come first; a base entry with the same
//     filetype is dropped
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.DetectLanguage != nil {
		v := *override.DetectLanguage
		result.DetectLanguage = &v
	}
	if override.Backups.Enabled != nil {
		v := *override.Backups.Enabled
		result.Backups.Enabled = &v
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Log.File != "" {
		result.Log.File = override.Log.File
	}

	result.Syntaxes = mergeSyntaxes(result.Syntaxes, override.Clone().Syntaxes)

	return result
}

func mergeSyntaxes(base, override []config.SyntaxConfig) []config.SyntaxConfig {
	if len(override) == 0 {
		return base
	}

	seen := make(map[string]bool, len(override))
	result := make([]config.SyntaxConfig, 0, len(base)+len(override))
	for _, sc := range override {
		seen[sc.FileType] = true
		result = append(result, sc)
	}
	for _, sc := range base {
		if !seen[sc.FileType] {
			result = append(result, sc)
		}
	}
	return result
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
