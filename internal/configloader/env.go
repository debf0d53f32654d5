package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/yaklabco/gokilo/pkg/config"
)

// envVarPrefix is the prefix for all gokilo environment variables.
const envVarPrefix = "GOKILO_"

// LookupEnvFunc has the signature of os.LookupEnv.
type LookupEnvFunc func(key string) (string, bool)

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
)

type envMapping struct {
	field string
	typ   envFieldType
	help  string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"DETECT_LANGUAGE": {field: "detect_language", typ: envTypeBool, help: "Guess the file type from content: true or false"},
	"BACKUPS_ENABLED": {field: "backups.enabled", typ: envTypeBool, help: "Keep a backup of the original before saving: true or false"},
	"BACKUPS_MODE":    {field: "backups.mode", typ: envTypeString, help: "Backup mode: sidecar or none"},
	"LOG_LEVEL":       {field: "log.level", typ: envTypeString, help: "Log level: debug, info, warn, or error"},
	"LOG_FILE":        {field: "log.file", typ: envTypeString, help: "File that receives diagnostic logs"},
}

// LoadFromEnv applies GOKILO_* overrides to cfg. A nil lookup uses
// os.LookupEnv. Empty values are ignored.
func LoadFromEnv(cfg *config.Config, lookup LookupEnvFunc) error {
	if cfg == nil {
		return nil
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}

	for suffix, mapping := range envMappings {
		envVar := envVarPrefix + suffix
		value, ok := lookup(envVar)
		if !ok || value == "" {
			continue
		}
		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "backups.mode":
		cfg.Backups.Mode = value
	case "log.level":
		cfg.Log.Level = value
	case "log.file":
		cfg.Log.File = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "detect_language":
		cfg.DetectLanguage = &value
	case "backups.enabled":
		cfg.Backups.Enabled = &value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name string
	Help string
}

// ListEnvVars returns the supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Help: mapping.help})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
