package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yaklabco/gokilo/internal/logging"
	"github.com/yaklabco/gokilo/pkg/config"
	"github.com/yaklabco/gokilo/pkg/fsutil"
)

// initConfigName is the project config file written by --init-config.
const initConfigName = ".gokilo.yml"

const initConfigHeader = `# gokilo configuration.
#
# syntaxes entries are checked before the built-in table. Each needs a
# filetype and extensions without the leading dot, for example:
#
#   syntaxes:
#     - filetype: lua
#       extensions: [lua]
#       numbers: true
#       strings: true
#       quote: "'"
#
# Run "gokilo --help" to list the GOKILO_* environment overrides.`

// writeInitConfig creates a default project config in dir. An existing file
// is only replaced when force is set.
func writeInitConfig(ctx context.Context, w io.Writer, dir string, force bool) error {
	logger := logging.NewWriter(w, "info")

	absPath, err := filepath.Abs(filepath.Join(dir, initConfigName))
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, absPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, absPath)
	}

	content, err := config.NewConfig().ToYAMLWithHeader(initConfigHeader)
	if err != nil {
		return fmt.Errorf("generate config: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, absPath)
	return nil
}
