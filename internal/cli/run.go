package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gokilo/internal/configloader"
	"github.com/yaklabco/gokilo/internal/editor"
	"github.com/yaklabco/gokilo/internal/logging"
	"github.com/yaklabco/gokilo/internal/terminal"
	"github.com/yaklabco/gokilo/internal/ui/pretty"
	"github.com/yaklabco/gokilo/pkg/config"
)

// loadConfig resolves the configuration for flags and prints any validation
// warnings to stderr.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (*configloader.LoadResult, error) {
	logger := logging.FromContext(cmd.Context())

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	cliCfg := &config.Config{}
	cliCfg.Log.File = flags.logFile
	if flags.debug {
		cliCfg.Log.Level = config.LogLevelDebug
	}

	result, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: flags.configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	logger.Debug("configuration loaded",
		logging.FieldWorkingDir, workDir,
		logging.FieldConfig, strings.Join(result.LoadedFrom, ","),
	)

	styles := pretty.NewStyles(pretty.IsColorEnabled(flags.color, cmd.ErrOrStderr()))
	for _, w := range result.Warnings {
		styles.Warn(cmd.ErrOrStderr(), w)
	}

	return result, nil
}

// runPrintConfig writes the resolved configuration as YAML.
func runPrintConfig(cmd *cobra.Command, flags *rootFlags) error {
	result, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	header := "# resolved configuration (defaults only)"
	if len(result.LoadedFrom) > 0 {
		header = "# resolved configuration from:\n#   " + strings.Join(result.LoadedFrom, "\n#   ")
	}

	content, err := result.Config.ToYAMLWithHeader(header)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(content)
	return err
}

// runEditor opens the editor on the controlling terminal.
func runEditor(cmd *cobra.Command, args []string, flags *rootFlags, info BuildInfo) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	in, inOK := cmd.InOrStdin().(*os.File)
	if !inOK || !terminal.IsTerminal(int(in.Fd())) {
		return fmt.Errorf("stdin: %w", terminal.ErrNotTerminal)
	}
	out := cmd.OutOrStdout()

	result, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}
	cfg := result.Config

	logger, closeLog, err := editorLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	sizeFd := int(in.Fd())
	if f, ok := out.(*os.File); ok {
		sizeFd = int(f.Fd())
	}
	cols, rows, err := terminal.Size(sizeFd)
	if err != nil {
		return err
	}
	logger.Debug("terminal size", logging.FieldCols, cols, logging.FieldRows, rows)

	ed := editor.New(in, out, cols, rows, editor.Options{
		Config:  cfg,
		Logger:  logger,
		Version: info.Version,
	})
	if len(args) == 1 {
		if err := ed.Open(ctx, args[0]); err != nil {
			return err
		}
	}

	state, err := terminal.EnableRawMode(int(in.Fd()))
	if err != nil {
		return err
	}
	defer func() {
		if err := state.Restore(); err != nil {
			logger.Error("restore terminal", logging.FieldError, err)
		}
	}()

	if err := ed.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("editor: %w", err)
	}
	return nil
}

// editorLogger returns the logger used while the terminal is raw. Without a
// log file everything is discarded so nothing lands on the editor screen.
func editorLogger(cfg config.LogConfig) (*log.Logger, func(), error) {
	if cfg.File == "" {
		return logging.Discard(), func() {}, nil
	}

	level := cfg.Level
	if level == "" {
		level = config.LogLevelWarn
	}
	logger, closer, err := logging.NewFile(cfg.File, level)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = closer.Close() }, nil
}
