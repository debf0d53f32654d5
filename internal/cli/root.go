// Package cli provides the Cobra command structure for gokilo.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gokilo/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// rootFlags holds the flags of the root command.
type rootFlags struct {
	debug       bool
	configPath  string
	logFile     string
	color       string
	version     bool
	printConfig bool
	initConfig  bool
	force       bool
}

// NewRootCommand creates the gokilo command.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "gokilo [file]",
		Short: "A small terminal text editor",
		Long: `gokilo is a small terminal text editor in the spirit of kilo.

It edits one file at a time with syntax highlighting for common languages,
incremental search, and atomic saves. Without a file argument it opens an
untitled buffer and asks for a name on the first save.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return fmt.Errorf("%w: %w", ErrUsage, err)
			}
			return nil
		},
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel("debug")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case flags.version:
				printVersion(cmd.OutOrStdout(), info)
				return nil
			case flags.initConfig:
				dir, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("get working directory: %w", err)
				}
				return writeInitConfig(cmd.Context(), cmd.ErrOrStderr(), dir, flags.force)
			case flags.printConfig:
				return runPrintConfig(cmd, flags)
			default:
				return runEditor(cmd, args, flags, info)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.Flags().StringVar(&flags.logFile, "log-file", "", "write diagnostic logs to this file")
	rootCmd.Flags().BoolVarP(&flags.version, "version", "v", false, "print version information and exit")
	rootCmd.Flags().BoolVar(&flags.printConfig, "print-config", false, "print the resolved configuration and exit")
	rootCmd.Flags().BoolVar(&flags.initConfig, "init-config", false, "write a default .gokilo.yml in the current directory")
	rootCmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing file with --init-config")

	helpFormatter := NewHelpFormatter(flags.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
