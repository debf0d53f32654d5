package cli

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gokilo/internal/logging"
)

// printVersion writes the version, commit hash, and build date of gokilo.
func printVersion(w io.Writer, info BuildInfo) {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(log.InfoLevel)

	logger.Info("gokilo",
		logging.FieldVersion, info.Version,
		logging.FieldCommit, info.Commit,
		logging.FieldBuilt, info.Date,
	)
}
