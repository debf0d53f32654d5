package cli

import (
	"errors"

	"github.com/yaklabco/gokilo/internal/terminal"
	"github.com/yaklabco/gokilo/pkg/fsutil"
)

// Exit codes for gokilo.
const (
	// ExitSuccess indicates the editor exited normally.
	ExitSuccess = 0

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file or terminal I/O errors.
	ExitIOError = 74
)

var (
	// ErrUsage marks errors caused by bad arguments or flags.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks errors in loading or validating configuration.
	ErrConfig = errors.New("configuration error")
)

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, terminal.ErrNotTerminal),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
