//go:build stave

package main

import (
	"cmp"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binary   = "bin/gokilo"
	mainPkg  = "./cmd/gokilo"
	debugLog = "gokilo-debug.log"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"r":   Run,
	"t":   Test.Default,
	"l":   Lint.Default,
	"c":   Check,
	"fmt": Lint.Fmt,
}

type (
	Test st.Namespace
	Lint st.Namespace
	CI   st.Namespace
)

// Build compiles bin/gokilo when any source changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, mainPkg)
}

// Run opens the editor on $GOKILO_FILE with debug logs in gokilo-debug.log.
func Run() error {
	st.Deps(Build)
	args := []string{"--log-file", debugLog, "--debug"}
	if file := os.Getenv("GOKILO_FILE"); file != "" {
		args = append(args, file)
	}
	return sh.RunV(binary, args...)
}

// Install runs go install with version info.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build output, coverage and the debug log.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html", debugLog} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Default runs the race-enabled test suite with coverage.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails", "-race", "-coverprofile=coverage.out", "-covermode=atomic")
}

// Verbose runs the suite with every test name printed.
func (Test) Verbose() error {
	return gotestsum("standard-verbose", "-race")
}

// Bench runs the highlighting, rendering and detection benchmarks.
func (Test) Bench() error {
	return gotestsum("pkgname-and-test-fails", "-run=^$", "-bench=.", "-benchmem")
}

// Fuzz runs each fuzz target for $FUZZTIME (default 30s).
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZTIME"), "30s")
	targets := []struct{ pkg, name string }{
		{"./pkg/keys", "FuzzDecoder"},
		{"./pkg/fsutil", "FuzzWriteAtomicRoundTrip"},
	}
	for _, f := range targets {
		if err := sh.RunV("go", "test", "-run=^$", "-fuzz=^"+f.name+"$", "-fuzztime="+fuzzTime, f.pkg); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return nil
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// Gate is the CI entry point. It never rewrites files.
func (CI) Gate() {
	st.SerialDeps(CI.FmtCheck, CI.Lint, Build, Test.Default, CI.Cross)
}

// FmtCheck fails when gofmt would change any file.
func (CI) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s", out)
	}
	return nil
}

// Lint runs go vet and golangci-lint without fixes.
func (CI) Lint() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV("golangci-lint", "run", "./...")
}

// Cross builds every Unix release platform. Raw mode needs termios, so
// Windows is not a target.
func (CI) Cross() error {
	for _, platform := range []string{
		"linux/amd64", "linux/arm64",
		"darwin/amd64", "darwin/arm64",
		"freebsd/amd64", "openbsd/amd64", "netbsd/amd64",
	} {
		goos, goarch, _ := strings.Cut(platform, "/")
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("build %s: %w", platform, err)
		}
	}
	return nil
}

// gotestsum runs the whole module through gotestsum with format and extra go
// test flags.
func gotestsum(format string, flags ...string) error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	args := []string{"tool", "gotestsum", "-f", format, "--", "-p", nCores, "-parallel", nCores}
	args = append(args, flags...)
	args = append(args, "./...")
	return sh.RunV("go", args...)
}

// gitOutput returns trimmed git stdout, or "" on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

func ldflags() string {
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev"),
		cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none"),
		time.Now().UTC().Format(time.RFC3339),
	)
}
