package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/exrunner/internal/logfields"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	stderr  io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		stderr:  os.Stderr,
		exit:    os.Exit,
	}
}

// ExitCodeFor maps an error to the process exit code.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	re, ok := As(err)
	if !ok {
		return 1
	}
	switch re.Category {
	case CategoryValidation:
		return 2
	case CategoryConfig:
		return 7
	case CategoryTool:
		return 8
	case CategoryInternal:
		return 10
	case CategoryFileSystem:
		return 11
	case CategoryRuntime:
		return 12
	default:
		return 1
	}
}

// FormatError renders err for stderr. Verbose mode shows the full chain.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	re, ok := As(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}
	if a.verbose {
		return re.Error()
	}
	switch {
	case re.Category == CategoryConfig || re.Category == CategoryValidation:
		return re.Message
	case re.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", re.Category, re.Message, re.Cause)
	default:
		return fmt.Sprintf("%s: %s", re.Category, re.Message)
	}
}

// HandleError logs err with its category and context, prints it and exits.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	attrs := []slog.Attr{logfields.Error(err)}
	if re, ok := As(err); ok {
		attrs = append(attrs, slog.String("category", string(re.Category)))
		for k, v := range re.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
	}
	a.logger.LogAttrs(context.Background(), slog.LevelError, "Command failed", attrs...)

	_, _ = fmt.Fprintf(a.stderr, "%s\n", a.FormatError(err))
	a.exit(a.ExitCodeFor(err))
}
