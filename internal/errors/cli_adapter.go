package errors

import (
	"fmt"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
// Configuration problems map to 2, generation failures to 3, publish
// failures to 4, everything else to 1.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if dpe, ok := err.(*DocPubError); ok {
		return a.exitCodeFromCategory(dpe.Category)
	}
	return 1
}

func (a *CLIErrorAdapter) exitCodeFromCategory(cat ErrorCategory) int {
	switch cat {
	case CategoryConfig, CategoryValidation:
		return 2
	case CategoryDoxygen:
		return 3
	case CategoryPublish, CategoryGit, CategoryAuth, CategoryNetwork:
		return 4
	default:
		return 1
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	if dpe, ok := err.(*DocPubError); ok {
		if a.verbose {
			return dpe.Error()
		}
		switch dpe.Category {
		case CategoryConfig, CategoryValidation, CategoryAuth:
			return dpe.Message
		default:
			return fmt.Sprintf("%s: %s", dpe.Category, dpe.Message)
		}
	}
	return fmt.Sprintf("Error: %v", err)
}

// HandleError processes an error and exits the program with the appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}
	if a.shouldLog(err) {
		a.logError(err)
	}
	fmt.Fprintf(os.Stderr, "%s\n", a.FormatError(err))
	os.Exit(a.ExitCodeFor(err))
}

func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}
	if dpe, ok := err.(*DocPubError); ok {
		return dpe.Category == CategoryInternal ||
			dpe.Category == CategoryRuntime ||
			dpe.Severity == SeverityFatal
	}
	return true
}

func (a *CLIErrorAdapter) logError(err error) {
	if dpe, ok := err.(*DocPubError); ok {
		attrs := []slog.Attr{slog.String("category", string(dpe.Category))}
		if dpe.Retryable {
			attrs = append(attrs, slog.Bool("retryable", true))
		}
		a.logger.LogAttrs(nil, a.levelFromSeverity(dpe.Severity), dpe.Message, attrs...)
		return
	}
	a.logger.Error("Unclassified error", "error", err)
}

func (a *CLIErrorAdapter) levelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
