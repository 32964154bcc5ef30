package main

import (
	"errors"
	"os"

	"github.com/alnah/go-valentine"
	"github.com/alnah/go-valentine/internal/config"
	"github.com/alnah/go-valentine/internal/fileutil"
)

// Exit codes for the valentine CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Page built (or check passed)
	ExitGeneral = 1 // General/unexpected error, page mismatch
	ExitUsage   = 2 // Invalid flags, config, or page text
	ExitIO      = 3 // Unreadable inputs, unwritable output
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, valentine.ErrBrowserConnect) ||
		errors.Is(err, valentine.ErrPageCreate) ||
		errors.Is(err, valentine.ErrPageLoad) ||
		errors.Is(err, valentine.ErrScreenshot) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, valentine.ErrReadImages) ||
		errors.Is(err, valentine.ErrReadScript) ||
		errors.Is(err, valentine.ErrReadNote) ||
		errors.Is(err, valentine.ErrTooFewImages) ||
		errors.Is(err, valentine.ErrWriteOutput) ||
		errors.Is(err, ErrWriteScreenshot) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, ErrConfigExists) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrLabelCount) ||
		errors.Is(err, fileutil.ErrExtensionEmpty) ||
		errors.Is(err, fileutil.ErrExtensionPathTraversal) ||
		errors.Is(err, valentine.ErrInvalidPage) ||
		errors.Is(err, valentine.ErrStyleNotFound) ||
		errors.Is(err, valentine.ErrTemplateNotFound) ||
		errors.Is(err, valentine.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
