package main

import (
	"errors"
	"os"

	htmltopdf "github.com/exn1/htmltopdf"
	"github.com/exn1/htmltopdf/internal/config"
)

// Exit codes for the html2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful render
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid arguments, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser discovery, launch, or render errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser/render errors (exit 4)
	if errors.Is(err, htmltopdf.ErrBrowserNotFound) ||
		errors.Is(err, htmltopdf.ErrBrowserLaunch) ||
		errors.Is(err, htmltopdf.ErrContentLoadTimeout) ||
		errors.Is(err, htmltopdf.ErrRender) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWritePDF) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, htmltopdf.ErrEmptyHTML) {
		return ExitUsage
	}

	return ExitGeneral
}
