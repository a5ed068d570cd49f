package htmltopdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyHTML = errors.New("html content cannot be empty")

	// ErrBrowserNotFound means no usable browser executable exists on the
	// host. Hard failure; requires operator intervention (install Chrome
	// or set HTML2PDF_BROWSER).
	ErrBrowserNotFound = errors.New("browser executable not found")

	// ErrBrowserLaunch means an executable was found but the browser
	// process failed to start or crashed immediately. May be transient
	// (resource exhaustion) and retryable by the caller.
	ErrBrowserLaunch = errors.New("failed to launch browser")

	// ErrContentLoadTimeout means the document did not reach network idle
	// within the load timeout.
	ErrContentLoadTimeout = errors.New("content load timed out")

	// ErrRender means the engine rejected the merged options or failed
	// mid-render. The underlying engine message is preserved.
	ErrRender = errors.New("PDF rendering failed")

	// ErrOptionsParse means a JSON options payload was malformed.
	// Adapters treat this as non-fatal and continue with whatever options
	// parsed successfully.
	ErrOptionsParse = errors.New("failed to parse options")
)
