package htmltopdf

// Notes:
// - Only the pre-launch paths are unit-testable: discovery failure and
//   context cancellation return before any process is spawned. The full
//   pipeline is covered by the integration tests.

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/exn1/htmltopdf/internal/browser"
)

func TestRodRenderer_BrowserNotFound(t *testing.T) {
	t.Parallel()

	r := newRodRenderer([]browser.Strategy{
		browser.Explicit("/nonexistent/chrome"),
	}, defaultLoadTimeout)

	_, err := r.Render(context.Background(), "<p>hi</p>", DefaultOptions())
	if !errors.Is(err, ErrBrowserNotFound) {
		t.Fatalf("err = %v, want ErrBrowserNotFound", err)
	}
	// The failure names the attempted candidate set.
	if !strings.Contains(err.Error(), "/nonexistent/chrome") {
		t.Errorf("err = %q, want candidate path in message", err)
	}
}

func TestRodRenderer_CancelledContext(t *testing.T) {
	t.Parallel()

	r := newRodRenderer(browser.Default(), defaultLoadTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Render(ctx, "<p>hi</p>", DefaultOptions())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
