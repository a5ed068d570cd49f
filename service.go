package htmltopdf

import (
	"context"
	"time"

	"github.com/exn1/htmltopdf/internal/browser"
)

// Input contains render parameters. The HTML is rendered as-is: only
// absolute URLs inside it resolve, since the content is loaded directly
// rather than from a file.
type Input struct {
	HTML    string  // HTML content (required, UTF-8)
	Options Options // page layout (optional, defaults applied)
}

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	loadTimeout time.Duration
	strategies  []browser.Strategy
}

// Option configures a Service.
type Option func(*Service)

// WithLoadTimeout bounds the wait for the document to reach network
// idle. Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithLoadTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("htmltopdf: WithLoadTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.loadTimeout = d
	}
}

// WithBrowserPath pins an explicit browser executable, consulted before
// the default discovery order.
func WithBrowserPath(path string) Option {
	return func(s *Service) {
		s.cfg.strategies = append([]browser.Strategy{browser.Explicit(path)}, s.cfg.strategies...)
	}
}

// WithStrategies replaces the discovery policy entirely. Strategies are
// tried in order, first match wins.
func WithStrategies(strategies ...browser.Strategy) Option {
	return func(s *Service) {
		s.cfg.strategies = strategies
	}
}

// Service converts HTML to PDF through a headless browser. It holds no
// state between calls; every Convert owns one browser process end to
// end, so a single Service is safe for concurrent use.
type Service struct {
	cfg      serviceConfig
	renderer pdfRenderer
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithBrowserPath).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			loadTimeout: defaultLoadTimeout,
			strategies:  browser.Default(),
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create renderer if not injected (e.g., by tests)
	if s.renderer == nil {
		s.renderer = newRodRenderer(s.cfg.strategies, s.cfg.loadTimeout)
	}

	return s
}

// Convert renders the input to PDF bytes. Caller options are overlaid
// onto the documented defaults (shallow merge, caller keys win) and the
// result is handed to one dedicated browser session, which is torn down
// before Convert returns. Errors propagate unchanged; there is no retry.
func (s *Service) Convert(ctx context.Context, input Input) ([]byte, error) {
	if input.HTML == "" {
		return nil, ErrEmptyHTML
	}

	merged := MergeOptions(DefaultOptions(), input.Options.overlay())

	return s.renderer.Render(ctx, input.HTML, merged)
}
