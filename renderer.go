package htmltopdf

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/exn1/htmltopdf/internal/browser"
	"github.com/exn1/htmltopdf/internal/process"
)

// pdfRenderer abstracts the browser round trip to enable testing the
// service without a browser.
type pdfRenderer interface {
	Render(ctx context.Context, htmlContent string, opts map[string]any) ([]byte, error)
}

// Compile-time interface check
var _ pdfRenderer = (*rodRenderer)(nil)

// Rendering surface and load settings.
const (
	viewportWidth  = 1920
	viewportHeight = 1080

	// defaultLoadTimeout bounds the wait for network idle after the
	// document is set. The print step itself has no separate bound;
	// callers can cap the whole call through ctx.
	defaultLoadTimeout = 30 * time.Second

	// networkSettleWindow is how long the page must stay free of
	// in-flight requests to count as idle.
	networkSettleWindow = 300 * time.Millisecond
)

// rodRenderer drives one headless Chrome process per render call via
// go-rod. It keeps no state between calls: the browser is launched after
// discovery and always torn down before Render returns, on both success
// and failure paths.
type rodRenderer struct {
	strategies  []browser.Strategy
	loadTimeout time.Duration

	// launched observes the browser PID after a successful launch, so
	// teardown can be verified from outside the call.
	launched func(pid int)
}

func newRodRenderer(strategies []browser.Strategy, loadTimeout time.Duration) *rodRenderer {
	return &rodRenderer{strategies: strategies, loadTimeout: loadTimeout}
}

// Render runs the full pipeline: discover executable, launch, load
// content, print, tear down. Returns explicit errors instead of
// panicking when browser operations fail.
func (r *rodRenderer) Render(ctx context.Context, htmlContent string, opts map[string]any) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Discovery failure means no process is ever started.
	bin, err := browser.Find(r.strategies...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserNotFound, err)
	}

	l := launcher.New().
		Bin(bin).
		Headless(true).
		NoSandbox(true).
		Set("disable-setuid-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-accelerated-2d-canvas").
		Set("disable-gpu")

	controlURL, err := l.Launch()
	if err != nil {
		// A partially started process must not outlive the call.
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("%w: %v", ErrBrowserLaunch, err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("%w: %v", ErrBrowserLaunch, err)
	}

	defer func() {
		// Teardown runs on every exit path. A close failure must not
		// override an already-determined render outcome, so it only
		// escalates to a process-group kill.
		if cerr := b.Close(); cerr != nil {
			process.KillProcessGroup(l.PID())
		}
		l.Kill()
		l.Cleanup()
	}()

	if r.launched != nil {
		r.launched(l.PID())
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserLaunch, err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	if err := r.loadContent(ctx, page, htmlContent); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params, err := buildPrintParams(opts)
	if err != nil {
		return nil, err
	}

	reader, err := page.PDF(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrRender, err)
	}

	return pdfBuf, nil
}

// loadContent sets the document HTML directly (no temp file; relative
// resource references do not resolve) and waits until the network is
// idle or the load timeout elapses, whichever comes first.
func (r *rodRenderer) loadContent(ctx context.Context, page *rod.Page, htmlContent string) error {
	loadCtx, cancel := context.WithTimeout(ctx, r.loadTimeout)
	defer cancel()
	loadPage := page.Context(loadCtx)

	// Arm the idle watcher before the content triggers subresource loads.
	wait := loadPage.WaitRequestIdle(networkSettleWindow, nil, nil, nil)

	if err := loadPage.SetDocumentContent(htmlContent); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrRender, err)
	}

	wait()

	if loadCtx.Err() != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: network not idle within %s", ErrContentLoadTimeout, r.loadTimeout)
	}
	return nil
}
