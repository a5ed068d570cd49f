// Package htmltopdf renders HTML documents to PDF using headless Chrome.
//
// # Quick Start
//
// Create a service and convert HTML:
//
//	svc := htmltopdf.New()
//
//	pdf, err := svc.Convert(ctx, htmltopdf.Input{
//	    HTML: "<html><body><h1>Hi</h1></body></html>",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.pdf", pdf, 0644)
//
// Each call discovers a browser executable, launches one headless browser
// process, renders the document, and tears the process down before
// returning. Calls are independent and safe to issue concurrently; every
// call owns its own browser process end to end.
//
// # Page Options
//
// Options follow the Chrome print-to-PDF schema with defaults of A4,
// 1cm margins on all sides, backgrounds printed, portrait:
//
//	pdf, err := svc.Convert(ctx, htmltopdf.Input{
//	    HTML: doc,
//	    Options: htmltopdf.Options{
//	        Format:    "Letter",
//	        Landscape: htmltopdf.Bool(true),
//	        Margin:    &htmltopdf.Margin{Top: "2cm"},
//	    },
//	})
//
// Options.Extra forwards engine-specific keys (scale, pageRanges, header
// and footer templates, ...) and overrides the named fields on collision.
// Caller-supplied values always take precedence over defaults; a supplied
// margin record replaces the default record wholesale rather than merging
// per side.
//
// # Browser Discovery
//
// The service probes well-known Chromium/Chrome install paths in order
// and uses the first executable candidate. Set HTML2PDF_BROWSER to pin a
// specific binary, or use WithBrowserPath / WithStrategies to compose a
// custom discovery policy.
//
// # Parallel Rendering
//
// Each render spawns a browser process (~200MB). For high-volume
// embedding, bound concurrency with a ServicePool:
//
//	pool := htmltopdf.NewServicePool(htmltopdf.ResolvePoolSize(0))
//	defer pool.Close()
//
//	svc := pool.Acquire()
//	defer pool.Release(svc)
//	pdf, err := svc.Convert(ctx, input)
package htmltopdf
