package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	htmltopdf "github.com/exn1/htmltopdf"
)

// envOptionsVar carries a JSON-encoded options object supplied by the
// host process.
const envOptionsVar = "PDF_OPTIONS_JSON"

// Sentinel errors for CLI operations.
var (
	ErrUsage     = errors.New("invalid arguments")
	ErrReadInput = errors.New("failed to read input HTML")
	ErrWritePDF  = errors.New("failed to write PDF file")
)

// cliFlags holds parsed command-line flags.
type cliFlags struct {
	configName  string
	browserPath string
	quiet       bool
	verbose     bool
	version     bool
}

// parseFlags parses flags and returns them with remaining positional
// arguments. Flags may appear before or after positionals.
func parseFlags(args []string) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("html2pdf", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVarP(&f.configName, "config", "c", "", "config file or name")
	fs.StringVarP(&f.browserPath, "browser", "b", "", "browser executable path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only log errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return f, fs.Args(), nil
}

// converter is the interface for the rendering service.
type converter interface {
	Convert(ctx context.Context, input htmltopdf.Input) ([]byte, error)
}

// run dispatches on the positional argument contract:
//
//	0 args            HTML on stdin, PDF on stdout
//	2 args            input file, output file
//	3 args            input file, output file, JSON options file
//
// baseOpts is the config-supplied option overlay; environment options
// override it and options-file values override both.
func run(ctx context.Context, positional []string, baseOpts map[string]any, svc converter, env *Environment) error {
	opts := gatherOptions(positional, baseOpts, env)

	switch len(positional) {
	case 0:
		return renderStream(ctx, opts, svc, env)
	case 2, 3:
		return renderFile(ctx, positional[0], positional[1], opts, svc, env)
	default:
		return fmt.Errorf("%w: expected 0, 2, or 3 arguments, got %d", ErrUsage, len(positional))
	}
}

// gatherOptions merges option sources in increasing precedence:
// config overlay, PDF_OPTIONS_JSON, options file. A malformed source is
// reported and skipped; rendering continues with what parsed so far.
func gatherOptions(positional []string, baseOpts map[string]any, env *Environment) map[string]any {
	opts := htmltopdf.MergeOptions(nil, baseOpts)

	if raw := env.Getenv(envOptionsVar); raw != "" {
		envOpts, err := htmltopdf.OptionsFromJSON([]byte(raw))
		if err != nil {
			env.Log.Warn().Err(err).Msgf("ignoring %s", envOptionsVar)
		} else {
			opts = htmltopdf.MergeOptions(opts, envOpts)
		}
	}

	if len(positional) == 3 {
		fileOpts, err := readOptionsFile(positional[2])
		if err != nil {
			env.Log.Warn().Err(err).Msgf("ignoring options file %s", positional[2])
		} else {
			opts = htmltopdf.MergeOptions(opts, fileOpts)
		}
	}

	return opts
}

// readOptionsFile loads and parses a JSON options file.
func readOptionsFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- options path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %v", htmltopdf.ErrOptionsParse, err)
	}
	return htmltopdf.OptionsFromJSON(data)
}

// renderStream reads HTML from stdin until EOF and writes the PDF to
// stdout. Nothing is written on failure.
func renderStream(ctx context.Context, opts map[string]any, svc converter, env *Environment) error {
	htmlContent, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	pdf, err := svc.Convert(ctx, htmltopdf.Input{
		HTML:    string(htmlContent),
		Options: htmltopdf.Options{Extra: opts},
	})
	if err != nil {
		return err
	}

	if _, err := env.Stdout.Write(pdf); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	return nil
}

// renderFile reads HTML from inputPath and writes the PDF to
// outputPath, reporting success on stdout. The output file is only
// touched after a successful render.
func renderFile(ctx context.Context, inputPath, outputPath string, opts map[string]any, svc converter, env *Environment) error {
	htmlContent, err := os.ReadFile(inputPath) // #nosec G304 -- input path is user-provided
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	pdf, err := svc.Convert(ctx, htmltopdf.Input{
		HTML:    string(htmlContent),
		Options: htmltopdf.Options{Extra: opts},
	})
	if err != nil {
		return err
	}

	// #nosec G306 -- PDF output files are intended to be readable
	if err := os.WriteFile(outputPath, pdf, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}

	fmt.Fprintf(env.Stdout, "Created %s\n", outputPath)
	return nil
}

// printUsage writes the invocation contract to w.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf [flags]                                  read HTML on stdin, write PDF to stdout")
	fmt.Fprintln(w, "       html2pdf [flags] <input.html> <output.pdf>")
	fmt.Fprintln(w, "       html2pdf [flags] <input.html> <output.pdf> <options.json>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options are merged over defaults (A4, 1cm margins, printBackground)")
	fmt.Fprintln(w, "from, in increasing precedence: --config file, the PDF_OPTIONS_JSON")
	fmt.Fprintln(w, "environment variable, and the options.json argument.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config string    config file or name")
	fmt.Fprintln(w, "  -b, --browser string   browser executable path")
	fmt.Fprintln(w, "  -q, --quiet            only log errors")
	fmt.Fprintln(w, "  -v, --verbose          enable debug logging")
	fmt.Fprintln(w, "      --version          print version and exit")
}
