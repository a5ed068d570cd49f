package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	htmltopdf "github.com/exn1/htmltopdf"
	"github.com/exn1/htmltopdf/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	flags, positional, err := parseFlags(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		printUsage(os.Stderr)
		os.Exit(ExitUsage)
	}

	if flags.version {
		fmt.Printf("html2pdf %s\n", Version)
		return
	}

	env := DefaultEnv()
	env.Log = newLogger(os.Stderr, flags.quiet, flags.verbose)

	// Configure GOMAXPROCS for containers; its one-line notice goes
	// through the logger at debug level.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		env.Log.Debug().Msgf(format, args...)
	}))

	os.Exit(realMain(flags, positional, env))
}

// realMain wires config, service, and the run dispatch; split from main
// so exit codes flow through a single os.Exit.
func realMain(flags *cliFlags, positional []string, env *Environment) int {
	cfg := config.DefaultConfig()
	if flags.configName != "" {
		loaded, err := config.LoadConfig(flags.configName)
		if err != nil {
			env.Log.Error().Msg(err.Error())
			return exitCodeFor(err)
		}
		cfg = loaded
	}

	var svcOpts []htmltopdf.Option
	if d, ok := cfg.LoadTimeout(); ok {
		svcOpts = append(svcOpts, htmltopdf.WithLoadTimeout(d))
	}
	switch {
	case flags.browserPath != "":
		svcOpts = append(svcOpts, htmltopdf.WithBrowserPath(flags.browserPath))
	case cfg.Browser.Path != "":
		svcOpts = append(svcOpts, htmltopdf.WithBrowserPath(cfg.Browser.Path))
	}
	svc := htmltopdf.New(svcOpts...)

	if err := run(context.Background(), positional, cfg.RenderOverlay(), svc, env); err != nil {
		env.Log.Error().Msg(err.Error())
		if errors.Is(err, ErrUsage) {
			printUsage(env.Stderr)
		}
		return exitCodeFor(err)
	}
	return ExitSuccess
}
