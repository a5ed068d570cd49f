// Package browser locates a usable Chromium/Chrome executable on the
// host by composing discovery strategies with first-match-wins policy.
package browser

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotFound means every strategy was exhausted without finding a
// usable executable.
var ErrNotFound = errors.New("no usable browser executable found")

// EnvBrowser names the environment variable that pins a specific binary,
// bypassing the filesystem probe.
const EnvBrowser = "HTML2PDF_BROWSER"

// DefaultCandidates lists well-known Chromium/Chrome install paths,
// probed in order: standard package paths, vendor installs, then snap.
var DefaultCandidates = []string{
	"/usr/bin/chromium-browser",
	"/usr/bin/chromium",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/usr/bin/chrome",
	"/opt/google/chrome/google-chrome",
	"/snap/bin/chromium",
	"/snap/bin/chromium-browser",
}

// Strategy yields a candidate executable path, or reports that it has
// none. Describe names what the strategy tried, for error reporting.
type Strategy interface {
	Probe() (string, bool)
	Describe() string
}

// Explicit returns a strategy for a caller-supplied path.
func Explicit(path string) Strategy { return explicitPath(path) }

type explicitPath string

func (p explicitPath) Probe() (string, bool) {
	if usable(string(p)) {
		return string(p), true
	}
	return "", false
}

func (p explicitPath) Describe() string { return string(p) }

// FromEnv returns a strategy reading a path from the named environment
// variable. Unset variables yield nothing.
func FromEnv(name string) Strategy { return envVar(name) }

type envVar string

func (e envVar) Probe() (string, bool) {
	path := os.Getenv(string(e))
	if path != "" && usable(path) {
		return path, true
	}
	return "", false
}

func (e envVar) Describe() string { return "$" + string(e) }

// ProbePaths returns a strategy checking each path in order for
// existence and execute permission; the first candidate passing both
// wins and the rest are not probed.
func ProbePaths(paths ...string) Strategy { return probeList(paths) }

type probeList []string

func (l probeList) Probe() (string, bool) {
	for _, path := range l {
		if usable(path) {
			return path, true
		}
	}
	return "", false
}

func (l probeList) Describe() string { return strings.Join(l, ", ") }

// Default is the standard discovery order: environment override first,
// then the fixed candidate list.
func Default() []Strategy {
	return []Strategy{
		FromEnv(EnvBrowser),
		ProbePaths(DefaultCandidates...),
	}
}

// Find runs strategies in order and returns the first executable found.
// On failure the error names the attempted candidate set.
func Find(strategies ...Strategy) (string, error) {
	if len(strategies) == 0 {
		strategies = Default()
	}

	for _, s := range strategies {
		if path, ok := s.Probe(); ok {
			return path, nil
		}
	}

	attempted := make([]string, len(strategies))
	for i, s := range strategies {
		attempted[i] = s.Describe()
	}
	return "", fmt.Errorf("%w (tried: %s)", ErrNotFound, strings.Join(attempted, "; "))
}

// usable reports whether path exists and carries execute permission.
func usable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode().Perm()&0o111 != 0
}
