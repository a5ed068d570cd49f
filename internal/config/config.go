// Package config loads optional YAML defaults for the html2pdf CLI:
// default render options, a pinned browser path, and the content load
// timeout. Caller-supplied options (environment, options file) always
// override what the config provides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/exn1/htmltopdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits; generous, but bounded.
const (
	MaxFormatLength = 16  // "tabloid", "letter", "a4"
	MaxLengthValue  = 20  // "0.75in", "12.5mm"
	MaxPathLength   = 512 // browser executable path
)

// Config holds all configuration for the CLI.
type Config struct {
	Browser BrowserConfig `yaml:"browser"`
	Render  RenderConfig  `yaml:"render"`
}

// BrowserConfig pins the browser executable and load behavior.
type BrowserConfig struct {
	Path        string `yaml:"path"`        // explicit executable (empty = discover)
	LoadTimeout string `yaml:"loadTimeout"` // Go duration, e.g. "45s" (empty = default 30s)
}

// RenderConfig carries default page-layout options. Pointer fields
// distinguish "unset" from an explicit false.
type RenderConfig struct {
	Format          string         `yaml:"format"`          // "A4", "Letter", ...
	PrintBackground *bool          `yaml:"printBackground"` //
	Landscape       *bool          `yaml:"landscape"`       //
	Margin          *MarginConfig  `yaml:"margin"`          // replaces default margins wholesale
	Passthrough     map[string]any `yaml:"passthrough"`     // engine-specific keys, forwarded as-is
}

// MarginConfig holds per-side CSS lengths.
type MarginConfig struct {
	Top    string `yaml:"top"`
	Right  string `yaml:"right"`
	Bottom string `yaml:"bottom"`
	Left   string `yaml:"left"`
}

// DefaultConfig returns a neutral configuration: discover the browser,
// default timeout, no option overrides.
func DefaultConfig() *Config {
	return &Config{}
}

// Validate checks field lengths and the timeout format.
func (c *Config) Validate() error {
	if err := validateFieldLength("browser.path", c.Browser.Path, MaxPathLength); err != nil {
		return err
	}
	if c.Browser.LoadTimeout != "" {
		if d, err := time.ParseDuration(c.Browser.LoadTimeout); err != nil || d <= 0 {
			return fmt.Errorf("browser.loadTimeout: invalid duration %q", c.Browser.LoadTimeout)
		}
	}
	if err := validateFieldLength("render.format", c.Render.Format, MaxFormatLength); err != nil {
		return err
	}
	if m := c.Render.Margin; m != nil {
		for field, v := range map[string]string{
			"render.margin.top":    m.Top,
			"render.margin.right":  m.Right,
			"render.margin.bottom": m.Bottom,
			"render.margin.left":   m.Left,
		} {
			if err := validateFieldLength(field, v, MaxLengthValue); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadTimeout returns the configured load timeout, if any.
func (c *Config) LoadTimeout() (time.Duration, bool) {
	if c.Browser.LoadTimeout == "" {
		return 0, false
	}
	d, err := time.ParseDuration(c.Browser.LoadTimeout)
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}

// RenderOverlay flattens the render section into an option overlay map
// for merging under environment and options-file values. Only set
// fields appear.
func (c *Config) RenderOverlay() map[string]any {
	m := map[string]any{}
	if c.Render.Format != "" {
		m["format"] = c.Render.Format
	}
	if c.Render.PrintBackground != nil {
		m["printBackground"] = *c.Render.PrintBackground
	}
	if c.Render.Landscape != nil {
		m["landscape"] = *c.Render.Landscape
	}
	if mc := c.Render.Margin; mc != nil {
		margin := map[string]any{}
		for side, v := range map[string]string{
			"top": mc.Top, "right": mc.Right, "bottom": mc.Bottom, "left": mc.Left,
		} {
			if v != "" {
				margin[side] = v
			}
		}
		m["margin"] = margin
	}
	for k, v := range c.Render.Passthrough {
		m[k] = v
	}
	return m
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.DecodeStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, then the user config dir.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	tried := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		tried = append(tried, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "html2pdf", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			tried = append(tried, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
