package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("full config", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
browser:
  path: /usr/bin/chromium
  loadTimeout: 45s
render:
  format: Letter
  printBackground: false
  landscape: true
  margin:
    top: 2cm
    bottom: 2cm
  passthrough:
    scale: 0.8
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if cfg.Browser.Path != "/usr/bin/chromium" {
			t.Errorf("Browser.Path = %q", cfg.Browser.Path)
		}
		d, ok := cfg.LoadTimeout()
		if !ok || d != 45*time.Second {
			t.Errorf("LoadTimeout() = (%v, %v), want (45s, true)", d, ok)
		}
		if cfg.Render.Format != "Letter" {
			t.Errorf("Render.Format = %q", cfg.Render.Format)
		}
		if cfg.Render.PrintBackground == nil || *cfg.Render.PrintBackground {
			t.Error("Render.PrintBackground should be explicit false")
		}
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
			t.Fatalf("err = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("path not found", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("err = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("name not found lists tried paths", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("definitely-not-a-real-config-name")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("err = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "definitely-not-a-real-config-name.yaml") {
			t.Errorf("err = %q, want tried paths in message", err)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "browser:\n  path: /usr/bin/chromium\nbogus: true\n")
		if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
			t.Fatalf("err = %v, want ErrConfigParse", err)
		}
	})

	t.Run("malformed YAML", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "browser: [unclosed")
		if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
			t.Fatalf("err = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid timeout rejected at load", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "browser:\n  loadTimeout: soonish\n")
		if _, err := LoadConfig(path); err == nil {
			t.Fatal("expected validation error")
		}
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "defaults valid",
			cfg:  *DefaultConfig(),
		},
		{
			name: "browser path too long",
			cfg: Config{
				Browser: BrowserConfig{Path: strings.Repeat("a", MaxPathLength+1)},
			},
			wantErr: ErrFieldTooLong,
		},
		{
			name: "format too long",
			cfg: Config{
				Render: RenderConfig{Format: strings.Repeat("x", MaxFormatLength+1)},
			},
			wantErr: ErrFieldTooLong,
		},
		{
			name: "margin value too long",
			cfg: Config{
				Render: RenderConfig{Margin: &MarginConfig{Top: strings.Repeat("1", MaxLengthValue+1)}},
			},
			wantErr: ErrFieldTooLong,
		},
		{
			name: "valid margin and timeout",
			cfg: Config{
				Browser: BrowserConfig{LoadTimeout: "1m"},
				Render:  RenderConfig{Margin: &MarginConfig{Top: "0.75in"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		value  string
		want   time.Duration
		wantOK bool
	}{
		{name: "unset", value: "", wantOK: false},
		{name: "valid", value: "45s", want: 45 * time.Second, wantOK: true},
		{name: "negative", value: "-5s", wantOK: false},
		{name: "garbage", value: "soonish", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Config{Browser: BrowserConfig{LoadTimeout: tt.value}}
			got, ok := cfg.LoadTimeout()
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("LoadTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderOverlay(t *testing.T) {
	t.Parallel()

	t.Run("empty config yields empty overlay", func(t *testing.T) {
		t.Parallel()

		overlay := DefaultConfig().RenderOverlay()
		if len(overlay) != 0 {
			t.Errorf("overlay = %v, want empty", overlay)
		}
	})

	t.Run("set fields appear", func(t *testing.T) {
		t.Parallel()

		landscape := true
		cfg := Config{Render: RenderConfig{
			Format:      "Legal",
			Landscape:   &landscape,
			Margin:      &MarginConfig{Top: "2cm", Left: "1cm"},
			Passthrough: map[string]any{"scale": 0.8},
		}}

		overlay := cfg.RenderOverlay()
		if overlay["format"] != "Legal" {
			t.Errorf("format = %v", overlay["format"])
		}
		if overlay["landscape"] != true {
			t.Error("landscape missing")
		}
		if overlay["scale"] != 0.8 {
			t.Errorf("scale = %v", overlay["scale"])
		}
		if _, ok := overlay["printBackground"]; ok {
			t.Error("unset printBackground leaked into overlay")
		}

		margin, ok := overlay["margin"].(map[string]any)
		if !ok {
			t.Fatalf("margin = %T, want map", overlay["margin"])
		}
		if margin["top"] != "2cm" || margin["left"] != "1cm" {
			t.Errorf("margin = %v", margin)
		}
		if _, ok := margin["bottom"]; ok {
			t.Error("unset margin side leaked into overlay")
		}
	})

	t.Run("explicit false is carried", func(t *testing.T) {
		t.Parallel()

		off := false
		cfg := Config{Render: RenderConfig{PrintBackground: &off}}
		overlay := cfg.RenderOverlay()
		if overlay["printBackground"] != false {
			t.Errorf("printBackground = %v, want false", overlay["printBackground"])
		}
	})
}
