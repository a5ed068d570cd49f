package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/exn1/htmltopdf/internal/yamlutil"
)

type testTarget struct {
	Name    string `yaml:"name"`
	Count   int    `yaml:"count"`
	Enabled bool   `yaml:"enabled"`
}

func TestDecodeStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "valid YAML",
			data: []byte("name: test\ncount: 42\nenabled: true"),
			dest: &testTarget{},
			check: func(t *testing.T, v any) {
				tgt := v.(*testTarget)
				if tgt.Name != "test" {
					t.Errorf("Name = %q, want %q", tgt.Name, "test")
				}
				if tgt.Count != 42 {
					t.Errorf("Count = %d, want %d", tgt.Count, 42)
				}
				if !tgt.Enabled {
					t.Error("Enabled = false, want true")
				}
			},
		},
		{
			name:    "unknown field rejected",
			data:    []byte("name: test\nunknown_field: value"),
			dest:    &testTarget{},
			wantErr: errors.New("yaml:"), // partial match
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testTarget{},
			wantErr: yamlutil.ErrEmptyInput,
		},
		{
			name:    "empty data",
			data:    []byte{},
			dest:    &testTarget{},
			wantErr: yamlutil.ErrEmptyInput,
		},
		{
			name:    "nil target",
			data:    []byte("name: test"),
			dest:    nil,
			wantErr: yamlutil.ErrNilTarget,
		},
		{
			name:    "invalid YAML syntax",
			data:    []byte("name: [unclosed"),
			dest:    &testTarget{},
			wantErr: errors.New("yaml:"),
		},
		{
			name: "unicode content",
			data: []byte("name: 日本語テスト"),
			dest: &testTarget{},
			check: func(t *testing.T, v any) {
				tgt := v.(*testTarget)
				if tgt.Name != "日本語テスト" {
					t.Errorf("Name = %q, want %q", tgt.Name, "日本語テスト")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.DecodeStrict(tt.data, tt.dest)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if errors.Is(err, tt.wantErr) {
					return // exact match via errors.Is
				}
				if !strings.Contains(err.Error(), tt.wantErr.Error()) {
					t.Fatalf("error = %q, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

// Note: these subtests modify the global MaxInputSize variable, so they
// cannot run in parallel with other tests.

func TestDecodeStrict_SizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	t.Run("input exceeding limit fails", func(t *testing.T) {
		yamlutil.MaxInputSize = 100
		data := make([]byte, 101)
		copy(data, []byte("name: x"))
		var tgt testTarget
		err := yamlutil.DecodeStrict(data, &tgt)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
	})

	t.Run("error message includes sizes", func(t *testing.T) {
		yamlutil.MaxInputSize = 50
		data := make([]byte, 100)
		var tgt testTarget
		err := yamlutil.DecodeStrict(data, &tgt)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		msg := err.Error()
		if !strings.Contains(msg, "100 bytes") {
			t.Errorf("error should contain actual size, got: %s", msg)
		}
		if !strings.Contains(msg, "max 50") {
			t.Errorf("error should contain max size, got: %s", msg)
		}
	})
}
