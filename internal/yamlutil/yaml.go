// Package yamlutil wraps YAML decoding behind a small surface so the
// underlying library can be swapped without touching callers.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize bounds YAML input to keep oversized config files from
// exhausting memory (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrEmptyInput    = errors.New("yaml: empty input")
	ErrNilTarget     = errors.New("yaml: nil decode target")
	ErrInputTooLarge = errors.New("yaml: input exceeds maximum size")
)

// DecodeStrict parses data into v, rejecting unknown fields. Config
// files are the only YAML this module reads; a misspelled key there
// must fail loudly instead of being silently dropped.
func DecodeStrict(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmptyInput
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilTarget
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	return nil
}
