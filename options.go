package htmltopdf

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Option keys recognized by the renderer. Anything else in an overlay is
// engine passthrough.
const (
	keyFormat          = "format"
	keyPrintBackground = "printBackground"
	keyLandscape       = "landscape"
	keyMargin          = "margin"
)

// MaxOptionsJSON caps JSON option payloads to prevent memory exhaustion.
var MaxOptionsJSON = 1 << 20

// Margin holds per-side page margins as CSS lengths ("1cm", "0.5in",
// "20px", "10mm"). Unset sides render with no margin: a caller-supplied
// margin replaces the default record wholesale.
type Margin struct {
	Top    string `json:"top,omitempty" yaml:"top"`
	Right  string `json:"right,omitempty" yaml:"right"`
	Bottom string `json:"bottom,omitempty" yaml:"bottom"`
	Left   string `json:"left,omitempty" yaml:"left"`
}

// Options configures page layout for a render call. Zero-valued fields
// are left out of the overlay, so the documented defaults apply.
//
// Extra carries engine-specific passthrough keys (scale, pageRanges,
// headerTemplate, ...) forwarded to the print call; on key collision its
// entries override the named fields, since later-applied options win.
type Options struct {
	Format          string // page size name: "A4", "Letter", "Legal", ...
	PrintBackground *bool
	Landscape       *bool
	Margin          *Margin
	Extra           map[string]any
}

// Bool returns a pointer to b, for use in Options literals.
func Bool(b bool) *bool { return &b }

// overlay flattens the record into a merge overlay. Only set fields
// appear; Extra entries are applied last.
func (o Options) overlay() map[string]any {
	m := map[string]any{}
	if o.Format != "" {
		m[keyFormat] = o.Format
	}
	if o.PrintBackground != nil {
		m[keyPrintBackground] = *o.PrintBackground
	}
	if o.Landscape != nil {
		m[keyLandscape] = *o.Landscape
	}
	if o.Margin != nil {
		m[keyMargin] = o.Margin.toMap()
	}
	for k, v := range o.Extra {
		m[k] = v
	}
	return m
}

// toMap keeps only the sides the caller set, preserving replace-wholesale
// margin semantics.
func (m *Margin) toMap() map[string]any {
	out := map[string]any{}
	if m.Top != "" {
		out["top"] = m.Top
	}
	if m.Right != "" {
		out["right"] = m.Right
	}
	if m.Bottom != "" {
		out["bottom"] = m.Bottom
	}
	if m.Left != "" {
		out["left"] = m.Left
	}
	return out
}

// DefaultOptions returns the documented render defaults: A4 portrait,
// backgrounds printed, 1cm margin on every side.
func DefaultOptions() map[string]any {
	return map[string]any{
		keyFormat:          "A4",
		keyPrintBackground: true,
		keyLandscape:       false,
		keyMargin: map[string]any{
			"top":    "1cm",
			"right":  "1cm",
			"bottom": "1cm",
			"left":   "1cm",
		},
	}
}

// MergeOptions overlays every key of overlay onto a copy of base.
// The merge is shallow: a nested record (such as margin) in the overlay
// replaces the base record entirely. Neither input is mutated, and
// merging the same overlay twice yields the same result as merging once.
func MergeOptions(base, overlay map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}

// OptionsFromJSON decodes a JSON object into a merge overlay. No value
// validation happens here; invalid values surface at render time.
// Empty input yields an empty overlay.
func OptionsFromJSON(data []byte) (map[string]any, error) {
	if len(data) == 0 {
		return map[string]any{}, nil
	}
	if len(data) > MaxOptionsJSON {
		return nil, fmt.Errorf("%w: payload is %d bytes (max %d)", ErrOptionsParse, len(data), MaxOptionsJSON)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOptionsParse, err)
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}
