package htmltopdf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-rod/rod/lib/proto"
)

// paperFormats maps page size names to portrait dimensions in inches,
// matching the table Chrome's print dialog uses. Landscape orientation is
// handled by the engine, so dimensions stay in portrait order.
var paperFormats = map[string][2]float64{
	"letter":  {8.5, 11},
	"legal":   {8.5, 14},
	"tabloid": {11, 17},
	"ledger":  {17, 11},
	"a0":      {33.1, 46.8},
	"a1":      {23.4, 33.1},
	"a2":      {16.54, 23.4},
	"a3":      {11.7, 16.54},
	"a4":      {8.27, 11.7},
	"a5":      {5.83, 8.27},
	"a6":      {4.13, 5.83},
}

// unitToPixels converts CSS length units to pixels at 96 DPI.
var unitToPixels = map[string]float64{
	"px": 1,
	"in": 96,
	"cm": 37.8,
	"mm": 3.78,
}

const pixelsPerInch = 96

// buildPrintParams translates a merged option map into the typed print
// call. Unrecognized keys are dropped here: the protocol surface is
// typed, so there is nothing to forward them to. Invalid values fail the
// render with ErrRender, keeping validation out of the merge layer.
func buildPrintParams(opts map[string]any) (*proto.PagePrintToPDF, error) {
	params := &proto.PagePrintToPDF{}

	if v, ok := opts[keyFormat]; ok {
		name, err := asString(keyFormat, v)
		if err != nil {
			return nil, err
		}
		dims, ok := paperFormats[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%w: unsupported paper format %q", ErrRender, name)
		}
		params.PaperWidth = floatPtr(dims[0])
		params.PaperHeight = floatPtr(dims[1])
	}

	// Explicit width/height override the format lookup.
	if v, ok := opts["width"]; ok {
		w, err := lengthInches("width", v)
		if err != nil {
			return nil, err
		}
		params.PaperWidth = floatPtr(w)
	}
	if v, ok := opts["height"]; ok {
		h, err := lengthInches("height", v)
		if err != nil {
			return nil, err
		}
		params.PaperHeight = floatPtr(h)
	}

	if v, ok := opts[keyLandscape]; ok {
		b, err := asBool(keyLandscape, v)
		if err != nil {
			return nil, err
		}
		params.Landscape = b
	}

	if v, ok := opts[keyPrintBackground]; ok {
		b, err := asBool(keyPrintBackground, v)
		if err != nil {
			return nil, err
		}
		params.PrintBackground = b
	}

	if v, ok := opts[keyMargin]; ok {
		if err := applyMargin(params, v); err != nil {
			return nil, err
		}
	}

	if v, ok := opts["scale"]; ok {
		s, err := asFloat("scale", v)
		if err != nil {
			return nil, err
		}
		params.Scale = floatPtr(s)
	}

	if v, ok := opts["pageRanges"]; ok {
		s, err := asString("pageRanges", v)
		if err != nil {
			return nil, err
		}
		params.PageRanges = s
	}

	if v, ok := opts["displayHeaderFooter"]; ok {
		b, err := asBool("displayHeaderFooter", v)
		if err != nil {
			return nil, err
		}
		params.DisplayHeaderFooter = b
	}

	if v, ok := opts["headerTemplate"]; ok {
		s, err := asString("headerTemplate", v)
		if err != nil {
			return nil, err
		}
		params.HeaderTemplate = s
	}

	if v, ok := opts["footerTemplate"]; ok {
		s, err := asString("footerTemplate", v)
		if err != nil {
			return nil, err
		}
		params.FooterTemplate = s
	}

	if v, ok := opts["preferCSSPageSize"]; ok {
		b, err := asBool("preferCSSPageSize", v)
		if err != nil {
			return nil, err
		}
		params.PreferCSSPageSize = b
	}

	return params, nil
}

// applyMargin sets the four margin fields from a margin record. Sides the
// record leaves out get no margin; defaults for missing sides were either
// applied by the merge layer or deliberately replaced by the caller.
func applyMargin(params *proto.PagePrintToPDF, v any) error {
	record, ok := toStringKeyed(v)
	if !ok {
		return fmt.Errorf("%w: margin must be a record of top/right/bottom/left, got %T", ErrRender, v)
	}

	for side, dst := range map[string]**float64{
		"top":    &params.MarginTop,
		"right":  &params.MarginRight,
		"bottom": &params.MarginBottom,
		"left":   &params.MarginLeft,
	} {
		raw, ok := record[side]
		if !ok {
			continue
		}
		inches, err := lengthInches("margin."+side, raw)
		if err != nil {
			return err
		}
		*dst = floatPtr(inches)
	}
	return nil
}

// lengthInches parses a CSS length into inches. Bare numbers are pixels.
func lengthInches(key string, v any) (float64, error) {
	switch value := v.(type) {
	case string:
		s := strings.TrimSpace(value)
		unit := "px"
		num := s
		if len(s) >= 2 {
			if _, ok := unitToPixels[s[len(s)-2:]]; ok {
				unit = s[len(s)-2:]
				num = strings.TrimSpace(s[:len(s)-2])
			}
		}
		f, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: invalid length %q", ErrRender, key, value)
		}
		return f * unitToPixels[unit] / pixelsPerInch, nil
	default:
		f, err := asFloat(key, v)
		if err != nil {
			return 0, err
		}
		return f / pixelsPerInch, nil
	}
}

// toStringKeyed normalizes nested records. JSON decoding produces
// map[string]any; Go callers may pass the same, and YAML config can
// surface map[any]any.
func toStringKeyed(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func asString(key string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrRender, key, v)
	}
	return s, nil
}

func asBool(key string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s must be a boolean, got %T", ErrRender, key, v)
	}
	return b, nil
}

// asFloat accepts the numeric types JSON decoding and Go callers produce.
func asFloat(key string, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%w: %s must be a number, got %T", ErrRender, key, v)
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
