package plugins

import (
	"math"
	"time"

	"github.com/scnrgo/scnr/internal/scan"
	"howett.net/plist"
)

// Plist decodes a node as a property list — XML or binary format, howett.net/
// plist auto-detects which — and emits it as Content holding the equivalent
// JSON-shaped value. XML-format and binary-format plists that encode the
// same data decode to the identical JSON value.
type Plist struct {
	scan.BasePlugin
}

// Name identifies this plugin in logs and error entries.
func (Plist) Name() string { return "plist" }

// Scan decodes r as one property list. Malformed input is a format error.
func (p Plist) Scan(ctx *scan.Context, r scan.Reader) error {
	seekable, err := scan.IntoSeekable(r)
	if err != nil {
		return err
	}

	var v any
	if err := plist.NewDecoder(seekable).Decode(&v); err != nil {
		return err
	}

	folded, err := foldPlistValue(v, ctx.BinRepr(), ctx.DateRepr())
	if err != nil {
		return err
	}
	return ctx.SendContent(scan.JSONContent(folded))
}

// foldPlistValue maps a decoded plist value onto the shared JSON-shaped
// representation: arrays and dictionaries recurse, booleans, strings, and
// numbers pass through (except NaN and infinite reals, which become nil),
// plist.UID becomes a plain number, binary data is rendered via binRepr, and
// dates are rendered via dateRepr.
func foldPlistValue(v any, binRepr scan.BinRepr, dateRepr scan.DateRepr) (any, error) {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			folded, err := foldPlistValue(item, binRepr, dateRepr)
			if err != nil {
				return nil, err
			}
			out[i] = folded
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			folded, err := foldPlistValue(item, binRepr, dateRepr)
			if err != nil {
				return nil, err
			}
			out[k] = folded
		}
		return out, nil
	case []byte:
		return binRepr.Encode(t), nil
	case plist.UID:
		return uint64(t), nil
	case time.Time:
		return dateRepr.Encode(t), nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, nil
		}
		return t, nil
	case float32:
		if math.IsNaN(float64(t)) || math.IsInf(float64(t), 0) {
			return nil, nil
		}
		return t, nil
	default:
		// bool, string, numeric scalars pass through as decoded.
		return v, nil
	}
}
