package plugins

import (
	"fmt"

	"github.com/scnrgo/scnr/internal/scan"
	"gopkg.in/yaml.v3"
)

// YAML decodes a node as a single YAML document and emits it as Content
// holding the equivalent JSON-shaped value (maps, slices, and scalars —
// yaml.v3 already decodes onto the same any-typed tree encoding/json does).
type YAML struct {
	scan.BasePlugin
}

// Name identifies this plugin in logs and error entries.
func (YAML) Name() string { return "yaml" }

// Scan decodes r as one YAML document. Malformed input is a format error.
func (YAML) Scan(ctx *scan.Context, r scan.Reader) error {
	var v any
	if err := yaml.NewDecoder(r).Decode(&v); err != nil {
		return err
	}
	return ctx.SendContent(scan.JSONContent(normalizeYAML(v)))
}

// normalizeYAML walks a yaml.v3-decoded tree converting map[string]any keys
// that yaml.v3 may produce as map[any]any (for non-string-keyed mappings)
// into string keys, so the result is valid JSON-shaped data.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeYAML(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprintf("%v", k)] = normalizeYAML(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeYAML(val)
		}
		return out
	default:
		return v
	}
}
