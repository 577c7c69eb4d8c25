package plugins

import (
	"encoding/json"

	"github.com/scnrgo/scnr/internal/scan"
)

// JSON decodes a node as a single JSON value and emits it as Content holding
// that materialized value. It uses encoding/json directly: a single decode
// of one value has no need for a third-party decoder anywhere in this
// codebase's dependency surface.
type JSON struct {
	scan.BasePlugin
}

// Name identifies this plugin in logs and error entries.
func (JSON) Name() string { return "json" }

// Scan decodes r as one JSON value. Malformed input is a format error.
func (JSON) Scan(ctx *scan.Context, r scan.Reader) error {
	var v any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	return ctx.SendContent(scan.JSONContent(v))
}
