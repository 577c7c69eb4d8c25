package plugins

import (
	"io"

	"github.com/BurntSushi/toml"
	"github.com/scnrgo/scnr/internal/scan"
)

// TOML decodes a node as a single TOML document and emits it as Content
// holding the equivalent JSON-shaped value.
type TOML struct {
	scan.BasePlugin
}

// Name identifies this plugin in logs and error entries.
func (TOML) Name() string { return "toml" }

// Scan decodes r as one TOML document. Malformed input is a format error.
func (TOML) Scan(ctx *scan.Context, r scan.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	var v any
	if err := toml.Unmarshal(raw, &v); err != nil {
		return err
	}
	return ctx.SendContent(scan.JSONContent(v))
}
