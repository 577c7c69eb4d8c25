package plugins

import (
	"io"

	"github.com/scnrgo/scnr/internal/scan"
)

// Bin decodes a node as opaque bytes, with no interpretation at all. It is
// the terminal decoder for content no other registered pattern claims.
type Bin struct {
	scan.BasePlugin
}

// Name identifies this plugin in logs and error entries.
func (Bin) Name() string { return "bin" }

// Scan drains r and emits it as Content holding raw bytes.
func (Bin) Scan(ctx *scan.Context, r scan.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return ctx.SendContent(scan.BytesContent(raw))
}
