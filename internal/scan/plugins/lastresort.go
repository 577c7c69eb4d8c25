package plugins

import "github.com/scnrgo/scnr/internal/scan"

// LastResort is the catch-all decoder registered under pattern "*" by
// Picker.BuildWithDefaults. It has no format opinion of its own — it just
// delegates to Bin, so any node no more specific pattern claims still
// produces a Content entry instead of silently vanishing.
type LastResort struct {
	scan.BasePlugin
	bin Bin
}

// Name identifies this plugin in logs and error entries.
func (LastResort) Name() string { return "last-resort" }

// Scan delegates to Bin.Scan.
func (l LastResort) Scan(ctx *scan.Context, r scan.Reader) error {
	return l.bin.Scan(ctx, r)
}
