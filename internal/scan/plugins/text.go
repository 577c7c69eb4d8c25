package plugins

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/scnrgo/scnr/internal/scan"
)

// Text decodes a node as UTF-8, replacing any invalid byte sequences with
// the Unicode replacement character rather than failing — matching the
// original implementation's lossy conversion rather than treating bad
// encoding as a format error.
type Text struct {
	scan.BasePlugin
}

// Name identifies this plugin in logs and error entries.
func (Text) Name() string { return "text" }

// Scan reads r to completion and emits it as Content holding the (lossily
// converted) text.
func (Text) Scan(ctx *scan.Context, r scan.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	text := raw
	if !utf8.Valid(raw) {
		text = []byte(strings.ToValidUTF8(string(raw), "�"))
	}
	return ctx.SendContent(scan.TextContent(string(text)))
}
