package plugins

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/scnrgo/scnr/internal/scan"
)

// IPS decodes Apple's two-blob incident report format: a metadata JSON
// object on the first line, followed by a second JSON document holding the
// report body. The two are emitted together as a single JSON object with
// "meta" and "data" keys.
//
// The first line is parsed best-effort: a malformed or absent meta line
// yields a nil "meta" rather than failing the whole decode, since the report
// body is the half analysts actually care about. A malformed body, by
// contrast, is a format error — unlike meta it has no fallback value.
type IPS struct {
	scan.BasePlugin
}

// Name identifies this plugin in logs and error entries.
func (IPS) Name() string { return "ips" }

// Scan reads r, splits at the first newline, parses the first line as meta
// (best-effort) and the remainder as data (must succeed).
func (IPS) Scan(ctx *scan.Context, r scan.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	firstLine, rest := splitFirstLine(raw)

	var meta any
	_ = json.Unmarshal(firstLine, &meta)

	var data any
	if err := json.Unmarshal(rest, &data); err != nil {
		return err
	}

	return ctx.SendContent(scan.JSONContent(map[string]any{
		"meta": meta,
		"data": data,
	}))
}

func splitFirstLine(raw []byte) (firstLine, rest []byte) {
	idx := bytes.IndexByte(raw, '\n')
	if idx < 0 {
		return raw, nil
	}
	return raw[:idx], raw[idx+1:]
}
