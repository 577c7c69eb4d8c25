// Package scan implements the recursive plugin-dispatched content scanner:
// a traversal coordinator, plugin-selection policy, and streaming result
// channel that decoders feed through a shared scanning context.
package scan

import (
	"encoding/base64"
	"fmt"
	"reflect"
)

// Kind tags the three shapes a decoded leaf can take.
type Kind int

const (
	// KindJSON marks a Content holding a fully materialized JSON value.
	KindJSON Kind = iota
	// KindText marks a Content holding UTF-8 text.
	KindText
	// KindBytes marks a Content holding opaque bytes.
	KindBytes
)

func (k Kind) String() string {
	switch k {
	case KindJSON:
		return "json"
	case KindText:
		return "text"
	case KindBytes:
		return "bin"
	default:
		return "unknown"
	}
}

// Content is a tagged union over exactly three variants: a materialized JSON
// value, UTF-8 text, or opaque bytes. The zero value is not a valid Content;
// construct one with JSON, Text, or Bytes.
type Content struct {
	kind  Kind
	json  any
	text  string
	bytes []byte
}

// JSONContent wraps an already-decoded JSON-shaped value (map[string]any,
// []any, string, a number such as float64, int64 or json.Number, bool, or
// nil) as a Content.
func JSONContent(v any) Content {
	return Content{kind: KindJSON, json: v}
}

// TextContent wraps a string as a Content.
func TextContent(s string) Content {
	return Content{kind: KindText, text: s}
}

// BytesContent wraps a byte slice as a Content.
func BytesContent(b []byte) Content {
	return Content{kind: KindBytes, bytes: b}
}

// Kind reports which of the three variants this Content holds.
func (c Content) Kind() Kind { return c.kind }

// JSON returns the wrapped JSON value. ok is false unless Kind() == KindJSON.
func (c Content) JSON() (v any, ok bool) {
	return c.json, c.kind == KindJSON
}

// Text returns the wrapped string. ok is false unless Kind() == KindText.
func (c Content) Text() (s string, ok bool) {
	return c.text, c.kind == KindText
}

// Bytes returns the wrapped byte slice. ok is false unless Kind() == KindBytes.
func (c Content) Bytes() (b []byte, ok bool) {
	return c.bytes, c.kind == KindBytes
}

// String renders the display contract: just the variant tag name.
func (c Content) String() string {
	return c.kind.String()
}

// GoString renders the debug contract: full payload for JSON/Text, an
// opaque placeholder for Bytes.
func (c Content) GoString() string {
	switch c.kind {
	case KindJSON:
		return fmt.Sprintf("Json(%#v)", c.json)
	case KindText:
		return fmt.Sprintf("Text(%q)", c.text)
	case KindBytes:
		return fmt.Sprintf("Bytes(<%d bytes, %s...>)", len(c.bytes), truncatedBase64(c.bytes))
	default:
		return "Content(invalid)"
	}
}

func truncatedBase64(b []byte) string {
	const maxPreview = 16
	if len(b) > maxPreview {
		b = b[:maxPreview]
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// Equal reports structural equality between two Content values.
func (c Content) Equal(other Content) bool {
	if c.kind != other.kind {
		return false
	}
	switch c.kind {
	case KindJSON:
		return reflect.DeepEqual(c.json, other.json)
	case KindText:
		return c.text == other.text
	case KindBytes:
		return reflect.DeepEqual(c.bytes, other.bytes)
	default:
		return false
	}
}

// Entry pairs a relative path with the Content decoded at that path. It is
// the Go name for what spec calls ScanContent.
type Entry struct {
	RelPath string
	Content Content
}

func (e Entry) String() string {
	return fmt.Sprintf("%s: %s", e.RelPath, e.Content)
}
