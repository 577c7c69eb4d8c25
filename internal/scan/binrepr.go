package scan

import "encoding/base64"

// BinRepr selects how decoders render opaque bytes encountered inside
// structured formats (property-list data, sqlite blobs) as a JSON string.
// The only value today is url-safe base64 without padding, decoding
// indifferently to padding; it exists as a type to leave room for future
// representations without changing Context's shape.
type BinRepr int

const (
	// BinReprBase64URLNoPad encodes with URL-safe base64, no padding on
	// encode, accepting either padded or unpadded input on decode.
	BinReprBase64URLNoPad BinRepr = iota
)

var base64NoPadIndifferent = base64.RawURLEncoding

// Encode renders bytes per this representation.
func (b BinRepr) Encode(data []byte) string {
	switch b {
	case BinReprBase64URLNoPad:
		return base64NoPadIndifferent.EncodeToString(data)
	default:
		return base64NoPadIndifferent.EncodeToString(data)
	}
}

// Decode parses a string per this representation, accepting both padded and
// unpadded base64 on input regardless of how it was encoded.
func (b BinRepr) Decode(s string) ([]byte, error) {
	if decoded, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		return decoded, nil
	}
	return base64.URLEncoding.DecodeString(s)
}
