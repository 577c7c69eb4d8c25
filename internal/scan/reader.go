package scan

import (
	"bytes"
	"fmt"
	"io"
)

// Reader is the minimal capability every decoder can rely on: sequential
// byte reads. It is a plain io.Reader — decoders that need more call
// IntoSeekable to upgrade.
type Reader = io.Reader

// SeekReader additionally supports repositioning, the capability archive
// and property-list/sqlite decoders require for random access.
type SeekReader = io.ReadSeeker

// IntoSeekable promotes r to a SeekReader. If r already implements
// io.Seeker, it is returned unchanged. Otherwise r's entire remaining
// content is drained into memory and wrapped in a bytes.Reader. Promotion
// never happens lazily: the caller always receives an owning seekable view.
func IntoSeekable(r Reader) (SeekReader, error) {
	if rs, ok := r.(SeekReader); ok {
		return rs, nil
	}
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering reader for seek promotion: %w", err)
	}
	return bytes.NewReader(buf), nil
}
