package plugins

import (
	"bytes"
	"io"

	"github.com/scnrgo/scnr/internal/scan"

	"archive/zip"
)

// Zip decodes a node as a zip archive and recurses into each file entry
// (directory entries are skipped). It is one of the three archive decoders
// — the only plugins for which CanRecurse is true, since recursing into
// their own entries is the whole point of scanning them.
type Zip struct {
	scan.BasePlugin
}

// Name identifies this plugin in logs and error entries.
func (Zip) Name() string { return "zip" }

// CanRecurse is true: Zip's entire job is calling Context.Recurse per entry.
func (Zip) CanRecurse() bool { return true }

// Scan promotes r to a seekable reader (zip.Reader requires io.ReaderAt) and
// recurses into each non-directory entry in archive order.
func (Zip) Scan(ctx *scan.Context, r scan.Reader) error {
	seekable, err := scan.IntoSeekable(r)
	if err != nil {
		return err
	}
	size, err := seekable.Seek(0, 2)
	if err != nil {
		return err
	}
	if _, err := seekable.Seek(0, 0); err != nil {
		return err
	}

	zr, err := zip.NewReader(asReaderAt(seekable), size)
	if err != nil {
		return err
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		entry, err := f.Open()
		if err != nil {
			return err
		}
		err = ctx.Recurse(f.Name, entry)
		entry.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// asReaderAt adapts a SeekReader to io.ReaderAt, which zip.NewReader
// requires. bytes.Reader and *os.File already implement it directly; any
// other seekable implementation is drained into memory once so it can.
func asReaderAt(r scan.SeekReader) io.ReaderAt {
	if ra, ok := r.(io.ReaderAt); ok {
		return ra
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return bytes.NewReader(nil)
	}
	buf, err := io.ReadAll(r)
	if err != nil {
		return bytes.NewReader(nil)
	}
	return bytes.NewReader(buf)
}
