package plugins

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"io"

	"github.com/scnrgo/scnr/internal/scan"
)

// TarGz decodes a node as a gzip-compressed tar archive and recurses into
// each regular-file entry in archive order. Directory entries, symlinks,
// and other non-regular entries are skipped.
type TarGz struct {
	scan.BasePlugin
}

// Name identifies this plugin in logs and error entries.
func (TarGz) Name() string { return "tar.gz" }

// CanRecurse is true: TarGz's entire job is calling Context.Recurse per entry.
func (TarGz) CanRecurse() bool { return true }

// Scan streams r through gzip and tar decompression, forward-only — no
// seek is needed since tar entries are read in archive order.
func (TarGz) Scan(ctx *scan.Context, r scan.Reader) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if err := ctx.Recurse(hdr.Name, tr); err != nil {
			return err
		}
	}
}
