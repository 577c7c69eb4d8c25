package plugins

import (
	"archive/tar"
	"bytes"
	"errors"
	"io"

	"github.com/scnrgo/scnr/internal/scan"
	"github.com/ulikunitz/xz"
)

// TarXz decodes a node as an xz-compressed tar archive. ulikunitz/xz has no
// streaming-into-tar shortcut the way gzip does, so the decompressed bytes
// are buffered in full before tar reads them — matching how the original
// implementation decompresses xz to a byte buffer up front rather than
// streaming it.
type TarXz struct {
	scan.BasePlugin
}

// Name identifies this plugin in logs and error entries.
func (TarXz) Name() string { return "tar.xz" }

// CanRecurse is true: TarXz's entire job is calling Context.Recurse per entry.
func (TarXz) CanRecurse() bool { return true }

// Scan decompresses r fully, then recurses into each regular-file tar entry
// in archive order.
func (TarXz) Scan(ctx *scan.Context, r scan.Reader) error {
	xr, err := xz.NewReader(r)
	if err != nil {
		return err
	}
	decompressed, err := io.ReadAll(xr)
	if err != nil {
		return err
	}

	tr := tar.NewReader(bytes.NewReader(decompressed))
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
