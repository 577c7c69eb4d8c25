package plugins

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/scnrgo/scnr/internal/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTarGzFixture(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, body := range files {
		hdr := &tar.Header{Name: name, Mode: 0o644, Size: int64(len(body))}
		require.NoError(t, tw.WriteHeader(hdr))
		_, err := tw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func TestTarGzScanRecursesIntoEntries(t *testing.T) {
	fixture := buildTarGzFixture(t, map[string]string{"a/b.txt": "body"})

	b := scan.NewPickerBuilder()
	_, err := b.Push("*.txt", captureRecurse{})
	require.NoError(t, err)
	picker := b.BuildAsIs()

	h := scan.NewHarness(picker, scan.AllowAll)
	require.NoError(t, TarGz{}.Scan(h.Ctx, bytes.NewReader(fixture)))

	outcomes := h.Drain()
	require.Len(t, outcomes, 1)
	assert.Equal(t, "a/b.txt", outcomes[0].Entry.RelPath)
}

func TestTarGzCanRecurseIsTrue(t *testing.T) {
	assert.True(t, TarGz{}.CanRecurse())
}
