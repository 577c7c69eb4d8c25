package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinScanEmitsRawBytes(t *testing.T) {
	e := scanOne(t, Bin{}, "\x00\x01\x02binary")
	b, ok := e.Content.Bytes()
	require.True(t, ok)
	assert.Equal(t, []byte("\x00\x01\x02binary"), b)
}

func TestLastResortDelegatesToBin(t *testing.T) {
	e := scanOne(t, LastResort{}, "anything at all")
	b, ok := e.Content.Bytes()
	require.True(t, ok)
	assert.Equal(t, []byte("anything at all"), b)
}
