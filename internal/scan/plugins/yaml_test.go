package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLScanDecodesDocument(t *testing.T) {
	e := scanOne(t, YAML{}, "fruit:\n  name: apple\n  price: 3\n")
	v, ok := e.Content.JSON()
	require.True(t, ok)
	obj, ok := v.(map[string]any)
	require.True(t, ok)
	fruit, ok := obj["fruit"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "apple", fruit["name"])
}

func TestYAMLScanRejectsMalformed(t *testing.T) {
	err := scanErr(t, YAML{}, "key: [unterminated")
	assert.Error(t, err)
}
