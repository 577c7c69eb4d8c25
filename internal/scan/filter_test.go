package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowAllDenyAll(t *testing.T) {
	assert.True(t, AllowAll.ShouldScan("anything/at/all.txt"))
	assert.False(t, DenyAll.ShouldScan("anything/at/all.txt"))
}

func TestGlobUnionMatchesAnyPattern(t *testing.T) {
	g, err := NewGlobUnion([]string{"*.txt", "data/**/*.json"})
	require.NoError(t, err)

	assert.True(t, g.ShouldScan("notes.txt"))
	assert.True(t, g.ShouldScan("data/a/b/c.json"))
	assert.False(t, g.ShouldScan("notes.bin"))
}

func TestGlobUnionCaseInsensitive(t *testing.T) {
	g, err := NewGlobUnion([]string{"*.TXT"})
	require.NoError(t, err)
	assert.True(t, g.ShouldScan("notes.txt"))
}

func TestGlobUnionRejectsInvalidPattern(t *testing.T) {
	_, err := NewGlobUnion([]string{"[invalid"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPattern)
}
