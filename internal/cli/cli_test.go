package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scnrgo/scnr/internal/profiles"
	"github.com/scnrgo/scnr/internal/scnrerr"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfileKnownNames(t *testing.T) {
	std, err := parseProfile("standard")
	require.NoError(t, err)
	assert.Equal(t, profiles.Standard, std)

	empty, err := parseProfile("")
	require.NoError(t, err)
	assert.Equal(t, profiles.Standard, empty)

	sys, err := parseProfile("sysdiagnose")
	require.NoError(t, err)
	assert.Equal(t, profiles.Sysdiagnose, sys)

	nothing, err := parseProfile("nothing")
	require.NoError(t, err)
	assert.Equal(t, profiles.Nothing, nothing)
}

func TestParseProfileRejectsUnknown(t *testing.T) {
	_, err := parseProfile("bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestSplitKeyValSplitsOnRightmostEquals(t *testing.T) {
	glob, plugin, err := splitKeyVal("*.weird=name=text")
	require.NoError(t, err)
	assert.Equal(t, "*.weird=name", glob)
	assert.Equal(t, "text", plugin)
}

func TestSplitKeyValRejectsMissingEquals(t *testing.T) {
	_, _, err := splitKeyVal("noequalshere")
	assert.Error(t, err)
}

func TestReverseOverridesLastCLIEntryBecomesLowestPriority(t *testing.T) {
	overrides, err := parseOverrides([]string{"*.a=text", "*.b=bin", "*.c=json"})
	require.NoError(t, err)
	reverseOverrides(overrides)

	require.Len(t, overrides, 3)
	assert.Equal(t, "*.c", overrides[0].Glob)
	assert.Equal(t, "*.b", overrides[1].Glob)
	assert.Equal(t, "*.a", overrides[2].Glob)
}

func TestBuildFilterDefaultsToAllowAll(t *testing.T) {
	cf := &commonFlags{}
	filter, err := cf.buildFilter()
	require.NoError(t, err)
	assert.True(t, filter.ShouldScan("anything/at/all.txt"))
}

func TestBuildFilterRejectsInvalidGlob(t *testing.T) {
	cf := &commonFlags{filters: []string{"["}}
	_, err := cf.buildFilter()
	assert.Error(t, err)
}

func TestBuildPickerRejectsUnknownProfile(t *testing.T) {
	cf := &commonFlags{profile: "bogus"}
	_, err := cf.buildPicker()
	assert.Error(t, err)
}

func TestBuildPickerRejectsMalformedCfg(t *testing.T) {
	cf := &commonFlags{profile: "standard", cfg: []string{"missing-equals"}}
	_, err := cf.buildPicker()
	assert.Error(t, err)
}

// TestScanCommandEndToEnd drives the real "scan" subcommand against a small
// on-disk tree and checks the JSON-lines output it prints. It builds a fresh
// command instance rather than reusing the package's rootCmd singleton, so
// flag state (in particular --input's "required" tracking) can't leak
// between this test and others that exercise the same subcommand.
func TestScanCommandEndToEnd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{"n": 1}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("hello"), 0o644))

	cmd := newScanCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--input", dir})

	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	var decoded []map[string]any
	for _, line := range lines {
		var v map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &v))
		decoded = append(decoded, v)
	}

	var sawJSON, sawText bool
	for _, v := range decoded {
		switch v["kind"] {
		case "json":
			sawJSON = true
			assert.Equal(t, "a.json", v["path"])
		case "text":
			sawText = true
			assert.Equal(t, "b.txt", v["path"])
		}
	}
	assert.True(t, sawJSON)
	assert.True(t, sawText)
}

func TestScanCommandRequiresInputFlag(t *testing.T) {
	cmd := newScanCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute())
}

// TestExtractCommandEndToEnd drives the real "extract" subcommand and checks
// decoded entries land on disk under the output directory.
func TestExtractCommandEndToEnd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{"n": 1}`), 0o644))
	outDir := filepath.Join(t.TempDir(), "out")

	cmd := newExtractCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--input", dir, "--output", outDir})

	require.NoError(t, cmd.Execute())

	raw, err := os.ReadFile(filepath.Join(outDir, "a.json"))
	require.NoError(t, err)

	var v map[string]any
	require.NoError(t, json.Unmarshal(raw, &v))
	assert.Equal(t, float64(1), v["n"])
}

func TestExtractCommandRefusesNonEmptyOutputWithoutForce(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{}`), 0o644))
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "preexisting"), []byte("x"), 0o644))

	cmd := newExtractCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--input", dir, "--output", outDir})

	assert.Error(t, cmd.Execute())
}

// TestScanCommandConfigFileSuppliesProfile writes a scnr.toml that selects
// the "nothing" profile (no start plugin and no glob bindings, so the scan
// fails dispatch) and confirms a scan run with no --profile flag picks it up.
func TestScanCommandConfigFileSuppliesProfile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{"n": 1}`), 0o644))

	cfgPath := filepath.Join(t.TempDir(), "scnr.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`profile = "nothing"`), 0o644))

	cmd := newScanCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--input", dir, "--config", cfgPath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dispatch")
	assert.Equal(t, scnrerr.ExitError, scnrerr.ExtractExitCode(err))
	assert.NotContains(t, out.String(), `"path":`)
}

// TestScanCommandExplicitProfileFlagOverridesConfigFile confirms an explicit
// --profile on the command line wins over a conflicting --config value.
func TestScanCommandExplicitProfileFlagOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{"n": 1}`), 0o644))

	cfgPath := filepath.Join(t.TempDir(), "scnr.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`profile = "nothing"`), 0o644))

	cmd := newScanCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--input", dir, "--config", cfgPath, "--profile", "standard"})

	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &decoded))
	assert.Equal(t, "json", decoded["kind"])
}

// TestBuildFilterFallsBackToConfigFileFilters confirms --config's filters
// apply when --filter was never given.
func TestBuildFilterFallsBackToConfigFileFilters(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "scnr.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`filters = ["*.json"]`), 0o644))

	cmd := &cobra.Command{Use: "scan"}
	cf := addCommonFlags(cmd)
	require.NoError(t, cmd.Flags().Set("config", cfgPath))

	filter, err := cf.buildFilter()
	require.NoError(t, err)
	assert.True(t, filter.ShouldScan("data/payload.json"))
	assert.False(t, filter.ShouldScan("data/payload.txt"))
}

// TestBuildPickerFallsBackToConfigFileOverrides confirms --config's
// glob=plugin overrides apply when --cfg was never given.
func TestBuildPickerFallsBackToConfigFileOverrides(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "scnr.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
profile = "standard"

[[overrides]]
glob = "*.json"
plugin = "text"
`), 0o644))

	cmd := &cobra.Command{Use: "scan"}
	cf := addCommonFlags(cmd)
	require.NoError(t, cmd.Flags().Set("config", cfgPath))

	picker, err := cf.buildPicker()
	require.NoError(t, err)

	plugin := picker.PickScan("data/payload.json")
	require.NotNil(t, plugin)
	assert.Equal(t, "text", plugin.Name())
}

// TestJQCommandEndToEnd drives the real "jq" subcommand against a small
// on-disk JSON tree and checks the query's projected output.
func TestJQCommandEndToEnd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{"name": "widget", "count": 3}`), 0o644))

	cmd := newJQCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--input", dir, "--query", ".name"})

	require.NoError(t, cmd.Execute())

	var v string
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(out.Bytes()), &v))
	assert.Equal(t, "widget", v)
}
