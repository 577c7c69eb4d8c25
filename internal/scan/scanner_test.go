package scan

import (
	stdcontext "context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scannerFSPlugin struct {
	BasePlugin
	files map[string]string
}

func (scannerFSPlugin) Name() string           { return "fs" }
func (scannerFSPlugin) CanStart(string) bool    { return true }
func (p scannerFSPlugin) Start(ctx *Context, root string) error {
	for name, body := range p.files {
		if err := ctx.Recurse(name, strings.NewReader(body)); err != nil {
			return err
		}
	}
	return nil
}

type scannerTextPlugin struct{ BasePlugin }

func (scannerTextPlugin) Name() string { return "text" }
func (scannerTextPlugin) Scan(ctx *Context, r Reader) error {
	buf := make([]byte, 1024)
	n, _ := r.Read(buf)
	return ctx.SendContent(TextContent(string(buf[:n])))
}

func buildTestScanner(t *testing.T, files map[string]string) *Scanner {
	t.Helper()
	b := NewPickerBuilder()
	_, err := b.Push("*.txt", scannerTextPlugin{})
	require.NoError(t, err)
	picker, err := b.BuildWithDefaults(scannerFSPlugin{files: files}, scannerTextPlugin{})
	require.NoError(t, err)
	return NewScanner(Options{Filter: AllowAll, Picker: picker})
}

func TestScannerYieldsEveryFile(t *testing.T) {
	s := buildTestScanner(t, map[string]string{
		"a.txt": "A",
		"b.txt": "B",
	})

	it := s.Scan(stdcontext.Background(), "root")
	entries := CollectOK(it)
	require.Len(t, entries, 2)

	byPath := map[string]string{}
	for _, e := range entries {
		text, _ := e.Content.Text()
		byPath[e.RelPath] = text
	}
	assert.Equal(t, "A", byPath["a.txt"])
	assert.Equal(t, "B", byPath["b.txt"])
}

func TestScannerDispatchErrorWhenNoStartPlugin(t *testing.T) {
	picker := NewPickerBuilder().BuildAsIs()
	s := NewScanner(Options{Filter: AllowAll, Picker: picker})

	it := s.Scan(stdcontext.Background(), "root")
	require.True(t, it.Next())
	require.Error(t, it.Err())

	var scanErr *Error
	require.ErrorAs(t, it.Err(), &scanErr)
	assert.Equal(t, KindDispatchErr, scanErr.Kind)

	assert.False(t, it.Next())
}

func TestScannerIteratorCloseStopsDelivery(t *testing.T) {
	s := buildTestScanner(t, map[string]string{"a.txt": "A", "b.txt": "B"})
	it := s.Scan(stdcontext.Background(), "root")
	it.Close()
	assert.False(t, it.Next())
}

func TestScannerContextCancellationStopsIteration(t *testing.T) {
	s := buildTestScanner(t, map[string]string{"a.txt": "A"})
	ctx, cancel := stdcontext.WithCancel(stdcontext.Background())
	cancel()

	it := s.Scan(ctx, "root")
	assert.False(t, it.Next())
	assert.ErrorIs(t, it.Err(), stdcontext.Canceled)
}

func TestCollectStrictStopsAtFirstError(t *testing.T) {
	b := NewPickerBuilder()
	failing := recordingPlugin{name: "failing", onScan: func(ctx *Context, r Reader) error {
		return assertErr
	}}
	_, err := b.Push("*.bad", failing)
	require.NoError(t, err)
	picker, err := b.BuildWithDefaults(scannerFSPlugin{files: map[string]string{"x.bad": "boom"}}, failing)
	require.NoError(t, err)

	s := NewScanner(Options{Filter: AllowAll, Picker: picker})
	it := s.Scan(stdcontext.Background(), "root")
	entries, err := CollectStrict(it)
	assert.Empty(t, entries)
	require.Error(t, err)
}
