package scan

import (
	"path"
	"strings"
)

// Context carries everything a Plugin needs while decoding one node: where it
// is in the tree, the filter and picker governing recursion, and the shared
// outcome sender every recursive call writes through. A root Context is
// constructed once per Scan; every call to Recurse derives a child from it.
type Context struct {
	rootStart           string
	relPath             string
	filter              Filter
	picker              *Picker
	out                 sender
	binRepr             BinRepr
	dateRepr            DateRepr
	sqliteRowBatchLimit int
}

// Root returns the original root string the scan was started with.
func (c *Context) Root() string { return c.rootStart }

// RelPath returns this context's position in the tree, relative to the root.
func (c *Context) RelPath() string { return c.relPath }

// Filter returns the filter governing whether emitted entries reach the consumer.
func (c *Context) Filter() Filter { return c.filter }

// BinRepr returns the representation decoders should use to render opaque bytes.
func (c *Context) BinRepr() BinRepr { return c.binRepr }

// DateRepr returns the representation decoders should use to render dates.
func (c *Context) DateRepr() DateRepr { return c.dateRepr }

// SqliteRowBatchLimit returns the maximum rows per emitted JSON array segment
// the sqlite decoder should use before starting a new segment.
func (c *Context) SqliteRowBatchLimit() int { return c.sqliteRowBatchLimit }

// HasCurrentExtension reports whether RelPath ends with the given extension
// (with or without a leading dot), case-insensitively.
func (c *Context) HasCurrentExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	got := strings.TrimPrefix(path.Ext(c.relPath), ".")
	return strings.EqualFold(ext, got)
}

// HasCurrentEndWith reports whether RelPath ends with suffix, case-insensitively.
func (c *Context) HasCurrentEndWith(suffix string) bool {
	return strings.HasSuffix(strings.ToLower(c.relPath), strings.ToLower(suffix))
}

// joinRelPath joins a parent relative path with a child segment, producing a
// clean, forward-slash, non-absolute path with no ".." segments. Plugins
// supply arbitrary child names (archive entry names, table names, file
// names); this is the one place that name is turned into a tree position, so
// it is also the one place spec §8's "no escaping the tree" invariant is
// enforced.
func joinRelPath(parent, child string) string {
	child = strings.ReplaceAll(child, "\\", "/")
	joined := path.Join(parent, child)
	joined = strings.TrimPrefix(joined, "/")
	segments := strings.Split(joined, "/")
	cleaned := segments[:0]
	for _, seg := range segments {
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		cleaned = append(cleaned, seg)
	}
	return strings.Join(cleaned, "/")
}

// child derives a new Context positioned at relPath.join(name), sharing every
// other field (filter, picker, sender, representations) with c.
func (c *Context) child(relPath string) *Context {
	return &Context{
		rootStart:           c.rootStart,
		relPath:             relPath,
		filter:              c.filter,
		picker:              c.picker,
		out:                 c.out,
		binRepr:             c.binRepr,
		dateRepr:            c.dateRepr,
		sqliteRowBatchLimit: c.sqliteRowBatchLimit,
	}
}

// Recurse is how every plugin — start plugins walking a filesystem, archive
// plugins unpacking entries — hands a nested node back into the engine. It
// joins relativePath onto c.RelPath to get the child's tree position, picks
// the plugin that will decode it, and — unless that plugin can itself
// recurse (only archive decoders can) — gates emission through the filter
// before calling in.
//
// A plugin's own Scan error is caught here and converted into an Outcome
// carrying that error: it reaches the consumer as a stream entry, not as a
// Go error returned up the call stack. Only a dead consumer (send failing)
// propagates, since that is the one condition recursion cannot route around.
func (c *Context) Recurse(relativePath string, r Reader) error {
	childPath := joinRelPath(c.relPath, relativePath)
	plugin := c.picker.PickScan(childPath)
	if plugin == nil {
		return nil
	}
	if !plugin.CanRecurse() && !c.filter.ShouldScan(childPath) {
		return nil
	}
	child := c.child(childPath)
	if err := plugin.Scan(child, r); err != nil {
		scanErr := WrapPluginError(plugin.Name(), childPath, err)
		return c.send(Outcome{Err: scanErr})
	}
	return nil
}

// SendContent emits content at c's own relative path.
func (c *Context) SendContent(content Content) error {
	return c.send(Outcome{Entry: Entry{RelPath: c.relPath, Content: content}})
}

// SendChildContent emits content at a path one segment below c's own — used
// by decoders (such as sqlite, one entry per table) that produce content
// logically nested under the node they are decoding without recursing
// through the picker.
func (c *Context) SendChildContent(content Content, childName string) error {
	childPath := joinRelPath(c.relPath, childName)
	return c.send(Outcome{Entry: Entry{RelPath: childPath, Content: content}})
}

// send pushes o onto the shared queue. If the consumer has already gone
// (Iterator.Close was called, or was never listening), it returns a channel
// Error so the caller can unwind instead of continuing to do useless work.
func (c *Context) send(o Outcome) error {
	if dead := c.out.send(o); dead {
		return newChannelError()
	}
	return nil
}
