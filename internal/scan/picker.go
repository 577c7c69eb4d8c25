package scan

import (
	"github.com/bmatcuk/doublestar/v4"
)

// registration pairs an optional glob pattern with the decoder it selects.
// A nil pattern means the entry participates only in start selection.
type registration struct {
	pattern *string
	plugin  Plugin
}

// Picker resolves a root string or relative path to a decoder. Entries are
// evaluated in list order: PickScan takes the first matching pattern,
// PickStart takes the first plugin whose CanStart returns true.
type Picker struct {
	entries []registration
}

// PickStart scans the registration list in order and returns the first
// plugin whose CanStart(root) returns true, or nil if none do.
func (p *Picker) PickStart(root string) Plugin {
	for _, e := range p.entries {
		if e.plugin.CanStart(root) {
			return e.plugin
		}
	}
	return nil
}

// PickScan scans the registration list in order and returns the first
// plugin whose pattern is present and matches relPath case-insensitively,
// or nil if none do.
func (p *Picker) PickScan(relPath string) Plugin {
	for _, e := range p.entries {
		if e.pattern == nil {
			continue
		}
		if matchGlob(*e.pattern, relPath) {
			return e.plugin
		}
	}
	return nil
}

// PickerBuilder builds a Picker via three insertion operations whose order
// matters: Push appends (lowest priority among equal-specificity entries),
// Insert prepends (highest priority), PushStarter appends a start-only
// (pattern-less) entry.
type PickerBuilder struct {
	entries []registration
}

// NewPickerBuilder returns an empty builder.
func NewPickerBuilder() *PickerBuilder {
	return &PickerBuilder{}
}

// Push appends glob -> plugin to the end of the registration list.
func (b *PickerBuilder) Push(glob string, plugin Plugin) (*PickerBuilder, error) {
	if !doublestar.ValidatePattern(glob) {
		return b, newPatternError(glob)
	}
	pat := glob
	b.entries = append(b.entries, registration{pattern: &pat, plugin: plugin})
	return b, nil
}

// Insert prepends glob -> plugin to the front of the registration list,
// giving it priority over every pattern already registered.
func (b *PickerBuilder) Insert(glob string, plugin Plugin) (*PickerBuilder, error) {
	if !doublestar.ValidatePattern(glob) {
		return b, newPatternError(glob)
	}
	pat := glob
	b.entries = append([]registration{{pattern: &pat, plugin: plugin}}, b.entries...)
	return b, nil
}

// PushStarter appends plugin as a start-only entry (nil pattern): it never
// participates in PickScan, only in PickStart.
func (b *PickerBuilder) PushStarter(plugin Plugin) *PickerBuilder {
	b.entries = append(b.entries, registration{pattern: nil, plugin: plugin})
	return b
}

// BuildAsIs produces a Picker from exactly the registrations added so far,
// with no defaults appended. A picker built this way fails to start if no
// starter plugin was ever registered.
func (b *PickerBuilder) BuildAsIs() *Picker {
	entries := make([]registration, len(b.entries))
	copy(entries, b.entries)
	return &Picker{entries: entries}
}

// BuildWithDefaults appends a file-system start plugin and a catch-all
// last-resort plugin (pattern "*", emits raw bytes) before building.
func (b *PickerBuilder) BuildWithDefaults(fsPlugin, lastResort Plugin) (*Picker, error) {
	withDefaults := &PickerBuilder{entries: append([]registration{}, b.entries...)}
	withDefaults.PushStarter(fsPlugin)
	if _, err := withDefaults.Push("*", lastResort); err != nil {
		return nil, err
	}
	return withDefaults.BuildAsIs(), nil
}

func newPatternError(glob string) *Error {
	return &Error{Kind: KindPatternErr, Path: glob, Message: "invalid glob pattern", Err: ErrPattern}
}
