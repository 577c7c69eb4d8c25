package scan

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter is a pure, thread-safe predicate on relative paths. It decides
// whether an entry that a plugin is about to emit should actually reach the
// consumer — see Context.Recurse for how it interacts with Plugin.CanRecurse.
type Filter interface {
	ShouldScan(relPath string) bool
}

type allowAllFilter struct{}

func (allowAllFilter) ShouldScan(string) bool { return true }

// AllowAll is a Filter under which every path passes.
var AllowAll Filter = allowAllFilter{}

type denyAllFilter struct{}

func (denyAllFilter) ShouldScan(string) bool { return false }

// DenyAll is a Filter under which no path passes.
var DenyAll Filter = denyAllFilter{}

// GlobUnion passes a path if any of its patterns matches it, case-insensitively.
type GlobUnion struct {
	patterns []string
}

// NewGlobUnion compiles each pattern (doublestar syntax: *, ?, **, character
// classes) up front so a bad pattern fails at construction time rather than
// mid-scan — this is spec's "Pattern error", fatal at setup.
func NewGlobUnion(patterns []string) (*GlobUnion, error) {
	compiled := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: invalid glob pattern %q", ErrPattern, p)
		}
		compiled = append(compiled, p)
	}
	return &GlobUnion{patterns: compiled}, nil
}

// ShouldScan reports whether relPath matches at least one of the union's patterns.
func (g *GlobUnion) ShouldScan(relPath string) bool {
	for _, p := range g.patterns {
		if matchGlob(p, relPath) {
			return true
		}
	}
	return false
}
