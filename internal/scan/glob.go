package scan

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// matchGlob reports whether pattern matches path, case-insensitively. A
// pattern is tried against the full path first (so explicit directory
// components and "**" segments work as written), then against just the
// path's final segment — so an extension-style pattern like "*.zip"
// matches a nested entry like "y/z.zip" without the caller needing to
// write "**/*.zip" every time. This mirrors the original implementation's
// looser default, where a single "*" is not confined to one path segment.
func matchGlob(pattern, path string) bool {
	pattern = strings.ToLower(pattern)
	path = strings.ToLower(path)

	if ok, err := doublestar.Match(pattern, path); err == nil && ok {
		return true
	}

	base := path
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		base = path[idx+1:]
	}
	ok, err := doublestar.Match(pattern, base)
	return err == nil && ok
}
