// Package plugins collects the built-in decoders: the filesystem start
// plugin, the archive plugins that recurse into nested entries, and the
// leaf decoders for structured and unstructured formats.
package plugins

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/scnrgo/scnr/internal/scan"
)

// FileSystem is the default start plugin: it walks root (a file or a
// directory) and hands every regular file it finds to Context.Recurse as a
// seekable os.File. Directory entries are visited in sorted-by-name order so
// scans are deterministic regardless of the underlying filesystem's
// directory-entry ordering.
type FileSystem struct {
	scan.BasePlugin
}

// Name identifies this plugin in logs and error entries.
func (FileSystem) Name() string { return "filesystem" }

// CanStart is always true: FileSystem is the catch-all root walker,
// registered last among start candidates so more specific starters (if any)
// get first refusal.
func (FileSystem) CanStart(string) bool { return true }

// CanRecurse is false: FileSystem only ever calls Recurse from Start, never
// from Scan, and never decodes a nested node itself.
func (FileSystem) CanRecurse() bool { return false }

// Start walks root, collecting every regular file in sorted order, and
// recurses into each with a relative path stripped of the root prefix. If
// root names a single file rather than a directory, that file's bare name is
// used as the relative path.
func (FileSystem) Start(ctx *scan.Context, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return openAndRecurse(ctx, root, filepath.Base(root))
	}

	type found struct{ abs, rel string }
	var files []found

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files = append(files, found{abs: p, rel: filepath.ToSlash(rel)})
		return nil
	})
	if err != nil {
		return err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].rel < files[j].rel })

	for _, f := range files {
		if err := openAndRecurse(ctx, f.abs, f.rel); err != nil {
			return err
		}
	}
	return nil
}

func openAndRecurse(ctx *scan.Context, absPath, relPath string) error {
	f, err := os.Open(absPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return ctx.Recurse(relPath, f)
}
