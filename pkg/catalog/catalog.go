package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/goliatone/go-pzforge/pkg/scriptfile"
)

// DefaultPattern matches every script file under the output root.
const DefaultPattern = "media/scripts/**/*.txt"

// Entry lists the declarations of one script file.
type Entry struct {
	File         string                   `json:"file"`
	Declarations []scriptfile.Declaration `json:"declarations"`
}

// Catalog is the result of a scan, ordered by file path.
type Catalog struct {
	Entries []Entry `json:"entries"`
}

// ScanDir scans root with DefaultPattern.
func ScanDir(ctx context.Context, root string) (Catalog, error) {
	return Scan(ctx, os.DirFS(root), DefaultPattern)
}

// Scan globs pattern in fsys and collects item and model declarations from
// every match. Files without declarations are left out.
func Scan(ctx context.Context, fsys fs.FS, pattern string) (Catalog, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: glob %q: %w", pattern, err)
	}
	sort.Strings(matches)

	var out Catalog
	for _, name := range matches {
		if err := ctx.Err(); err != nil {
			return Catalog{}, err
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return Catalog{}, fmt.Errorf("catalog: read %s: %w", name, err)
		}
		decls := scriptfile.Declarations(string(data))
		if len(decls) == 0 {
			continue
		}
		sort.SliceStable(decls, func(i, j int) bool {
			if decls[i].Kind != decls[j].Kind {
				return decls[i].Kind < decls[j].Kind
			}
			return decls[i].Name < decls[j].Name
		})
		out.Entries = append(out.Entries, Entry{File: name, Declarations: decls})
	}
	return out, nil
}

// Names returns the sorted, de-duplicated names declared with kind.
func (c Catalog) Names(kind string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, entry := range c.Entries {
		for _, decl := range entry.Declarations {
			if decl.Kind != kind {
				continue
			}
			if _, dup := seen[decl.Name]; dup {
				continue
			}
			seen[decl.Name] = struct{}{}
			out = append(out, decl.Name)
		}
	}
	sort.Strings(out)
	return out
}

// Duplicates maps item names declared more than once to the files declaring
// them. The game keeps only one definition per name, so these are conflicts.
func (c Catalog) Duplicates(kind string) map[string][]string {
	files := make(map[string][]string)
	for _, entry := range c.Entries {
		for _, decl := range entry.Declarations {
			if decl.Kind == kind {
				files[decl.Name] = append(files[decl.Name], entry.File)
			}
		}
	}
	for name, list := range files {
		if len(list) < 2 {
			delete(files, name)
		}
	}
	return files
}
