// Package collect expands user-selected paths into the MP3 files to tag.
package collect

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Extension is matched case-insensitively.
const Extension = ".mp3"

// Collection is the outcome of expanding a selection.
type Collection struct {
	Files   []string // absolute MP3 paths, deduplicated, first-seen order
	NotMP3  []string // files dropped because of their extension
	Missing []string // selected paths that do not exist or could not be read
	Dirs    []string // selected paths that were directories
}

// Excluded is the number of selected entries that will not be tagged.
func (c Collection) Excluded() int {
	return len(c.NotMP3) + len(c.Missing)
}

// Empty reports whether no MP3 file was found.
func (c Collection) Empty() bool {
	return len(c.Files) == 0
}

// Collect walks the selection. Directories are expanded recursively in
// lexical order. It never fails: problems are recorded in the result.
func Collect(paths []string) Collection {
	var c Collection
	seen := make(map[string]bool)
	seenDirs := make(map[string]bool)

	add := func(list *[]string, path string) {
		if seen[path] {
			return
		}
		seen[path] = true
		*list = append(*list, path)
	}

	for _, raw := range paths {
		path, ok := normalize(raw)
		if !ok {
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			add(&c.Missing, path)
			continue
		}

		if !info.IsDir() {
			if IsMP3(path) {
				add(&c.Files, path)
			} else {
				add(&c.NotMP3, path)
			}
			continue
		}

		if !seenDirs[path] {
			seenDirs[path] = true
			c.Dirs = append(c.Dirs, path)
		}

		filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				// unreadable entry: record it and skip its subtree
				add(&c.Missing, p)
				if d != nil && d.IsDir() && p != path {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if IsMP3(p) {
				add(&c.Files, p)
			} else {
				add(&c.NotMP3, p)
			}
			return nil
		})
	}

	return c
}

// IsMP3 checks the file extension only.
func IsMP3(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Extension)
}

// normalize expands "~/", makes the path absolute and cleans it.
func normalize(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	if raw == "~" || strings.HasPrefix(raw, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			raw = filepath.Join(home, strings.TrimPrefix(raw, "~"))
		}
	}

	abs, err := filepath.Abs(raw)
	if err != nil {
		return filepath.Clean(raw), true
	}
	return abs, true
}
