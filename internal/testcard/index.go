// Package testcard supplies the calibration content each camera slot renders:
// cards loaded from disk when a card directory is present, synthesized
// otherwise.
package testcard

import (
	"os"
	"path/filepath"
	"strings"
)

// Index maps lowercase card stems to filesystem paths.
// PNG files take priority over JPEG or TGA for the same stem (alpha channel).
type Index struct {
	entries map[string]string // stem.lower() → full path
}

// BuildIndex scans cardDir and its subdirectories for card images.
func BuildIndex(cardDir string) *Index {
	idx := &Index{entries: make(map[string]string)}
	if cardDir == "" {
		return idx
	}

	filepath.WalkDir(cardDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".png" && ext != ".jpg" && ext != ".jpeg" && ext != ".tga" {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

		existing, exists := idx.entries[stem]
		if !exists {
			idx.entries[stem] = path
		} else if ext == ".png" && strings.ToLower(filepath.Ext(existing)) != ".png" {
			// PNG wins (has alpha channel)
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

// ResolvePath returns the filesystem path for a card name, or ("", false).
func (idx *Index) ResolvePath(name string) (string, bool) {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(name)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	path, ok := idx.entries[stem]
	return path, ok
}

// Len returns the number of indexed cards.
func (idx *Index) Len() int {
	return len(idx.entries)
}
