// Package scan discovers scene and script-metadata files in a Unity project.
//
// Results are sorted lexicographically so that output ordering does not
// depend on file-system enumeration order.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scenes returns files directly inside dir whose names end in ext.
// Subdirectories are not searched.
func Scenes(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan scenes: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !hasExt(e.Name(), ext) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// ScriptMetas walks dir recursively and returns files whose names end in ext.
func ScriptMetas(dir, ext string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("scan scripts: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan scripts: not a directory: %s", dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && hasExt(d.Name(), ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan scripts: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// hasExt matches a possibly multi-part extension (".cs.meta") against name,
// case-insensitively.
func hasExt(name, ext string) bool {
	if ext == "" {
		return false
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return len(name) > len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext)
}
