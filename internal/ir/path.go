package ir

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// RelativeAssetPath converts path into a slash-separated, NFC-normalized path
// relative to root.
//
// macOS file systems hand back decomposed (NFD) names; normalizing keeps the
// unused-script report byte-stable across platforms.
func RelativeAssetPath(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	return norm.NFC.String(filepath.ToSlash(rel)), nil
}

// TrimMetaSuffix removes the trailing metadata component from a script meta
// file name, e.g. "Player.cs.meta" -> "Player.cs".
//
// The suffix is derived from the extension actually matched, so a
// ".meta"-style extension of any length is handled.
func TrimMetaSuffix(path, ext string) string {
	if len(path) < len(ext) || !strings.EqualFold(path[len(path)-len(ext):], ext) {
		return path
	}
	// ext ".cs.meta" -> drop only ".meta", the asset keeps its own extension.
	meta := filepath.Ext(ext)
	if meta == "" {
		meta = ext
	}
	return path[:len(path)-len(meta)]
}
