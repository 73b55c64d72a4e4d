// Package report writes scene dumps and the unused-script CSV.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Bunioslaw/UnityProjectParser/internal/ir"
)

const (
	// DumpSuffix is appended to a scene's file name to name its dump.
	DumpSuffix = ".dump"

	// UnusedScriptsFile is the name of the unused-script report.
	UnusedScriptsFile = "UnusedScripts.csv"
)

// UnusedScriptsHeader is the CSV header row.
var UnusedScriptsHeader = []string{"Relative Path", "GUID"}

// EnsureDir creates the output directory if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}

// DumpPath returns the dump file path for a scene file.
func DumpPath(outDir, scenePath string) string {
	return filepath.Join(outDir, filepath.Base(scenePath)+DumpSuffix)
}

// WriteDump writes a scene's rendered hierarchy to
// <outDir>/<scene file name>.dump and returns the path written.
func WriteDump(outDir, scenePath, text string) (string, error) {
	path := DumpPath(outDir, scenePath)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return path, fmt.Errorf("write dump: %w", err)
	}
	return path, nil
}

// FormatUnusedScripts renders the CSV report: header row, then one
// "<relative path>,<guid>" row per asset. Fields containing commas or quotes
// are quoted.
func FormatUnusedScripts(assets []ir.ScriptAsset) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(UnusedScriptsHeader); err != nil {
		return nil, err
	}
	for _, a := range assets {
		if err := w.Write([]string{a.RelativePath, string(a.ID)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteUnusedScripts writes <outDir>/UnusedScripts.csv and returns the path
// written.
func WriteUnusedScripts(outDir string, assets []ir.ScriptAsset) (string, error) {
	path := filepath.Join(outDir, UnusedScriptsFile)
	data, err := FormatUnusedScripts(assets)
	if err != nil {
		return path, fmt.Errorf("format unused scripts: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return path, fmt.Errorf("write unused scripts: %w", err)
	}
	return path, nil
}
