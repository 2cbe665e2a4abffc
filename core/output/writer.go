// Package output writes the rendered document to disk.
// The file name comes from the configured output name with its extension
// replaced by the renderer's (e.g. criteria.md → criteria.pdf).
package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Writer writes rendered output to a directory.
type Writer struct {
	fs        afero.Fs
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// An empty outputDir writes relative to the working directory.
func New(fsys afero.Fs, outputDir string) (*Writer, error) {
	if outputDir != "" {
		if err := fsys.MkdirAll(outputDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	return &Writer{fs: fsys, OutputDir: outputDir}, nil
}

// Write stores data under name, swapping name's extension for ext.
// It returns the path written.
func (w *Writer) Write(name string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, strings.TrimSuffix(name, filepath.Ext(name))+ext)

	if dir := filepath.Dir(path); dir != "." {
		if err := w.fs.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := afero.WriteFile(w.fs, path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}
