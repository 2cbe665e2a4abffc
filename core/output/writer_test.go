package output

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	tests := []struct {
		name     string
		dir      string
		file     string
		ext      string
		wantPath string
	}{
		{"markdown in cwd", "", "criteria.md", ".md", "criteria.md"},
		{"extension swapped", "", "criteria.md", ".pdf", "criteria.pdf"},
		{"output dir", "out", "criteria.md", ".json", filepath.Join("out", "criteria.json")},
		{"nested name", "out", filepath.Join("docs", "c.md"), ".md", filepath.Join("out", "docs", "c.md")},
		{"name without extension", "", "criteria", ".md", "criteria.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memFS := afero.NewMemMapFs()
			w, err := New(memFS, tt.dir)
			require.NoError(t, err)

			path, err := w.Write(tt.file, []byte("data"), tt.ext)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, path)

			got, err := afero.ReadFile(memFS, path)
			require.NoError(t, err)
			assert.Equal(t, "data", string(got))
		})
	}
}

func TestNewCreatesDirectory(t *testing.T) {
	memFS := afero.NewMemMapFs()
	_, err := New(memFS, filepath.Join("a", "b"))
	require.NoError(t, err)

	ok, err := afero.DirExists(memFS, filepath.Join("a", "b"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWriteReadOnlyFS(t *testing.T) {
	w, err := New(afero.NewReadOnlyFs(afero.NewMemMapFs()), "")
	require.NoError(t, err)

	_, err = w.Write("x.md", []byte("data"), ".md")
	assert.Error(t, err)
}
