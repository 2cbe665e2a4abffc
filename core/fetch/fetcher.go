// Package fetch implements the Fetcher interface over a filesystem.
// Source documents are read from a single input directory.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/gaurav-prasanna/criteriamd/core"
	"github.com/spf13/afero"
)

// FileFetcher reads HTML documents from an input directory.
type FileFetcher struct {
	fs  afero.Fs
	dir string
}

// New creates a FileFetcher rooted at dir on the given filesystem.
func New(fsys afero.Fs, dir string) *FileFetcher {
	return &FileFetcher{fs: fsys, dir: dir}
}

// Fetch reads the named document. A missing document returns an error
// matching fs.ErrNotExist so callers can skip it.
func (f *FileFetcher) Fetch(ctx context.Context, name string) (*core.FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(f.dir, name)
	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return &core.FetchResult{
		Name: name,
		Path: path,
		HTML: string(data),
	}, nil
}
