// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DirCache is a Cache backed by a flat directory. The directory is created
// on first use.
type DirCache struct {
	Dir string
}

// NewDirCache returns a DirCache rooted at dir.
func NewDirCache(dir string) *DirCache {
	return &DirCache{Dir: dir}
}

// Lookup implements Cache.
func (c *DirCache) Lookup(name string) (string, bool, error) {
	path := filepath.Join(c.Dir, name)
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return path, true, nil
	case errors.Is(err, os.ErrNotExist):
		return path, false, nil
	default:
		return path, false, err
	}
}

// Store implements Cache. The content goes to a temporary file first and is
// renamed into place once complete, so an interrupted download never leaves
// a file under name.
func (c *DirCache) Store(name string, r io.Reader) (string, error) {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", c.Dir, err)
	}
	destPath := filepath.Join(c.Dir, name)

	tmpFile, err := os.CreateTemp(c.Dir, ".fetch-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, r)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming temp file: %w", err)
	}
	return destPath, nil
}
