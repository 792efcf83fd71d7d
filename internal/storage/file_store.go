package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileStore saves blobs to disk under a base directory.
type FileStore struct {
	basePath string
}

// NewFileStore creates the base directory if missing.
func NewFileStore(basePath string) (*FileStore, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("storage base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

// Save writes a blob under its generated filename.
func (f *FileStore) Save(_ context.Context, name string, r io.Reader) error {
	out, err := os.Create(f.path(name))
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, r); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// Open returns a reader over a stored blob.
func (f *FileStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	rc, err := os.Open(f.path(name))
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return rc, nil
}

// Exists reports whether a blob is present.
func (f *FileStore) Exists(_ context.Context, name string) (bool, error) {
	_, err := os.Stat(f.path(name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Delete removes a blob.
func (f *FileStore) Delete(_ context.Context, name string) error {
	return os.Remove(f.path(name))
}

func (f *FileStore) path(name string) string {
	// Filenames are generated, but never trust them as paths.
	return filepath.Join(f.basePath, filepath.Base(name))
}
