package storage

import (
	"context"
	"io"
)

// BlobStore is durable storage for uploaded video files and generated
// thumbnail images, addressed by generated filenames.
type BlobStore interface {
	Save(ctx context.Context, name string, r io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Exists(ctx context.Context, name string) (bool, error)
	Delete(ctx context.Context, name string) error
}
