package tempstore

import (
	"context"
	"io"
)

// Store writes uploaded blobs to scratch files.
type Store interface {
	Save(ctx context.Context, r io.Reader, suffix string) (string, error)
	Remove(ctx context.Context, path string)
	Dir() string
}
