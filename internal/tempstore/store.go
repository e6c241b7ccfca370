package tempstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Save copies r into a new file named <uuid><ext> and returns its path.
// Only the extension of suffix is kept.
func (s *implStore) Save(ctx context.Context, r io.Reader, suffix string) (string, error) {
	path := filepath.Join(s.dir, uuid.NewString()+cleanSuffix(suffix))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	n, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close temp file: %w", err)
	}

	s.logger.Debug(ctx, "Saved upload (%d bytes): %s", n, path)
	return path, nil
}

// Remove deletes path, logging a warning if that fails
func (s *implStore) Remove(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
		return
	}
	s.logger.Debug(ctx, "Cleaned up temp file: %s", path)
}

func (s *implStore) Dir() string {
	return s.dir
}

func cleanSuffix(suffix string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(suffix)))
	if ext == "." {
		return ""
	}
	return ext
}
