package tempstore

import (
	"fmt"
	"os"

	"github.com/nguyentantai21042004/audio-recap/internal/logger"
)

type implStore struct {
	dir    string
	logger logger.Logger
}

// New creates a Store rooted at dir, creating the directory if needed
func New(dir string, log logger.Logger) (Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create temp dir %s: %w", dir, err)
	}
	return &implStore{dir: dir, logger: log}, nil
}
