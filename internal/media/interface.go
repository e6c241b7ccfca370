package media

import (
	"context"

	"github.com/nguyentantai21042004/audio-recap/internal/models"
)

// Normalizer converts recordings into the single encoding the remote endpoint accepts.
type Normalizer interface {
	Normalize(ctx context.Context, inputPath string) (models.AudioArtifact, error)
	Probe(ctx context.Context, path string) (float64, error)
}

// Splitter cuts an artifact into bounded-duration chunks.
type Splitter interface {
	Split(artifact models.AudioArtifact, maxDuration float64) *ChunkSequence
}
