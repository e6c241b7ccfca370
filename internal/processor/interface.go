package processor

import (
	"context"

	"github.com/nguyentantai21042004/audio-recap/internal/models"
)

// Processor summarizes a whole recording
type Processor interface {
	Process(ctx context.Context, inputPath string) (models.AggregatedSummary, error)
}

// Cleaner removes temporary artifacts once they are no longer needed
type Cleaner interface {
	Remove(ctx context.Context, path string)
}
