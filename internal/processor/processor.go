package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/audio-recap/internal/models"
)

// Process normalizes, splits and summarizes inputPath chunk by chunk.
// A local I/O failure aborts the whole run; a chunk that fails to summarize
// only contributes its placeholder.
func (p *implProcessor) Process(ctx context.Context, inputPath string) (models.AggregatedSummary, error) {
	startTime := time.Now()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting summarization: %s", inputPath)
	p.logger.Info(ctx, "========================================")

	// Step 1: Normalize to the upload format
	artifact, err := p.normalizer.Normalize(ctx, inputPath)
	if err != nil {
		return models.AggregatedSummary{}, fmt.Errorf("normalize: %w", err)
	}
	defer p.cleaner.Remove(ctx, artifact.Path)

	// Step 2: Split and summarize sequentially
	seq := p.splitter.Split(artifact, p.maxDuration)
	total := seq.Len()
	p.logger.Info(ctx, "Duration %.1fs, %d chunk(s) of at most %.0fs", artifact.DurationSeconds, total, p.maxDuration)

	results := make([]models.ChunkResult, 0, total)
	i := 0
	for chunk, err := range seq.All(ctx) {
		if err != nil {
			return models.AggregatedSummary{}, fmt.Errorf("split: %w", err)
		}
		i++
		p.logger.Info(ctx, "[%d/%d] Summarizing chunk: %s", i, total, chunk.Path)

		results = append(results, p.summarizer.Summarize(ctx, chunk))

		if chunk.Path != artifact.Path {
			p.cleaner.Remove(ctx, chunk.Path)
		}
	}

	// Step 3: Aggregate
	summary := Aggregate(results)

	failed := 0
	for _, r := range results {
		if r.Failed {
			failed++
		}
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Summarization completed: %d chunk(s), %d failed", len(results), failed)
	p.logger.Info(ctx, "Total tokens: %d", summary.TotalTokens)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return summary, nil
}
