package processor

import (
	"strings"

	"github.com/nguyentantai21042004/audio-recap/internal/models"
)

// Aggregate space-joins chunk summaries in order, placeholders included, and
// sums their token counts.
func Aggregate(results []models.ChunkResult) models.AggregatedSummary {
	texts := make([]string, 0, len(results))
	total := 0
	for _, r := range results {
		texts = append(texts, r.SummaryText)
		total += r.TokenCount
	}
	return models.AggregatedSummary{
		CombinedText: strings.Join(texts, " "),
		TotalTokens:  total,
	}
}
