package models

// ChunkResult is the outcome of summarizing one chunk.
// TokenCount is 0 only when Failed is set and SummaryText is the placeholder.
type ChunkResult struct {
	Source      AudioArtifact `json:"source"`
	SummaryText string        `json:"summary_text"`
	TokenCount  int           `json:"token_count"`
	Failed      bool          `json:"failed"`
}

// AggregatedSummary joins the chunk summaries of one recording.
type AggregatedSummary struct {
	CombinedText string `json:"combined_text"`
	TotalTokens  int    `json:"total_tokens"`
}
