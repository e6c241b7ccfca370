package summarizer

import "strings"

// EstimateTokens approximates len(text)/4 with a floor of 1 for non-empty text.
func EstimateTokens(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	t := len(text) / 4
	if t < 1 {
		t = 1
	}
	return t
}
