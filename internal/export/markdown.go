package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/nguyentantai21042004/audio-recap/internal/session"
)

// Markdown renders the summary followed by the question/answer transcript.
func Markdown(title string, snap session.Snapshot, at time.Time) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n_%s_\n\n", title, at.Format("2006-01-02 15:04"))
	sb.WriteString(strings.TrimSpace(snap.Summary.CombinedText))
	fmt.Fprintf(&sb, "\n\nTotal tokens: %d\n", snap.Summary.TotalTokens)

	if len(snap.Turns) > 0 {
		sb.WriteString("\n## Questions\n")
		for _, turn := range snap.Turns {
			fmt.Fprintf(&sb, "\n**Question:** %s\n\n**Answer:** %s\n\n---\n", turn.Question, strings.TrimSpace(turn.Answer))
		}
	}

	return sb.String()
}
