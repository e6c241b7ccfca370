package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/audio-recap/internal/models"
)

// Summarizer turns one audio artifact into a ChunkResult. It never returns an
// error: failures become a placeholder result with a zero token count.
type Summarizer interface {
	Summarize(ctx context.Context, artifact models.AudioArtifact) models.ChunkResult
}

// Handle identifies an uploaded file on the remote side.
type Handle struct {
	Name     string
	URI      string
	MIMEType string
	State    string

	key int
}

// Generation is the text produced for a handle and its token count.
type Generation struct {
	Text   string
	Tokens int
}

// Remote is the generative-model endpoint. Implementations return *RemoteError
// so callers can tell a not-yet-active upload from a terminal failure.
type Remote interface {
	Upload(ctx context.Context, path, mimeType string) (Handle, error)
	Generate(ctx context.Context, instruction string, h Handle) (Generation, error)
	Release(ctx context.Context, h Handle) error
	Ask(ctx context.Context, prompt string) (string, error)
}
