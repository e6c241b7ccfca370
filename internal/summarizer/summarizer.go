package summarizer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/audio-recap/internal/models"
	"github.com/nguyentantai21042004/audio-recap/internal/notify"
)

// Placeholder is the summary text recorded for a chunk that could not be summarized.
func Placeholder(chunkName string) string {
	return fmt.Sprintf("Error summarizing this chunk (%s)", chunkName)
}

// Summarize uploads artifact, asks for a summary and retries while the upload
// is not active yet. Every outcome is a ChunkResult.
func (s *implSummarizer) Summarize(ctx context.Context, artifact models.AudioArtifact) models.ChunkResult {
	n := notify.FromContext(ctx, s.notifier)
	name := filepath.Base(artifact.Path)

	var (
		handle   Handle
		uploaded bool
	)
	defer func() {
		if uploaded {
			if err := s.remote.Release(context.WithoutCancel(ctx), handle); err != nil {
				s.logger.Warn(ctx, "Failed to delete remote file %s: %v", handle.Name, err)
			}
		}
	}()

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		var err error
		if !uploaded {
			handle, err = s.remote.Upload(ctx, artifact.Path, artifact.MIMEType)
			if err == nil {
				uploaded = true
				s.logger.Debug(ctx, "Uploaded %s as %s (state %s)", name, handle.Name, handle.State)
			}
		}

		var gen Generation
		if err == nil {
			gen, err = s.remote.Generate(ctx, s.instruction, handle)
		}

		if err == nil {
			if strings.TrimSpace(gen.Text) == "" {
				return s.fail(ctx, n, artifact, errEmptyResponse)
			}
			tokens := gen.Tokens
			if tokens <= 0 {
				tokens = EstimateTokens(gen.Text)
			}
			s.logger.Info(ctx, "Summarized %s (%d tokens)", name, tokens)
			return models.ChunkResult{
				Source:      artifact,
				SummaryText: gen.Text,
				TokenCount:  tokens,
			}
		}

		if !IsNotReady(err) {
			return s.fail(ctx, n, artifact, err)
		}

		if attempt == s.maxRetries {
			break
		}
		n.Warn(ctx, fmt.Sprintf("File not ready yet, retrying (%d/%d)...", attempt, s.maxRetries))
		if err := s.sleep(ctx, s.delay); err != nil {
			return s.fail(ctx, n, artifact, err)
		}
	}

	return s.fail(ctx, n, artifact, fmt.Errorf("file still not active after %d attempts", s.maxRetries))
}

func (s *implSummarizer) fail(ctx context.Context, n notify.Notifier, artifact models.AudioArtifact, err error) models.ChunkResult {
	name := filepath.Base(artifact.Path)
	n.Error(ctx, fmt.Sprintf("Error summarizing audio chunk '%s': %v", name, err))
	return models.ChunkResult{
		Source:      artifact,
		SummaryText: Placeholder(name),
		TokenCount:  0,
		Failed:      true,
	}
}
