package media

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/audio-recap/internal/models"
)

const DefaultMaxDuration = 300.0

// ErrSequenceConsumed is yielded when a ChunkSequence is iterated a second time.
var ErrSequenceConsumed = errors.New("chunk sequence already consumed")

// tolerance absorbs float error so 600/300 plans 2 chunks, not 3
const tolerance = 1e-9

// Span is a [Start, Start+Duration) window of the source recording, in seconds.
type Span struct {
	Index    int
	Start    float64
	Duration float64
}

// PlanChunks divides duration into spans of maxDuration seconds. The last
// span holds the remainder; an exact multiple leaves no empty trailing span.
func PlanChunks(duration, maxDuration float64) []Span {
	if maxDuration <= 0 {
		maxDuration = DefaultMaxDuration
	}
	if duration <= 0 {
		return nil
	}
	if duration <= maxDuration {
		return []Span{{Index: 0, Start: 0, Duration: duration}}
	}

	n := int(math.Ceil(duration/maxDuration - tolerance))
	spans := make([]Span, 0, n)
	for i := 0; i < n; i++ {
		start := float64(i) * maxDuration
		length := maxDuration
		if i == n-1 {
			length = duration - start
		}
		spans = append(spans, Span{Index: i, Start: start, Duration: length})
	}
	return spans
}

// ChunkSequence lazily materializes the chunks of one artifact. It can be
// ranged over once.
type ChunkSequence struct {
	media    *FFmpeg
	source   models.AudioArtifact
	spans    []Span
	split    bool
	consumed bool
}

// Split plans the chunks of artifact. Nothing is written until the sequence is ranged over.
func (m *FFmpeg) Split(artifact models.AudioArtifact, maxDuration float64) *ChunkSequence {
	if maxDuration <= 0 {
		maxDuration = DefaultMaxDuration
	}
	return &ChunkSequence{
		media:  m,
		source: artifact,
		spans:  PlanChunks(artifact.DurationSeconds, maxDuration),
		split:  artifact.DurationSeconds > maxDuration,
	}
}

// Len is the number of chunks the sequence will yield.
func (s *ChunkSequence) Len() int {
	if !s.split {
		return 1
	}
	return len(s.spans)
}

// All yields each chunk in chronological order. A short recording yields the
// source artifact itself. A materialization error is yielded once and ends
// the sequence.
func (s *ChunkSequence) All(ctx context.Context) iter.Seq2[models.AudioArtifact, error] {
	return func(yield func(models.AudioArtifact, error) bool) {
		if s.consumed {
			yield(models.AudioArtifact{}, ErrSequenceConsumed)
			return
		}
		s.consumed = true

		if !s.split {
			yield(s.source, nil)
			return
		}

		for _, span := range s.spans {
			artifact, err := s.media.materialize(ctx, s.source, span)
			if err != nil {
				yield(models.AudioArtifact{}, err)
				return
			}
			if !yield(artifact, nil) {
				return
			}
		}
	}
}

// materialize writes one span of source to its own temp file
func (m *FFmpeg) materialize(ctx context.Context, source models.AudioArtifact, span Span) (models.AudioArtifact, error) {
	ext := filepath.Ext(source.Path)
	base := strings.TrimSuffix(filepath.Base(source.Path), ext)
	outPath := filepath.Join(m.tempDir, fmt.Sprintf("%s-part%d%s", base, span.Index, ext))

	args := []string{
		"-y",
		"-ss", formatSeconds(span.Start),
		"-t", formatSeconds(span.Duration),
		"-i", source.Path,
		"-c", "copy",
		outPath,
	}

	m.logger.Debug(ctx, "Cutting chunk %d [%.1fs +%.1fs]: %s", span.Index, span.Start, span.Duration, outPath)

	if _, err := m.executor.Execute(ctx, m.cfg.Binary, args...); err != nil {
		return models.AudioArtifact{}, fmt.Errorf("ffmpeg cut chunk %d: %w", span.Index, err)
	}

	return models.AudioArtifact{
		Path:            outPath,
		DurationSeconds: span.Duration,
		MIMEType:        source.MIMEType,
	}, nil
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 3, 64)
}
