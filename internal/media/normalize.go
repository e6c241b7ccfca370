package media

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/audio-recap/internal/models"
)

// Normalize converts inputPath (audio or video) to the configured audio format,
// mono at the configured sample rate, and measures its duration.
func (m *FFmpeg) Normalize(ctx context.Context, inputPath string) (models.AudioArtifact, error) {
	if !IsSupported(inputPath) {
		return models.AudioArtifact{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(inputPath))
	}

	// chunk files are named after this one, so one id keeps every run apart
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	outPath := filepath.Join(m.tempDir, fmt.Sprintf("%s-%s.%s", base, uuid.NewString(), m.cfg.Format))

	m.logger.Info(ctx, "Normalizing audio to %s: %s", m.cfg.Format, inputPath)

	// -vn drops any video stream so mp4/mov uploads become audio only
	args := []string{
		"-i", inputPath,
		"-vn",
		"-ar", strconv.Itoa(m.cfg.SampleRate),
		"-ac", "1",
		"-c:a", codecFor(m.cfg.Format),
	}
	if m.cfg.Format != "wav" && m.cfg.Format != "flac" {
		args = append(args, "-b:a", m.cfg.Bitrate)
	}
	args = append(args, "-threads", "0", "-y", outPath)

	if _, err := m.executor.Execute(ctx, m.cfg.Binary, args...); err != nil {
		return models.AudioArtifact{}, fmt.Errorf("ffmpeg normalize: %w", err)
	}

	duration, err := m.Probe(ctx, outPath)
	if err != nil {
		return models.AudioArtifact{}, err
	}

	m.logger.Info(ctx, "Audio normalized (%.1fs): %s", duration, outPath)
	return models.AudioArtifact{
		Path:            outPath,
		DurationSeconds: duration,
		MIMEType:        MIMEType(m.cfg.Format),
	}, nil
}

// Probe returns the duration of path in seconds
func (m *FFmpeg) Probe(ctx context.Context, path string) (float64, error) {
	out, err := m.executor.Execute(ctx, m.cfg.ProbeBinary,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", strings.TrimSpace(out), err)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("non-positive duration %v for %s", duration, path)
	}
	return duration, nil
}
