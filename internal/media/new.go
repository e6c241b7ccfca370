package media

import (
	"github.com/nguyentantai21042004/audio-recap/internal/config"
	"github.com/nguyentantai21042004/audio-recap/internal/logger"
	"github.com/nguyentantai21042004/audio-recap/pkg/executor"
)

// FFmpeg implements Normalizer and Splitter on top of the ffmpeg and ffprobe binaries.
type FFmpeg struct {
	cfg      config.FFmpegConfig
	tempDir  string
	executor executor.Executor
	logger   logger.Logger
}

// New creates the ffmpeg-backed normalizer and splitter. Output files go to tempDir.
func New(cfg config.FFmpegConfig, tempDir string, exec executor.Executor, log logger.Logger) *FFmpeg {
	return &FFmpeg{
		cfg:      cfg,
		tempDir:  tempDir,
		executor: exec,
		logger:   log,
	}
}
