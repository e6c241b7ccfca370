package batch

import (
	"github.com/nguyentantai21042004/audio-recap/internal/logger"
	"github.com/nguyentantai21042004/audio-recap/internal/processor"
)

// Handler summarizes recordings dropped into the input directory and writes
// the results next to each other in the output directory.
type Handler struct {
	processor   processor.Processor
	outputDir   string
	archivedDir string
	logger      logger.Logger
}

func New(proc processor.Processor, outputDir, archivedDir string, log logger.Logger) *Handler {
	return &Handler{
		processor:   proc,
		outputDir:   outputDir,
		archivedDir: archivedDir,
		logger:      log,
	}
}
