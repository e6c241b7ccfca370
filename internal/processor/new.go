package processor

import (
	"github.com/nguyentantai21042004/audio-recap/internal/logger"
	"github.com/nguyentantai21042004/audio-recap/internal/media"
	"github.com/nguyentantai21042004/audio-recap/internal/summarizer"
)

type implProcessor struct {
	normalizer  media.Normalizer
	splitter    media.Splitter
	summarizer  summarizer.Summarizer
	cleaner     Cleaner
	maxDuration float64
	logger      logger.Logger
}

// New creates a Processor. maxDuration is the chunk length in seconds.
func New(normalizer media.Normalizer, splitter media.Splitter, sum summarizer.Summarizer, cleaner Cleaner, maxDuration float64, log logger.Logger) Processor {
	if maxDuration <= 0 {
		maxDuration = media.DefaultMaxDuration
	}
	return &implProcessor{
		normalizer:  normalizer,
		splitter:    splitter,
		summarizer:  sum,
		cleaner:     cleaner,
		maxDuration: maxDuration,
		logger:      log,
	}
}
