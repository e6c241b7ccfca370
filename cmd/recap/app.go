package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/nguyentantai21042004/audio-recap/internal/config"
	"github.com/nguyentantai21042004/audio-recap/internal/logger"
	"github.com/nguyentantai21042004/audio-recap/internal/media"
	"github.com/nguyentantai21042004/audio-recap/internal/processor"
	"github.com/nguyentantai21042004/audio-recap/internal/summarizer"
	"github.com/nguyentantai21042004/audio-recap/internal/tempstore"
	"github.com/nguyentantai21042004/audio-recap/pkg/executor"
)

// app holds the wired pipeline shared by every command
type app struct {
	cfg       *config.Config
	logger    logger.Logger
	gemini    *summarizer.Gemini
	temp      tempstore.Store
	processor processor.Processor
}

func newApp(ctx context.Context, configPath, prompt string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if prompt != "" {
		cfg.Gemini.Prompt = prompt
	}

	log := logger.NewWithWriter(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Audio Recap")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Model: %s (%d API key(s))", cfg.Gemini.Model, len(cfg.Gemini.APIKeys))
	log.Info(ctx, "Chunk length: %.0fs, retries: %d every %s", cfg.Chunking.MaxDurationSeconds, cfg.Retry.MaxRetries, cfg.Retry.Delay)

	temp, err := tempstore.New(cfg.Paths.Temp, log)
	if err != nil {
		return nil, fmt.Errorf("temp store: %w", err)
	}

	gemini, err := summarizer.NewGemini(cfg.Gemini.APIKeys, cfg.Gemini.Model, log)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	ff := media.New(cfg.FFmpeg, temp.Dir(), executor.New(), log)
	sum := summarizer.New(gemini, summarizer.Options{
		Instruction: summarizer.Instruction(cfg.Gemini.Prompt),
		MaxRetries:  cfg.Retry.MaxRetries,
		RetryDelay:  cfg.Retry.Delay,
	}, log)

	return &app{
		cfg:       cfg,
		logger:    log,
		gemini:    gemini,
		temp:      temp,
		processor: processor.New(ff, ff, sum, temp, cfg.Chunking.MaxDurationSeconds, log),
	}, nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
