package main

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/audio-recap/internal/batch"
	"github.com/nguyentantai21042004/audio-recap/internal/watcher"
)

func runWatch(ctx context.Context, configPath string) error {
	a, err := newApp(ctx, configPath, "")
	if err != nil {
		return err
	}
	cfg := a.cfg

	if err := ensureDirectories(cfg.Paths.Input, cfg.Paths.Output, cfg.Paths.Archived); err != nil {
		return err
	}

	handler := batch.New(a.processor, cfg.Paths.Output, cfg.Paths.Archived, a.logger)
	w, err := watcher.New(cfg.Paths.Input, handler.Handle, a.logger, cfg.Performance.MaxConcurrent)
	if err != nil {
		return err
	}
	defer w.Stop()

	a.logger.Info(ctx, "========================================")
	a.logger.Info(ctx, "Audio Recap is ready!")
	a.logger.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	a.logger.Info(ctx, "Output: %s", cfg.Paths.Output)
	a.logger.Info(ctx, "Concurrent: %d recordings at once", cfg.Performance.MaxConcurrent)
	a.logger.Info(ctx, "Press Ctrl+C to stop")
	a.logger.Info(ctx, "========================================")

	err = w.Start(ctx)
	a.logger.Info(ctx, "Audio Recap stopped")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
