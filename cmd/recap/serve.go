package main

import (
	"context"

	"github.com/nguyentantai21042004/audio-recap/internal/httpserver"
	"github.com/nguyentantai21042004/audio-recap/internal/session"
)

func runServe(ctx context.Context, configPath string) error {
	a, err := newApp(ctx, configPath, "")
	if err != nil {
		return err
	}

	h := httpserver.NewHandler(session.NewStore(), a.temp, a.processor, a.gemini, a.logger)
	return httpserver.Serve(ctx, a.cfg.Server.Address, h)
}
