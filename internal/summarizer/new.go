package summarizer

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/audio-recap/internal/logger"
	"github.com/nguyentantai21042004/audio-recap/internal/notify"
)

const (
	DefaultMaxRetries = 3
	DefaultRetryDelay = 2 * time.Second
)

type Options struct {
	// Instruction is the fixed prompt sent with every chunk.
	Instruction string
	MaxRetries  int
	RetryDelay  time.Duration
}

type implSummarizer struct {
	remote      Remote
	instruction string
	maxRetries  int
	delay       time.Duration
	notifier    notify.Notifier
	logger      logger.Logger
	sleep       func(ctx context.Context, d time.Duration) error
}

// New creates a Summarizer that uploads through remote and retries on not-ready uploads.
func New(remote Remote, opts Options, log logger.Logger) Summarizer {
	return newSummarizer(remote, opts, log)
}

func newSummarizer(remote Remote, opts Options, log logger.Logger) *implSummarizer {
	if opts.Instruction == "" {
		opts.Instruction = defaultPrompt
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}

	return &implSummarizer{
		remote:      remote,
		instruction: opts.Instruction,
		maxRetries:  opts.MaxRetries,
		delay:       opts.RetryDelay,
		notifier:    notify.Log{Logger: log},
		logger:      log,
		sleep:       sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
