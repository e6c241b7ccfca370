package notify

import (
	"context"
	"sync"

	"github.com/nguyentantai21042004/audio-recap/internal/logger"
	"github.com/nguyentantai21042004/audio-recap/internal/models"
)

// Notifier receives user-visible warnings and errors.
type Notifier interface {
	Warn(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
}

// Log forwards notices to a logger only.
type Log struct {
	Logger logger.Logger
}

func (n Log) Warn(ctx context.Context, msg string)  { n.Logger.Warn(ctx, "%s", msg) }
func (n Log) Error(ctx context.Context, msg string) { n.Logger.Error(ctx, "%s", msg) }

// Collector records notices in order and logs them.
type Collector struct {
	logger  logger.Logger
	mu      sync.Mutex
	notices []models.Notice
}

func NewCollector(log logger.Logger) *Collector {
	return &Collector{logger: log}
}

func (c *Collector) Warn(ctx context.Context, msg string) {
	c.add(models.NoticeWarning, msg)
	if c.logger != nil {
		c.logger.Warn(ctx, "%s", msg)
	}
}

func (c *Collector) Error(ctx context.Context, msg string) {
	c.add(models.NoticeError, msg)
	if c.logger != nil {
		c.logger.Error(ctx, "%s", msg)
	}
}

func (c *Collector) add(level models.NoticeLevel, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, models.Notice{Level: level, Message: msg})
}

// Notices returns a copy of everything recorded so far.
func (c *Collector) Notices() []models.Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Notice(nil), c.notices...)
}

type ctxKey struct{}

// WithNotifier attaches n to ctx so deeper layers report to the caller's sink.
func WithNotifier(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, ctxKey{}, n)
}

// FromContext returns the notifier attached to ctx, or fallback.
func FromContext(ctx context.Context, fallback Notifier) Notifier {
	if n, ok := ctx.Value(ctxKey{}).(Notifier); ok && n != nil {
		return n
	}
	return fallback
}
