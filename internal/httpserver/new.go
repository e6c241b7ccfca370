package httpserver

import (
	"github.com/nguyentantai21042004/audio-recap/internal/logger"
	"github.com/nguyentantai21042004/audio-recap/internal/processor"
	"github.com/nguyentantai21042004/audio-recap/internal/session"
	"github.com/nguyentantai21042004/audio-recap/internal/tempstore"
)

const defaultMaxUploadBytes = 512 << 20

// Handler wires HTTP routes to the summarization pipeline and chat sessions.
type Handler struct {
	sessions       *session.Store
	uploads        tempstore.Store
	processor      processor.Processor
	answerer       session.Answerer
	logger         logger.Logger
	maxUploadBytes int64
}

// NewHandler constructs a Handler instance.
func NewHandler(sessions *session.Store, uploads tempstore.Store, proc processor.Processor, answerer session.Answerer, log logger.Logger) *Handler {
	return &Handler{
		sessions:       sessions,
		uploads:        uploads,
		processor:      proc,
		answerer:       answerer,
		logger:         log,
		maxUploadBytes: defaultMaxUploadBytes,
	}
}
