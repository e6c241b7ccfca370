package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nguyentantai21042004/audio-recap/internal/models"
)

type State string

const (
	StateEmpty      State = "empty"
	StateSummarized State = "summarized"
	StateChatting   State = "chatting"
)

var (
	ErrEmptySummary  = errors.New("summary text is empty")
	ErrEmptyQuestion = errors.New("question is empty")
	ErrNoSummary     = errors.New("no summary to ask about")
)

// Answerer produces an answer for a free-form prompt.
type Answerer interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// Session holds the latest summary and the questions asked about it.
// A new summary always discards the previous transcript.
type Session struct {
	ID string

	mu        sync.Mutex
	summary   models.AggregatedSummary
	turns     []models.ChatTurn
	updatedAt time.Time
}

// Snapshot is a copy of a session's state.
type Snapshot struct {
	ID        string                   `json:"id"`
	State     State                    `json:"state"`
	Summary   models.AggregatedSummary `json:"summary"`
	Turns     []models.ChatTurn        `json:"turns"`
	UpdatedAt time.Time                `json:"updated_at"`
}

func New(id string) *Session {
	return &Session{ID: id, turns: []models.ChatTurn{}, updatedAt: time.Now()}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

func (s *Session) state() State {
	switch {
	case s.summary.CombinedText == "":
		return StateEmpty
	case len(s.turns) == 0:
		return StateSummarized
	default:
		return StateChatting
	}
}

// SetSummary replaces the summary and clears the transcript.
func (s *Session) SetSummary(summary models.AggregatedSummary) error {
	if strings.TrimSpace(summary.CombinedText) == "" {
		return ErrEmptySummary
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = summary
	s.turns = []models.ChatTurn{}
	s.updatedAt = time.Now()
	return nil
}

// Ask answers question against the current summary and records the turn.
// The turn is recorded even when the answer is empty or the answerer failed;
// in the latter case the error is returned alongside it.
func (s *Session) Ask(ctx context.Context, answerer Answerer, question string) (models.ChatTurn, error) {
	if strings.TrimSpace(question) == "" {
		return models.ChatTurn{}, ErrEmptyQuestion
	}

	s.mu.Lock()
	summary := s.summary.CombinedText
	s.mu.Unlock()
	if summary == "" {
		return models.ChatTurn{}, ErrNoSummary
	}

	answer, askErr := answerer.Ask(ctx, QuestionPrompt(summary, question))
	if askErr != nil {
		answer = ""
		askErr = fmt.Errorf("answer question: %w", askErr)
	}
	turn := models.ChatTurn{Question: question, Answer: answer}

	s.mu.Lock()
	defer s.mu.Unlock()
	// a new summary arrived while the model was answering
	if s.summary.CombinedText != summary {
		return turn, errors.Join(askErr, errors.New("summary changed while answering; turn discarded"))
	}
	s.turns = append(s.turns, turn)
	s.updatedAt = time.Now()
	return turn, askErr
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:        s.ID,
		State:     s.state(),
		Summary:   s.summary,
		Turns:     append([]models.ChatTurn{}, s.turns...),
		UpdatedAt: s.updatedAt,
	}
}

// QuestionPrompt builds the prompt sent for a follow-up question.
func QuestionPrompt(summary, question string) string {
	return fmt.Sprintf("Based on the following summary, please answer the question:\n\n%s\n\nQuestion: %s", summary, question)
}
