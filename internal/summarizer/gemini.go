package summarizer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/audio-recap/internal/logger"
)

const (
	statusFailedPrecondition = "FAILED_PRECONDITION"
	statusResourceExhausted  = "RESOURCE_EXHAUSTED"
)

// Gemini is the Remote backed by the Gemini Developer API. It rotates through
// the supplied API keys when one is rate limited.
type Gemini struct {
	apiKeys    []string
	model      string
	logger     logger.Logger
	mu         sync.Mutex
	currentKey int
	clients    map[int]*genai.Client
}

// NewGemini creates a Remote for model using apiKeys in order.
func NewGemini(apiKeys []string, model string, log logger.Logger) (*Gemini, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("at least one Gemini API key is required")
	}
	return &Gemini{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
		clients: make(map[int]*genai.Client),
	}, nil
}

// Upload sends the file at path to the Files API. Files belong to the key that
// uploaded them, so the handle remembers it.
func (g *Gemini) Upload(ctx context.Context, path, mimeType string) (Handle, error) {
	var h Handle
	err := g.withKeyRotation(ctx, "upload", func(client *genai.Client, key int) error {
		f, err := client.Files.UploadFromPath(ctx, path, &genai.UploadFileConfig{
			MIMEType:    mimeType,
			DisplayName: filepath.Base(path),
		})
		if err != nil {
			return err
		}
		h = Handle{Name: f.Name, URI: f.URI, MIMEType: f.MIMEType, State: string(f.State), key: key}
		if h.MIMEType == "" {
			h.MIMEType = mimeType
		}
		return nil
	})
	return h, err
}

// Generate asks for instruction applied to the uploaded file and counts the
// tokens of the answer.
func (g *Gemini) Generate(ctx context.Context, instruction string, h Handle) (Generation, error) {
	if h.State == string(genai.FileStateFailed) {
		return Generation{}, &RemoteError{Kind: KindTerminal, Op: "generate", Err: fmt.Errorf("file %s failed processing", h.Name)}
	}

	client, err := g.client(ctx, h.key)
	if err != nil {
		return Generation{}, &RemoteError{Kind: KindTerminal, Op: "generate", Err: err}
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(instruction),
			genai.NewPartFromURI(h.URI, h.MIMEType),
		}, genai.RoleUser),
	}

	result, err := client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return Generation{}, classify("generate", err)
	}

	text := responseText(result)
	if strings.TrimSpace(text) == "" {
		return Generation{}, &RemoteError{Kind: KindTerminal, Op: "generate", Err: errEmptyResponse}
	}

	return Generation{Text: text, Tokens: g.countTokens(ctx, client, text, result)}, nil
}

// countTokens prefers CountTokens on the text, then the response usage metadata,
// then the length heuristic.
func (g *Gemini) countTokens(ctx context.Context, client *genai.Client, text string, result *genai.GenerateContentResponse) int {
	resp, err := client.Models.CountTokens(ctx, g.model, genai.Text(text), nil)
	if err == nil && resp.TotalTokens > 0 {
		return int(resp.TotalTokens)
	}
	if err != nil {
		g.logger.Debug(ctx, "CountTokens failed, using usage metadata: %v", err)
	}
	if result.UsageMetadata != nil && result.UsageMetadata.CandidatesTokenCount > 0 {
		return int(result.UsageMetadata.CandidatesTokenCount)
	}
	return EstimateTokens(text)
}

// Release deletes the uploaded file.
func (g *Gemini) Release(ctx context.Context, h Handle) error {
	if h.Name == "" {
		return nil
	}
	client, err := g.client(ctx, h.key)
	if err != nil {
		return err
	}
	if _, err := client.Files.Delete(ctx, h.Name, nil); err != nil {
		return classify("delete", err)
	}
	return nil
}

// Ask sends a text-only prompt and returns the answer text.
func (g *Gemini) Ask(ctx context.Context, prompt string) (string, error) {
	var text string
	err := g.withKeyRotation(ctx, "ask", func(client *genai.Client, _ int) error {
		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			return err
		}
		text = responseText(result)
		return nil
	})
	return text, err
}

// withKeyRotation runs fn with the current key and moves to the next key on
// quota errors, trying each key at most once.
func (g *Gemini) withKeyRotation(ctx context.Context, op string, fn func(client *genai.Client, key int) error) error {
	var lastErr error

	for range len(g.apiKeys) {
		key := g.current()

		client, err := g.client(ctx, key)
		if err != nil {
			lastErr = &RemoteError{Kind: KindTerminal, Op: op, Err: err}
			g.rotateKey(key)
			continue
		}

		err = fn(client, key)
		if err == nil {
			return nil
		}

		rerr := classify(op, err)
		if IsQuota(rerr) {
			g.logger.Warn(ctx, "Key %d rate limited, rotating...", key+1)
			g.rotateKey(key)
			lastErr = rerr
			continue
		}
		return rerr
	}

	return &RemoteError{Kind: KindTerminal, Op: op, Err: fmt.Errorf("all API keys exhausted: %w", lastErr)}
}

func (g *Gemini) current() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey
}

// rotateKey advances past key unless another caller already did.
func (g *Gemini) rotateKey(key int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == key {
		g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	}
}

func (g *Gemini) client(ctx context.Context, key int) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c, ok := g.clients[key]; ok {
		return c, nil
	}
	if key < 0 || key >= len(g.apiKeys) {
		return nil, fmt.Errorf("no API key at index %d", key)
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKeys[key],
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	g.clients[key] = c
	return c, nil
}

func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" && !part.Thought {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

// classify maps a Gemini error onto a RemoteError kind using the API status.
func classify(op string, err error) error {
	var re *RemoteError
	if errors.As(err, &re) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &RemoteError{Kind: KindTerminal, Op: op, Err: err}
	}

	apiErr, ok := asAPIError(err)
	if !ok {
		return &RemoteError{Kind: KindTerminal, Op: op, Err: err}
	}

	switch {
	case apiErr.Code == http.StatusTooManyRequests || apiErr.Status == statusResourceExhausted:
		return &RemoteError{Kind: KindQuota, Op: op, Err: err}
	case apiErr.Status == statusFailedPrecondition:
		return &RemoteError{Kind: KindNotReady, Op: op, Err: err}
	default:
		return &RemoteError{Kind: KindTerminal, Op: op, Err: err}
	}
}

func asAPIError(err error) (genai.APIError, bool) {
	var v genai.APIError
	if errors.As(err, &v) {
		return v, true
	}
	var p *genai.APIError
	if errors.As(err, &p) && p != nil {
		return *p, true
	}
	return genai.APIError{}, false
}
