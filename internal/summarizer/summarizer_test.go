package summarizer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nguyentantai21042004/audio-recap/internal/logger"
	"github.com/nguyentantai21042004/audio-recap/internal/models"
	"github.com/nguyentantai21042004/audio-recap/internal/notify"
)

// fakeRemote replays scripted Generate outcomes per artifact path.
type fakeRemote struct {
	uploadErr error
	script    map[string][]outcome

	uploads   int
	generates int
	released  []string
}

type outcome struct {
	gen Generation
	err error
}

func (f *fakeRemote) Upload(ctx context.Context, path, mimeType string) (Handle, error) {
	f.uploads++
	if f.uploadErr != nil {
		return Handle{}, f.uploadErr
	}
	return Handle{Name: "files/" + path, URI: "uri://" + path, MIMEType: mimeType}, nil
}

func (f *fakeRemote) Generate(ctx context.Context, instruction string, h Handle) (Generation, error) {
	f.generates++
	path := h.Name[len("files/"):]
	steps := f.script[path]
	if len(steps) == 0 {
		return Generation{}, errors.New("unexpected call")
	}
	step := steps[0]
	f.script[path] = steps[1:]
	return step.gen, step.err
}

func (f *fakeRemote) Release(ctx context.Context, h Handle) error {
	f.released = append(f.released, h.Name)
	return nil
}

func (f *fakeRemote) Ask(ctx context.Context, prompt string) (string, error) {
	return "", nil
}

var notReady = &RemoteError{Kind: KindNotReady, Op: "generate", Err: errors.New("file is not in an ACTIVE state")}

func newTestSummarizer(remote Remote, maxRetries int) (*implSummarizer, *[]time.Duration) {
	s := newSummarizer(remote, Options{MaxRetries: maxRetries, RetryDelay: 2 * time.Second}, logger.New("error"))
	var slept []time.Duration
	s.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return s, &slept
}

func TestSummarizeSuccess(t *testing.T) {
	remote := &fakeRemote{script: map[string][]outcome{
		"a.mp3": {{gen: Generation{Text: "A", Tokens: 5}}},
	}}
	s, slept := newTestSummarizer(remote, 3)

	got := s.Summarize(context.Background(), models.AudioArtifact{Path: "a.mp3", DurationSeconds: 10})

	if got.SummaryText != "A" || got.TokenCount != 5 || got.Failed {
		t.Errorf("Summarize() = %+v, want text A with 5 tokens", got)
	}
	if len(*slept) != 0 {
		t.Errorf("slept %d times, want 0", len(*slept))
	}
	if len(remote.released) != 1 {
		t.Errorf("released %d files, want 1", len(remote.released))
	}
}

func TestSummarizeRetriesNotReady(t *testing.T) {
	remote := &fakeRemote{script: map[string][]outcome{
		"b.mp3": {{err: notReady}, {err: notReady}, {gen: Generation{Text: "B", Tokens: 3}}},
	}}
	s, slept := newTestSummarizer(remote, 3)
	c := notify.NewCollector(nil)
	ctx := notify.WithNotifier(context.Background(), c)

	got := s.Summarize(ctx, models.AudioArtifact{Path: "b.mp3"})

	if got.SummaryText != "B" || got.TokenCount != 3 {
		t.Errorf("Summarize() = %+v, want B/3", got)
	}
	if remote.uploads != 1 {
		t.Errorf("uploads = %d, want 1", remote.uploads)
	}
	if remote.generates != 3 {
		t.Errorf("generates = %d, want 3", remote.generates)
	}
	if len(*slept) != 2 || (*slept)[0] != 2*time.Second {
		t.Errorf("slept = %v, want two 2s waits", *slept)
	}

	notices := c.Notices()
	if len(notices) != 2 {
		t.Fatalf("notices = %v, want 2 warnings", notices)
	}
	if notices[0].Message != "File not ready yet, retrying (1/3)..." {
		t.Errorf("notice = %q", notices[0].Message)
	}
}

func TestSummarizeExhaustsRetries(t *testing.T) {
	remote := &fakeRemote{script: map[string][]outcome{
		"/tmp/c-part1.mp3": {{err: notReady}, {err: notReady}, {err: notReady}, {gen: Generation{Text: "never"}}},
	}}
	s, slept := newTestSummarizer(remote, 3)
	c := notify.NewCollector(nil)
	ctx := notify.WithNotifier(context.Background(), c)

	got := s.Summarize(ctx, models.AudioArtifact{Path: "/tmp/c-part1.mp3"})

	if !got.Failed || got.TokenCount != 0 {
		t.Errorf("Summarize() = %+v, want failed with 0 tokens", got)
	}
	if got.SummaryText != "Error summarizing this chunk (c-part1.mp3)" {
		t.Errorf("SummaryText = %q", got.SummaryText)
	}
	if remote.generates != 3 {
		t.Errorf("generates = %d, want 3", remote.generates)
	}
	if len(*slept) != 2 {
		t.Errorf("slept %d times, want 2", len(*slept))
	}

	notices := c.Notices()
	if len(notices) != 3 {
		t.Fatalf("notices = %v, want 2 warnings and 1 error", notices)
	}
	for i, want := range []string{"File not ready yet, retrying (1/3)...", "File not ready yet, retrying (2/3)..."} {
		if notices[i].Level != models.NoticeWarning || notices[i].Message != want {
			t.Errorf("notice %d = %+v, want warning %q", i, notices[i], want)
		}
	}
	if last := notices[2]; last.Level != models.NoticeError {
		t.Errorf("last notice = %+v, want error", last)
	}
}

func TestSummarizeTerminalErrorsDoNotRetry(t *testing.T) {
	tests := []struct {
		name   string
		remote *fakeRemote
	}{
		{
			name: "generate failure",
			remote: &fakeRemote{script: map[string][]outcome{
				"d.mp3": {{err: &RemoteError{Kind: KindTerminal, Op: "generate", Err: errors.New("400")}}},
			}},
		},
		{
			name: "quota on generate",
			remote: &fakeRemote{script: map[string][]outcome{
				"d.mp3": {{err: &RemoteError{Kind: KindQuota, Op: "generate"}}},
			}},
		},
		{
			name: "untyped error",
			remote: &fakeRemote{script: map[string][]outcome{
				"d.mp3": {{err: errors.New("connection reset")}},
			}},
		},
		{
			name:   "upload failure",
			remote: &fakeRemote{uploadErr: errors.New("permission denied"), script: map[string][]outcome{}},
		},
		{
			name: "empty text",
			remote: &fakeRemote{script: map[string][]outcome{
				"d.mp3": {{gen: Generation{Text: "  ", Tokens: 4}}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, slept := newTestSummarizer(tt.remote, 3)

			got := s.Summarize(context.Background(), models.AudioArtifact{Path: "d.mp3"})

			if !got.Failed || got.TokenCount != 0 || got.SummaryText != Placeholder("d.mp3") {
				t.Errorf("Summarize() = %+v, want placeholder", got)
			}
			if len(*slept) != 0 {
				t.Errorf("slept %d times on a terminal error", len(*slept))
			}
			if tt.remote.generates > 1 {
				t.Errorf("generates = %d, want at most 1", tt.remote.generates)
			}
		})
	}
}

func TestSummarizeUploadNotReadyIsRetried(t *testing.T) {
	remote := &fakeRemote{uploadErr: notReady, script: map[string][]outcome{}}
	s, slept := newTestSummarizer(remote, 2)

	got := s.Summarize(context.Background(), models.AudioArtifact{Path: "e.mp3"})

	if !got.Failed {
		t.Errorf("Summarize() = %+v, want failure", got)
	}
	if remote.uploads != 2 {
		t.Errorf("uploads = %d, want 2", remote.uploads)
	}
	if len(*slept) != 1 {
		t.Errorf("slept %d times, want 1", len(*slept))
	}
	if len(remote.released) != 0 {
		t.Errorf("released %v without an upload", remote.released)
	}
}

func TestSummarizeSuccessNeverReportsZeroTokens(t *testing.T) {
	remote := &fakeRemote{script: map[string][]outcome{
		"f.mp3": {{gen: Generation{Text: "ok"}}},
	}}
	s, _ := newTestSummarizer(remote, 3)

	got := s.Summarize(context.Background(), models.AudioArtifact{Path: "f.mp3"})
	if got.Failed || got.TokenCount < 1 {
		t.Errorf("Summarize() = %+v, want at least 1 token", got)
	}
}

func TestSummarizeStopsWhenContextCancelled(t *testing.T) {
	remote := &fakeRemote{script: map[string][]outcome{
		"g.mp3": {{err: notReady}, {gen: Generation{Text: "late", Tokens: 1}}},
	}}
	s, _ := newTestSummarizer(remote, 3)
	s.sleep = sleepContext

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := s.Summarize(ctx, models.AudioArtifact{Path: "g.mp3"})
	if !got.Failed {
		t.Errorf("Summarize() = %+v, want failure after cancellation", got)
	}
}

func TestInstruction(t *testing.T) {
	if Instruction("bullets") != bulletsPrompt {
		t.Error("Instruction(bullets) mismatch")
	}
	if Instruction("unknown") != defaultPrompt {
		t.Error("Instruction(unknown) should fall back to default")
	}
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"hi", 1},
		{"twelve chars", 3},
	}
	for _, tt := range tests {
		if got := EstimateTokens(tt.text); got != tt.want {
			t.Errorf("EstimateTokens(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
