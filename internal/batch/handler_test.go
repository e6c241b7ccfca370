package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/audio-recap/internal/logger"
	"github.com/nguyentantai21042004/audio-recap/internal/models"
)

type fakeProcessor struct {
	summary models.AggregatedSummary
	err     error
}

func (f fakeProcessor) Process(ctx context.Context, inputPath string) (models.AggregatedSummary, error) {
	return f.summary, f.err
}

func writeRecording(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "weekly sync.m4a")
	if err := os.WriteFile(path, []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestHandle(t *testing.T) {
	root := t.TempDir()
	input := writeRecording(t, root)
	out := filepath.Join(root, "out")
	archived := filepath.Join(root, "archived")

	h := New(fakeProcessor{summary: models.AggregatedSummary{CombinedText: "A B", TotalTokens: 8}}, out, archived, logger.New("error"))
	if err := h.Handle(context.Background(), input); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	md, err := os.ReadFile(filepath.Join(out, "weekly sync.md"))
	if err != nil {
		t.Fatalf("markdown not written: %v", err)
	}
	if !strings.Contains(string(md), "A B") || !strings.Contains(string(md), "Total tokens: 8") {
		t.Errorf("markdown = %q", md)
	}

	if _, err := os.Stat(filepath.Join(out, "weekly sync.docx")); err != nil {
		t.Errorf("docx not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(archived, "weekly sync.m4a")); err != nil {
		t.Errorf("original not archived: %v", err)
	}
	if _, err := os.Stat(input); !os.IsNotExist(err) {
		t.Errorf("original still in input dir")
	}
}

func TestHandleProcessError(t *testing.T) {
	root := t.TempDir()
	input := writeRecording(t, root)
	out := filepath.Join(root, "out")

	h := New(fakeProcessor{err: errors.New("ffmpeg normalize: invalid data")}, out, filepath.Join(root, "archived"), logger.New("error"))
	if err := h.Handle(context.Background(), input); err == nil {
		t.Fatal("Handle() should fail when processing fails")
	}

	if _, err := os.Stat(input); err != nil {
		t.Errorf("original moved despite failure: %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output dir created despite failure")
	}
}

func TestHandleEmptySummary(t *testing.T) {
	root := t.TempDir()
	input := writeRecording(t, root)

	h := New(fakeProcessor{}, filepath.Join(root, "out"), filepath.Join(root, "archived"), logger.New("error"))
	if err := h.Handle(context.Background(), input); err == nil {
		t.Error("Handle() should fail on an empty summary")
	}
}
