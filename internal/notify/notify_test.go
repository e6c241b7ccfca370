package notify

import (
	"context"
	"testing"

	"github.com/nguyentantai21042004/audio-recap/internal/logger"
	"github.com/nguyentantai21042004/audio-recap/internal/models"
)

func TestCollector(t *testing.T) {
	ctx := context.Background()
	c := NewCollector(logger.New("error"))

	c.Warn(ctx, "File not ready yet, retrying (1/3)...")
	c.Error(ctx, "upload failed")

	got := c.Notices()
	if len(got) != 2 {
		t.Fatalf("len(Notices()) = %d, want 2", len(got))
	}
	if got[0].Level != models.NoticeWarning || got[1].Level != models.NoticeError {
		t.Errorf("levels = %v, %v", got[0].Level, got[1].Level)
	}

	got[0].Message = "changed"
	if c.Notices()[0].Message == "changed" {
		t.Error("Notices() exposed internal slice")
	}
}

func TestFromContext(t *testing.T) {
	fallback := Log{Logger: logger.New("error")}
	c := NewCollector(nil)

	if _, ok := FromContext(context.Background(), fallback).(Log); !ok {
		t.Error("FromContext() without notifier should return fallback")
	}

	ctx := WithNotifier(context.Background(), c)
	FromContext(ctx, fallback).Warn(ctx, "hello")
	if len(c.Notices()) != 1 {
		t.Errorf("notice not routed to context notifier")
	}
}
