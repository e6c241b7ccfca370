package executor

import (
	"context"
	"os/exec"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	out, err := New().Execute(context.Background(), "sh", "-c", "echo 12.5")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(out) != "12.5" {
		t.Errorf("Execute() = %q, want %q", out, "12.5")
	}
}

func TestExecuteFailureIncludesStderr(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	_, err := New().Execute(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	if err == nil {
		t.Fatal("Execute() should fail on non-zero exit")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error = %v, want stderr included", err)
	}
}

func TestExecuteStopsOnCancel(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().Execute(ctx, "sh", "-c", "sleep 5"); err == nil {
		t.Error("Execute() should fail with a cancelled context")
	}
}

func TestLastLines(t *testing.T) {
	got := lastLines("a\nb\nc\nd", 2)
	if got != "c\nd" {
		t.Errorf("lastLines() = %q, want %q", got, "c\nd")
	}
}
