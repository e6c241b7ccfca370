package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/audio-recap/internal/export"
	"github.com/nguyentantai21042004/audio-recap/internal/session"
)

// Handle summarizes the recording at path, writes <name>.md and <name>.docx
// into the output directory and archives the original.
func (h *Handler) Handle(ctx context.Context, path string) error {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	summary, err := h.processor.Process(ctx, path)
	if err != nil {
		return fmt.Errorf("process %s: %w", name, err)
	}

	sess := session.New(name)
	if err := sess.SetSummary(summary); err != nil {
		return fmt.Errorf("summary for %s: %w", name, err)
	}
	snap := sess.Snapshot()

	if err := os.MkdirAll(h.outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	mdPath := filepath.Join(h.outputDir, name+".md")
	if err := os.WriteFile(mdPath, []byte(export.Markdown(name, snap, time.Now())), 0644); err != nil {
		return fmt.Errorf("write %s: %w", mdPath, err)
	}

	docxPath := filepath.Join(h.outputDir, name+".docx")
	if err := export.WriteDocx(docxPath, name, snap); err != nil {
		h.logger.Warn(ctx, "Failed to write docx for %s: %v", name, err)
	}

	if err := h.archive(ctx, path); err != nil {
		h.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
	}

	h.logger.Info(ctx, "[DONE] %s -> %s", name, mdPath)
	return nil
}

// archive moves the original recording out of the watched directory
func (h *Handler) archive(ctx context.Context, path string) error {
	if err := os.MkdirAll(h.archivedDir, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	dest := filepath.Join(h.archivedDir, filepath.Base(path))
	h.logger.Info(ctx, "Archiving: %s -> %s", path, dest)

	if err := os.Rename(path, dest); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}
