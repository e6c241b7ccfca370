package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/audio-recap/internal/export"
	"github.com/nguyentantai21042004/audio-recap/internal/media"
	"github.com/nguyentantai21042004/audio-recap/internal/session"
)

func runSummarize(ctx context.Context, configPath string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("summarize", flag.ContinueOnError)
	fs.SetOutput(stderr)
	chat := fs.Bool("chat", false, "Ask follow-up questions about the summary on stdin.")
	prompt := fs.String("prompt", "", "Summary instruction to use (default, meeting, bullets).")
	out := fs.String("out", "", "Write a markdown (.md) or Word (.docx) export to this path.")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "summarize: exactly one input file is required")
		return errUsage
	}

	input := fs.Arg(0)
	if !media.IsSupported(input) {
		return fmt.Errorf("%w: %s", media.ErrUnsupportedFormat, filepath.Ext(input))
	}
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("input: %w", err)
	}

	a, err := newApp(ctx, configPath, *prompt)
	if err != nil {
		return err
	}

	summary, err := a.processor.Process(ctx, input)
	if err != nil {
		return err
	}

	sess := session.New(filepath.Base(input))
	if err := sess.SetSummary(summary); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "\n%s\n\nTotal tokens: %d\n", summary.CombinedText, summary.TotalTokens)

	if *chat {
		if err := chatLoop(ctx, sess, a, stdin, stdout); err != nil {
			return err
		}
	}

	if *out != "" {
		return writeExport(*out, sess.Snapshot())
	}
	return nil
}

// chatLoop reads one question per line until EOF or an empty line
func chatLoop(ctx context.Context, sess *session.Session, a *app, stdin io.Reader, stdout io.Writer) error {
	scanner := bufio.NewScanner(stdin)
	for {
		fmt.Fprint(stdout, "\nQuestion (empty line to finish): ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			return nil
		}

		turn, err := sess.Ask(ctx, a.gemini, question)
		if err != nil {
			a.logger.Error(ctx, "Error answering question: %v", err)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}
		fmt.Fprintf(stdout, "\n%s\n", turn.Answer)
	}
}

func writeExport(path string, snap session.Snapshot) error {
	title := "Audio Summary: " + snap.ID
	if strings.EqualFold(filepath.Ext(path), ".docx") {
		return export.WriteDocx(path, title, snap)
	}
	return os.WriteFile(path, []byte(export.Markdown(title, snap, time.Now())), 0644)
}
