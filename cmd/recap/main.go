package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("recap", flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", "config.yaml", "Path to the YAML configuration file.")
	global.Usage = func() { writeHelp(stderr) }

	if err := global.Parse(argv[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	rest := global.Args()
	if len(rest) == 0 {
		writeHelp(stderr)
		return exitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch rest[0] {
	case "summarize":
		err = runSummarize(ctx, *configPath, rest[1:], stdin, stdout, stderr)
	case "watch":
		err = runWatch(ctx, *configPath)
	case "serve":
		err = runServe(ctx, *configPath)
	case "help":
		writeHelp(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", rest[0])
		writeHelp(stderr)
		return exitUsage
	}

	if errors.Is(err, errUsage) {
		return exitUsage
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}

var errUsage = errors.New("usage")

func writeHelp(w io.Writer) {
	fmt.Fprintf(w, `Usage: recap [-config config.yaml] <command> [flags]

Commands:
  summarize [-chat] [-prompt name] <file>   Summarize one recording, optionally ask questions about it
  watch                                     Summarize every recording dropped into paths.input
  serve                                     Run the HTTP API on server.address

Go %s %s/%s
`, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
