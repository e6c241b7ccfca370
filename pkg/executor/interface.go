package executor

import "context"

// Executor runs external commands such as ffmpeg and ffprobe
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}
