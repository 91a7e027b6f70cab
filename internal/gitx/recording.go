package gitx

import (
	"context"
	"strings"
	"sync"
)

// Reply is a scripted response for a RecordingRunner.
type Reply struct {
	Out string
	Err error
}

// RecordingRunner is a Runner for tests. It records every invocation and
// answers from a script keyed by the space-joined argument list. Commands
// without a scripted reply succeed with empty output.
type RecordingRunner struct {
	mu     sync.Mutex
	calls  [][]string
	Script map[string]Reply
}

func (r *RecordingRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &CommandError{Args: args, Err: err}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, args)

	if reply, ok := r.Script[strings.Join(args, " ")]; ok {
		return reply.Out, reply.Err
	}
	return "", nil
}

// Calls returns a copy of every argument list seen so far.
func (r *RecordingRunner) Calls() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]string, len(r.calls))
	copy(out, r.calls)
	return out
}
