package gitx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// maxStderrBytes caps how much git stderr is kept for error messages.
const maxStderrBytes = 2048

// Runner executes a single git command in a directory and returns its
// stdout. Implementations must honor context cancellation.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// ExecRunner runs git as a subprocess.
type ExecRunner struct {
	// GitPath is the binary to invoke. Empty means "git" from PATH.
	GitPath string
}

func (r *ExecRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	gitPath := r.GitPath
	if gitPath == "" {
		gitPath = "git"
	}

	cmd := exec.CommandContext(ctx, gitPath, args...)
	cmd.Dir = dir

	var stdout bytes.Buffer
	stderr := &limitedWriter{limit: maxStderrBytes}
	cmd.Stdout = &stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		// A killed process reports "signal: killed"; surface the deadline
		// instead so callers can tell a timeout from a git failure.
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return "", &CommandError{Args: args, Stderr: stderr.String(), Err: err}
	}
	return stdout.String(), nil
}

// CommandError reports a failed git invocation along with the stderr it
// produced.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// StderrOf extracts the trimmed stderr from a failed invocation, or ""
// when the error carries none.
func StderrOf(err error) string {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return strings.TrimSpace(cmdErr.Stderr)
	}
	return ""
}

// limitedWriter keeps the first limit bytes written and discards the rest.
type limitedWriter struct {
	buf   bytes.Buffer
	limit int
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	n := len(p)
	if remaining := w.limit - w.buf.Len(); remaining > 0 {
		if len(p) > remaining {
			p = p[:remaining]
		}
		w.buf.Write(p)
	}
	return n, nil
}

func (w *limitedWriter) String() string { return w.buf.String() }
