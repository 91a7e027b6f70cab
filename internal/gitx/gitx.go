// Package gitx acquires read-only repository snapshots over HTTPS using an
// external git binary. Every snapshot is a fresh shallow fetch into a
// temporary directory; nothing is cached between requests.
package gitx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Snapshot is a checkout of one repository at one ref. Ref records the
// form that actually fetched, refs/heads/<ref> when the literal name
// needed the fallback. The creator owns the snapshot and must Close it
// to release the working directory.
type Snapshot struct {
	Dir       string
	Ref       string
	SizeBytes int64
}

// Close removes the snapshot's working directory.
func (s *Snapshot) Close() error {
	if s == nil || s.Dir == "" {
		return nil
	}
	return os.RemoveAll(s.Dir)
}

// FileAt resolves a repository-relative path inside the snapshot. It
// rejects absolute paths and anything escaping the root, lexically or
// through symlinks, and reports missing or non-regular files as not found.
func (s *Snapshot) FileAt(rel string) (string, os.FileInfo, error) {
	if rel == "" || filepath.IsAbs(rel) {
		return "", nil, &TraversalError{Path: rel}
	}

	root := filepath.Clean(s.Dir)
	abs := filepath.Join(root, filepath.FromSlash(rel))
	if abs != root && !strings.HasPrefix(abs, root+string(os.PathSeparator)) {
		return "", nil, &TraversalError{Path: rel}
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, &NotFoundError{Path: rel}
		}
		return "", nil, fmt.Errorf("resolving %s: %w", rel, err)
	}
	resolvedRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", nil, fmt.Errorf("resolving snapshot root: %w", err)
	}
	if resolved != resolvedRoot && !strings.HasPrefix(resolved, resolvedRoot+string(os.PathSeparator)) {
		return "", nil, &TraversalError{Path: rel}
	}

	fi, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, &NotFoundError{Path: rel}
		}
		return "", nil, fmt.Errorf("stat %s: %w", rel, err)
	}
	if !fi.Mode().IsRegular() {
		return "", nil, &NotFoundError{Path: rel}
	}
	return resolved, fi, nil
}

// Options configure a Client.
type Options struct {
	// Timeout bounds each individual git command.
	Timeout time.Duration
	// MaxRepoBytes caps the on-disk size of an acquired snapshot.
	MaxRepoBytes int64
}

// Client acquires snapshots through a Runner.
type Client struct {
	run      Runner
	timeout  time.Duration
	maxBytes int64
}

// New returns a Client backed by the given Runner.
func New(run Runner, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.MaxRepoBytes <= 0 {
		opts.MaxRepoBytes = 300 << 20
	}
	return &Client{run: run, timeout: opts.Timeout, maxBytes: opts.MaxRepoBytes}
}

// git runs one command with the per-command timeout applied.
func (c *Client) git(ctx context.Context, dir string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.run.Run(ctx, dir, args...)
}

// Acquire shallow-fetches ref from repoURL into a fresh temporary checkout.
// Refs that fail to fetch by their literal name are retried as
// refs/heads/<ref>; a fetch that hits the command timeout fails without
// the retry.
func (c *Client) Acquire(ctx context.Context, repoURL, ref string) (*Snapshot, error) {
	dir, err := os.MkdirTemp("", "mergemate_")
	if err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}
	snap, err := c.acquire(ctx, dir, repoURL, ref)
	if err != nil {
		os.RemoveAll(dir)
		return nil, err
	}
	return snap, nil
}

func (c *Client) acquire(ctx context.Context, dir, repoURL, ref string) (*Snapshot, error) {
	if _, err := c.git(ctx, dir, "init"); err != nil {
		return nil, &SetupError{Step: "init", Err: err}
	}
	if _, err := c.git(ctx, dir, "remote", "add", "origin", repoURL); err != nil {
		return nil, &RemoteError{URL: repoURL, Err: err}
	}

	fetched := ref
	if _, err := c.git(ctx, dir, "fetch", "--depth", "1", "--no-tags", "origin", ref); err != nil {
		// Timeouts are terminal; the refs/heads retry covers unresolved
		// names only.
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		alt := "refs/heads/" + ref
		if _, altErr := c.git(ctx, dir, "fetch", "--depth", "1", "--no-tags", "origin", alt); altErr != nil {
			if errors.Is(altErr, context.DeadlineExceeded) {
				return nil, altErr
			}
			return nil, &FetchError{Ref: ref, Detail: fetchDetail(altErr, err), Err: altErr}
		}
		fetched = alt
	}

	if _, err := c.git(ctx, dir, "checkout", "FETCH_HEAD"); err != nil {
		return nil, &SetupError{Step: "checkout", Err: err}
	}

	size, err := dirSize(dir)
	if err != nil {
		return nil, fmt.Errorf("sizing checkout: %w", err)
	}
	if size > c.maxBytes {
		return nil, &TooLargeError{SizeBytes: size, LimitBytes: c.maxBytes}
	}

	return &Snapshot{Dir: dir, Ref: fetched, SizeBytes: size}, nil
}

// Changes lists the paths that differ between baseRef and the checked-out
// head, plus the raw unified diff for per-file statistics. The raw diff is
// best effort; a failure there returns the name list with an empty diff.
func (c *Client) Changes(ctx context.Context, snap *Snapshot, baseRef string) ([]string, string, error) {
	// The base is often missing from the shallow fetch. Bring it in if we
	// can; any failure here surfaces through the diff instead.
	c.git(ctx, snap.Dir, "fetch", "--depth", "1", "--no-tags", "origin", baseRef)

	out, err := c.git(ctx, snap.Dir, "diff", "--name-only", baseRef+"..HEAD")
	if err != nil {
		return nil, "", &DiffError{Base: baseRef, Detail: StderrOf(err), Err: err}
	}

	// Non-nil so an empty change set serializes as [] rather than null.
	paths := make([]string, 0)
	for _, line := range strings.Split(out, "\n") {
		if p := strings.TrimSpace(line); p != "" {
			paths = append(paths, p)
		}
	}

	raw, err := c.git(ctx, snap.Dir, "diff", baseRef+"..HEAD")
	if err != nil {
		return paths, "", nil
	}
	return paths, raw, nil
}

// fetchDetail picks the most useful stderr from the two fetch attempts,
// preferring the refs/heads retry.
func fetchDetail(altErr, err error) string {
	if s := StderrOf(altErr); s != "" {
		return s
	}
	if s := StderrOf(err); s != "" {
		return s
	}
	return altErr.Error()
}

// dirSize totals the regular files under root, including git metadata.
func dirSize(root string) (int64, error) {
	var total int64
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.Mode().IsRegular() {
			total += info.Size()
		}
		return nil
	})
	return total, err
}
