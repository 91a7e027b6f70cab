package gitx

import "fmt"

// SetupError reports a failure preparing the local checkout (init or
// checkout). These indicate a broken environment rather than bad input.
type SetupError struct {
	Step string
	Err  error
}

func (e *SetupError) Error() string { return fmt.Sprintf("git %s failed: %v", e.Step, e.Err) }
func (e *SetupError) Unwrap() error { return e.Err }

// RemoteError reports that the remote could not be configured, usually an
// invalid repository URL.
type RemoteError struct {
	URL string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("invalid repo_url or permissions: %s", e.URL)
}
func (e *RemoteError) Unwrap() error { return e.Err }

// FetchError reports that a ref could not be fetched by either its literal
// name or its refs/heads/ form.
type FetchError struct {
	Ref    string
	Detail string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("cannot fetch ref %q: %s", e.Ref, e.Detail)
}
func (e *FetchError) Unwrap() error { return e.Err }

// DiffError reports that the change set against a base ref could not be
// computed.
type DiffError struct {
	Base   string
	Detail string
	Err    error
}

func (e *DiffError) Error() string {
	return fmt.Sprintf("git diff against %q failed: %s", e.Base, e.Detail)
}
func (e *DiffError) Unwrap() error { return e.Err }

// TooLargeError reports a checkout that exceeds the configured size cap.
type TooLargeError struct {
	SizeBytes  int64
	LimitBytes int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("repository too large: %.1f MB (limit %d MB)",
		float64(e.SizeBytes)/(1<<20), e.LimitBytes/(1<<20))
}

// TraversalError reports a file path that escapes the snapshot root.
type TraversalError struct {
	Path string
}

func (e *TraversalError) Error() string { return fmt.Sprintf("path traversal detected: %s", e.Path) }

// NotFoundError reports a path that does not resolve to a regular file in
// the snapshot.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("file not found at ref: %s", e.Path) }
