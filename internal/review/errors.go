package review

import "fmt"

// ValidationError reports a request field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// BinaryFileError reports a content request for a binary-extension path.
type BinaryFileError struct {
	Path string
}

func (e *BinaryFileError) Error() string {
	return fmt.Sprintf("binary files are not supported: %s", e.Path)
}

// FileTooLargeError reports a file exceeding the caller's byte ceiling.
type FileTooLargeError struct {
	Path      string
	SizeBytes int64
	MaxBytes  int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file too large: %s is %d bytes (max_bytes %d)", e.Path, e.SizeBytes, e.MaxBytes)
}
