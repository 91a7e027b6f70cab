package review

import (
	"fmt"
	"net/url"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/sprite-ai/mergemate/internal/model"
)

// Numeric knobs use the zero value for "not set"; bounds only reject
// explicit out-of-range values.

func validateReview(req *model.ReviewRequest) error {
	if err := validateRepoURL(req.RepoURL); err != nil {
		return err
	}
	if req.Ref == "" {
		return &ValidationError{Field: "ref", Reason: "required"}
	}
	if req.MaxFiles < 0 || req.MaxFiles > model.MaxMaxFiles {
		return &ValidationError{Field: "max_files", Reason: fmt.Sprintf("must be between 1 and %d", model.MaxMaxFiles)}
	}
	if req.SnippetRadius < 0 || req.SnippetRadius > model.MaxSnippetRadius {
		return &ValidationError{Field: "snippet_radius", Reason: fmt.Sprintf("must be between 1 and %d", model.MaxSnippetRadius)}
	}
	for _, pat := range req.Exclude {
		if !doublestar.ValidatePattern(pat) {
			return &ValidationError{Field: "exclude", Reason: fmt.Sprintf("invalid pattern %q", pat)}
		}
	}
	return nil
}

func validateFile(req *model.FileRequest) error {
	if err := validateRepoURL(req.RepoURL); err != nil {
		return err
	}
	if req.Ref == "" {
		return &ValidationError{Field: "ref", Reason: "required"}
	}
	if req.Path == "" {
		return &ValidationError{Field: "path", Reason: "required"}
	}
	if req.MaxBytes < 0 || req.MaxBytes > model.MaxFileMaxBytes {
		return &ValidationError{Field: "max_bytes", Reason: fmt.Sprintf("must be between 1 and %d", model.MaxFileMaxBytes)}
	}
	return nil
}

func validateRepoURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return &ValidationError{Field: "repo_url", Reason: "must be an https:// URL (e.g. https://host/org/repo.git)"}
	}
	return nil
}
