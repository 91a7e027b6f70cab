// Package model defines the core data types shared across mergemate.
package model

// Mode identifies how the candidate set for a review was chosen.
type Mode string

const (
	// ModeKeywords means the full tree was scanned and scored against keywords
	// (or the baseline heuristic when no keywords were given).
	ModeKeywords Mode = "keywords"
	// ModeDiff means candidates were restricted to files changed vs. base_ref.
	ModeDiff Mode = "diff"
)

// Request bounds and defaults, applied when a field is zero.
const (
	DefaultMaxFiles = 20
	MaxMaxFiles     = 100

	DefaultSnippetRadius = 5
	MaxSnippetRadius     = 50

	DefaultFileMaxBytes = 200_000
	MaxFileMaxBytes     = 1_000_000
)

// ReviewRequest asks for a ranked relevance scan of a repository at a ref.
type ReviewRequest struct {
	RepoURL       string   `json:"repo_url"`
	Ref           string   `json:"ref"`
	BaseRef       string   `json:"base_ref,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
	MaxFiles      int      `json:"max_files,omitempty"`
	SnippetRadius int      `json:"snippet_radius,omitempty"`
	Exclude       []string `json:"exclude,omitempty"` // doublestar globs pruned from the candidate set
}

// Snippet is a contiguous, clipped window of lines around a keyword match.
type Snippet struct {
	Path      string `json:"path"`
	StartLine int    `json:"start_line"` // 1-based, inclusive
	EndLine   int    `json:"end_line"`   // 1-based, inclusive
	Preview   string `json:"preview"`
}

// RelevantFile is a scored candidate in the ranked result.
type RelevantFile struct {
	Path     string    `json:"path"`
	Score    float64   `json:"score"`
	Lines    int       `json:"lines"`
	Snippets []Snippet `json:"snippets"`
}

// FileChange summarizes one changed file in diff mode, parsed from the
// unified diff. Best-effort detail: absent when the diff could not be parsed.
type FileChange struct {
	Path         string `json:"path"`
	AddedLines   int    `json:"added_lines"`
	DeletedLines int    `json:"deleted_lines"`
	IsNew        bool   `json:"is_new,omitempty"`
	IsDeleted    bool   `json:"is_deleted,omitempty"`
	IsRenamed    bool   `json:"is_renamed,omitempty"`
}

// ReviewResult is the ranked outcome of a review.
//
// ChangedFiles is non-nil exactly when Mode is ModeDiff; an empty diff yields
// an empty (not nil) slice. Relevant is sorted by (score desc, lines asc,
// path asc) and capped at the request's max_files.
type ReviewResult struct {
	RepoURL      string         `json:"repo_url"`
	Ref          string         `json:"ref"`
	BaseRef      string         `json:"base_ref,omitempty"`
	Mode         Mode           `json:"mode"`
	ChangedFiles []string       `json:"changed_files"`
	ChangedStats []FileChange   `json:"changed_stats,omitempty"`
	Relevant     []RelevantFile `json:"relevant"`
}

// FileRequest asks for the raw content of a single file at a ref.
type FileRequest struct {
	RepoURL  string `json:"repo_url"`
	Ref      string `json:"ref"`
	Path     string `json:"path"`
	MaxBytes int    `json:"max_bytes,omitempty"`
}

// FileContent is the (text-only, size-capped) content of one file.
type FileContent struct {
	Path    string `json:"path"`
	Bytes   int    `json:"bytes"`
	Content string `json:"content"`
}
