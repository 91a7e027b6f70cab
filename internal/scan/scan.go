// Package scan finds the files in a snapshot most relevant to a review:
// it collects candidates, scores them against keywords, extracts bounded
// context snippets and ranks the result.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/sprite-ai/mergemate/internal/model"
)

// MaxScanBytes is the per-file read ceiling during collection. Larger
// files are skipped rather than line-scored.
const MaxScanBytes = 1 << 20

// Options control one collection pass over a snapshot.
type Options struct {
	// Keywords to score against. Empty means baseline scoring.
	Keywords []string

	// Changed switches to change-set mode: candidates are exactly these
	// paths. A non-nil empty slice yields no candidates; nil walks the
	// whole tree.
	Changed []string

	// Exclude prunes candidates whose relative path matches any of these
	// glob patterns.
	Exclude []string

	// MaxFiles caps the ranked result. Zero means model.DefaultMaxFiles.
	MaxFiles int

	// Radius is the snippet context radius in lines. Zero means
	// model.DefaultSnippetRadius.
	Radius int
}

// Relevant runs the full pipeline over the tree rooted at root and returns
// the ranked, capped list of scored files. The result is never nil.
func Relevant(root string, opts Options) ([]model.RelevantFile, error) {
	re, err := Pattern(opts.Keywords)
	if err != nil {
		return nil, fmt.Errorf("compiling keyword pattern: %w", err)
	}

	var rels []string
	if opts.Changed != nil {
		rels = changedCandidates(root, opts.Changed)
	} else {
		rels, err = walkCandidates(root)
		if err != nil {
			return nil, fmt.Errorf("walking snapshot: %w", err)
		}
	}

	maxFiles := opts.MaxFiles
	if maxFiles <= 0 {
		maxFiles = model.DefaultMaxFiles
	}
	radius := opts.Radius
	if radius <= 0 {
		radius = model.DefaultSnippetRadius
	}

	results := make([]model.RelevantFile, 0)
	for _, rel := range rels {
		if underSkippedDir(rel) || IsBinaryPath(rel) || excludedBy(opts.Exclude, rel) {
			continue
		}
		lines := readLines(filepath.Join(root, filepath.FromSlash(rel)), MaxScanBytes)
		if len(lines) == 0 {
			continue
		}

		score := 0.0
		snippets := []model.Snippet{}
		if re != nil {
			var matches []int
			score, matches = Score(lines, re)
			snippets = Snippets(rel, lines, matches, radius)
		} else {
			score = BaselineScore(rel)
		}
		if score <= 0 {
			continue
		}

		results = append(results, model.RelevantFile{
			Path:     rel,
			Score:    score,
			Lines:    len(lines),
			Snippets: snippets,
		})
	}

	return Rank(results, maxFiles), nil
}

// IsBinaryPath reports whether the path's extension is on the binary
// denylist.
func IsBinaryPath(rel string) bool {
	return binaryExts[strings.ToLower(filepath.Ext(rel))]
}

// walkCandidates lists every regular file under root, pruning skipped
// directories.
func walkCandidates(root string) ([]string, error) {
	var rels []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			if path != root && skipDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rels = append(rels, filepath.ToSlash(rel))
		return nil
	})
	return rels, err
}

// changedCandidates resolves a pre-supplied change set under root,
// silently dropping directories, absent paths and anything that does not
// stay inside the root.
func changedCandidates(root string, changed []string) []string {
	out := make([]string, 0, len(changed))
	for _, rel := range changed {
		rel = strings.TrimSpace(rel)
		if rel == "" {
			continue
		}
		clean := filepath.Clean(filepath.FromSlash(rel))
		if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(os.PathSeparator)) {
			continue
		}
		fi, err := os.Stat(filepath.Join(root, clean))
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		out = append(out, filepath.ToSlash(clean))
	}
	return out
}

// underSkippedDir reports whether any component of the relative path is in
// the skip set. This also catches change-set entries that point into
// pruned directories.
func underSkippedDir(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if skipDirs[part] {
			return true
		}
	}
	return false
}

func excludedBy(patterns []string, rel string) bool {
	for _, pat := range patterns {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}

// readLines loads a candidate's lines. Oversized, unreadable and empty
// files all come back as no lines; the caller skips them.
func readLines(path string, maxBytes int64) []string {
	fi, err := os.Stat(path)
	if err != nil || fi.Size() > maxBytes {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return SplitLines(DecodeText(data))
}

// DecodeText converts raw bytes to a string, replacing invalid UTF-8
// sequences rather than failing.
func DecodeText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}

// SplitLines splits on \n, \r\n and \r. A trailing newline does not
// produce a final empty line, so the count matches what an editor shows.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
