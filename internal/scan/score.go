package scan

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/sprite-ai/mergemate/internal/model"
)

// maxSnippetsPerFile bounds the output per candidate.
const maxSnippetsPerFile = 10

// Pattern compiles keywords into a single case-insensitive alternation.
// Keyword text is matched literally. A nil pattern means no keywords.
func Pattern(keywords []string) (*regexp.Regexp, error) {
	if len(keywords) == 0 {
		return nil, nil
	}
	quoted := make([]string, len(keywords))
	for i, k := range keywords {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return regexp.Compile("(?i)" + strings.Join(quoted, "|"))
}

// Score counts the lines matching the pattern and returns their 1-based
// positions. The score is the match count.
func Score(lines []string, re *regexp.Regexp) (float64, []int) {
	var matches []int
	for i, line := range lines {
		if re.MatchString(line) {
			matches = append(matches, i+1)
		}
	}
	return float64(len(matches)), matches
}

// BaselineScore ranks files when no keywords are given: every readable
// file scores 1.0, recognized code and config extensions get a bonus.
func BaselineScore(rel string) float64 {
	if includeExts[strings.ToLower(filepath.Ext(rel))] {
		return 1.5
	}
	return 1.0
}

// Snippets renders clipped context windows around the first matches. The
// result is never nil.
func Snippets(rel string, lines []string, matches []int, radius int) []model.Snippet {
	if len(matches) > maxSnippetsPerFile {
		matches = matches[:maxSnippetsPerFile]
	}
	snippets := make([]model.Snippet, 0, len(matches))
	for _, m := range matches {
		start := m - radius
		if start < 1 {
			start = 1
		}
		end := m + radius
		if end > len(lines) {
			end = len(lines)
		}
		snippets = append(snippets, model.Snippet{
			Path:      rel,
			StartLine: start,
			EndLine:   end,
			Preview:   strings.Join(lines[start-1:end], "\n"),
		})
	}
	return snippets
}

// Rank orders files by score descending, then fewer lines first, then
// path, and truncates to max. The full key makes the order deterministic.
func Rank(files []model.RelevantFile, max int) []model.RelevantFile {
	sort.Slice(files, func(i, j int) bool {
		a, b := files[i], files[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Lines != b.Lines {
			return a.Lines < b.Lines
		}
		return a.Path < b.Path
	})
	if max > 0 && len(files) > max {
		files = files[:max]
	}
	return files
}
