package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprite-ai/mergemate/internal/model"
)

// writeTree lays out files under root, creating parent directories as
// needed. Keys use slash paths.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// numberedLines renders n lines of filler with specific lines overridden.
func numberedLines(n int, overrides map[int]string) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		if text, ok := overrides[i]; ok {
			b.WriteString(text)
		} else {
			fmt.Fprintf(&b, "filler %d", i)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func TestRelevantKeywordMatch(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.py":  numberedLines(30, map[int]string{20: "token = load_secret()"}),
		"b.txt": "nothing to see\n",
	})

	got, err := Relevant(root, Options{Keywords: []string{"token"}, MaxFiles: 10, Radius: 5})
	require.NoError(t, err)

	require.Len(t, got, 1)
	f := got[0]
	assert.Equal(t, "a.py", f.Path)
	assert.Equal(t, 1.0, f.Score)
	assert.Equal(t, 30, f.Lines)
	require.Len(t, f.Snippets, 1)
	assert.Equal(t, 15, f.Snippets[0].StartLine)
	assert.Equal(t, 25, f.Snippets[0].EndLine)
	assert.Equal(t, "a.py", f.Snippets[0].Path)
	assert.Contains(t, f.Snippets[0].Preview, "token = load_secret()")
}

func TestRelevantBaselineScoring(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go": "package main\n",
		"notes":   "plain text, unknown extension\n",
	})

	got, err := Relevant(root, Options{})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "main.go", got[0].Path)
	assert.Equal(t, 1.5, got[0].Score, "recognized extension gets the bonus")
	assert.Equal(t, "notes", got[1].Path)
	assert.Equal(t, 1.0, got[1].Score)
	assert.Equal(t, []model.Snippet{}, got[0].Snippets, "baseline mode has no snippets but the field is present")
}

func TestRelevantPrunesSkipDirsAndBinaries(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/app.go":            "package app\n",
		"node_modules/dep.js":   "module.exports = {}\n",
		".git/config":           "[core]\n",
		"logo.png":              "not really an image\n",
		"build":                 "a file that shares its name with a skip dir\n",
		"src/vendor/lib/lib.go": "package lib\n",
	})

	got, err := Relevant(root, Options{})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "src/app.go", got[0].Path)
}

func TestRelevantChangeSetMode(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"changed.go":        numberedLines(10, map[int]string{3: "auth check"}),
		"untouched.go":      numberedLines(10, map[int]string{5: "auth check"}),
		"node_modules/x.js": "auth check\n",
	})

	changed := []string{"changed.go", "missing.go", "node_modules/x.js", "src"}
	got, err := Relevant(root, Options{Keywords: []string{"auth"}, Changed: changed})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "changed.go", got[0].Path)
}

func TestRelevantEmptyChangeSetScansNothing(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.go": "package a\n"})

	got, err := Relevant(root, Options{Changed: []string{}})
	require.NoError(t, err)

	assert.NotNil(t, got)
	assert.Empty(t, got, "an empty change set must not fall back to a full walk")
}

func TestRelevantChangeSetDropsZeroMatches(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"hit.go":  "token refresh\n",
		"miss.go": "unrelated\n",
	})

	got, err := Relevant(root, Options{Keywords: []string{"token"}, Changed: []string{"hit.go", "miss.go"}})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "hit.go", got[0].Path)
}

func TestRelevantExcludeGlobs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"README.md":    "docs\n",
		"docs/more.md": "docs\n",
		"main.go":      "package main\n",
	})

	got, err := Relevant(root, Options{Exclude: []string{"**/*.md", "*.md"}})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "main.go", got[0].Path)
}

func TestRelevantCapsAndOrders(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"two_hits.go":  numberedLines(20, map[int]string{2: "cache get", 9: "cache put"}),
		"one_hit_a.go": numberedLines(10, map[int]string{1: "cache warm"}),
		"one_hit_b.go": numberedLines(5, map[int]string{1: "cache cold"}),
	})

	got, err := Relevant(root, Options{Keywords: []string{"cache"}, MaxFiles: 2})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "two_hits.go", got[0].Path, "higher score first")
	assert.Equal(t, "one_hit_b.go", got[1].Path, "ties broken by fewer lines")
}

func TestRelevantSkipsEmptyFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"empty.go": "",
		"full.go":  "package full\n",
	})

	got, err := Relevant(root, Options{})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "full.go", got[0].Path)
}

func TestReadLinesGate(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "big.txt")
	require.NoError(t, os.WriteFile(path, []byte("0123456789abcdef\n"), 0o644))

	assert.Nil(t, readLines(path, 8), "oversized files read as no lines")
	assert.Equal(t, []string{"0123456789abcdef"}, readLines(path, 1024))
	assert.Nil(t, readLines(filepath.Join(root, "absent.txt"), 1024))
}
