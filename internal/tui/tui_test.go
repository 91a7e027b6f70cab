package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sprite-ai/mergemate/internal/model"
)

func sampleResult() *model.ReviewResult {
	return &model.ReviewResult{
		RepoURL: "https://example.com/demo.git",
		Ref:     "main",
		Mode:    model.ModeKeywords,
		Relevant: []model.RelevantFile{
			{
				Path:  "auth/login.go",
				Score: 3,
				Lines: 120,
				Snippets: []model.Snippet{
					{
						Path:      "auth/login.go",
						StartLine: 10,
						EndLine:   13,
						Preview:   "func login() {\n\ttoken := issue()\n\t_ = token\n}",
					},
					{
						Path:      "auth/login.go",
						StartLine: 40,
						EndLine:   40,
						Preview:   "// refresh token path",
					},
				},
			},
			{
				Path:  "auth/token.go",
				Score: 1,
				Lines: 80,
				Snippets: []model.Snippet{
					{
						Path:      "auth/token.go",
						StartLine: 1,
						EndLine:   1,
						Preview:   "package auth",
					},
				},
			},
		},
	}
}

func setupModel(t *testing.T) Model {
	t.Helper()
	m := New(sampleResult())
	// Simulate window size
	newM, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return newM.(Model)
}

func TestModelInit(t *testing.T) {
	m := setupModel(t)

	if m.fileIndex != 0 {
		t.Errorf("expected fileIndex 0, got %d", m.fileIndex)
	}
	if len(m.lines) == 0 {
		t.Error("expected lines to be rendered")
	}
	if m.result == nil {
		t.Error("expected result to be set")
	}
}

func TestNavigation(t *testing.T) {
	m := setupModel(t)

	// Scroll down, then switch files: offset should reset
	newM, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = newM.(Model)

	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	m = newM.(Model)
	if m.fileIndex != 1 {
		t.Errorf("expected fileIndex 1 after next, got %d", m.fileIndex)
	}
	if m.scrollOffset != 0 {
		t.Errorf("expected scrollOffset 0 after file switch, got %d", m.scrollOffset)
	}

	// Moving past the end stays put
	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	m = newM.(Model)
	if m.fileIndex != 1 {
		t.Errorf("expected fileIndex 1 at end, got %d", m.fileIndex)
	}

	// Move back
	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'N'}})
	m = newM.(Model)
	if m.fileIndex != 0 {
		t.Errorf("expected fileIndex 0 after prev, got %d", m.fileIndex)
	}
}

func TestScrolling(t *testing.T) {
	m := setupModel(t)

	// Scroll down
	newM, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = newM.(Model)
	if m.scrollOffset != 1 {
		t.Errorf("expected scrollOffset 1, got %d", m.scrollOffset)
	}

	// Scroll up
	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	m = newM.(Model)
	if m.scrollOffset != 0 {
		t.Errorf("expected scrollOffset 0, got %d", m.scrollOffset)
	}

	// Can't scroll above 0
	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	m = newM.(Model)
	if m.scrollOffset != 0 {
		t.Errorf("expected scrollOffset 0 at top, got %d", m.scrollOffset)
	}
}

func TestSnippetJump(t *testing.T) {
	m := setupModel(t)

	// First file: header at 0, four preview lines, separator, header at 6
	newM, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{']'}})
	m = newM.(Model)
	if m.scrollOffset != 6 {
		t.Errorf("expected scrollOffset 6 at second snippet, got %d", m.scrollOffset)
	}

	// No snippet past the last one, so the offset holds
	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{']'}})
	m = newM.(Model)
	if m.scrollOffset != 6 {
		t.Errorf("expected scrollOffset 6 at last snippet, got %d", m.scrollOffset)
	}

	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'['}})
	m = newM.(Model)
	if m.scrollOffset != 0 {
		t.Errorf("expected scrollOffset 0 at first snippet, got %d", m.scrollOffset)
	}
}

func TestViewRenders(t *testing.T) {
	m := setupModel(t)

	view := m.View()
	if view == "" {
		t.Error("expected non-empty view")
	}

	// Should contain the ranked file
	if !strings.Contains(view, "auth/login.go") {
		t.Error("expected view to contain 'auth/login.go'")
	}

	// Should contain the snippet header
	if !strings.Contains(view, "@@ lines 10-13 @@") {
		t.Error("expected view to contain snippet header")
	}

	// Status bar shows the snippet total
	if !strings.Contains(view, "3 snippets") {
		t.Error("expected view to contain snippet count")
	}
}

func TestViewShowsChangeStats(t *testing.T) {
	result := sampleResult()
	result.Mode = model.ModeDiff
	result.BaseRef = "main"
	result.ChangedFiles = []string{"auth/login.go"}
	result.ChangedStats = []model.FileChange{
		{Path: "auth/login.go", AddedLines: 2, DeletedLines: 1, IsNew: true},
	}

	m := New(result)
	newM, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = newM.(Model)

	view := m.View()
	if !strings.Contains(view, "+2 -1") {
		t.Error("expected view to contain change stats for the selected file")
	}
}

func TestEmptyResult(t *testing.T) {
	result := &model.ReviewResult{
		RepoURL: "https://example.com/demo.git",
		Ref:     "main",
		Mode:    model.ModeKeywords,
	}

	m := New(result)
	newM, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = newM.(Model)

	view := m.View()
	if !strings.Contains(view, "No relevant files") {
		t.Error("expected empty-state message")
	}

	// Navigation on an empty result must not move anything
	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	m = newM.(Model)
	if m.fileIndex != 0 {
		t.Errorf("expected fileIndex 0 on empty result, got %d", m.fileIndex)
	}
	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = newM.(Model)
	if m.scrollOffset != 0 {
		t.Errorf("expected scrollOffset 0 on empty result, got %d", m.scrollOffset)
	}
}

func TestHelpToggle(t *testing.T) {
	m := setupModel(t)

	newM, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = newM.(Model)
	if !m.showHelp {
		t.Error("expected help to be shown")
	}

	view := m.View()
	if !strings.Contains(view, "Keyboard Shortcuts") {
		t.Error("expected help view to contain shortcuts")
	}
}
