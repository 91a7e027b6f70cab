package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sprite-ai/mergemate/internal/model"
)

// renderedLine is a single line of the snippet pane ready for display.
type renderedLine struct {
	Num      int    // 1-based line number in the source file, 0 otherwise
	Content  string // raw text content (no trailing newline)
	IsHeader bool   // true if this is a snippet header

	// Syntax highlighting tokens (nil = no highlighting)
	Tokens []Token
}

// renderFile produces renderedLines for a ranked file's snippets.
func renderFile(f model.RelevantFile) []renderedLine {
	var lines []renderedLine

	// Collect all preview lines for syntax highlighting
	var contentLines []string
	previews := make([][]string, len(f.Snippets))
	for i, s := range f.Snippets {
		previews[i] = strings.Split(s.Preview, "\n")
		contentLines = append(contentLines, previews[i]...)
	}

	// Highlight all preview lines at once
	highlighted := HighlightLines(f.Path, contentLines)
	hlIdx := 0

	for i, s := range f.Snippets {
		// Snippet header
		lines = append(lines, renderedLine{
			IsHeader: true,
			Content:  formatSnippetHeader(s),
		})

		num := s.StartLine
		for _, text := range previews[i] {
			rl := renderedLine{
				Num:     num,
				Content: text,
			}

			if hlIdx < len(highlighted) {
				rl.Tokens = highlighted[hlIdx].Tokens
				hlIdx++
			}
			num++

			lines = append(lines, rl)
		}

		// Add a blank separator between snippets (but not after the last)
		if i < len(f.Snippets)-1 {
			lines = append(lines, renderedLine{Content: ""})
		}
	}

	return lines
}

func formatSnippetHeader(s model.Snippet) string {
	return fmt.Sprintf("@@ lines %d-%d @@", s.StartLine, s.EndLine)
}

// renderHighlightedContent renders line content with syntax tokens.
func renderHighlightedContent(rl renderedLine) string {
	if len(rl.Tokens) == 0 {
		return rl.Content
	}

	var b strings.Builder
	for _, tok := range rl.Tokens {
		if tok.Color != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(tok.Color)).Render(tok.Text))
		} else {
			b.WriteString(tok.Text)
		}
	}

	return b.String()
}

// styleLine applies styling to a rendered line of the snippet pane.
func styleLine(rl renderedLine, width int) string {
	if rl.IsHeader {
		return snippetHeaderStyle.Width(width).Render(rl.Content)
	}

	// Blank separator between snippets
	if rl.Num == 0 {
		return ""
	}

	num := lineNumberStyle.Render(fmt.Sprintf("%5d", rl.Num))

	content := renderHighlightedContent(rl)

	// Truncate long lines
	maxContent := width - 7
	if maxContent > 0 && lipgloss.Width(content) > maxContent {
		// Simple truncation for styled strings
		content = truncate(rl.Content, maxContent)
	}

	return num + " " + content
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) > max {
		return s[:max-1] + "…"
	}
	return s
}
