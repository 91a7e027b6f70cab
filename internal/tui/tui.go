// Package tui implements the Bubble Tea browser for review results.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sprite-ai/mergemate/internal/model"
)

// Model is the top-level Bubble Tea model for mergemate.
type Model struct {
	result *model.ReviewResult
	stats  map[string]model.FileChange // keyed by path, populated in diff mode

	// UI state
	width  int
	height int

	// Ranked file list
	fileIndex int // currently selected file

	// Snippet viewport
	scrollOffset int // scroll position within the current file's snippets
	viewHeight   int // number of visible lines in the snippet area

	// Rendered lines for the current file
	lines []renderedLine

	// Help
	showHelp bool
}

// New creates a new TUI model from a review result.
func New(result *model.ReviewResult) Model {
	m := Model{result: result}
	if len(result.ChangedStats) > 0 {
		m.stats = make(map[string]model.FileChange, len(result.ChangedStats))
		for _, fc := range result.ChangedStats {
			m.stats[fc.Path] = fc
		}
	}
	m.updateLines()
	return m
}

func (m *Model) updateLines() {
	if len(m.result.Relevant) == 0 {
		m.lines = nil
		return
	}
	m.lines = renderFile(m.result.Relevant[m.fileIndex])
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewHeight = m.height - 4 // status bar + help bar + borders
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Down):
			if m.scrollOffset < len(m.lines)-1 {
				m.scrollOffset++
			}

		case key.Matches(msg, keys.Up):
			if m.scrollOffset > 0 {
				m.scrollOffset--
			}

		case key.Matches(msg, keys.NextFile):
			if m.fileIndex < len(m.result.Relevant)-1 {
				m.fileIndex++
				m.scrollOffset = 0
				m.updateLines()
			}

		case key.Matches(msg, keys.PrevFile):
			if m.fileIndex > 0 {
				m.fileIndex--
				m.scrollOffset = 0
				m.updateLines()
			}

		case key.Matches(msg, keys.NextSnippet):
			m.jumpToNextSnippet()

		case key.Matches(msg, keys.PrevSnippet):
			m.jumpToPrevSnippet()

		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
		}
	}

	return m, nil
}

func (m *Model) jumpToNextSnippet() {
	for i := m.scrollOffset + 1; i < len(m.lines); i++ {
		if m.lines[i].IsHeader {
			m.scrollOffset = i
			return
		}
	}
}

func (m *Model) jumpToPrevSnippet() {
	for i := m.scrollOffset - 1; i >= 0; i-- {
		if m.lines[i].IsHeader {
			m.scrollOffset = i
			return
		}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	// Layout: ranked file list on left, snippets on right
	fileListWidth := m.fileListWidth()
	snippetWidth := m.width - fileListWidth - 1 // -1 for gap

	fileList := m.renderFileList(fileListWidth, m.height-2)
	snippetView := m.renderSnippetView(snippetWidth, m.height-2)

	main := lipgloss.JoinHorizontal(lipgloss.Top, fileList, " ", snippetView)

	statusBar := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, main, statusBar)
}

func (m Model) fileListWidth() int {
	// Calculate based on longest path, capped
	maxLen := 20
	for _, f := range m.result.Relevant {
		if len(f.Path) > maxLen {
			maxLen = len(f.Path)
		}
	}
	w := maxLen + 10 // padding + score column
	if w > m.width/3 {
		w = m.width / 3
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) renderFileList(width, height int) string {
	var b strings.Builder

	for i, f := range m.result.Relevant {
		name := f.Path

		// Truncate name if needed
		maxName := width - 10
		if maxName > 0 && len(name) > maxName {
			name = "…" + name[len(name)-maxName+1:]
		}

		line := fmt.Sprintf("%-*s %5.1f", maxName, name, f.Score)

		var style lipgloss.Style
		if i == m.fileIndex {
			style = fileItemSelectedStyle
		} else if m.stats[f.Path].IsNew {
			style = fileItemNewStyle
		} else if len(f.Snippets) == 0 {
			style = fileItemDimStyle
		} else {
			style = fileItemStyle
		}

		b.WriteString(style.Width(width - 4).Render(line))
		if i < len(m.result.Relevant)-1 {
			b.WriteByte('\n')
		}
	}

	innerHeight := height - 2 // borders
	content := b.String()
	return fileListStyle.Width(width).Height(innerHeight).Render(content)
}

func (m Model) renderSnippetView(width, height int) string {
	innerHeight := height - 2
	if len(m.result.Relevant) == 0 {
		return snippetViewStyle.Width(width).Height(innerHeight).Render("No relevant files")
	}

	f := m.result.Relevant[m.fileIndex]
	innerWidth := width - 4 // borders + padding

	// File header
	header := fileHeaderStyle.Render(m.fileHeader(f))

	// Calculate visible lines
	visibleLines := innerHeight - 2 // header takes some space
	if visibleLines < 1 {
		visibleLines = 1
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')

	if len(m.lines) == 0 {
		b.WriteString(helpBarStyle.Render("No snippets. Pass keywords to extract matching context."))
	} else {
		end := m.scrollOffset + visibleLines
		if end > len(m.lines) {
			end = len(m.lines)
		}
		for i := m.scrollOffset; i < end; i++ {
			b.WriteString(styleLine(m.lines[i], innerWidth))
			if i < end-1 {
				b.WriteByte('\n')
			}
		}
	}

	return snippetViewStyle.Width(width).Height(innerHeight).Render(b.String())
}

func (m Model) fileHeader(f model.RelevantFile) string {
	header := fmt.Sprintf("%s  %d lines", f.Path, f.Lines)
	if fc, ok := m.stats[f.Path]; ok {
		header += fmt.Sprintf("  +%d -%d", fc.AddedLines, fc.DeletedLines)
	}
	return header
}

func (m Model) renderStatusBar() string {
	shown := 0
	if len(m.result.Relevant) > 0 {
		shown = m.fileIndex + 1
	}

	left := fmt.Sprintf(" File %d/%d", shown, len(m.result.Relevant))
	if len(m.lines) > 0 {
		left += fmt.Sprintf("  Line %d/%d", m.scrollOffset+1, len(m.lines))
	}

	snippets := 0
	for _, f := range m.result.Relevant {
		snippets += len(f.Snippets)
	}

	right := fmt.Sprintf("%s  %d snippets  ? help ", m.result.Mode, snippets)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
	return bar
}

func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(fileHeaderStyle.Render("mergemate Keyboard Shortcuts"))
	b.WriteString("\n\n")

	helpItems := []struct{ key, desc string }{
		{"↑/k", "Scroll up"},
		{"↓/j", "Scroll down"},
		{"n/Tab", "Next file"},
		{"N/S-Tab", "Previous file"},
		{"]", "Next snippet"},
		{"[", "Previous snippet"},
		{"?", "Toggle this help"},
		{"q", "Quit"},
	}

	for _, item := range helpItems {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			helpKeyStyle.Width(12).Render(item.key),
			item.desc,
		))
	}

	b.WriteString("\n")
	b.WriteString(helpBarStyle.Render("Press ? to close help"))

	return b.String()
}

// Run starts the TUI application.
func Run(result *model.ReviewResult) error {
	m := New(result)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
