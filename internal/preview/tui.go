// Package preview provides an interactive batch preview using a Bubble
// Tea TUI, for inspecting what would be delivered without sending it.
package preview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mkarjala/meme-courier/internal/reddit"
)

// ViewMode represents the current view mode
type ViewMode int

// View modes for the preview TUI
const (
	ListViewMode ViewMode = iota
	DetailViewMode
)

// Model represents the Bubble Tea model for the preview TUI
type Model struct {
	memes        []reddit.Meme
	cursor       int
	viewMode     ViewMode
	categoryName string
	width        int
	height       int
}

// NewModel creates a new preview model
func NewModel(memes []reddit.Meme, categoryName string) Model {
	return Model{
		memes:        memes,
		categoryName: categoryName,
		viewMode:     ListViewMode,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "up", "k":
			if m.viewMode == ListViewMode && m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.viewMode == ListViewMode && m.cursor < len(m.memes)-1 {
				m.cursor++
			}

		case "enter":
			m.viewMode = DetailViewMode

		case "esc":
			m.viewMode = ListViewMode
		}
	}

	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	if m.viewMode == DetailViewMode {
		return m.renderDetailView()
	}
	return m.renderListView()
}

func (m Model) renderListView() string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12"))

	header := fmt.Sprintf("Batch Preview - %s (%d memes)", m.categoryName, len(m.memes))
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")

	for i, meme := range m.memes {
		line := FormatCompactListItem(i, meme)

		if i == m.cursor {
			selectedStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("12")).
				Bold(true)
			b.WriteString(selectedStyle.Render("→ " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	footer := "↑/↓ or j/k: navigate • enter: view details • q: quit"
	b.WriteString(footerStyle.Render(footer))

	return b.String()
}

func (m Model) renderDetailView() string {
	if m.cursor < 0 || m.cursor >= len(m.memes) {
		return "No meme selected"
	}

	var b strings.Builder
	b.WriteString(FormatDetailedItem(m.memes[m.cursor]))
	b.WriteString("\n")

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	footer := "esc: back to list • q: quit"
	b.WriteString(footerStyle.Render(footer))

	return b.String()
}

// Run starts the Bubble Tea program
func Run(memes []reddit.Meme, categoryName string) error {
	if len(memes) == 0 {
		fmt.Println("No memes to preview")
		return nil
	}

	p := tea.NewProgram(NewModel(memes, categoryName), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
