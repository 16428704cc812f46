package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/goto/scout/core/entity"
	"github.com/goto/scout/core/search"
)

var (
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	nameStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	kindStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	descStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

// searchUpdateMsg carries a searcher snapshot into the bubbletea loop.
type searchUpdateMsg search.State

// Model is the interactive type-ahead view: a text input on top, the
// current suggestion list beneath it, and a spinner while a query is in
// flight. Enter commits either the highlighted entity or the typed text.
type Model struct {
	searcher *search.Searcher
	updates  <-chan search.State

	input textinput.Model
	spin  spinner.Model

	state  search.State
	cursor int

	committed entity.Value
	hasValue  bool
}

// NewFind builds the model. The updates channel must be the one the
// searcher's OnUpdate callback feeds.
func NewFind(searcher *search.Searcher, updates <-chan search.State) Model {
	ti := textinput.New()
	ti.Placeholder = "start typing to search the catalog"
	ti.Prompt = promptStyle.Render("Search: ")
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		searcher: searcher,
		updates:  updates,
		input:    ti,
		spin:     sp,
		cursor:   -1,
	}
}

// Committed returns the value the user committed with enter, if any.
func (m Model) Committed() (entity.Value, bool) {
	return m.committed, m.hasValue
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick, waitForUpdate(m.updates))
}

func waitForUpdate(updates <-chan search.State) tea.Cmd {
	return func() tea.Msg {
		return searchUpdateMsg(<-updates)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if m.cursor >= 0 && m.cursor < len(m.state.Results) {
				m.committed = entity.Selected(m.state.Results[m.cursor])
			} else {
				m.committed = entity.FreeText(m.input.Value())
			}
			m.hasValue = true
			return m, tea.Quit

		case tea.KeyUp:
			if m.cursor >= 0 {
				m.cursor--
			}
			return m, nil

		case tea.KeyDown:
			if m.cursor < len(m.state.Results)-1 {
				m.cursor++
			}
			return m, nil
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.cursor = -1
			m.searcher.OnInputChanged(m.input.Value())
		}
		return m, cmd

	case searchUpdateMsg:
		m.state = search.State(msg)
		if m.cursor >= len(m.state.Results) {
			m.cursor = len(m.state.Results) - 1
		}
		return m, waitForUpdate(m.updates)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.state.Loading:
		b.WriteString(m.spin.View() + " searching...\n")
	case m.state.Query != "" && len(m.state.Results) == 0:
		b.WriteString(hintStyle.Render("no matching entities") + "\n")
	default:
		for i, e := range m.state.Results {
			row := fmt.Sprintf("%s  %s  %s",
				nameStyle.Render(e.DisplayName()),
				kindStyle.Render("["+e.Kind.String()+"]"),
				descStyle.Render(e.DisplayDescription()),
			)
			if i == m.cursor {
				row = selectedStyle.Render("> " + e.DisplayName() + "  [" + e.Kind.String() + "]  " + e.DisplayDescription())
			}
			b.WriteString(row + "\n")
		}
	}

	b.WriteString("\n" + hintStyle.Render("↑/↓ select · enter commit · esc quit"))
	return b.String()
}
