package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"ramws/internal/adapters/tui/styles"
)

// ConfirmKeyMap defines key bindings for yes/no prompts
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
	Default key.Binding
	Abort   key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("n/esc", "no"),
	),
	Default: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "default"),
	),
	Abort: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}

// ConfirmModel asks a single yes/no question and quits once answered
type ConfirmModel struct {
	Question   string
	DefaultYes bool
	Keys       ConfirmKeyMap

	answered bool
	answer   bool
	aborted  bool
}

// NewConfirmModel creates a confirmation model with default keys
func NewConfirmModel(question string, defaultYes bool) ConfirmModel {
	return ConfirmModel{
		Question:   question,
		DefaultYes: defaultYes,
		Keys:       DefaultConfirmKeys,
	}
}

// Init implements tea.Model
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update handles key messages; any other message is ignored
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.answered {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.Keys.Confirm):
		m.answered, m.answer = true, true
	case key.Matches(keyMsg, m.Keys.Cancel):
		m.answered, m.answer = true, false
	case key.Matches(keyMsg, m.Keys.Default):
		m.answered, m.answer = true, m.DefaultYes
	case key.Matches(keyMsg, m.Keys.Abort):
		m.answered, m.aborted = true, true
	default:
		return m, nil
	}
	return m, tea.Quit
}

// View renders the question, or the chosen answer once the prompt is done
func (m ConfirmModel) View() string {
	var b strings.Builder
	b.WriteString(RenderConfirmPrompt(m.Question, m.DefaultYes))
	if !m.answered {
		b.WriteString("\n")
		b.WriteString(RenderHelpLine(m.Keys.Confirm, m.Keys.Cancel, m.Keys.Default))
	}
	if m.answered && !m.aborted {
		b.WriteString(" ")
		if m.answer {
			b.WriteString(styles.Success.Render("yes"))
		} else {
			b.WriteString(styles.ErrorMsg.Render("no"))
		}
	}
	b.WriteString("\n")
	return b.String()
}

// Answered reports whether the operator made a choice
func (m ConfirmModel) Answered() bool {
	return m.answered && !m.aborted
}

// Answer returns the operator's choice
func (m ConfirmModel) Answer() bool {
	return m.answer
}

// Aborted reports whether the prompt was interrupted
func (m ConfirmModel) Aborted() bool {
	return m.aborted
}

// RenderConfirmPrompt renders the question with its [Y/n] hint
func RenderConfirmPrompt(question string, defaultYes bool) string {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	return question + " " + styles.HelpKey.Render(hint)
}
