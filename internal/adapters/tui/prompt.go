// Package tui holds the terminal-facing adapters: the yes/no prompt used to
// gate destructive operations and the lipgloss views shared by the CLI.
package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"ramws/internal/adapters/tui/views"
)

// ErrPromptAborted is returned when the operator interrupts a prompt
var ErrPromptAborted = errors.New("prompt aborted")

// Prompt implements ports.Confirmer. On a terminal it runs a bubbletea
// confirmation model; otherwise it reads one line from the input.
type Prompt struct {
	in  io.Reader
	out io.Writer
}

// NewPrompt creates a prompt reading in and writing out
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: in, out: out}
}

// NewStdPrompt creates a prompt on the process's standard streams
func NewStdPrompt() *Prompt {
	return NewPrompt(os.Stdin, os.Stderr)
}

// Confirm asks question and blocks until answered
func (p *Prompt) Confirm(question string, defaultYes bool) (bool, error) {
	if isTerminal(p.in) {
		return p.confirmInteractive(question, defaultYes)
	}
	return p.confirmLine(question, defaultYes)
}

func (p *Prompt) confirmInteractive(question string, defaultYes bool) (bool, error) {
	program := tea.NewProgram(
		views.NewConfirmModel(question, defaultYes),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)
	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("failed to run prompt: %w", err)
	}
	m, ok := final.(views.ConfirmModel)
	if !ok || m.Aborted() {
		return false, ErrPromptAborted
	}
	return m.Answer(), nil
}

func (p *Prompt) confirmLine(question string, defaultYes bool) (bool, error) {
	fmt.Fprintf(p.out, "%s ", views.RenderConfirmPrompt(question, defaultYes))

	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	return ParseAnswer(line, defaultYes), nil
}

// ParseAnswer interprets a typed answer. Empty input selects defaultYes;
// anything other than y/yes or n/no does too.
func ParseAnswer(line string, defaultYes bool) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return defaultYes
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
