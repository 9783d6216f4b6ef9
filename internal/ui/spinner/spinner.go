// File: internal/ui/spinner/spinner.go
package spinner

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

// Sent once the wrapped work has returned
type doneMsg struct{}

type model struct {
	spinner spinner.Model
	title   string
	done    bool
	cancel  context.CancelFunc
}

func newModel(title string, cancel context.CancelFunc) model {
	return model{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		title:   title,
		cancel:  cancel,
	}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		// Cancel the work and keep spinning until it has unwound
		if msg.String() == "ctrl+c" {
			m.cancel()
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m model) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.title + "\n"
}

// Reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Runs fn, showing a spinner titled title on out while it works. When out is not a terminal
// fn simply runs. Pressing ctrl+c cancels the context passed to fn.
func Run(ctx context.Context, out io.Writer, title string, fn func(ctx context.Context) error) error {
	if !IsTerminal(out) {
		return fn(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newModel(title, cancel), tea.WithOutput(out), tea.WithContext(ctx))

	result := make(chan error, 1)
	go func() {
		err := fn(ctx)
		result <- err
		p.Send(doneMsg{})
	}()

	// The spinner is cosmetic; a failure to draw it never fails the work
	_, _ = p.Run()
	return <-result
}
