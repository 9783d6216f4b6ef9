// File: internal/ui/prompt/prompt.go
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

// Defines the interface for prompting the user for input
type Prompter interface {
	// Asks the user for confirmation by requiring them to type a specific expected value
	Confirm(message string, expectedValue string) (bool, error)
}

// Provides a standard implementation of the Prompter interface using specified input/output streams
type StandardPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// Creates a new StandardPrompter with the given input and output streams
func NewStandardPrompter(in io.Reader, out io.Writer) *StandardPrompter {
	return &StandardPrompter{
		reader: bufio.NewReader(in),
		writer: out,
	}
}

// Asks the user for confirmation by requiring them to type a specific expected value.
// End of input counts as a refusal.
func (p *StandardPrompter) Confirm(message string, expectedValue string) (bool, error) {
	if expectedValue == "" {
		return false, fmt.Errorf("expected confirmation value cannot be empty")
	}

	fmt.Fprintln(p.writer, warningStyle.Render(message))
	fmt.Fprintf(p.writer, "To confirm, type '%s': ", expectedValue)

	input, err := p.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("error reading user input: %w", err)
	}

	return strings.TrimSpace(input) == expectedValue, nil
}
