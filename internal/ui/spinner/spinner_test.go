// File: internal/ui/spinner/spinner_test.go
package spinner

import (
	"bytes"
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_NonTerminalRunsDirectly(t *testing.T) {
	var out bytes.Buffer
	calls := 0

	err := Run(context.Background(), &out, "Uploading", func(ctx context.Context) error {
		calls++
		return errors.New("boom")
	})

	assert.EqualError(t, err, "boom")
	assert.Equal(t, 1, calls)
	assert.Empty(t, out.String())
	assert.False(t, IsTerminal(&out))
}

func TestModel_QuitsWhenDone(t *testing.T) {
	m := newModel("Downloading report.csv", func() {})
	assert.Contains(t, m.View(), "Downloading report.csv")

	updated, cmd := m.Update(doneMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, updated.View())
}

func TestModel_CtrlCCancels(t *testing.T) {
	cancelled := false
	m := newModel("Uploading", func() { cancelled = true })

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Nil(t, cmd)
	assert.True(t, cancelled)
}
