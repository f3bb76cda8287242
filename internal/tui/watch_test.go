package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pluribus-dev/pluribus/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot() SnapshotMsg {
	rec := domain.NewStatusRecord("fix-bug-ab12c", "Fix bug", time.Now())
	rec.Status = domain.StatusInProgress
	rec.Phase = "implementing"
	rec.ProgressPercent = 40
	rec.ClaudeInstanceActive = true
	rec.Agent.Name = "headless-claude"

	return SnapshotMsg{
		{Record: rec, ID: "fix-bug-ab12c", TaskName: "Fix bug"},
		{ID: "bad-cd34e", TaskName: "bad-cd34e", Degraded: true},
	}
}

func TestWatchModel_Snapshot(t *testing.T) {
	m := NewWatch()
	updated, _ := m.Update(snapshot())
	model, ok := updated.(WatchModel)
	require.True(t, ok)

	assert.Equal(t, 2, model.count)
	require.Len(t, model.table.Rows(), 2)
	assert.Equal(t, "fix-bug-ab12c", model.table.Rows()[0][0])
	assert.Contains(t, model.table.Rows()[0][2], "In Progress")
	assert.Equal(t, "40%", model.table.Rows()[0][4])
	assert.Equal(t, "yes", model.table.Rows()[0][6])

	// Degraded plurbs show placeholders, never crash the view.
	assert.Contains(t, model.table.Rows()[1][2], "Unknown")
	assert.Equal(t, "-", model.table.Rows()[1][3])

	assert.NotEmpty(t, model.View())
}

func TestWatchModel_Quit(t *testing.T) {
	m := NewWatch()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
