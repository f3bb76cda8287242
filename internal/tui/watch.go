// Package tui provides the live status view for pluribus watch.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pluribus-dev/pluribus/internal/domain"
)

// SnapshotMsg carries a fresh registry snapshot into the model. The
// watch command sends one per change via Program.Send.
type SnapshotMsg []*domain.Plurb

// WatchModel renders the live plurb table.
// Fields are ordered to minimize memory padding.
type WatchModel struct {
	lastUpdate time.Time
	table      table.Model
	count      int
	width      int
}

// NewWatch creates the watch model.
func NewWatch() WatchModel {
	columns := []table.Column{
		{Title: "ID", Width: 28},
		{Title: "TASK", Width: 24},
		{Title: "STATUS", Width: 12},
		{Title: "PHASE", Width: 16},
		{Title: "PROG", Width: 5},
		{Title: "AGENT", Width: 16},
		{Title: "ACTIVE", Width: 6},
		{Title: "UPDATED", Width: 19},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Colors.Muted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(Colors.Primary).
		Bold(false)
	t.SetStyles(s)

	return WatchModel{table: t}
}

// Init implements tea.Model.
func (m WatchModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetHeight(msg.Height - 4)

	case SnapshotMsg:
		m.count = len(msg)
		m.lastUpdate = time.Now()
		m.table.SetRows(plurbRows(msg))
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m WatchModel) View() string {
	title := titleStyle.Render(fmt.Sprintf("pluribus watch — %d plurbs", m.count))
	if !m.lastUpdate.IsZero() {
		title += helpStyle.Render("updated " + m.lastUpdate.Format("15:04:05"))
	}
	help := helpStyle.Render("↑/↓ move · q quit")
	return title + "\n" + m.table.View() + "\n" + help
}

// plurbRows converts a snapshot into table rows.
func plurbRows(plurbs []*domain.Plurb) []table.Row {
	rows := make([]table.Row, 0, len(plurbs))
	for _, p := range plurbs {
		phase, agent, progress, updated := "-", "-", "-", "-"
		active := "no"

		if rec := p.Record; rec != nil {
			if rec.Phase != "" {
				phase = rec.Phase
			}
			if rec.Agent.Name != "" {
				agent = rec.Agent.Name
			}
			progress = fmt.Sprintf("%d%%", rec.ProgressPercent)
			if !rec.LastUpdate.IsZero() {
				updated = rec.LastUpdate.Local().Format("2006-01-02 15:04:05")
			}
			if rec.ClaudeInstanceActive {
				active = "yes"
			}
		}

		status := lipgloss.NewStyle().
			Foreground(StatusColor(p.Status())).
			Render(p.Status().Display())

		rows = append(rows, table.Row{
			p.ID, p.TaskName, status, phase, progress, agent, active, updated,
		})
	}
	return rows
}
