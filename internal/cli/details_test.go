package cli

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/pluribus-dev/pluribus/internal/domain"
	"github.com/pluribus-dev/pluribus/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailsCommand(t *testing.T) {
	// Round-trip through JSON so the record carries preserved extra keys.
	raw := `{
		"task_id": "fix-bug-ab12c",
		"task_name": "Fix bug",
		"status": "blocked",
		"phase": "waiting on review",
		"progress_percent": 80,
		"blocker": "needs credentials",
		"pr_url": "https://example.com/pr/7",
		"agent_pid": 999,
		"claude_instance_active": true,
		"last_update": "2026-08-25T10:00:00Z",
		"agent": {"name": "headless-claude", "started_at": "2026-08-25T09:00:00Z", "metadata": null},
		"custom_metric": 42
	}`
	var rec domain.StatusRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))

	path := t.TempDir()
	c := newTestContainer()
	c.Registry = &testutil.MockRegistry{Plurbs: []*domain.Plurb{
		{Record: &rec, ID: "fix-bug-ab12c", TaskName: "Fix bug", Branch: "pluribus/fix-bug-ab12c", Path: path},
	}}
	launcher := testutil.NewMockLauncher()
	launcher.AlivePIDs[999] = true
	c.Launcher = launcher
	worktrees := testutil.NewMockWorktreeManager()
	worktrees.Unpushed[path] = true
	c.Worktrees = worktrees

	cmd := newDetailsCommand(c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"fix-bug-ab12c"})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "# Plurb fix-bug-ab12c: Fix bug")
	assert.Contains(t, out, "Branch:   pluribus/fix-bug-ab12c")
	assert.Contains(t, out, "Status:   Blocked")
	assert.Contains(t, out, "Blocker:  needs credentials")
	assert.Contains(t, out, "PR:       https://example.com/pr/7")
	assert.Contains(t, out, "PID:     999 (running)")
	assert.Contains(t, out, "Unpushed commits:    true")
	assert.Contains(t, out, "custom_metric: 42")
}

func TestDetailsCommand_Degraded(t *testing.T) {
	c := newTestContainer()
	c.Registry = &testutil.MockRegistry{Plurbs: []*domain.Plurb{
		{ID: "bad-cd34e", TaskName: "bad-cd34e", Branch: "pluribus/bad-cd34e", Degraded: true},
	}}

	cmd := newDetailsCommand(c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"bad-cd34e"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Status record is missing or unreadable")
}

func TestResumeCommand(t *testing.T) {
	path := t.TempDir()
	rec := domain.NewStatusRecord("fix-bug-ab12c", "Fix bug", time.Now())
	rec.Status = domain.StatusBlocked
	rec.SessionID = "sess-1"

	c := newTestContainer()
	c.Registry = &testutil.MockRegistry{Plurbs: []*domain.Plurb{
		{Record: rec, ID: "fix-bug-ab12c", TaskName: "Fix bug", Branch: "pluribus/fix-bug-ab12c", Path: path},
	}}
	c.Statuses.(*testutil.MockStatusStore).Records[path] = rec

	cmd := newResumeCommand(c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"fix-bug-ab12c"})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "Resumed plurb fix-bug-ab12c")
	assert.Contains(t, out, "Session: sess-1")
}
