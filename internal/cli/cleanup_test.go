package cli

import (
	"bytes"
	"testing"

	"github.com/pluribus-dev/pluribus/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupCommand(t *testing.T) {
	c := newTestContainer()
	git := testutil.NewMockGit()
	git.Branches["pluribus/orphan-ab12c"] = true
	c.Git = git
	worktrees := testutil.NewMockWorktreeManager()
	c.Worktrees = worktrees

	cmd := newCleanupCommand(c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--force"})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "Deleted pluribus/orphan-ab12c")
	assert.Equal(t, []string{"pluribus/orphan-ab12c"}, git.Deleted)
	assert.True(t, worktrees.PruneCalled)
}

func TestCleanupCommand_DryRun(t *testing.T) {
	c := newTestContainer()
	git := testutil.NewMockGit()
	git.Branches["pluribus/orphan-ab12c"] = true
	c.Git = git

	cmd := newCleanupCommand(c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--dry-run"})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "Would delete pluribus/orphan-ab12c")
	assert.Empty(t, git.Deleted)
}

func TestCleanupCommand_NothingToDo(t *testing.T) {
	c := newTestContainer()

	cmd := newCleanupCommand(c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "No orphaned branches")
}
