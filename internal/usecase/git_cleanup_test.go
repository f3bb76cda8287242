package usecase

import (
	"context"
	"testing"

	"github.com/pluribus-dev/pluribus/internal/domain"
	"github.com/pluribus-dev/pluribus/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitCleanup_Execute(t *testing.T) {
	worktrees := testutil.NewMockWorktreeManager()
	worktrees.Worktrees = []domain.WorktreeInfo{
		{Path: "/repo", Branch: "main"},
		{Path: "/worktrees/fix-bug-ab12c", Branch: "pluribus/fix-bug-ab12c"},
	}

	git := testutil.NewMockGit()
	git.Branches["pluribus/fix-bug-ab12c"] = true // claimed
	git.Branches["pluribus/add-x-cd34e"] = true   // orphan
	git.Branches["main"] = true                   // outside namespace

	uc := NewGitCleanup(worktrees, git, testutil.NopLogger{})
	out, err := uc.Execute(context.Background(), GitCleanupInput{})
	require.NoError(t, err)

	assert.True(t, worktrees.PruneCalled)
	assert.Equal(t, []string{"pluribus/add-x-cd34e"}, out.Deleted)
	assert.Equal(t, []string{"pluribus/fix-bug-ab12c"}, out.Kept)
	assert.Equal(t, []string{"pluribus/add-x-cd34e"}, git.Deleted)
	assert.True(t, git.Branches["main"], "branches outside the namespace are never touched")

	// Second run finds nothing.
	out, err = uc.Execute(context.Background(), GitCleanupInput{})
	require.NoError(t, err)
	assert.Empty(t, out.Deleted)
}

func TestGitCleanup_Execute_DryRun(t *testing.T) {
	worktrees := testutil.NewMockWorktreeManager()
	git := testutil.NewMockGit()
	git.Branches["pluribus/add-x-cd34e"] = true

	uc := NewGitCleanup(worktrees, git, testutil.NopLogger{})
	out, err := uc.Execute(context.Background(), GitCleanupInput{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"pluribus/add-x-cd34e"}, out.Deleted)
	assert.Empty(t, git.Deleted, "dry run must not delete")
	assert.True(t, git.Branches["pluribus/add-x-cd34e"])
}

func TestGitCleanup_Execute_NoBranches(t *testing.T) {
	uc := NewGitCleanup(testutil.NewMockWorktreeManager(), testutil.NewMockGit(), testutil.NopLogger{})
	out, err := uc.Execute(context.Background(), GitCleanupInput{})
	require.NoError(t, err)
	assert.Empty(t, out.Deleted)
	assert.Empty(t, out.Kept)
}
