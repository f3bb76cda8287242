package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/pluribus-dev/pluribus/internal/domain"
	"github.com/pluribus-dev/pluribus/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deleteFixture builds a plurb whose worktree path really exists, so
// the on-disk existence checks behave.
func deleteFixture(t *testing.T, active bool, pid int) (*DeletePlurb, *domain.Plurb, *testutil.MockWorktreeManager, *testutil.MockLauncher) {
	t.Helper()

	path := t.TempDir()
	rec := domain.NewStatusRecord("fix-bug-ab12c", "Fix bug", time.Now())
	rec.ClaudeInstanceActive = active
	rec.AgentPID = pid

	plurb := &domain.Plurb{
		Record:   rec,
		ID:       "fix-bug-ab12c",
		TaskName: "Fix bug",
		Branch:   domain.BranchName("fix-bug-ab12c"),
		Path:     path,
	}

	worktrees := testutil.NewMockWorktreeManager()
	launcher := testutil.NewMockLauncher()

	uc := NewDeletePlurb(&testutil.MockRegistry{Plurbs: []*domain.Plurb{plurb}}, worktrees, launcher, testutil.NopLogger{})
	return uc, plurb, worktrees, launcher
}

func TestDeletePlurb_Execute(t *testing.T) {
	uc, plurb, worktrees, _ := deleteFixture(t, false, 0)

	out, err := uc.Execute(context.Background(), DeletePlurbInput{PlurbID: plurb.ID})
	require.NoError(t, err)

	assert.Equal(t, []string{plurb.ID}, worktrees.Removed)
	// The branch stays; reclaiming it is git cleanup's job.
	assert.Equal(t, plurb.Branch, out.Branch)
}

func TestDeletePlurb_Execute_LiveAgentBlocks(t *testing.T) {
	uc, plurb, worktrees, launcher := deleteFixture(t, true, 999)
	launcher.AlivePIDs[999] = true

	_, err := uc.Execute(context.Background(), DeletePlurbInput{PlurbID: plurb.ID})
	assert.ErrorIs(t, err, domain.ErrAgentActive)
	assert.Empty(t, worktrees.Removed)
}

func TestDeletePlurb_Execute_ActiveFlagWithoutPIDBlocks(t *testing.T) {
	// No pid to probe: trust the flag.
	uc, plurb, _, _ := deleteFixture(t, true, 0)

	_, err := uc.Execute(context.Background(), DeletePlurbInput{PlurbID: plurb.ID})
	assert.ErrorIs(t, err, domain.ErrAgentActive)
}

func TestDeletePlurb_Execute_StaleActiveFlagProceeds(t *testing.T) {
	uc, plurb, worktrees, _ := deleteFixture(t, true, 999) // pid dead

	_, err := uc.Execute(context.Background(), DeletePlurbInput{PlurbID: plurb.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{plurb.ID}, worktrees.Removed)
}

func TestDeletePlurb_Execute_DirtyWorktreeBlocks(t *testing.T) {
	uc, plurb, worktrees, _ := deleteFixture(t, false, 0)
	worktrees.Dirty[plurb.Path] = true

	_, err := uc.Execute(context.Background(), DeletePlurbInput{PlurbID: plurb.ID})
	assert.ErrorIs(t, err, domain.ErrUnsafeDelete)
}

func TestDeletePlurb_Execute_UnpushedCommitsBlock(t *testing.T) {
	uc, plurb, worktrees, _ := deleteFixture(t, false, 0)
	worktrees.Unpushed[plurb.Path] = true

	_, err := uc.Execute(context.Background(), DeletePlurbInput{PlurbID: plurb.ID})
	assert.ErrorIs(t, err, domain.ErrUnsafeDelete)
}

func TestDeletePlurb_Execute_ForceOverridesAll(t *testing.T) {
	uc, plurb, worktrees, launcher := deleteFixture(t, true, 999)
	launcher.AlivePIDs[999] = true
	worktrees.Dirty[plurb.Path] = true

	_, err := uc.Execute(context.Background(), DeletePlurbInput{PlurbID: plurb.ID, Force: true})
	require.NoError(t, err)
	assert.True(t, worktrees.ForcedRemove)
}

func TestDeletePlurb_Execute_DegradedWithMissingDirPrunes(t *testing.T) {
	gone := &domain.Plurb{
		ID:       "gone-ef56g",
		TaskName: "gone-ef56g",
		Branch:   domain.BranchName("gone-ef56g"),
		Path:     "/nonexistent/gone-ef56g",
		Degraded: true,
	}
	worktrees := testutil.NewMockWorktreeManager()

	uc := NewDeletePlurb(&testutil.MockRegistry{Plurbs: []*domain.Plurb{gone}}, worktrees, testutil.NewMockLauncher(), testutil.NopLogger{})

	_, err := uc.Execute(context.Background(), DeletePlurbInput{PlurbID: gone.ID})
	require.NoError(t, err)
	assert.True(t, worktrees.PruneCalled)
	assert.Empty(t, worktrees.Removed)
}

func TestDeletePlurb_Execute_NotFound(t *testing.T) {
	uc, _, _, _ := deleteFixture(t, false, 0)
	_, err := uc.Execute(context.Background(), DeletePlurbInput{PlurbID: "missing-zz99z"})
	assert.ErrorIs(t, err, domain.ErrPlurbNotFound)
}
