package usecase

import (
	"context"
	"fmt"

	"github.com/pluribus-dev/pluribus/internal/domain"
)

// GitCleanupInput contains the parameters for reclaiming orphans.
type GitCleanupInput struct {
	DryRun bool // Report orphans without deleting them
}

// GitCleanupOutput contains the result of the cleanup pass.
type GitCleanupOutput struct {
	Deleted []string // Branches deleted (or that would be, with DryRun)
	Kept    []string // Namespace branches still backed by a worktree
}

// GitCleanup is the use case for reclaiming orphaned plurb branches:
// branches in the pluribus namespace whose worktree no longer exists.
type GitCleanup struct {
	worktrees domain.WorktreeManager
	git       domain.Git
	logger    domain.Logger
}

// NewGitCleanup creates a new GitCleanup use case.
func NewGitCleanup(worktrees domain.WorktreeManager, git domain.Git, logger domain.Logger) *GitCleanup {
	return &GitCleanup{
		worktrees: worktrees,
		git:       git,
		logger:    logger,
	}
}

// Execute prunes stale worktree registrations, then deletes every
// namespace branch not checked out in a surviving worktree. Running it
// twice in a row is a no-op the second time.
func (uc *GitCleanup) Execute(_ context.Context, in GitCleanupInput) (*GitCleanupOutput, error) {
	// Prune first so registrations for deleted directories do not keep
	// their branches looking claimed.
	if err := uc.worktrees.Prune(); err != nil {
		return nil, fmt.Errorf("prune worktrees: %w", err)
	}

	worktrees, err := uc.worktrees.List()
	if err != nil {
		return nil, fmt.Errorf("list worktrees: %w", err)
	}
	claimed := make(map[string]struct{}, len(worktrees))
	for _, wt := range worktrees {
		if wt.Branch != "" {
			claimed[wt.Branch] = struct{}{}
		}
	}

	branches, err := uc.git.ListBranches()
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}

	out := &GitCleanupOutput{}
	for _, branch := range branches {
		if _, ok := domain.BranchPlurbID(branch); !ok {
			continue
		}
		if _, ok := claimed[branch]; ok {
			out.Kept = append(out.Kept, branch)
			continue
		}

		if !in.DryRun {
			if err := uc.git.DeleteBranch(branch); err != nil {
				return nil, fmt.Errorf("delete branch %s: %w", branch, err)
			}
			uc.logger.Info("", "cleanup", fmt.Sprintf("deleted orphaned branch %s", branch))
		}
		out.Deleted = append(out.Deleted, branch)
	}

	return out, nil
}
