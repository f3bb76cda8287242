package usecase

import (
	"context"
	"fmt"
	"os"

	"github.com/pluribus-dev/pluribus/internal/domain"
)

// DeletePlurbInput contains the parameters for deleting a plurb.
type DeletePlurbInput struct {
	PlurbID string // Exact plurb id (callers resolve first)
	Force   bool   // Skip safety checks and remove dirty worktrees
}

// DeletePlurbOutput contains the result of deleting a plurb.
type DeletePlurbOutput struct {
	PlurbID string // Deleted plurb id
	Branch  string // Branch left in place, reclaimable via git cleanup
}

// DeletePlurb is the use case for removing a plurb's worktree and
// everything inside it. The branch stays: deleting it is a separate,
// reversible step handled by git cleanup.
type DeletePlurb struct {
	registry  domain.PlurbRegistry
	worktrees domain.WorktreeManager
	launcher  domain.AgentLauncher
	logger    domain.Logger
}

// NewDeletePlurb creates a new DeletePlurb use case.
func NewDeletePlurb(
	registry domain.PlurbRegistry,
	worktrees domain.WorktreeManager,
	launcher domain.AgentLauncher,
	logger domain.Logger,
) *DeletePlurb {
	return &DeletePlurb{
		registry:  registry,
		worktrees: worktrees,
		launcher:  launcher,
		logger:    logger,
	}
}

// Execute deletes a plurb. Without Force it refuses when the record
// claims a live agent, or when the worktree has uncommitted changes or
// unpushed commits. Degraded plurbs carry no record and skip the agent
// check: they are exactly the ones that need cleaning up.
func (uc *DeletePlurb) Execute(_ context.Context, in DeletePlurbInput) (*DeletePlurbOutput, error) {
	plurb, err := uc.findPlurb(in.PlurbID)
	if err != nil {
		return nil, err
	}

	if !in.Force {
		if err := uc.checkSafe(plurb); err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(plurb.Path); os.IsNotExist(err) {
		// Directory already gone; only the registration is stale.
		if err := uc.worktrees.Prune(); err != nil {
			return nil, fmt.Errorf("prune worktrees: %w", err)
		}
	} else if err := uc.worktrees.Remove(plurb.ID, in.Force); err != nil {
		return nil, fmt.Errorf("remove worktree: %w", err)
	}

	uc.logger.Info(plurb.ID, "delete", fmt.Sprintf("removed worktree, branch %s left in place", plurb.Branch))

	return &DeletePlurbOutput{
		PlurbID: plurb.ID,
		Branch:  plurb.Branch,
	}, nil
}

// checkSafe enforces the non-forced deletion guards.
func (uc *DeletePlurb) checkSafe(plurb *domain.Plurb) error {
	if rec := plurb.Record; rec != nil && rec.ClaudeInstanceActive {
		if rec.AgentPID <= 0 || uc.launcher.ProcessAlive(rec.AgentPID) {
			return fmt.Errorf("plurb %s: %w", plurb.ID, domain.ErrAgentActive)
		}
		uc.logger.Warn(plurb.ID, "delete", fmt.Sprintf("record claims active agent but pid %d is gone", rec.AgentPID))
	}

	if _, err := os.Stat(plurb.Path); os.IsNotExist(err) {
		return nil
	}

	dirty, err := uc.worktrees.HasUncommittedChanges(plurb.Path)
	if err != nil {
		return fmt.Errorf("check uncommitted changes: %w", err)
	}
	if dirty {
		return fmt.Errorf("plurb %s has uncommitted changes: %w", plurb.ID, domain.ErrUnsafeDelete)
	}

	unpushed, err := uc.worktrees.HasUnpushedCommits(plurb.Path)
	if err != nil {
		return fmt.Errorf("check unpushed commits: %w", err)
	}
	if unpushed {
		return fmt.Errorf("plurb %s has unpushed commits: %w", plurb.ID, domain.ErrUnsafeDelete)
	}
	return nil
}

func (uc *DeletePlurb) findPlurb(id string) (*domain.Plurb, error) {
	plurbs, err := uc.registry.List()
	if err != nil {
		return nil, fmt.Errorf("list plurbs: %w", err)
	}
	for _, p := range plurbs {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", id, domain.ErrPlurbNotFound)
}
