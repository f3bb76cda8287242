package usecase

import (
	"context"
	"fmt"
	"os"

	"github.com/pluribus-dev/pluribus/internal/domain"
)

// PlurbDetailsInput contains the parameters for showing plurb details.
type PlurbDetailsInput struct {
	PlurbID string // Exact plurb id (callers resolve first)
}

// PlurbDetailsOutput contains everything known about one plurb.
// Fields are ordered to minimize memory padding.
type PlurbDetailsOutput struct {
	Plurb           *domain.Plurb
	AgentOutputPath string // Path to captured agent output, "" when absent
	LogPath         string // Per-plurb log path, "" when absent
	Dirty           bool   // Worktree has uncommitted changes
	Unpushed        bool   // Worktree has unpushed commits
	AgentAlive      bool   // Recorded pid refers to a live process
}

// PlurbDetails is the use case for the detailed single-plurb view.
type PlurbDetails struct {
	registry      domain.PlurbRegistry
	worktrees     domain.WorktreeManager
	launcher      domain.AgentLauncher
	workspaceRoot string
}

// NewPlurbDetails creates a new PlurbDetails use case.
func NewPlurbDetails(registry domain.PlurbRegistry, worktrees domain.WorktreeManager, launcher domain.AgentLauncher, workspaceRoot string) *PlurbDetails {
	return &PlurbDetails{
		registry:      registry,
		worktrees:     worktrees,
		launcher:      launcher,
		workspaceRoot: workspaceRoot,
	}
}

// Execute gathers the detailed view of one plurb. Git state and agent
// liveness are best-effort: failures there degrade the view, not the
// command.
func (uc *PlurbDetails) Execute(_ context.Context, in PlurbDetailsInput) (*PlurbDetailsOutput, error) {
	plurbs, err := uc.registry.List()
	if err != nil {
		return nil, fmt.Errorf("list plurbs: %w", err)
	}

	var plurb *domain.Plurb
	for _, p := range plurbs {
		if p.ID == in.PlurbID {
			plurb = p
			break
		}
	}
	if plurb == nil {
		return nil, fmt.Errorf("%q: %w", in.PlurbID, domain.ErrPlurbNotFound)
	}

	out := &PlurbDetailsOutput{Plurb: plurb}

	if path := domain.AgentOutputPath(plurb.Path); fileExists(path) {
		out.AgentOutputPath = path
	}
	if path := domain.PlurbLogPath(uc.workspaceRoot, plurb.ID); fileExists(path) {
		out.LogPath = path
	}

	if fileExists(plurb.Path) {
		out.Dirty, _ = uc.worktrees.HasUncommittedChanges(plurb.Path)
		out.Unpushed, _ = uc.worktrees.HasUnpushedCommits(plurb.Path)
	}

	if rec := plurb.Record; rec != nil && rec.AgentPID > 0 {
		out.AgentAlive = uc.launcher.ProcessAlive(rec.AgentPID)
	}

	return out, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
