package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pluribus-dev/pluribus/internal/domain"
)

// idAllocationAttempts bounds the random-suffix retry loop.
const idAllocationAttempts = 10

// sessionIDTimeout bounds how long workon waits for the agent to report
// a session id before giving up on it.
const sessionIDTimeout = 3 * time.Second

// WorkonInput contains the parameters for starting work on a task.
// Fields are ordered to minimize memory padding.
type WorkonInput struct {
	ExtraArgs map[string]string // Agent-specific key=value arguments
	TaskName  string            // Task name, full or partial
	Agent     string            // Agent name override (optional)
}

// WorkonOutput contains the result of starting work on a task.
// Fields are ordered to minimize memory padding.
type WorkonOutput struct {
	PlurbID      string // Allocated plurb id
	TaskName     string // Resolved task name
	Branch       string // Created branch
	WorktreePath string // Created worktree path
	AgentName    string // Agent that was launched
	SessionID    string // Agent session id, "" when not reported in time
	PID          int    // Agent process id, informational only
}

// Workon is the use case for creating a plurb and launching its agent.
type Workon struct {
	catalog      domain.TaskCatalog
	registry     domain.PlurbRegistry
	worktrees    domain.WorktreeManager
	statuses     domain.StatusStore
	git          domain.Git
	launcher     domain.AgentLauncher
	configLoader domain.ConfigLoader
	clock        domain.Clock
	logger       domain.Logger

	newSuffix func() string
}

// NewWorkon creates a new Workon use case.
func NewWorkon(
	catalog domain.TaskCatalog,
	registry domain.PlurbRegistry,
	worktrees domain.WorktreeManager,
	statuses domain.StatusStore,
	git domain.Git,
	launcher domain.AgentLauncher,
	configLoader domain.ConfigLoader,
	clock domain.Clock,
	logger domain.Logger,
) *Workon {
	return &Workon{
		catalog:      catalog,
		registry:     registry,
		worktrees:    worktrees,
		statuses:     statuses,
		git:          git,
		launcher:     launcher,
		configLoader: configLoader,
		clock:        clock,
		logger:       logger,
		newSuffix:    domain.NewSuffix,
	}
}

// Execute starts work on a task: allocates a plurb id, creates the
// branch and worktree, seeds the status record and spawns the agent
// detached.
func (uc *Workon) Execute(_ context.Context, in WorkonInput) (*WorkonOutput, error) {
	task, err := uc.catalog.GetByName(in.TaskName)
	if err != nil {
		return nil, err
	}

	cfg, err := uc.configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	agent, err := domain.ResolveAgent(in.Agent, cfg.Agents, cfg.DefaultAgent)
	if err != nil {
		return nil, err
	}

	plurbID, branch, err := uc.allocateID(task.Name)
	if err != nil {
		return nil, err
	}

	wtPath, err := uc.worktrees.Create(branch, plurbID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrWorkspaceCreation, err)
	}

	// Seed the record before the agent starts so the plurb is visible
	// (and deletable) even if the spawn fails.
	rec := domain.NewStatusRecord(plurbID, task.Name, uc.clock.Now())
	if err := uc.statuses.Save(wtPath, rec); err != nil {
		return nil, fmt.Errorf("seed status record: %w", err)
	}

	result, err := uc.launcher.Spawn(domain.SpawnOptions{
		ExtraArgs:    in.ExtraArgs,
		Agent:        agent,
		PlurbID:      plurbID,
		TaskName:     task.Name,
		TaskBody:     task.Body,
		WorktreePath: wtPath,
		RepoRoot:     cfg.RepoPath,
	})
	if err != nil {
		uc.logger.Error(plurbID, "workon", fmt.Sprintf("spawn agent: %v", err))
		return nil, fmt.Errorf("spawn agent: %w", err)
	}

	sessionID := uc.launcher.SessionID(wtPath, sessionIDTimeout)

	now := uc.clock.Now()
	if err := uc.statuses.Update(wtPath, func(r *domain.StatusRecord) {
		r.Status = domain.StatusInProgress
		r.ClaudeInstanceActive = true
		r.AgentPID = result.PID
		r.SessionID = sessionID
		r.LastUpdate = now
		r.Agent = domain.AgentMeta{
			Name:      agent.Name,
			StartedAt: now,
			Metadata:  map[string]any{"run_id": result.RunID},
		}
	}); err != nil {
		// The agent is already running; the record will catch up on its
		// next write. Log and carry on.
		uc.logger.Warn(plurbID, "workon", fmt.Sprintf("update status record: %v", err))
	}

	uc.logger.Info(plurbID, "workon", fmt.Sprintf("started agent %q (pid %d) on task %q", agent.Name, result.PID, task.Name))

	return &WorkonOutput{
		PlurbID:      plurbID,
		TaskName:     task.Name,
		Branch:       branch,
		WorktreePath: wtPath,
		AgentName:    agent.Name,
		SessionID:    sessionID,
		PID:          result.PID,
	}, nil
}

// allocateID picks a fresh plurb id claimed by neither a branch nor the
// current registry listing, retrying with new random suffixes a bounded
// number of times. The registry check covers leftover worktree
// directories whose branch is already gone.
func (uc *Workon) allocateID(taskName string) (plurbID, branch string, err error) {
	plurbs, err := uc.registry.List()
	if err != nil {
		return "", "", fmt.Errorf("list plurbs: %w", err)
	}
	taken := make(map[string]struct{}, len(plurbs))
	for _, p := range plurbs {
		taken[p.ID] = struct{}{}
	}

	for range idAllocationAttempts {
		plurbID = domain.PlurbID(taskName, uc.newSuffix())
		branch = domain.BranchName(plurbID)

		if _, ok := taken[plurbID]; ok {
			continue
		}
		exists, err := uc.git.BranchExists(branch)
		if err != nil {
			return "", "", fmt.Errorf("check branch: %w", err)
		}
		if !exists {
			return plurbID, branch, nil
		}
	}
	return "", "", domain.ErrIDAllocationExhausted
}
