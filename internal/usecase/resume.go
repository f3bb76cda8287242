package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/pluribus-dev/pluribus/internal/domain"
)

// ResumeInput contains the parameters for resuming a plurb.
// Fields are ordered to minimize memory padding.
type ResumeInput struct {
	ExtraArgs map[string]string // Agent-specific key=value arguments
	PlurbID   string            // Exact plurb id (callers resolve first)
	Agent     string            // Agent name override (optional)
	Force     bool              // Resume even if the record claims an active agent
}

// ResumeOutput contains the result of resuming a plurb.
// Fields are ordered to minimize memory padding.
type ResumeOutput struct {
	PlurbID   string // Resumed plurb id
	AgentName string // Agent that was launched
	SessionID string // Session id handed to the agent, "" for a fresh session
	PID       int    // Agent process id, informational only
}

// Resume is the use case for relaunching an agent on an existing plurb.
type Resume struct {
	registry     domain.PlurbRegistry
	catalog      domain.TaskCatalog
	statuses     domain.StatusStore
	launcher     domain.AgentLauncher
	configLoader domain.ConfigLoader
	clock        domain.Clock
	logger       domain.Logger
}

// NewResume creates a new Resume use case.
func NewResume(
	registry domain.PlurbRegistry,
	catalog domain.TaskCatalog,
	statuses domain.StatusStore,
	launcher domain.AgentLauncher,
	configLoader domain.ConfigLoader,
	clock domain.Clock,
	logger domain.Logger,
) *Resume {
	return &Resume{
		registry:     registry,
		catalog:      catalog,
		statuses:     statuses,
		launcher:     launcher,
		configLoader: configLoader,
		clock:        clock,
		logger:       logger,
	}
}

// Execute relaunches an agent on a plurb, reusing the recorded session
// id when one exists.
//
// A record claiming an active agent blocks the resume unless the
// recorded pid is provably dead or Force is set. The active flag is
// never cleared on disk here: the record belongs to the agent.
func (uc *Resume) Execute(_ context.Context, in ResumeInput) (*ResumeOutput, error) {
	plurb, err := uc.findPlurb(in.PlurbID)
	if err != nil {
		return nil, err
	}
	if plurb.Degraded || plurb.Record == nil {
		return nil, fmt.Errorf("plurb %s has no readable status record: %w", plurb.ID, domain.ErrInvalidStatusRecord)
	}
	rec := plurb.Record

	if rec.ClaudeInstanceActive && !in.Force {
		if rec.AgentPID > 0 && uc.launcher.ProcessAlive(rec.AgentPID) {
			return nil, fmt.Errorf("plurb %s: %w", plurb.ID, domain.ErrAgentActive)
		}
		uc.logger.Warn(plurb.ID, "resume", fmt.Sprintf("record claims active agent but pid %d is gone, resuming", rec.AgentPID))
	}

	cfg, err := uc.configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	agent, err := domain.ResolveAgent(in.Agent, cfg.Agents, cfg.DefaultAgent)
	if err != nil {
		return nil, err
	}

	// Task body is best-effort context: the task may have been edited
	// out of the document since the plurb was created.
	var taskBody string
	if task, err := uc.catalog.GetByName(rec.TaskName); err == nil {
		taskBody = task.Body
	} else if !errors.Is(err, domain.ErrTaskNotFound) && !errors.Is(err, domain.ErrNoTasks) {
		uc.logger.Warn(plurb.ID, "resume", fmt.Sprintf("load task body: %v", err))
	}

	result, err := uc.launcher.Spawn(domain.SpawnOptions{
		ExtraArgs:    in.ExtraArgs,
		Agent:        agent,
		PlurbID:      plurb.ID,
		TaskName:     rec.TaskName,
		TaskBody:     taskBody,
		WorktreePath: plurb.Path,
		RepoRoot:     cfg.RepoPath,
		SessionID:    rec.SessionID,
	})
	if err != nil {
		uc.logger.Error(plurb.ID, "resume", fmt.Sprintf("spawn agent: %v", err))
		return nil, fmt.Errorf("spawn agent: %w", err)
	}

	sessionID := rec.SessionID
	if sessionID == "" {
		sessionID = uc.launcher.SessionID(plurb.Path, sessionIDTimeout)
	}

	now := uc.clock.Now()
	if err := uc.statuses.Update(plurb.Path, func(r *domain.StatusRecord) {
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
		uc.logger.Warn(plurb.ID, "resume", fmt.Sprintf("update status record: %v", err))
	}

	uc.logger.Info(plurb.ID, "resume", fmt.Sprintf("resumed with agent %q (pid %d)", agent.Name, result.PID))

	return &ResumeOutput{
		PlurbID:   plurb.ID,
		AgentName: agent.Name,
		SessionID: sessionID,
		PID:       result.PID,
	}, nil
}

func (uc *Resume) findPlurb(id string) (*domain.Plurb, error) {
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
