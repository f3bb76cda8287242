package domain

import "errors"

// Domain errors.
var (
	ErrNotInitialized        = errors.New("not in a pluribus workspace (no pluribus.config found)")
	ErrAlreadyInitialized    = errors.New("workspace already initialized")
	ErrNoTasks               = errors.New("no tasks defined")
	ErrTaskNotFound          = errors.New("task not found")
	ErrPlurbNotFound         = errors.New("no matching plurb found")
	ErrAmbiguousIdentifier   = errors.New("identifier matches multiple plurbs")
	ErrIDAllocationExhausted = errors.New("could not allocate a unique plurb id")
	ErrWorkspaceCreation     = errors.New("worktree creation failed")
	ErrAgentActive           = errors.New("an agent is already active on this plurb")
	ErrUnsafeDelete          = errors.New("plurb has unsaved work")
	ErrAgentNotFound         = errors.New("agent not found")
	ErrInvalidStatusRecord   = errors.New("invalid status record")
	ErrRepoNotConfigured     = errors.New("repository not configured or does not exist")
	ErrUncommittedChanges    = errors.New("uncommitted changes exist")
)
