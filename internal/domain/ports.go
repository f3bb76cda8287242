package domain

import (
	"context"
	"time"
)

// TaskCatalog parses the task list document.
type TaskCatalog interface {
	// Load returns all tasks in document order.
	Load() ([]Task, error)

	// GetByName finds a task by case-insensitive partial name match.
	GetByName(name string) (*Task, error)
}

// StatusStore is the durable status record protocol shared with agents.
type StatusStore interface {
	// Load reads the record from a worktree, retrying transient failures.
	Load(worktreePath string) (*StatusRecord, error)

	// Save atomically replaces the record in a worktree.
	Save(worktreePath string, rec *StatusRecord) error

	// Update applies mutate under read-modify-write, preserving unknown
	// fields written by the agent.
	Update(worktreePath string, mutate func(*StatusRecord)) error
}

// PlurbRegistry enumerates plurbs from the filesystem.
type PlurbRegistry interface {
	// List returns all plurbs sorted by id. Plurbs whose record cannot
	// be read are returned degraded, never omitted.
	List() ([]*Plurb, error)
}

// WorktreeInfo describes one git worktree.
type WorktreeInfo struct {
	Path   string // Absolute path to worktree
	Branch string // Branch name
}

// WorktreeManager manages git worktrees for plurbs.
type WorktreeManager interface {
	// Create adds a worktree on a new branch. Returns the worktree path.
	Create(branch, plurbID string) (string, error)

	// Remove deletes a plurb's worktree. With force, dirty worktrees are
	// removed as well.
	Remove(plurbID string, force bool) error

	// List returns all registered worktrees.
	List() ([]WorktreeInfo, error)

	// Prune drops stale worktree registrations.
	Prune() error

	// HasUncommittedChanges reports staged or unstaged changes in a worktree.
	HasUncommittedChanges(dir string) (bool, error)

	// HasUnpushedCommits reports commits not present on any remote.
	HasUnpushedCommits(dir string) (bool, error)
}

// Git provides repository-level operations.
type Git interface {
	// Clone clones a remote repository into the client's root.
	Clone(ctx context.Context, url string) error

	// IsRepository reports whether the client's root is a git repository.
	IsRepository() bool

	// ListBranches returns local branches under the pluribus namespace.
	ListBranches() ([]string, error)

	// DeleteBranch removes a local branch. Deleting an absent branch is
	// a no-op.
	DeleteBranch(branch string) error

	// BranchExists checks if a local branch exists.
	BranchExists(branch string) (bool, error)
}

// SpawnOptions configures a detached agent launch.
// Fields are ordered to minimize memory padding.
type SpawnOptions struct {
	ExtraArgs    map[string]string // Agent-specific key=value arguments
	Agent        AgentSpec         // Resolved agent definition
	PlurbID      string            // Plurb being worked on
	TaskName     string            // Human-readable task name
	TaskBody     string            // Task context passed to the agent
	WorktreePath string            // Agent working directory
	RepoRoot     string            // Main repository root
	SessionID    string            // Previous session to resume, if any
}

// SpawnResult describes a launched agent.
type SpawnResult struct {
	RunID string // Unique id for this launch
	PID   int    // OS process id, informational only
}

// AgentLauncher starts agent processes detached from pluribus.
type AgentLauncher interface {
	// Spawn runs the agent's setup script and starts the agent. The
	// process outlives pluribus; the returned pid is never signaled or
	// waited on.
	Spawn(opts SpawnOptions) (*SpawnResult, error)

	// SessionID polls the agent output for a session id, giving up
	// after timeout. Returns "" when none appears.
	SessionID(worktreePath string, timeout time.Duration) string

	// ProcessAlive reports whether pid refers to a live process.
	ProcessAlive(pid int) bool
}

// Change is one change-feed notification. A zero PlurbID requests a
// full re-scan.
type Change struct {
	PlurbID string
}

// ChangeFeed delivers status change notifications for the worktree root.
type ChangeFeed interface {
	// Start begins watching. The returned channel closes when ctx is
	// canceled and the subscription has been released.
	Start(ctx context.Context) (<-chan Change, error)
}

// ConfigLoader loads the merged configuration.
type ConfigLoader interface {
	Load() (*Config, error)
}

// Logger writes workspace log entries.
type Logger interface {
	Debug(plurbID, category, msg string)
	Info(plurbID, category, msg string)
	Warn(plurbID, category, msg string)
	Error(plurbID, category, msg string)
}

// Clock provides time operations for testability.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
