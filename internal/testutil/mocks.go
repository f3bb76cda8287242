// Package testutil provides shared test doubles for the domain ports.
package testutil

import (
	"context"
	"strings"
	"time"

	"github.com/pluribus-dev/pluribus/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockTaskCatalog is a test double for domain.TaskCatalog.
type MockTaskCatalog struct {
	Tasks   []domain.Task
	LoadErr error
}

// Load returns the configured tasks.
func (m *MockTaskCatalog) Load() ([]domain.Task, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if len(m.Tasks) == 0 {
		return nil, domain.ErrNoTasks
	}
	return m.Tasks, nil
}

// GetByName finds the first task whose name contains name,
// case-insensitive, mirroring the real parser.
func (m *MockTaskCatalog) GetByName(name string) (*domain.Task, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	needle := strings.ToLower(name)
	for i := range m.Tasks {
		if strings.Contains(strings.ToLower(m.Tasks[i].Name), needle) {
			return &m.Tasks[i], nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

// MockStatusStore is an in-memory test double for domain.StatusStore,
// keyed by worktree path.
type MockStatusStore struct {
	Records map[string]*domain.StatusRecord
	LoadErr error
	SaveErr error
}

// NewMockStatusStore creates a MockStatusStore with an initialized map.
func NewMockStatusStore() *MockStatusStore {
	return &MockStatusStore{Records: make(map[string]*domain.StatusRecord)}
}

// Load returns the record stored for the worktree path.
func (m *MockStatusStore) Load(worktreePath string) (*domain.StatusRecord, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	rec, ok := m.Records[worktreePath]
	if !ok {
		return nil, domain.ErrInvalidStatusRecord
	}
	clone := *rec
	return &clone, nil
}

// Save stores the record for the worktree path.
func (m *MockStatusStore) Save(worktreePath string, rec *domain.StatusRecord) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	clone := *rec
	m.Records[worktreePath] = &clone
	return nil
}

// Update applies mutate under read-modify-write.
func (m *MockStatusStore) Update(worktreePath string, mutate func(*domain.StatusRecord)) error {
	rec, err := m.Load(worktreePath)
	if err != nil {
		return err
	}
	mutate(rec)
	return m.Save(worktreePath, rec)
}

// MockRegistry is a test double for domain.PlurbRegistry.
type MockRegistry struct {
	Plurbs  []*domain.Plurb
	ListErr error
}

// List returns the configured plurbs.
func (m *MockRegistry) List() ([]*domain.Plurb, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Plurbs, nil
}

// MockWorktreeManager is a test double for domain.WorktreeManager.
// Fields are ordered to minimize memory padding.
type MockWorktreeManager struct {
	Worktrees    []domain.WorktreeInfo
	Created      []string // branches passed to Create
	Removed      []string // plurb ids passed to Remove
	PathFor      func(plurbID string) string
	CreateErr    error
	RemoveErr    error
	Dirty        map[string]bool
	Unpushed     map[string]bool
	PruneCalled  bool
	ForcedRemove bool
}

// NewMockWorktreeManager creates a MockWorktreeManager with initialized maps.
func NewMockWorktreeManager() *MockWorktreeManager {
	return &MockWorktreeManager{
		Dirty:    make(map[string]bool),
		Unpushed: make(map[string]bool),
	}
}

// Create records the branch and returns a deterministic path.
func (m *MockWorktreeManager) Create(branch, plurbID string) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	m.Created = append(m.Created, branch)
	path := "/worktrees/" + plurbID
	if m.PathFor != nil {
		path = m.PathFor(plurbID)
	}
	m.Worktrees = append(m.Worktrees, domain.WorktreeInfo{Path: path, Branch: branch})
	return path, nil
}

// Remove records the removal.
func (m *MockWorktreeManager) Remove(plurbID string, force bool) error {
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	m.Removed = append(m.Removed, plurbID)
	m.ForcedRemove = m.ForcedRemove || force
	return nil
}

// List returns the configured worktrees.
func (m *MockWorktreeManager) List() ([]domain.WorktreeInfo, error) {
	return m.Worktrees, nil
}

// Prune records that prune ran.
func (m *MockWorktreeManager) Prune() error {
	m.PruneCalled = true
	return nil
}

// HasUncommittedChanges reports the configured dirty state.
func (m *MockWorktreeManager) HasUncommittedChanges(dir string) (bool, error) {
	return m.Dirty[dir], nil
}

// HasUnpushedCommits reports the configured unpushed state.
func (m *MockWorktreeManager) HasUnpushedCommits(dir string) (bool, error) {
	return m.Unpushed[dir], nil
}

// MockGit is a test double for domain.Git.
// Fields are ordered to minimize memory padding.
type MockGit struct {
	Branches    map[string]bool
	Deleted     []string
	CloneErr    error
	ClonedURL   string
	IsRepo      bool
	CloneCalled bool
}

// NewMockGit creates a MockGit with an initialized branch set.
func NewMockGit() *MockGit {
	return &MockGit{Branches: make(map[string]bool), IsRepo: true}
}

// Clone records the clone request.
func (m *MockGit) Clone(_ context.Context, url string) error {
	if m.CloneErr != nil {
		return m.CloneErr
	}
	m.CloneCalled = true
	m.ClonedURL = url
	return nil
}

// IsRepository reports the configured state.
func (m *MockGit) IsRepository() bool {
	return m.IsRepo
}

// ListBranches returns branches in the pluribus namespace.
func (m *MockGit) ListBranches() ([]string, error) {
	var branches []string
	for b, ok := range m.Branches {
		if ok && strings.HasPrefix(b, domain.BranchNamespace) {
			branches = append(branches, b)
		}
	}
	return branches, nil
}

// DeleteBranch records the deletion. Absent branches are a no-op.
func (m *MockGit) DeleteBranch(branch string) error {
	if m.Branches[branch] {
		delete(m.Branches, branch)
		m.Deleted = append(m.Deleted, branch)
	}
	return nil
}

// BranchExists checks the configured branch set.
func (m *MockGit) BranchExists(branch string) (bool, error) {
	return m.Branches[branch], nil
}

// MockLauncher is a test double for domain.AgentLauncher.
// Fields are ordered to minimize memory padding.
type MockLauncher struct {
	Spawned    []domain.SpawnOptions
	SpawnErr   error
	NextPID    int
	Session    string
	AlivePIDs  map[int]bool
	SpawnRunID string
}

// NewMockLauncher creates a MockLauncher with defaults.
func NewMockLauncher() *MockLauncher {
	return &MockLauncher{
		NextPID:    4242,
		SpawnRunID: "run-1",
		AlivePIDs:  make(map[int]bool),
	}
}

// Spawn records the options and returns a synthetic result.
func (m *MockLauncher) Spawn(opts domain.SpawnOptions) (*domain.SpawnResult, error) {
	if m.SpawnErr != nil {
		return nil, m.SpawnErr
	}
	m.Spawned = append(m.Spawned, opts)
	return &domain.SpawnResult{RunID: m.SpawnRunID, PID: m.NextPID}, nil
}

// SessionID returns the configured session id.
func (m *MockLauncher) SessionID(_ string, _ time.Duration) string {
	return m.Session
}

// ProcessAlive checks the configured pid set.
func (m *MockLauncher) ProcessAlive(pid int) bool {
	return m.AlivePIDs[pid]
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config *domain.Config
	Err    error
}

// Load returns the configured config, defaulting when unset.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Config != nil {
		return m.Config, nil
	}
	cfg := domain.NewDefaultConfig()
	cfg.RepoPath = "/repo"
	return cfg, nil
}

// NopLogger is a domain.Logger that discards everything.
type NopLogger struct{}

// Debug discards the entry.
func (NopLogger) Debug(string, string, string) {}

// Info discards the entry.
func (NopLogger) Info(string, string, string) {}

// Warn discards the entry.
func (NopLogger) Warn(string, string, string) {}

// Error discards the entry.
func (NopLogger) Error(string, string, string) {}

// MockChangeFeed is a test double for domain.ChangeFeed driven by the
// test through Ch.
type MockChangeFeed struct {
	Ch       chan domain.Change
	StartErr error
}

// NewMockChangeFeed creates a MockChangeFeed with a buffered channel.
func NewMockChangeFeed() *MockChangeFeed {
	return &MockChangeFeed{Ch: make(chan domain.Change, 16)}
}

// Start returns the test-driven channel.
func (m *MockChangeFeed) Start(ctx context.Context) (<-chan domain.Change, error) {
	if m.StartErr != nil {
		return nil, m.StartErr
	}
	out := make(chan domain.Change)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case c, ok := <-m.Ch:
				if !ok {
					return
				}
				select {
				case out <- c:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
