// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pluribus-dev/pluribus/internal/domain"
)

// RepoDirName is the directory the repository is cloned into when init
// is given a URL.
const RepoDirName = "repo"

// todoSeed is written when the workspace has no task list yet.
const todoSeed = `# Tasks

## Example task
Replace this with real work. Each "## " heading is one task; the text
below it is handed to the agent as context.
`

// InitWorkspaceInput contains the parameters for initializing a workspace.
type InitWorkspaceInput struct {
	Repo string // Repository URL to clone, or path to an existing clone
}

// InitWorkspaceOutput contains the result of initializing a workspace.
type InitWorkspaceOutput struct {
	RepoPath string // Resolved repository path
	Cloned   bool   // True when the repository was cloned by init
}

// ConfigWriter writes the workspace configuration file.
type ConfigWriter interface {
	Exists() bool
	Write(repoPath, repoURL string) error
}

// InitWorkspace is the use case for initializing a workspace.
type InitWorkspace struct {
	configs       ConfigWriter
	newGit        func(repoRoot string) domain.Git
	logger        domain.Logger
	workspaceRoot string
}

// NewInitWorkspace creates a new InitWorkspace use case. newGit builds
// a git client for the repository path, which is only known at execute
// time.
func NewInitWorkspace(workspaceRoot string, configs ConfigWriter, newGit func(string) domain.Git, logger domain.Logger) *InitWorkspace {
	return &InitWorkspace{
		workspaceRoot: workspaceRoot,
		configs:       configs,
		newGit:        newGit,
		logger:        logger,
	}
}

// Execute initializes the workspace: resolves or clones the repository,
// writes pluribus.config, seeds todo.md and creates the worktrees root.
func (uc *InitWorkspace) Execute(ctx context.Context, in InitWorkspaceInput) (*InitWorkspaceOutput, error) {
	if uc.configs.Exists() {
		return nil, domain.ErrAlreadyInitialized
	}

	repoPath, repoURL, err := uc.resolveRepo(ctx, in.Repo)
	if err != nil {
		return nil, err
	}

	// Config paths are stored relative to the workspace when possible,
	// so the workspace stays relocatable.
	configPath := repoPath
	if rel, relErr := filepath.Rel(uc.workspaceRoot, repoPath); relErr == nil && !strings.HasPrefix(rel, "..") {
		configPath = rel
	}
	if err := uc.configs.Write(configPath, repoURL); err != nil {
		return nil, fmt.Errorf("write workspace config: %w", err)
	}

	if err := os.MkdirAll(domain.WorktreesDir(uc.workspaceRoot), 0o750); err != nil {
		return nil, fmt.Errorf("create worktrees directory: %w", err)
	}

	todoPath := filepath.Join(uc.workspaceRoot, domain.TodoFileName)
	if _, err := os.Stat(todoPath); os.IsNotExist(err) {
		if err := os.WriteFile(todoPath, []byte(todoSeed), 0o644); err != nil { //nolint:gosec // task list is user-editable
			return nil, fmt.Errorf("seed task list: %w", err)
		}
	}

	uc.logger.Info("", "init", fmt.Sprintf("workspace initialized with repository %s", repoPath))

	return &InitWorkspaceOutput{
		RepoPath: repoPath,
		Cloned:   repoURL != "",
	}, nil
}

// resolveRepo turns the repo input into a local clone: URLs are cloned
// into <workspace>/repo, local paths are validated in place.
func (uc *InitWorkspace) resolveRepo(ctx context.Context, repo string) (path, url string, err error) {
	if repo == "" {
		return "", "", fmt.Errorf("repository argument required: %w", domain.ErrRepoNotConfigured)
	}

	if isRepoURL(repo) {
		dest := filepath.Join(uc.workspaceRoot, RepoDirName)
		if err := uc.newGit(dest).Clone(ctx, repo); err != nil {
			return "", "", err
		}
		return dest, repo, nil
	}

	abs, err := filepath.Abs(repo)
	if err != nil {
		return "", "", fmt.Errorf("resolve repository path: %w", err)
	}
	if !uc.newGit(abs).IsRepository() {
		return "", "", fmt.Errorf("%s is not a git repository: %w", abs, domain.ErrRepoNotConfigured)
	}
	return abs, "", nil
}

// isRepoURL distinguishes clone URLs from local paths.
func isRepoURL(repo string) bool {
	if strings.Contains(repo, "://") {
		return true
	}
	// scp-like syntax: git@host:org/repo.git
	if strings.HasPrefix(repo, "git@") && strings.Contains(repo, ":") {
		return true
	}
	return false
}
