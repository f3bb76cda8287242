// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pluribus-dev/pluribus/internal/domain"
	"github.com/pluribus-dev/pluribus/internal/infra/config"
	"github.com/pluribus-dev/pluribus/internal/infra/git"
	"github.com/pluribus-dev/pluribus/internal/infra/logging"
	"github.com/pluribus-dev/pluribus/internal/infra/registry"
	"github.com/pluribus-dev/pluribus/internal/infra/spawner"
	"github.com/pluribus-dev/pluribus/internal/infra/statusfile"
	"github.com/pluribus-dev/pluribus/internal/infra/tasklist"
	"github.com/pluribus-dev/pluribus/internal/infra/watcher"
	"github.com/pluribus-dev/pluribus/internal/infra/worktree"
	"github.com/pluribus-dev/pluribus/internal/usecase"
)

// Paths holds the resolved workspace layout.
type Paths struct {
	WorkspaceRoot string // Directory holding pluribus.config
	RepoRoot      string // Main repository clone
	WorktreesRoot string // Directory holding plurb worktrees
	TodoPath      string // Task list document
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for
// use cases.
type Container struct {
	Catalog      domain.TaskCatalog
	Statuses     domain.StatusStore
	Registry     domain.PlurbRegistry
	Worktrees    domain.WorktreeManager
	Git          domain.Git
	Launcher     domain.AgentLauncher
	Feed         domain.ChangeFeed
	ConfigLoader domain.ConfigLoader
	Clock        domain.Clock
	Logger       domain.Logger

	AppConfig *domain.Config
	Paths     Paths

	fileLogger *logging.Logger
}

// New creates a Container rooted at the workspace containing dir.
// It fails with domain.ErrNotInitialized when no pluribus.config is
// found in dir or any parent.
func New(dir string) (*Container, error) {
	workspaceRoot, err := findWorkspaceRoot(dir)
	if err != nil {
		return nil, err
	}

	configLoader := config.NewLoader(workspaceRoot)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, err
	}

	paths := Paths{
		WorkspaceRoot: workspaceRoot,
		RepoRoot:      appConfig.RepoPath,
		WorktreesRoot: domain.WorktreesDir(workspaceRoot),
		TodoPath:      filepath.Join(workspaceRoot, domain.TodoFileName),
	}

	statuses := statusfile.New()
	fileLogger := logging.New(workspaceRoot, logging.ParseLevel(appConfig.Log.Level))

	return &Container{
		Catalog:      tasklist.NewParser(paths.TodoPath),
		Statuses:     statuses,
		Registry:     registry.New(paths.WorktreesRoot, statuses),
		Worktrees:    worktree.NewClient(paths.RepoRoot, paths.WorktreesRoot),
		Git:          git.NewClient(paths.RepoRoot),
		Launcher:     spawner.New(paths.RepoRoot),
		Feed:         watcher.New(paths.WorktreesRoot, time.Duration(appConfig.Watch.IntervalSeconds)*time.Second),
		ConfigLoader: configLoader,
		Clock:        domain.RealClock{},
		Logger:       fileLogger,
		AppConfig:    appConfig,
		Paths:        paths,
		fileLogger:   fileLogger,
	}, nil
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if c.fileLogger != nil {
		return c.fileLogger.Close()
	}
	return nil
}

// findWorkspaceRoot walks up from dir looking for pluribus.config.
func findWorkspaceRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(abs, domain.ConfigFileName)); err == nil {
			return abs, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", domain.ErrNotInitialized
		}
		abs = parent
	}
}

// NewInitUseCase builds the init use case for a not-yet-initialized
// workspace rooted at dir. It is the only use case that works without
// a container.
func NewInitUseCase(dir string) *usecase.InitWorkspace {
	logger := logging.New(dir, logging.ParseLevel("info"))
	return usecase.NewInitWorkspace(
		dir,
		config.NewManager(dir),
		func(repoRoot string) domain.Git { return git.NewClient(repoRoot) },
		logger,
	)
}

// UseCase factory methods

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Catalog, c.Registry)
}

// ResolvePlurbUseCase returns a new ResolvePlurb use case.
func (c *Container) ResolvePlurbUseCase() *usecase.ResolvePlurb {
	return usecase.NewResolvePlurb(c.Registry)
}

// WorkonUseCase returns a new Workon use case.
func (c *Container) WorkonUseCase() *usecase.Workon {
	return usecase.NewWorkon(c.Catalog, c.Registry, c.Worktrees, c.Statuses, c.Git, c.Launcher, c.ConfigLoader, c.Clock, c.Logger)
}

// ResumeUseCase returns a new Resume use case.
func (c *Container) ResumeUseCase() *usecase.Resume {
	return usecase.NewResume(c.Registry, c.Catalog, c.Statuses, c.Launcher, c.ConfigLoader, c.Clock, c.Logger)
}

// DeletePlurbUseCase returns a new DeletePlurb use case.
func (c *Container) DeletePlurbUseCase() *usecase.DeletePlurb {
	return usecase.NewDeletePlurb(c.Registry, c.Worktrees, c.Launcher, c.Logger)
}

// PlurbStatusUseCase returns a new PlurbStatus use case.
func (c *Container) PlurbStatusUseCase() *usecase.PlurbStatus {
	return usecase.NewPlurbStatus(c.Registry)
}

// PlurbDetailsUseCase returns a new PlurbDetails use case.
func (c *Container) PlurbDetailsUseCase() *usecase.PlurbDetails {
	return usecase.NewPlurbDetails(c.Registry, c.Worktrees, c.Launcher, c.Paths.WorkspaceRoot)
}

// WatchStatusUseCase returns a new WatchStatus use case.
func (c *Container) WatchStatusUseCase() *usecase.WatchStatus {
	return usecase.NewWatchStatus(c.Registry, c.Feed, c.Logger)
}

// WatchStatusUseCaseWithInterval returns a WatchStatus use case whose
// safety re-scan ticks at the given interval instead of the configured
// one.
func (c *Container) WatchStatusUseCaseWithInterval(interval time.Duration) *usecase.WatchStatus {
	feed := watcher.New(c.Paths.WorktreesRoot, interval)
	return usecase.NewWatchStatus(c.Registry, feed, c.Logger)
}

// GitCleanupUseCase returns a new GitCleanup use case.
func (c *Container) GitCleanupUseCase() *usecase.GitCleanup {
	return usecase.NewGitCleanup(c.Worktrees, c.Git, c.Logger)
}
