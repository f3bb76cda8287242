package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pluribus-dev/pluribus/internal/domain"
	"github.com/pluribus-dev/pluribus/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConfigWriter records Write calls in memory.
type fakeConfigWriter struct {
	repoPath string
	repoURL  string
	exists   bool
	written  bool
}

func (f *fakeConfigWriter) Exists() bool { return f.exists }

func (f *fakeConfigWriter) Write(repoPath, repoURL string) error {
	f.written = true
	f.repoPath = repoPath
	f.repoURL = repoURL
	return nil
}

func TestInitWorkspace_Execute_CloneURL(t *testing.T) {
	root := t.TempDir()
	configs := &fakeConfigWriter{}
	git := testutil.NewMockGit()
	uc := NewInitWorkspace(root, configs, func(string) domain.Git { return git }, testutil.NopLogger{})

	out, err := uc.Execute(context.Background(), InitWorkspaceInput{Repo: "https://example.com/proj.git"})
	require.NoError(t, err)

	assert.True(t, out.Cloned)
	assert.Equal(t, filepath.Join(root, RepoDirName), out.RepoPath)
	assert.True(t, git.CloneCalled)
	assert.Equal(t, "https://example.com/proj.git", git.ClonedURL)

	assert.True(t, configs.written)
	assert.Equal(t, RepoDirName, configs.repoPath, "repo path inside the workspace is stored relative")
	assert.Equal(t, "https://example.com/proj.git", configs.repoURL)

	// Worktrees root and task list were seeded.
	info, err := os.Stat(domain.WorktreesDir(root))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	todo, err := os.ReadFile(filepath.Join(root, domain.TodoFileName))
	require.NoError(t, err)
	assert.Contains(t, string(todo), "## ")
}

func TestInitWorkspace_Execute_LocalPath(t *testing.T) {
	root := t.TempDir()
	repoDir := t.TempDir()
	configs := &fakeConfigWriter{}
	uc := NewInitWorkspace(root, configs, func(string) domain.Git { return testutil.NewMockGit() }, testutil.NopLogger{})

	out, err := uc.Execute(context.Background(), InitWorkspaceInput{Repo: repoDir})
	require.NoError(t, err)

	assert.False(t, out.Cloned)
	assert.Equal(t, repoDir, out.RepoPath)
	assert.Equal(t, repoDir, configs.repoPath, "repo path outside the workspace stays absolute")
	assert.Empty(t, configs.repoURL)
}

func TestInitWorkspace_Execute_SCPStyleURL(t *testing.T) {
	root := t.TempDir()
	git := testutil.NewMockGit()
	uc := NewInitWorkspace(root, &fakeConfigWriter{}, func(string) domain.Git { return git }, testutil.NopLogger{})

	out, err := uc.Execute(context.Background(), InitWorkspaceInput{Repo: "git@example.com:org/proj.git"})
	require.NoError(t, err)
	assert.True(t, out.Cloned)
	assert.True(t, git.CloneCalled)
}

func TestInitWorkspace_Execute_NotARepository(t *testing.T) {
	root := t.TempDir()
	git := testutil.NewMockGit()
	git.IsRepo = false
	uc := NewInitWorkspace(root, &fakeConfigWriter{}, func(string) domain.Git { return git }, testutil.NopLogger{})

	_, err := uc.Execute(context.Background(), InitWorkspaceInput{Repo: t.TempDir()})
	assert.ErrorIs(t, err, domain.ErrRepoNotConfigured)
}

func TestInitWorkspace_Execute_AlreadyInitialized(t *testing.T) {
	uc := NewInitWorkspace(t.TempDir(), &fakeConfigWriter{exists: true}, func(string) domain.Git { return testutil.NewMockGit() }, testutil.NopLogger{})

	_, err := uc.Execute(context.Background(), InitWorkspaceInput{Repo: "https://example.com/proj.git"})
	assert.ErrorIs(t, err, domain.ErrAlreadyInitialized)
}

func TestInitWorkspace_Execute_ExistingTodoKept(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.TodoFileName), []byte("## Mine\n"), 0o644))
	uc := NewInitWorkspace(root, &fakeConfigWriter{}, func(string) domain.Git { return testutil.NewMockGit() }, testutil.NopLogger{})

	_, err := uc.Execute(context.Background(), InitWorkspaceInput{Repo: "https://example.com/proj.git"})
	require.NoError(t, err)

	todo, err := os.ReadFile(filepath.Join(root, domain.TodoFileName))
	require.NoError(t, err)
	assert.Equal(t, "## Mine\n", string(todo))
}
