package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRepo initializes a repository with one commit and returns
// its path plus the head hash.
func setupTestRepo(t *testing.T) (string, plumbing.Hash) {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	path := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(path, []byte("# Test"), 0o644))
	_, err = wt.Add("README.md")
	require.NoError(t, err)

	hash, err := wt.Commit("Initial commit", &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)

	return dir, hash
}

func branchRef(t *testing.T, dir, branch string, hash plumbing.Hash) {
	t.Helper()
	repo, err := gogit.PlainOpen(dir)
	require.NoError(t, err)
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(branch), hash)
	require.NoError(t, repo.Storer.SetReference(ref))
}

func TestClient_IsRepository(t *testing.T) {
	dir, _ := setupTestRepo(t)
	assert.True(t, NewClient(dir).IsRepository())
	assert.False(t, NewClient(t.TempDir()).IsRepository())
}

func TestClient_ListBranches_NamespaceOnly(t *testing.T) {
	dir, hash := setupTestRepo(t)
	branchRef(t, dir, "pluribus/fix-bug-ab12c", hash)
	branchRef(t, dir, "pluribus/add-x-cd34e", hash)
	branchRef(t, dir, "feature/unrelated", hash)

	branches, err := NewClient(dir).ListBranches()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"pluribus/fix-bug-ab12c", "pluribus/add-x-cd34e"}, branches)
}

func TestClient_BranchExists(t *testing.T) {
	dir, hash := setupTestRepo(t)
	branchRef(t, dir, "pluribus/fix-bug-ab12c", hash)

	client := NewClient(dir)
	exists, err := client.BranchExists("pluribus/fix-bug-ab12c")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = client.BranchExists("pluribus/nope-ab12c")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestClient_DeleteBranch(t *testing.T) {
	dir, hash := setupTestRepo(t)
	branchRef(t, dir, "pluribus/fix-bug-ab12c", hash)

	client := NewClient(dir)
	require.NoError(t, client.DeleteBranch("pluribus/fix-bug-ab12c"))

	exists, err := client.BranchExists("pluribus/fix-bug-ab12c")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting again is a no-op.
	assert.NoError(t, client.DeleteBranch("pluribus/fix-bug-ab12c"))
}
