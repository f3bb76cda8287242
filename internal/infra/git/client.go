// Package git provides repository-level operations backed by go-git.
package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/pluribus-dev/pluribus/internal/domain"
)

// Client operates on the main repository clone.
type Client struct {
	repoRoot string
}

// NewClient creates a git client rooted at the main repository clone.
// The repository is opened lazily: the root may not exist yet when the
// client is constructed (init clones into it).
func NewClient(repoRoot string) *Client {
	return &Client{repoRoot: repoRoot}
}

// Ensure Client implements domain.Git.
var _ domain.Git = (*Client)(nil)

// Clone clones url into the client's root.
func (c *Client) Clone(ctx context.Context, url string) error {
	_, err := gogit.PlainCloneContext(ctx, c.repoRoot, false, &gogit.CloneOptions{
		URL: url,
	})
	if err != nil {
		return fmt.Errorf("clone %s: %w", url, err)
	}
	return nil
}

// IsRepository reports whether the client's root holds a git repository.
func (c *Client) IsRepository() bool {
	_, err := gogit.PlainOpen(c.repoRoot)
	return err == nil
}

// ListBranches returns local branches in the pluribus namespace.
func (c *Client) ListBranches() ([]string, error) {
	repo, err := gogit.PlainOpen(c.repoRoot)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	iter, err := repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("iterate branches: %w", err)
	}
	defer iter.Close()

	var branches []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if strings.HasPrefix(name, domain.BranchNamespace) {
			branches = append(branches, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterate branches: %w", err)
	}
	return branches, nil
}

// DeleteBranch removes a local branch. Deleting a branch that does not
// exist is a no-op so cleanup stays idempotent.
func (c *Client) DeleteBranch(branch string) error {
	repo, err := gogit.PlainOpen(c.repoRoot)
	if err != nil {
		return fmt.Errorf("open repository: %w", err)
	}

	ref := plumbing.NewBranchReferenceName(branch)
	if _, err := repo.Reference(ref, false); err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil
		}
		return fmt.Errorf("resolve branch %s: %w", branch, err)
	}

	if err := repo.Storer.RemoveReference(ref); err != nil {
		return fmt.Errorf("delete branch %s: %w", branch, err)
	}
	return nil
}

// BranchExists checks if a local branch exists.
func (c *Client) BranchExists(branch string) (bool, error) {
	repo, err := gogit.PlainOpen(c.repoRoot)
	if err != nil {
		return false, fmt.Errorf("open repository: %w", err)
	}

	_, err = repo.Reference(plumbing.NewBranchReferenceName(branch), false)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("resolve branch %s: %w", branch, err)
	}
	return true, nil
}
