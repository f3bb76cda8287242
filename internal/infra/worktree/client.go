// Package worktree provides git worktree operations for plurb checkouts.
package worktree

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/pluribus-dev/pluribus/internal/domain"
)

// Client manages git worktrees under the workspace worktrees root.
type Client struct {
	repoRoot      string // Main repository root
	worktreesRoot string // Directory where plurb worktrees are created
}

// NewClient creates a worktree client. repoRoot is the main repository
// clone; worktreesRoot is where plurb checkouts live.
func NewClient(repoRoot, worktreesRoot string) *Client {
	return &Client{
		repoRoot:      repoRoot,
		worktreesRoot: worktreesRoot,
	}
}

// Ensure Client implements domain.WorktreeManager.
var _ domain.WorktreeManager = (*Client)(nil)

// Create adds a worktree on a new branch and returns its path.
//
// If git reports the branch as already registered to a worktree whose
// directory has since been deleted, stale registrations are pruned and
// the add is retried once.
func (c *Client) Create(branch, plurbID string) (string, error) {
	path := domain.WorktreePath(c.worktreesRoot, plurbID)
	args := []string{"worktree", "add", "-b", branch, path}

	cmd := exec.Command("git", args...)
	cmd.Dir = c.repoRoot
	out, err := cmd.CombinedOutput()
	if err != nil {
		outStr := string(out)
		if !strings.Contains(outStr, "already registered") {
			return "", fmt.Errorf("create worktree: %w: %s", err, outStr)
		}

		// Orphaned registration from a deleted checkout. Prune and retry
		// with a fresh exec.Cmd.
		if pruneErr := c.Prune(); pruneErr != nil {
			return "", fmt.Errorf("prune stale worktrees: %w", pruneErr)
		}
		cmd = exec.Command("git", args...)
		cmd.Dir = c.repoRoot
		out, err = cmd.CombinedOutput()
		if err != nil {
			return "", fmt.Errorf("create worktree after prune: %w: %s", err, string(out))
		}
	}

	return path, nil
}

// Remove deletes a plurb's worktree checkout and its registration.
// Without force, git refuses to remove a dirty worktree and the error
// is surfaced as ErrUncommittedChanges.
func (c *Client) Remove(plurbID string, force bool) error {
	path := domain.WorktreePath(c.worktreesRoot, plurbID)

	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)

	cmd := exec.Command("git", args...)
	cmd.Dir = c.repoRoot
	out, err := cmd.CombinedOutput()
	if err != nil {
		outStr := string(out)
		if strings.Contains(outStr, "contains modified or untracked files") ||
			strings.Contains(outStr, "is dirty") {
			return domain.ErrUncommittedChanges
		}
		return fmt.Errorf("remove worktree: %w: %s", err, outStr)
	}

	return nil
}

// List returns all worktrees registered to the repository, including
// the main checkout.
func (c *Client) List() ([]domain.WorktreeInfo, error) {
	cmd := exec.Command("git", "worktree", "list", "--porcelain")
	cmd.Dir = c.repoRoot

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("list worktrees: %w", err)
	}

	return parseWorktreeList(string(out))
}

// parseWorktreeList parses the porcelain output of git worktree list.
// Format:
//
//	worktree /path/to/worktree
//	HEAD abc123
//	branch refs/heads/branch-name
//	<blank line>
func parseWorktreeList(output string) ([]domain.WorktreeInfo, error) {
	var worktrees []domain.WorktreeInfo
	var current domain.WorktreeInfo

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "worktree "):
			current.Path = strings.TrimPrefix(line, "worktree ")
		case strings.HasPrefix(line, "branch "):
			ref := strings.TrimPrefix(line, "branch ")
			current.Branch = strings.TrimPrefix(ref, "refs/heads/")
		case line == "":
			// End of entry. Detached worktrees keep an empty Branch.
			if current.Path != "" {
				worktrees = append(worktrees, current)
			}
			current = domain.WorktreeInfo{}
		}
	}

	// Last entry when output lacks a trailing newline.
	if current.Path != "" {
		worktrees = append(worktrees, current)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parse worktree list: %w", err)
	}

	return worktrees, nil
}

// Prune drops worktree registrations whose directories no longer exist.
func (c *Client) Prune() error {
	cmd := exec.Command("git", "worktree", "prune")
	cmd.Dir = c.repoRoot

	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("prune worktrees: %w: %s", err, string(out))
	}

	return nil
}

// HasUncommittedChanges reports staged, unstaged, or untracked changes
// in the given checkout.
func (c *Client) HasUncommittedChanges(dir string) (bool, error) {
	cmd := exec.Command("git", "status", "--porcelain")
	cmd.Dir = dir

	out, err := cmd.Output()
	if err != nil {
		return false, fmt.Errorf("check uncommitted changes: %w", err)
	}

	return len(bytes.TrimSpace(out)) > 0, nil
}

// HasUnpushedCommits reports commits on the checkout's HEAD that are
// not reachable from any remote-tracking ref.
func (c *Client) HasUnpushedCommits(dir string) (bool, error) {
	cmd := exec.Command("git", "log", "HEAD", "--not", "--remotes", "-n", "1", "--format=%H")
	cmd.Dir = dir

	out, err := cmd.Output()
	if err != nil {
		return false, fmt.Errorf("check unpushed commits: %w", err)
	}

	return len(bytes.TrimSpace(out)) > 0, nil
}
