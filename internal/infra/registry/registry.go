// Package registry enumerates plurbs from the worktree tree.
//
// The filesystem is the single source of truth: every List call
// re-derives state from disk and nothing is cached across invocations,
// so concurrent pluribus commands and agent restarts never disagree
// about what exists.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pluribus-dev/pluribus/internal/domain"
)

// Registry lists plurbs by scanning the worktrees root.
type Registry struct {
	statuses      domain.StatusStore
	worktreesRoot string
}

// New creates a registry over the given worktrees root directory.
func New(worktreesRoot string, statuses domain.StatusStore) *Registry {
	return &Registry{
		worktreesRoot: worktreesRoot,
		statuses:      statuses,
	}
}

// Ensure Registry implements domain.PlurbRegistry.
var _ domain.PlurbRegistry = (*Registry)(nil)

// List returns all plurbs sorted lexically by id.
//
// A subdirectory whose status record is missing or unparseable is
// reported as a degraded plurb with status "unknown" rather than
// omitted: incomplete work stays visible, and one bad record never
// aborts enumeration of its siblings.
func (r *Registry) List() ([]*domain.Plurb, error) {
	entries, err := os.ReadDir(r.worktreesRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan worktrees root: %w", err)
	}

	var plurbs []*domain.Plurb
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		id := entry.Name()
		path := filepath.Join(r.worktreesRoot, id)
		plurb := &domain.Plurb{
			ID:     id,
			Branch: domain.BranchName(id),
			Path:   path,
		}

		rec, err := r.statuses.Load(path)
		if err != nil {
			plurb.Degraded = true
			plurb.TaskName = id
		} else {
			plurb.Record = rec
			plurb.TaskName = rec.TaskName
			if plurb.TaskName == "" {
				plurb.TaskName = id
			}
		}
		plurbs = append(plurbs, plurb)
	}

	slices.SortFunc(plurbs, func(a, b *domain.Plurb) int {
		return strings.Compare(a.ID, b.ID)
	})
	return plurbs, nil
}
