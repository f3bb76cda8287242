// Package watcher delivers status change notifications for the live
// view. The primary feed is inotify-backed via fsnotify; when the
// platform refuses a watcher, a plain polling feed takes over.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pluribus-dev/pluribus/internal/domain"
)

// debounceWindow coalesces bursts of writes to the same record.
const debounceWindow = 250 * time.Millisecond

// fallbackInterval replaces a non-positive resync or poll interval,
// which time.NewTicker would reject with a panic.
const fallbackInterval = 5 * time.Second

// New returns a change feed for the worktrees root: notification-based
// when the platform supports it, polling otherwise.
func New(worktreesRoot string, pollInterval time.Duration) domain.ChangeFeed {
	if pollInterval <= 0 {
		pollInterval = fallbackInterval
	}
	return &feed{root: worktreesRoot, interval: pollInterval}
}

type feed struct {
	root     string
	interval time.Duration
}

// Ensure feed implements domain.ChangeFeed.
var _ domain.ChangeFeed = (*feed)(nil)

func (f *feed) Start(ctx context.Context) (<-chan domain.Change, error) {
	n := &Notifier{Root: f.root, Resync: f.interval}
	ch, err := n.Start(ctx)
	if err == nil {
		return ch, nil
	}
	return (&Poller{Interval: f.interval}).Start(ctx)
}

// Notifier watches the worktrees tree with fsnotify.
//
// Watches cover the root, each plurb directory and each .pluribus
// directory; directories created later are picked up from their
// parent's create events. A periodic resync tick requests a full
// re-scan to cover anything inotify missed.
type Notifier struct {
	Root   string
	Resync time.Duration
}

// Ensure Notifier implements domain.ChangeFeed.
var _ domain.ChangeFeed = (*Notifier)(nil)

// Start begins watching. The returned channel closes when ctx is
// canceled and the watcher has been released.
func (n *Notifier) Start(ctx context.Context) (<-chan domain.Change, error) {
	if n.Resync <= 0 {
		n.Resync = fallbackInterval
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := w.Add(n.Root); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", n.Root, err)
	}
	addExistingDirs(w, n.Root)

	ch := make(chan domain.Change)
	go n.run(ctx, w, ch)
	return ch, nil
}

// addExistingDirs registers plurb and .pluribus directories that are
// already present. Per-directory failures are ignored: the resync tick
// covers the gap.
func addExistingDirs(w *fsnotify.Watcher, root string) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		plurbDir := filepath.Join(root, entry.Name())
		_ = w.Add(plurbDir)
		metaDir := domain.PluribusDir(plurbDir)
		if info, err := os.Stat(metaDir); err == nil && info.IsDir() {
			_ = w.Add(metaDir)
		}
	}
}

func (n *Notifier) run(ctx context.Context, w *fsnotify.Watcher, ch chan<- domain.Change) {
	defer close(ch)
	defer w.Close()

	resync := time.NewTicker(n.Resync)
	defer resync.Stop()

	// Plurb ids with a change waiting for the debounce window to lapse.
	// The "" key requests a full re-scan.
	pending := make(map[string]struct{})
	var debounce *time.Timer
	var debounceC <-chan time.Time

	arm := func() {
		if debounceC == nil {
			debounce = time.NewTimer(debounceWindow)
			debounceC = debounce.C
		}
	}

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return

		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			n.handleEvent(w, ev, pending)
			if len(pending) > 0 {
				arm()
			}

		case <-debounceC:
			debounceC = nil
			for id := range pending {
				select {
				case ch <- domain.Change{PlurbID: id}:
				case <-ctx.Done():
					return
				}
			}
			clear(pending)

		case <-resync.C:
			select {
			case ch <- domain.Change{}:
			case <-ctx.Done():
				return
			}

		case _, ok := <-w.Errors:
			if !ok {
				return
			}
			// Overflow or transient watch error; the resync tick will
			// reconcile.
		}
	}
}

// handleEvent classifies one fsnotify event into pending changes and
// registers watches on newly created directories.
func (n *Notifier) handleEvent(w *fsnotify.Watcher, ev fsnotify.Event, pending map[string]struct{}) {
	if ev.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			_ = w.Add(ev.Name)
			// A new plurb directory means the set of plurbs changed.
			if filepath.Dir(ev.Name) == n.Root {
				pending[""] = struct{}{}
			}
			return
		}
	}

	if ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename) {
		// A plurb directory disappearing changes the set of plurbs.
		if filepath.Dir(ev.Name) == n.Root {
			pending[""] = struct{}{}
			return
		}
	}

	if filepath.Base(ev.Name) != "status.json" {
		return
	}
	if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Rename) {
		return
	}

	// <root>/<plurb-id>/.pluribus/status.json
	plurbID := filepath.Base(filepath.Dir(filepath.Dir(ev.Name)))
	pending[plurbID] = struct{}{}
}

// Poller is the fallback feed: every interval it requests a full
// re-scan.
type Poller struct {
	Interval time.Duration
}

// Ensure Poller implements domain.ChangeFeed.
var _ domain.ChangeFeed = (*Poller)(nil)

// Start begins polling. The returned channel closes when ctx is
// canceled.
func (p *Poller) Start(ctx context.Context) (<-chan domain.Change, error) {
	if p.Interval <= 0 {
		p.Interval = fallbackInterval
	}

	ch := make(chan domain.Change)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(p.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				select {
				case ch <- domain.Change{}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}
