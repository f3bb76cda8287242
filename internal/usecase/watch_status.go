package usecase

import (
	"context"
	"fmt"

	"github.com/pluribus-dev/pluribus/internal/domain"
)

// WatchStatusInput contains the parameters for the live status feed.
type WatchStatusInput struct {
	// Reserved for future filters.
}

// WatchStatusOutput carries the snapshot stream. The channel closes
// when the context is canceled.
type WatchStatusOutput struct {
	Snapshots <-chan []*domain.Plurb
}

// WatchStatus is the use case behind the live view: it turns the change
// feed into a stream of full registry snapshots.
type WatchStatus struct {
	registry domain.PlurbRegistry
	feed     domain.ChangeFeed
	logger   domain.Logger
}

// NewWatchStatus creates a new WatchStatus use case.
func NewWatchStatus(registry domain.PlurbRegistry, feed domain.ChangeFeed, logger domain.Logger) *WatchStatus {
	return &WatchStatus{
		registry: registry,
		feed:     feed,
		logger:   logger,
	}
}

// Execute starts the feed and emits one snapshot immediately, then one
// per change notification. Every snapshot is a full re-scan: the
// filesystem stays the single source of truth and missed notifications
// only delay, never corrupt, the view.
func (uc *WatchStatus) Execute(ctx context.Context, _ WatchStatusInput) (*WatchStatusOutput, error) {
	changes, err := uc.feed.Start(ctx)
	if err != nil {
		return nil, fmt.Errorf("start change feed: %w", err)
	}

	snapshots := make(chan []*domain.Plurb, 1)

	// Initial snapshot before any change arrives.
	initial, err := uc.registry.List()
	if err != nil {
		return nil, fmt.Errorf("list plurbs: %w", err)
	}
	snapshots <- initial

	go func() {
		defer close(snapshots)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				plurbs, err := uc.registry.List()
				if err != nil {
					uc.logger.Warn("", "watch", fmt.Sprintf("list plurbs: %v", err))
					continue
				}
				select {
				case snapshots <- plurbs:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return &WatchStatusOutput{Snapshots: snapshots}, nil
}
