// Package statusfile implements the durable status record protocol
// shared between pluribus and agent processes.
//
// Writes are atomic from any reader's perspective: the record is
// marshaled to a temp file in the same directory and renamed over the
// target. Reads tolerate a transiently missing or truncated file,
// because the writer is an independent, uncoordinated process.
package statusfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pluribus-dev/pluribus/internal/domain"
)

const (
	readAttempts     = 5
	readInitialDelay = 50 * time.Millisecond
)

// Store reads and writes status records inside plurb worktrees.
type Store struct {
	// sleep is replaceable in tests to avoid real backoff delays.
	sleep func(time.Duration)
}

// New creates a status record store.
func New() *Store {
	return &Store{sleep: time.Sleep}
}

// Ensure Store implements domain.StatusStore.
var _ domain.StatusStore = (*Store)(nil)

// Load reads the record from a worktree.
//
// A missing or empty file is retried with backoff: the agent may be
// mid-replace. Retry exhaustion returns the last error; malformed JSON
// is downgraded to ErrInvalidStatusRecord so callers can degrade the
// one plurb instead of failing the whole enumeration.
func (s *Store) Load(worktreePath string) (*domain.StatusRecord, error) {
	path := domain.StatusFilePath(worktreePath)

	var lastErr error
	delay := readInitialDelay
	for attempt := 0; attempt < readAttempts; attempt++ {
		if attempt > 0 {
			s.sleep(delay)
			delay *= 2
		}

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				if _, dirErr := os.Stat(filepath.Dir(path)); os.IsNotExist(dirErr) {
					// The metadata directory was never created: this is
					// a partially-created plurb, not a write in flight.
					return nil, fmt.Errorf("read status record %s: %w", path, err)
				}
			}
			lastErr = err
			continue
		}
		if len(data) == 0 {
			lastErr = fmt.Errorf("%w: empty file", domain.ErrInvalidStatusRecord)
			continue
		}

		var rec domain.StatusRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			// Could be a torn write from a non-atomic writer; retry
			// once more before declaring the record invalid.
			lastErr = fmt.Errorf("%w: %v", domain.ErrInvalidStatusRecord, err)
			continue
		}
		if err := rec.Validate(); err != nil {
			return nil, err
		}
		return &rec, nil
	}

	return nil, fmt.Errorf("read status record %s: %w", path, lastErr)
}

// Save atomically replaces the record in a worktree.
func (s *Store) Save(worktreePath string, rec *domain.StatusRecord) error {
	path := domain.StatusFilePath(worktreePath)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create status directory: %w", err)
	}

	content, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal status record: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o644); err != nil { //nolint:gosec // record is written and read by separate user processes
		return fmt.Errorf("write temp status file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp status file: %w", err)
	}
	return nil
}

// Update applies mutate under read-modify-write. Unknown top-level keys
// present in the file are carried through untouched.
func (s *Store) Update(worktreePath string, mutate func(*domain.StatusRecord)) error {
	rec, err := s.Load(worktreePath)
	if err != nil {
		return err
	}
	mutate(rec)
	return s.Save(worktreePath, rec)
}

// Exists reports whether a worktree has a status record at all, without
// the retry discipline of Load. Used to distinguish a plurb that never
// finished creation from one whose record is momentarily unstable.
func (s *Store) Exists(worktreePath string) bool {
	_, err := os.Stat(domain.StatusFilePath(worktreePath))
	return !errors.Is(err, os.ErrNotExist)
}
