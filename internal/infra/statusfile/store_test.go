package statusfile

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/pluribus-dev/pluribus/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	s := New()
	s.sleep = func(time.Duration) {} // no real backoff in tests
	return s
}

func TestStore_SaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore()

	rec := domain.NewStatusRecord("add-x-ab12c", "Add X", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, store.Save(dir, rec))

	got, err := store.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "add-x-ab12c", got.TaskID)
	assert.Equal(t, "Add X", got.TaskName)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.True(t, got.LastUpdate.Equal(rec.LastUpdate))
}

func TestStore_Update_PreservesAgentFields(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore()

	// Agent-written record with keys pluribus does not model.
	raw := `{
		"task_id": "add-x-ab12c",
		"status": "in_progress",
		"progress_percent": 60,
		"last_update": "2026-03-01T10:00:00Z",
		"claude_instance_active": true,
		"agent": {"name": "headless-claude", "started_at": "2026-03-01T09:00:00Z", "metadata": {}},
		"work_summary": "implementing parser"
	}`
	require.NoError(t, os.MkdirAll(domain.PluribusDir(dir), 0o750))
	require.NoError(t, os.WriteFile(domain.StatusFilePath(dir), []byte(raw), 0o644))

	require.NoError(t, store.Update(dir, func(r *domain.StatusRecord) {
		r.SessionID = "sess-9"
	}))

	data, err := os.ReadFile(domain.StatusFilePath(dir))
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "implementing parser", m["work_summary"])
	assert.Equal(t, "sess-9", m["session_id"])
	assert.Equal(t, float64(60), m["progress_percent"])
}

func TestStore_Load_Missing(t *testing.T) {
	store := newTestStore()
	_, err := store.Load(t.TempDir())
	assert.Error(t, err)
}

func TestStore_Load_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore()
	require.NoError(t, os.MkdirAll(domain.PluribusDir(dir), 0o750))
	require.NoError(t, os.WriteFile(domain.StatusFilePath(dir), []byte("{not json"), 0o644))

	_, err := store.Load(dir)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusRecord)
}

func TestStore_Load_InvalidStatusValue(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore()
	raw := `{"task_id": "x", "status": "bogus", "progress_percent": 0, "last_update": "2026-03-01T10:00:00Z", "agent": {"name":"a","started_at":"2026-03-01T09:00:00Z","metadata":{}}, "claude_instance_active": false}`
	require.NoError(t, os.MkdirAll(domain.PluribusDir(dir), 0o750))
	require.NoError(t, os.WriteFile(domain.StatusFilePath(dir), []byte(raw), 0o644))

	_, err := store.Load(dir)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusRecord)
}

func TestStore_Save_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore()
	require.NoError(t, store.Save(dir, domain.NewStatusRecord("x-ab12c", "X", time.Now())))

	entries, err := os.ReadDir(domain.PluribusDir(dir))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "status.json", entries[0].Name())
}

func TestStore_Exists(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore()
	assert.False(t, store.Exists(dir))
	require.NoError(t, store.Save(dir, domain.NewStatusRecord("x-ab12c", "X", time.Now())))
	assert.True(t, store.Exists(dir))
}
