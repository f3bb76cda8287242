package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Status represents the lifecycle state of a plurb as reported by its agent.
type Status string

const (
	StatusPending    Status = "pending"     // Seeded at creation, agent not yet reporting
	StatusInProgress Status = "in_progress" // Agent working
	StatusBlocked    Status = "blocked"     // Agent waiting on something external
	StatusCompleted  Status = "completed"   // Work finished
	StatusFailed     Status = "failed"      // Agent gave up or crashed

	// StatusUnknown is a sentinel for degraded plurbs whose record is
	// missing or unparseable. It is never written to disk.
	StatusUnknown Status = "unknown"
)

// AllStatuses returns all status values an agent may legitimately write.
func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusInProgress,
		StatusBlocked,
		StatusCompleted,
		StatusFailed,
	}
}

// IsValid returns true if the status is a known agent-writable value.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusBlocked, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if the status marks finished work.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusBlocked:
		return "Blocked"
	case StatusCompleted:
		return "Completed"
	case StatusFailed:
		return "Failed"
	case StatusUnknown:
		return "Unknown"
	default:
		return string(s)
	}
}

// AgentMeta describes the agent launched for a plurb.
type AgentMeta struct {
	Name      string         `json:"name"`
	StartedAt time.Time      `json:"started_at"`
	Metadata  map[string]any `json:"metadata"`
}

// StatusRecord is the durable state of one plurb, stored as JSON inside
// its worktree. It is seeded once by pluribus at creation; every later
// write comes from the external agent process. Unknown top-level keys
// are preserved across read-modify-write cycles so that agent
// extensions survive pluribus touching the file.
// Fields are ordered to minimize memory padding.
type StatusRecord struct {
	LastUpdate           time.Time `json:"last_update"`
	Agent                AgentMeta `json:"agent"`
	TaskID               string    `json:"task_id"`
	TaskName             string    `json:"task_name,omitempty"`
	Phase                string    `json:"phase,omitempty"`
	SessionID            string    `json:"session_id,omitempty"`
	PRURL                string    `json:"pr_url,omitempty"`
	Blocker              string    `json:"blocker,omitempty"`
	Notes                string    `json:"notes,omitempty"`
	Status               Status    `json:"status"`
	extra                map[string]json.RawMessage
	ProgressPercent      int  `json:"progress_percent"`
	AgentPID             int  `json:"agent_pid,omitempty"`
	ClaudeInstanceActive bool `json:"claude_instance_active"`
}

// statusRecordAlias avoids recursion in the custom JSON methods.
type statusRecordAlias StatusRecord

// knownRecordKeys are the top-level keys owned by the typed fields.
var knownRecordKeys = map[string]struct{}{
	"task_id": {}, "task_name": {}, "status": {}, "phase": {},
	"progress_percent": {}, "last_update": {}, "claude_instance_active": {},
	"agent_pid": {}, "agent": {}, "session_id": {}, "pr_url": {},
	"blocker": {}, "notes": {},
}

// UnmarshalJSON decodes the typed fields and stashes every unknown
// top-level key for later re-emission.
func (r *StatusRecord) UnmarshalJSON(data []byte) error {
	var alias statusRecordAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k := range raw {
		if _, known := knownRecordKeys[k]; known {
			delete(raw, k)
		}
	}
	if len(raw) == 0 {
		raw = nil
	}

	*r = StatusRecord(alias)
	r.extra = raw
	return nil
}

// MarshalJSON emits the typed fields merged with any preserved unknown keys.
func (r StatusRecord) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(statusRecordAlias(r))
	if err != nil {
		return nil, err
	}
	if len(r.extra) == 0 {
		return data, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, v := range r.extra {
		if _, owned := merged[k]; !owned {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// Extra returns the preserved unknown top-level keys, if any.
func (r *StatusRecord) Extra() map[string]json.RawMessage {
	return r.extra
}

// Validate checks schema constraints on a freshly read record.
func (r *StatusRecord) Validate() error {
	if !r.Status.IsValid() {
		return fmt.Errorf("%w: status %q", ErrInvalidStatusRecord, r.Status)
	}
	if r.ProgressPercent < 0 || r.ProgressPercent > 100 {
		return fmt.Errorf("%w: progress_percent %d out of range", ErrInvalidStatusRecord, r.ProgressPercent)
	}
	return nil
}

// NewStatusRecord returns the initial record seeded at plurb creation.
func NewStatusRecord(plurbID, taskName string, now time.Time) *StatusRecord {
	return &StatusRecord{
		TaskID:     plurbID,
		TaskName:   taskName,
		Status:     StatusPending,
		LastUpdate: now,
	}
}
