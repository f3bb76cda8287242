// Package domain contains core business entities and interfaces.
package domain

// Task is a named unit of work declared in todo.md.
// A task is independent of how many plurbs are working on it.
type Task struct {
	Name string // Heading text (unique by convention, not enforced)
	Body string // Free-text context following the heading
}

// Plurb is one isolated, independently-running instance of work on a
// task: a branch, a worktree and a status record. It is derived from
// the filesystem on every listing and never cached across invocations.
// Fields are ordered to minimize memory padding.
type Plurb struct {
	Record   *StatusRecord // Loaded status record (nil only when degraded)
	ID       string        // Unique plurb id (slug + suffix), also the worktree dir name
	TaskName string        // Human-readable task name from the status record
	Branch   string        // Git branch backing the worktree
	Path     string        // Absolute worktree path
	Degraded bool          // Status record missing or unparseable
}

// Status returns the plurb's status, or StatusUnknown for degraded plurbs.
func (p *Plurb) Status() Status {
	if p.Degraded || p.Record == nil {
		return StatusUnknown
	}
	return p.Record.Status
}

// Active reports whether an agent is believed to be working on this plurb.
func (p *Plurb) Active() bool {
	return p.Record != nil && p.Record.ClaudeInstanceActive
}
