// Package spawner launches agent processes detached from pluribus.
//
// Agents run in their own session so they survive pluribus exiting.
// Nothing here ever signals or waits on an agent: coordination happens
// exclusively through the status record the agent writes.
package spawner

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/pluribus-dev/pluribus/internal/domain"
)

const sessionPollInterval = 100 * time.Millisecond

// Spawner starts agents inside plurb worktrees.
type Spawner struct {
	repoRoot string
}

// New creates a spawner. repoRoot is exported to agents so they can
// reference the main checkout.
func New(repoRoot string) *Spawner {
	return &Spawner{repoRoot: repoRoot}
}

// Ensure Spawner implements domain.AgentLauncher.
var _ domain.AgentLauncher = (*Spawner)(nil)

// Spawn runs the agent's setup script, then starts the agent detached.
// Agent stdout and stderr are captured to .pluribus/agent-output.json
// in the worktree. The returned pid is informational only.
func (s *Spawner) Spawn(opts domain.SpawnOptions) (*domain.SpawnResult, error) {
	if opts.Agent.Setup != "" {
		setup := exec.Command("sh", "-c", opts.Agent.Setup)
		setup.Dir = opts.WorktreePath
		if out, err := setup.CombinedOutput(); err != nil {
			return nil, fmt.Errorf("agent setup script: %w: %s", err, string(out))
		}
	}

	if err := os.MkdirAll(domain.PluribusDir(opts.WorktreePath), 0o750); err != nil {
		return nil, fmt.Errorf("create metadata directory: %w", err)
	}
	outFile, err := os.Create(domain.AgentOutputPath(opts.WorktreePath))
	if err != nil {
		return nil, fmt.Errorf("create agent output file: %w", err)
	}
	defer outFile.Close()

	args := slices.Clone(opts.Agent.Args)
	if opts.SessionID != "" {
		args = append(args, "--resume", opts.SessionID)
	}
	args = append(args, buildPrompt(opts))

	//nolint:gosec // command and args come from workspace configuration
	cmd := exec.Command(opts.Agent.Command, args...)
	cmd.Dir = opts.WorktreePath
	cmd.Stdout = outFile
	cmd.Stderr = outFile
	cmd.Env = agentEnv(opts, s.repoRoot)
	// New session: the agent must not die with pluribus.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start agent %s: %w", opts.Agent.Name, err)
	}

	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return nil, fmt.Errorf("release agent process: %w", err)
	}

	return &domain.SpawnResult{RunID: uuid.NewString(), PID: pid}, nil
}

// agentEnv builds the child environment: the parent environment plus
// the PLURIBUS_* contract variables and AGENT_ARG_* extras.
func agentEnv(opts domain.SpawnOptions, repoRoot string) []string {
	env := os.Environ()
	env = append(env,
		"PLURIBUS_TASK_ID="+opts.PlurbID,
		"PLURIBUS_TASK_NAME="+opts.TaskName,
		"PLURIBUS_WORKTREE_DIR="+opts.WorktreePath,
		"PLURIBUS_REPO_ROOT="+repoRoot,
	)
	if opts.SessionID != "" {
		env = append(env, "PLURIBUS_SESSION_ID="+opts.SessionID)
	}
	for key, value := range opts.ExtraArgs {
		env = append(env, "AGENT_ARG_"+strings.ToUpper(key)+"="+value)
	}
	return env
}

// buildPrompt renders the task handoff given to the agent, including
// the status record contract it must honor.
func buildPrompt(opts domain.SpawnOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Work on the following task in this repository checkout.\n\n")
	fmt.Fprintf(&b, "Task: %s\n", opts.TaskName)
	if opts.TaskBody != "" {
		fmt.Fprintf(&b, "\n%s\n", opts.TaskBody)
	}
	b.WriteString(`
Keep .pluribus/status.json up to date as you work: set "status" to
in_progress/blocked/completed/failed, update "progress_percent",
"phase" and "last_update" (RFC 3339 UTC), and set
"claude_instance_active" to false before you exit. Preserve any fields
already present in the file. Replace the file atomically (write to a
temp file in the same directory, then rename).
`)
	return b.String()
}

// SessionID polls the captured agent output for a session id, giving up
// after timeout. Returns "" when none appears: callers treat the
// session id as best-effort.
func (s *Spawner) SessionID(worktreePath string, timeout time.Duration) string {
	deadline := time.Now().Add(timeout)
	path := domain.AgentOutputPath(worktreePath)

	for {
		if id := parseSessionID(path); id != "" {
			return id
		}
		if time.Now().After(deadline) {
			return ""
		}
		time.Sleep(sessionPollInterval)
	}
}

// parseSessionID extracts "session_id" from the agent output. The
// output is either a single JSON object or a stream of JSON lines,
// depending on the agent's output format.
func parseSessionID(path string) string {
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return ""
	}

	type sessionOutput struct {
		SessionID string `json:"session_id"`
	}

	var out sessionOutput
	if err := json.Unmarshal(data, &out); err == nil && out.SessionID != "" {
		return out.SessionID
	}

	for line := range strings.Lines(string(data)) {
		if err := json.Unmarshal([]byte(line), &out); err == nil && out.SessionID != "" {
			return out.SessionID
		}
	}
	return ""
}

// ProcessAlive reports whether pid refers to a live process. Signal 0
// probes existence without delivering anything; EPERM still means the
// process exists.
func (s *Spawner) ProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := syscall.Kill(pid, 0)
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}
