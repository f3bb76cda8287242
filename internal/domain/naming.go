package domain

import (
	"math/rand/v2"
	"path/filepath"
	"regexp"
	"strings"
)

// BranchNamespace is the prefix under which all plurb branches live.
const BranchNamespace = "pluribus/"

// ConfigFileName is the workspace configuration file name. Its presence
// marks a directory as a pluribus workspace root.
const ConfigFileName = "pluribus.config"

// TodoFileName is the task list document name.
const TodoFileName = "todo.md"

// SuffixLength is the number of characters in a plurb id suffix.
const SuffixLength = 5

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var (
	invalidSlugChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
	hyphenRun        = regexp.MustCompile(`-+`)
)

// Slugify converts a task name to a filesystem- and branch-safe slug.
func Slugify(taskName string) string {
	slug := strings.ToLower(taskName)
	slug = invalidSlugChars.ReplaceAllString(slug, "")
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	slug = hyphenRun.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// NewSuffix generates a random lowercase-alphanumeric suffix.
func NewSuffix() string {
	b := make([]byte, SuffixLength)
	for i := range b {
		b[i] = suffixAlphabet[rand.IntN(len(suffixAlphabet))]
	}
	return string(b)
}

// PlurbID combines a task name and a suffix into a plurb id.
// Format: <slug>-<suffix>, e.g. "add-database-migration-ab12c".
func PlurbID(taskName, suffix string) string {
	return Slugify(taskName) + "-" + suffix
}

// BranchName returns the branch for a plurb id.
// Format: pluribus/<plurb-id>.
func BranchName(plurbID string) string {
	return BranchNamespace + plurbID
}

// BranchPlurbID extracts the plurb id from a namespaced branch name.
// Returns "" and false if the branch is outside the pluribus namespace.
func BranchPlurbID(branch string) (string, bool) {
	id, ok := strings.CutPrefix(branch, BranchNamespace)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// WorktreesDir returns the directory holding all plurb worktrees.
func WorktreesDir(workspaceRoot string) string {
	return filepath.Join(workspaceRoot, "worktrees")
}

// WorktreePath returns the checkout directory for one plurb.
func WorktreePath(worktreesRoot, plurbID string) string {
	return filepath.Join(worktreesRoot, plurbID)
}

// PluribusDir returns the per-worktree metadata directory.
func PluribusDir(worktreePath string) string {
	return filepath.Join(worktreePath, ".pluribus")
}

// StatusFilePath returns the status record path inside a worktree.
func StatusFilePath(worktreePath string) string {
	return filepath.Join(worktreePath, ".pluribus", "status.json")
}

// AgentOutputPath returns the captured agent output path inside a worktree.
func AgentOutputPath(worktreePath string) string {
	return filepath.Join(worktreePath, ".pluribus", "agent-output.json")
}

// LogsDir returns the workspace log directory.
func LogsDir(workspaceRoot string) string {
	return filepath.Join(workspaceRoot, ".pluribus", "logs")
}

// GlobalLogPath returns the workspace-wide log file path.
func GlobalLogPath(workspaceRoot string) string {
	return filepath.Join(LogsDir(workspaceRoot), "pluribus.log")
}

// PlurbLogPath returns the per-plurb log file path.
func PlurbLogPath(workspaceRoot, plurbID string) string {
	return filepath.Join(LogsDir(workspaceRoot), "plurb-"+plurbID+".log")
}

// GlobalConfigDir returns the global config directory under configHome.
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, "pluribus")
}
