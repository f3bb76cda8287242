package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pluribus-dev/pluribus/internal/domain"
	"gopkg.in/yaml.v3"
)

// Manager writes the workspace configuration file. Only init uses it;
// everything else treats configuration as read-only.
type Manager struct {
	workspaceRoot string
}

// NewManager creates a manager for the given workspace root.
func NewManager(workspaceRoot string) *Manager {
	return &Manager{workspaceRoot: workspaceRoot}
}

// Exists reports whether the workspace config file is present.
func (m *Manager) Exists() bool {
	_, err := os.Stat(filepath.Join(m.workspaceRoot, domain.ConfigFileName))
	return err == nil
}

// Write creates the workspace pluribus.config from the given settings.
func (m *Manager) Write(repoPath, repoURL string) error {
	var fc fileConfig
	fc.Repo.Path = repoPath
	fc.Repo.URL = repoURL

	data, err := yaml.Marshal(&fc)
	if err != nil {
		return fmt.Errorf("marshal workspace config: %w", err)
	}

	path := filepath.Join(m.workspaceRoot, domain.ConfigFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // workspace config is not sensitive
		return fmt.Errorf("write workspace config: %w", err)
	}
	return nil
}
