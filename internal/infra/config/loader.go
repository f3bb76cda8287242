// Package config loads and writes pluribus configuration.
//
// Two sources are merged over the built-in defaults: a global file at
// $XDG_CONFIG_HOME/pluribus/config.toml, then the workspace
// pluribus.config (YAML), whose presence also marks the workspace root.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/pluribus-dev/pluribus/internal/domain"
	"gopkg.in/yaml.v3"
)

// GlobalConfigFileName is the global configuration file name.
const GlobalConfigFileName = "config.toml"

// fileConfig is the on-disk configuration schema, shared between the
// YAML workspace file and the TOML global file.
type fileConfig struct {
	Repo struct {
		Path string `yaml:"path" toml:"path"`
		URL  string `yaml:"url,omitempty" toml:"url,omitempty"`
	} `yaml:"repo" toml:"repo"`
	DefaultAgent string              `yaml:"default_agent,omitempty" toml:"default_agent,omitempty"`
	Agents       map[string]agentDef `yaml:"agents,omitempty" toml:"agents,omitempty"`
	Log          struct {
		Level string `yaml:"level,omitempty" toml:"level,omitempty"`
	} `yaml:"log,omitempty" toml:"log,omitempty"`
	Watch struct {
		IntervalSeconds int `yaml:"interval_seconds,omitempty" toml:"interval_seconds,omitempty"`
	} `yaml:"watch,omitempty" toml:"watch,omitempty"`
}

type agentDef struct {
	Command string   `yaml:"command" toml:"command"`
	Setup   string   `yaml:"setup,omitempty" toml:"setup,omitempty"`
	Args    []string `yaml:"args,omitempty" toml:"args,omitempty"`
}

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads the merged configuration for a workspace.
type Loader struct {
	workspaceRoot string
	globalConfDir string
}

// NewLoader creates a loader for the given workspace root.
func NewLoader(workspaceRoot string) *Loader {
	return &Loader{
		workspaceRoot: workspaceRoot,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a loader with a custom global config
// directory. Useful for testing.
func NewLoaderWithGlobalDir(workspaceRoot, globalConfDir string) *Loader {
	return &Loader{
		workspaceRoot: workspaceRoot,
		globalConfDir: globalConfDir,
	}
}

func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration.
// Precedence, later wins: defaults, global TOML, workspace YAML.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	global, err := l.loadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if global != nil {
		apply(cfg, global)
	}

	workspace, err := l.loadWorkspace()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNotInitialized
		}
		return nil, err
	}
	apply(cfg, workspace)

	if cfg.RepoPath == "" {
		return nil, domain.ErrRepoNotConfigured
	}
	if !filepath.IsAbs(cfg.RepoPath) {
		cfg.RepoPath = filepath.Join(l.workspaceRoot, cfg.RepoPath)
	}
	return cfg, nil
}

func (l *Loader) loadGlobal() (*fileConfig, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	data, err := os.ReadFile(filepath.Join(l.globalConfDir, GlobalConfigFileName))
	if err != nil {
		return nil, err
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse global config: %w", err)
	}
	return &fc, nil
}

func (l *Loader) loadWorkspace() (*fileConfig, error) {
	data, err := os.ReadFile(filepath.Join(l.workspaceRoot, domain.ConfigFileName))
	if err != nil {
		return nil, err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse workspace config: %w", err)
	}
	return &fc, nil
}

// apply overlays non-zero fields of fc onto cfg.
func apply(cfg *domain.Config, fc *fileConfig) {
	if fc.Repo.Path != "" {
		cfg.RepoPath = fc.Repo.Path
	}
	if fc.Repo.URL != "" {
		cfg.RepoURL = fc.Repo.URL
	}
	if fc.DefaultAgent != "" {
		cfg.DefaultAgent = fc.DefaultAgent
	}
	if fc.Log.Level != "" {
		cfg.Log.Level = fc.Log.Level
	}
	if fc.Watch.IntervalSeconds > 0 {
		cfg.Watch.IntervalSeconds = fc.Watch.IntervalSeconds
	}
	for name, def := range fc.Agents {
		cfg.Agents[name] = domain.AgentSpec{
			Name:    name,
			Command: def.Command,
			Setup:   def.Setup,
			Args:    def.Args,
		}
	}
}
