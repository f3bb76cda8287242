package domain

// Config is the merged application configuration.
// Sources, later taking precedence: built-in defaults, the global
// config file, the workspace pluribus.config.
type Config struct {
	Agents       map[string]AgentSpec // Named agent definitions
	RepoPath     string               // Path to the managed repository
	RepoURL      string               // Origin URL when the repo was cloned by init
	DefaultAgent string               // Agent used when no --agent flag is given
	Log          LogConfig            // Logging settings
	Watch        WatchConfig          // Watch/poll settings
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string // debug, info, warn, error
}

// WatchConfig holds live-view settings.
type WatchConfig struct {
	IntervalSeconds int // Poll interval when change notification is unavailable
}

// NewDefaultConfig returns the built-in defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Agents:       make(map[string]AgentSpec),
		DefaultAgent: DefaultAgentName,
		Log:          LogConfig{Level: "info"},
		Watch:        WatchConfig{IntervalSeconds: 5},
	}
}
