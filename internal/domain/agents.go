package domain

import "fmt"

// DefaultAgentName is the built-in agent used when nothing is configured.
const DefaultAgentName = "headless-claude"

// AgentSpec defines how to launch an agent process.
// Fields are ordered to minimize memory padding.
type AgentSpec struct {
	Name    string   // Agent name (map key in config)
	Command string   // Executable to run
	Setup   string   // Optional shell script run in the worktree before launch
	Args    []string // Arguments passed to the command
}

// BuiltinAgents returns the built-in agent definitions.
func BuiltinAgents() map[string]AgentSpec {
	return map[string]AgentSpec{
		DefaultAgentName: {
			Name:    DefaultAgentName,
			Command: "claude",
			Args:    []string{"-p", "--output-format", "json"},
		},
	}
}

// ResolveAgent picks the agent to launch.
//
// Precedence: an explicitly requested name must resolve (configured
// agents shadow built-ins) or the lookup fails; otherwise the
// configured default is used when it resolves; otherwise the built-in
// default agent.
func ResolveAgent(requested string, configured map[string]AgentSpec, defaultName string) (AgentSpec, error) {
	builtin := BuiltinAgents()

	lookup := func(name string) (AgentSpec, bool) {
		if a, ok := configured[name]; ok {
			if a.Name == "" {
				a.Name = name
			}
			return a, true
		}
		a, ok := builtin[name]
		return a, ok
	}

	if requested != "" {
		a, ok := lookup(requested)
		if !ok {
			return AgentSpec{}, fmt.Errorf("agent %q: %w", requested, ErrAgentNotFound)
		}
		return a, nil
	}

	if defaultName != "" {
		if a, ok := lookup(defaultName); ok {
			return a, nil
		}
	}

	return builtin[DefaultAgentName], nil
}
