package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAgent_Builtin(t *testing.T) {
	a, err := ResolveAgent("", nil, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultAgentName, a.Name)
	assert.Equal(t, "claude", a.Command)
}

func TestResolveAgent_ConfiguredShadowsBuiltin(t *testing.T) {
	cfg := map[string]AgentSpec{
		DefaultAgentName: {Name: DefaultAgentName, Command: "my-claude"},
	}
	a, err := ResolveAgent(DefaultAgentName, cfg, "")
	require.NoError(t, err)
	assert.Equal(t, "my-claude", a.Command)
}

func TestResolveAgent_Default(t *testing.T) {
	cfg := map[string]AgentSpec{
		"aider": {Command: "aider", Args: []string{"--yes"}},
	}
	a, err := ResolveAgent("", cfg, "aider")
	require.NoError(t, err)
	assert.Equal(t, "aider", a.Name, "name filled in from map key")
	assert.Equal(t, "aider", a.Command)
}

func TestResolveAgent_UnknownDefaultFallsBack(t *testing.T) {
	a, err := ResolveAgent("", nil, "missing")
	require.NoError(t, err)
	assert.Equal(t, DefaultAgentName, a.Name)
}

func TestResolveAgent_ExplicitUnknownFails(t *testing.T) {
	_, err := ResolveAgent("missing", nil, "")
	assert.ErrorIs(t, err, ErrAgentNotFound)
}
