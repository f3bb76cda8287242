package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatchCommand_RejectsNonPositiveInterval(t *testing.T) {
	c := newTestContainer()

	for _, interval := range []string{"0", "-1"} {
		cmd := newWatchCommand(c)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--interval", interval})

		err := cmd.Execute()
		assert.ErrorContains(t, err, "--interval must be at least 1 second")
	}
}
