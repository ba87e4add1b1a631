package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootHasCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"month", "week", "apply", "models", "export", "version"} {
		assert.True(t, names[want], "missing command %q", want)
	}
}

func TestRootUse(t *testing.T) {
	assert.Equal(t, "datebook", rootCmd.Use)
}
