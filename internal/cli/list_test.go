package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCommand(t *testing.T) {
	output, err := executeCommand(rootCmd, "list")
	require.NoError(t, err)

	for _, name := range []string{"piqa", "hellaswag", "boolq", "gsm8k"} {
		assert.Contains(t, output, name)
	}
}

func TestListCommandJSON(t *testing.T) {
	_, err := executeCommand(rootCmd, "list", "--output", "json")
	assert.NoError(t, err)
}

func TestListCommandYAML(t *testing.T) {
	_, err := executeCommand(rootCmd, "list", "--output", "yaml")
	assert.NoError(t, err)
}
