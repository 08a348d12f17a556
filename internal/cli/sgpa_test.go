package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptCommand(in string) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader(in))
	cmd.SetOut(&bytes.Buffer{})
	return cmd
}

func TestPromptSelect(t *testing.T) {
	files := []string{"config/semesters/sem1.json", "config/semesters/sem2.json"}

	path, err := promptSelect(promptCommand("2\n"), files)
	require.NoError(t, err)
	assert.Equal(t, files[1], path)
}

func TestPromptSelectRetriesOnBadInput(t *testing.T) {
	files := []string{"sem1.json", "sem2.json"}

	path, err := promptSelect(promptCommand("nine\n0\n1\n"), files)
	require.NoError(t, err)
	assert.Equal(t, files[0], path)
}

func TestPromptSelectEOF(t *testing.T) {
	files := []string{"sem1.json", "sem2.json"}

	_, err := promptSelect(promptCommand(""), files)
	assert.Error(t, err)
}
