package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExitCodes(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"--base-url", "not a url", "poll", "/gdc/app/one"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "analytics: invalid configuration")
}

func TestRunSucceeds(t *testing.T) {
	srv := newFakePlatform(t)
	var stdout, stderr bytes.Buffer

	args := append(baseArgs(t, srv), "poll", "/gdc/app/one", "--output-dir", t.TempDir())
	code := run(args, &stdout, &stderr)

	require.Zero(t, code, stderr.String())
	assert.Empty(t, stderr.String())
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range completionShells() {
		t.Run(shell, func(t *testing.T) {
			out, err := runCLI(t, "--base-url", "not a url", "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "analytics")
		})
	}
}

func TestCompletionCommandRejectsShell(t *testing.T) {
	_, err := runCLI(t, "completion", "tcsh")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid argument")
}

func TestCompletionShells(t *testing.T) {
	assert.Equal(t, []string{"bash", "fish", "powershell", "zsh"}, completionShells())
}
