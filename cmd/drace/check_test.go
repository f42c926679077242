package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCommand_ConfigDiscoveryFromSingleFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "app.py")
	require.NoError(t, os.WriteFile(file, []byte("x = 1\n"), 0o644))

	c := NewCheckCommand()
	cmd := c.CreateCobraCommand()

	request, err := c.createRequest(cmd, []string{file}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, dir, request.ConfigPath,
		"discovery starts beside the file, never at the file itself")
}

func TestCheckCommand_ConfigDiscoveryFromDirectory(t *testing.T) {
	dir := t.TempDir()

	c := NewCheckCommand()
	cmd := c.CreateCobraCommand()

	request, err := c.createRequest(cmd, []string{dir}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, dir, request.ConfigPath)
}

func TestCheckCommand_ExplicitConfigKept(t *testing.T) {
	c := NewCheckCommand()
	c.configFile = "custom.toml"
	cmd := c.CreateCobraCommand()

	request, err := c.createRequest(cmd, []string{"."}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "custom.toml", request.ConfigPath)
}

func TestCheckCommand_RejectsConflictingFormats(t *testing.T) {
	c := NewCheckCommand()
	c.json = true
	c.yaml = true
	cmd := c.CreateCobraCommand()

	_, err := c.createRequest(cmd, []string{"."}, io.Discard)
	assert.Error(t, err)
}
