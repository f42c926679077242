package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drace-lint/drace/domain"
)

func TestDuplicationConfigLoader_Defaults(t *testing.T) {
	req := NewDuplicationConfigLoader().GetDefaultConfig()
	assert.Equal(t, 3, req.MinOccurrences)
	assert.Equal(t, domain.OutputFormatText, req.OutputFormat)
	assert.True(t, req.Recursive)
}

func TestDuplicationConfigLoader_FromDirectory(t *testing.T) {
	dir := t.TempDir()
	content := `[duplication]
min_occurrences = 2

[input]
recursive = false
exclude_patterns = ["test_*.py"]

[output]
format = "json"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".drace.toml"), []byte(content), 0o644))

	req, err := NewDuplicationConfigLoader().LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, req.MinOccurrences)
	assert.False(t, req.Recursive)
	assert.Equal(t, []string{"test_*.py"}, req.ExcludePatterns)
	assert.Equal(t, domain.OutputFormatJSON, req.OutputFormat)
}

func TestDuplicationConfigLoader_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[duplication]\nmax_window = 10\n"), 0o644))

	req, err := NewDuplicationConfigLoader().LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 10, req.MaxWindow)

	_, err = NewDuplicationConfigLoader().LoadConfig(filepath.Join(dir, "absent.toml"))
	assert.Error(t, err)
}
