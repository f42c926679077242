package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drace-lint/drace/internal/constants"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, constants.DefaultMinWindowStatements, cfg.Duplication.MinWindow)
	assert.Equal(t, constants.DefaultMaxWindowStatements, cfg.Duplication.MaxWindow)
	assert.Equal(t, constants.DefaultMinDumpLength, cfg.Duplication.MinDumpLength)
	assert.Equal(t, constants.DefaultMinOccurrences, cfg.Duplication.MinOccurrences)
	assert.Equal(t, "pyflakes", cfg.Lint.Executable)
	assert.Equal(t, "text", cfg.Output.Format)
	require.NotNil(t, cfg.Input.Recursive)
	assert.True(t, *cfg.Input.Recursive)
}

func TestConfig_Merge(t *testing.T) {
	base := DefaultConfig()
	recursive := false
	overlay := &Config{
		Duplication: DuplicationSection{MinOccurrences: 2},
		Input:       InputSection{Recursive: &recursive},
		Output:      OutputSection{Format: "json"},
	}

	base.Merge(overlay)

	assert.Equal(t, 2, base.Duplication.MinOccurrences)
	assert.Equal(t, constants.DefaultMaxWindowStatements, base.Duplication.MaxWindow,
		"unset overlay fields keep their base values")
	assert.Equal(t, "json", base.Output.Format)
	require.NotNil(t, base.Input.Recursive)
	assert.False(t, *base.Input.Recursive)

	base.Merge(nil) // no-op
	assert.Equal(t, 2, base.Duplication.MinOccurrences)
}

func TestLoader_DraceToml(t *testing.T) {
	dir := t.TempDir()
	content := `[duplication]
min_occurrences = 2
max_window = 8

[lint]
executable = "pyflakes3"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, DraceTomlFile), []byte(content), 0o644))

	cfg, err := NewLoader().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Duplication.MinOccurrences)
	assert.Equal(t, 8, cfg.Duplication.MaxWindow)
	assert.Equal(t, "pyflakes3", cfg.Lint.Executable)
	assert.Equal(t, constants.DefaultMinWindowStatements, cfg.Duplication.MinWindow,
		"unspecified settings fall back to defaults")
}

func TestLoader_PyprojectFallback(t *testing.T) {
	dir := t.TempDir()
	content := `[project]
name = "demo"

[tool.drace]
[tool.drace.duplication]
min_occurrences = 4

[tool.drace.output]
format = "yaml"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, PyprojectFile), []byte(content), 0o644))

	cfg, err := NewLoader().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Duplication.MinOccurrences)
	assert.Equal(t, "yaml", cfg.Output.Format)
}

func TestLoader_DraceTomlWinsOverPyproject(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DraceTomlFile),
		[]byte("[duplication]\nmin_occurrences = 2\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, PyprojectFile),
		[]byte("[tool.drace.duplication]\nmin_occurrences = 9\n"), 0o644))

	cfg, err := NewLoader().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Duplication.MinOccurrences)
}

func TestLoader_UpwardSearch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DraceTomlFile),
		[]byte("[duplication]\nmax_window = 9\n"), 0o644))
	nested := filepath.Join(dir, "src", "pkg")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := NewLoader().Load(nested)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Duplication.MaxWindow)
}

func TestLoader_MissingConfigUsesDefaults(t *testing.T) {
	cfg, err := NewLoader().Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultMinOccurrences, cfg.Duplication.MinOccurrences)
}

func TestLoader_LoadFileExplicit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[duplication]\nmin_window = 3\n"), 0o644))

	cfg, err := NewLoader().LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Duplication.MinWindow)

	_, err = NewLoader().LoadFile(filepath.Join(dir, "absent.toml"))
	assert.Error(t, err, "an explicit path must exist")
}

func TestLoader_EnvOverrides(t *testing.T) {
	t.Setenv("DRACE_DUPLICATION_MIN_OCCURRENCES", "5")
	t.Setenv("DRACE_OUTPUT_FORMAT", "csv")

	cfg, err := NewLoader().Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Duplication.MinOccurrences)
	assert.Equal(t, "csv", cfg.Output.Format)
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".drace.toml")

	require.NoError(t, WriteDefault(path))
	assert.Error(t, WriteDefault(path), "refuses to overwrite")

	cfg, err := NewLoader().LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultMaxWindowStatements, cfg.Duplication.MaxWindow)
}

func TestSearchRoot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "app.py")
	require.NoError(t, os.WriteFile(file, []byte("x = 1\n"), 0o644))

	assert.Equal(t, dir, SearchRoot(file), "a file yields its parent directory")
	assert.Equal(t, dir, SearchRoot(dir))

	missing := filepath.Join(dir, "absent")
	assert.Equal(t, missing, SearchRoot(missing))
}
