package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/drace-lint/drace/internal/constants"
)

// Config is the on-disk configuration of drace, read from .drace.toml
// or the [tool.drace] section of pyproject.toml.
type Config struct {
	Duplication DuplicationSection `toml:"duplication"`
	Lint        LintSection        `toml:"lint"`
	Input       InputSection       `toml:"input"`
	Output      OutputSection      `toml:"output"`
}

// DuplicationSection configures the duplicate-block rule.
type DuplicationSection struct {
	MinWindow      int `toml:"min_window"`
	MaxWindow      int `toml:"max_window"`
	MinDumpLength  int `toml:"min_dump_length"`
	MinOccurrences int `toml:"min_occurrences"`
	MaxDisplayed   int `toml:"max_displayed"`
}

// LintSection configures the external checker wrapper.
type LintSection struct {
	Executable string `toml:"executable"`
}

// InputSection configures file collection.
type InputSection struct {
	IncludePatterns []string `toml:"include_patterns"`
	ExcludePatterns []string `toml:"exclude_patterns"`
	Recursive       *bool    `toml:"recursive"` // pointer to detect unset
}

// OutputSection configures result formatting.
type OutputSection struct {
	Format string `toml:"format"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	recursive := true
	return &Config{
		Duplication: DuplicationSection{
			MinWindow:      constants.DefaultMinWindowStatements,
			MaxWindow:      constants.DefaultMaxWindowStatements,
			MinDumpLength:  constants.DefaultMinDumpLength,
			MinOccurrences: constants.DefaultMinOccurrences,
			MaxDisplayed:   constants.DefaultMaxDisplayedMatches,
		},
		Lint: LintSection{
			Executable: "pyflakes",
		},
		Input: InputSection{
			IncludePatterns: []string{"**/*.py"},
			ExcludePatterns: []string{},
			Recursive:       &recursive,
		},
		Output: OutputSection{
			Format: "text",
		},
	}
}

// Merge overlays non-zero values from other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Duplication.MinWindow > 0 {
		c.Duplication.MinWindow = other.Duplication.MinWindow
	}
	if other.Duplication.MaxWindow > 0 {
		c.Duplication.MaxWindow = other.Duplication.MaxWindow
	}
	if other.Duplication.MinDumpLength > 0 {
		c.Duplication.MinDumpLength = other.Duplication.MinDumpLength
	}
	if other.Duplication.MinOccurrences > 0 {
		c.Duplication.MinOccurrences = other.Duplication.MinOccurrences
	}
	if other.Duplication.MaxDisplayed > 0 {
		c.Duplication.MaxDisplayed = other.Duplication.MaxDisplayed
	}
	if other.Lint.Executable != "" {
		c.Lint.Executable = other.Lint.Executable
	}
	if len(other.Input.IncludePatterns) > 0 {
		c.Input.IncludePatterns = other.Input.IncludePatterns
	}
	if len(other.Input.ExcludePatterns) > 0 {
		c.Input.ExcludePatterns = other.Input.ExcludePatterns
	}
	if other.Input.Recursive != nil {
		c.Input.Recursive = other.Input.Recursive
	}
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
}

// WriteDefault writes a starter configuration file at path. It fails
// if the file already exists.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	data, err := toml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to encode default config: %w", err)
	}
	header := []byte("# drace configuration. Values mirror the built-in defaults.\n")
	return os.WriteFile(path, append(header, data...), 0o644)
}
