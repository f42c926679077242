package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/drace-lint/drace/internal/config"
)

// InitCommand represents the init command.
type InitCommand struct {
	force      bool
	configPath string
}

// NewInitCommand creates a new init command.
func NewInitCommand() *InitCommand {
	return &InitCommand{
		configPath: ".drace.toml",
	}
}

// CreateCobraCommand creates the cobra command for config initialization.
func (i *InitCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize drace configuration file",
		Long: `Initialize a drace configuration file in the current directory.

Creates a .drace.toml file listing the built-in defaults, ready to
adjust for your project. The same settings can instead live in the
[tool.drace] section of pyproject.toml.

Examples:
  # Create .drace.toml in current directory
  drace init

  # Create config file with custom name
  drace init --config myconfig.toml

  # Overwrite existing configuration file
  drace init --force`,
		RunE: i.runInit,
	}

	cmd.Flags().BoolVarP(&i.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&i.configPath, "config", "c", ".drace.toml", "Configuration file path")

	return cmd
}

// runInit executes the init command.
func (i *InitCommand) runInit(cmd *cobra.Command, args []string) error {
	configPath, err := filepath.Abs(i.configPath)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	if i.force {
		if err := os.Remove(configPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove existing config: %w", err)
		}
	}

	if err := config.WriteDefault(configPath); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", configPath)
	return nil
}

// NewInitCmd creates the init cobra command.
func NewInitCmd() *cobra.Command {
	return NewInitCommand().CreateCobraCommand()
}
