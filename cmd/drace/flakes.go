package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/drace-lint/drace/app"
	"github.com/drace-lint/drace/domain"
	"github.com/drace-lint/drace/service"
)

// FlakesCommand handles the pyflakes wrapper CLI command.
type FlakesCommand struct {
	recursive       bool
	includePatterns []string
	excludePatterns []string
	executable      string

	json bool
	yaml bool
	csv  bool
}

// NewFlakesCommand creates a new flakes command with defaults.
func NewFlakesCommand() *FlakesCommand {
	defaults := domain.DefaultLintRequest()
	return &FlakesCommand{
		recursive:  defaults.Recursive,
		executable: defaults.Executable,
	}
}

// CreateCobraCommand creates the Cobra command for the checker wrapper.
func (c *FlakesCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flakes [paths...]",
		Short: "Run pyflakes over the collected Python files",
		Long: `Run an installed pyflakes-compatible checker over the project.

This is an independent pass from duplicate detection; its findings are
reported separately. The checker binary must be on PATH (pip install
pyflakes) or named with --executable.

Examples:
  # Check current directory
  drace flakes .

  # Use a different checker binary
  drace flakes --executable pyflakes3 src/`,
		Args: cobra.ArbitraryArgs,
		RunE: c.runFlakes,
	}

	cmd.Flags().BoolVarP(&c.recursive, "recursive", "r", c.recursive,
		"Recursively analyze directories")
	cmd.Flags().StringSliceVar(&c.includePatterns, "include", nil,
		"File patterns to include")
	cmd.Flags().StringSliceVar(&c.excludePatterns, "exclude", nil,
		"File patterns to exclude")
	cmd.Flags().StringVar(&c.executable, "executable", c.executable,
		"Checker binary to invoke")

	cmd.Flags().BoolVar(&c.json, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Output results as YAML")
	cmd.Flags().BoolVar(&c.csv, "csv", false, "Output results as CSV")

	return cmd
}

func (c *FlakesCommand) runFlakes(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	outputFormat, err := c.determineOutputFormat()
	if err != nil {
		return err
	}

	request := domain.DefaultLintRequest()
	request.Paths = args
	request.Recursive = c.recursive
	request.Executable = c.executable
	request.OutputFormat = outputFormat
	request.OutputWriter = cmd.OutOrStdout()
	if cmd.Flags().Changed("include") {
		request.IncludePatterns = c.includePatterns
	}
	if cmd.Flags().Changed("exclude") {
		request.ExcludePatterns = c.excludePatterns
	}

	useCase := app.NewLintUseCase(
		service.NewLintService(),
		service.NewFileReader(),
		service.NewLintFormatter(),
	)

	cmd.SilenceUsage = true
	response, err := useCase.Execute(context.Background(), *request)
	if err != nil {
		printCommandError(cmd, err)
		os.Exit(2)
	}

	if len(response.Issues) > 0 {
		os.Exit(1)
	}
	return nil
}

func (c *FlakesCommand) determineOutputFormat() (domain.OutputFormat, error) {
	count := 0
	format := domain.OutputFormatText
	if c.json {
		count++
		format = domain.OutputFormatJSON
	}
	if c.yaml {
		count++
		format = domain.OutputFormatYAML
	}
	if c.csv {
		count++
		format = domain.OutputFormatCSV
	}
	if count > 1 {
		return "", fmt.Errorf("only one of --json, --yaml, --csv may be used")
	}
	return format, nil
}

// NewFlakesCmd creates the flakes cobra command.
func NewFlakesCmd() *cobra.Command {
	return NewFlakesCommand().CreateCobraCommand()
}
