package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/drace-lint/drace/app"
	"github.com/drace-lint/drace/domain"
	"github.com/drace-lint/drace/internal/config"
	"github.com/drace-lint/drace/service"
)

// CheckCommand handles the duplicate-block detection CLI command.
type CheckCommand struct {
	// Input
	recursive       bool
	configFile      string
	includePatterns []string
	excludePatterns []string

	// Analysis configuration
	minWindow      int
	maxWindow      int
	minDumpLength  int
	minOccurrences int
	maxDisplayed   int

	// Output destination ("" means stdout)
	outputFile string

	// Output format flags (only one should be true)
	json bool
	yaml bool
	csv  bool

	quiet   bool
	timeout time.Duration
}

// NewCheckCommand creates a new check command with defaults.
func NewCheckCommand() *CheckCommand {
	defaults := domain.DefaultDuplicationRequest()
	return &CheckCommand{
		recursive:      defaults.Recursive,
		minWindow:      defaults.MinWindow,
		maxWindow:      defaults.MaxWindow,
		minDumpLength:  defaults.MinDumpLength,
		minOccurrences: defaults.MinOccurrences,
		maxDisplayed:   defaults.MaxDisplayed,
		timeout:        5 * time.Minute,
	}
}

// CreateCobraCommand creates the Cobra command for duplicate detection.
func (c *CheckCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Detect structurally duplicated statement blocks (Z202)",
		Long: `Detect duplicated statement blocks in Python files.

Blocks are compared structurally: variable names, attribute names, and
literal values are canonicalized before hashing, so a copy-pasted block
with renamed variables still counts as a duplicate. A block is reported
when it occurs at least three times (configurable) and survives the
triviality filters.

Exit codes:
  0: No duplicate blocks found
  1: Duplicate blocks found
  2: Analysis failed (invalid input, missing files, etc.)

Examples:
  # Check current directory
  drace check .

  # Check specific paths with wider windows
  drace check --max-window 10 src/ lib/

  # Require only two occurrences
  drace check --min-occurrences 2 src/

  # Output results as JSON
  drace check --json src/ > findings.json`,
		Args: cobra.ArbitraryArgs,
		RunE: c.runCheck,
	}

	cmd.Flags().BoolVarP(&c.recursive, "recursive", "r", c.recursive,
		"Recursively analyze directories")
	cmd.Flags().StringVarP(&c.configFile, "config", "c", c.configFile,
		"Path to configuration file")
	cmd.Flags().StringSliceVar(&c.includePatterns, "include", nil,
		"File patterns to include")
	cmd.Flags().StringSliceVar(&c.excludePatterns, "exclude", nil,
		"File patterns to exclude")

	cmd.Flags().IntVar(&c.minWindow, "min-window", c.minWindow,
		"Minimum statements per compared block")
	cmd.Flags().IntVar(&c.maxWindow, "max-window", c.maxWindow,
		"Maximum statements per compared block")
	cmd.Flags().IntVar(&c.minOccurrences, "min-occurrences", c.minOccurrences,
		"Minimum occurrences before a block is reported")
	cmd.Flags().IntVar(&c.maxDisplayed, "max-displayed", c.maxDisplayed,
		"Maximum match locations listed per diagnostic")
	cmd.Flags().IntVar(&c.minDumpLength, "min-dump-length", c.minDumpLength,
		"Minimum canonical form length for candidates")

	cmd.Flags().BoolVar(&c.json, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Output results as YAML")
	cmd.Flags().BoolVar(&c.csv, "csv", false, "Output results as CSV")
	cmd.Flags().StringVarP(&c.outputFile, "output", "o", "",
		"Write results to a file instead of stdout")

	cmd.Flags().BoolVarP(&c.quiet, "quiet", "q", false,
		"Suppress output unless duplicates are found")
	cmd.Flags().DurationVar(&c.timeout, "timeout", c.timeout,
		"Maximum time for analysis (e.g., 5m, 30s)")

	_ = cmd.Flags().MarkHidden("min-dump-length")

	return cmd
}

// runCheck executes duplicate detection and maps findings to exit status.
func (c *CheckCommand) runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	var output io.Writer = cmd.OutOrStdout()
	if c.outputFile != "" {
		f, err := os.Create(c.outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	request, err := c.createRequest(cmd, args, output)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	useCase := c.createUseCase()

	cmd.SilenceUsage = true
	response, err := useCase.Execute(context.Background(), *request)
	if err != nil {
		printCommandError(cmd, err)
		os.Exit(2)
	}

	if len(response.Findings) > 0 {
		os.Exit(1)
	}
	return nil
}

// createRequest builds a detection request from flags and arguments.
func (c *CheckCommand) createRequest(cmd *cobra.Command, paths []string, output io.Writer) (*domain.DuplicationRequest, error) {
	outputFormat, err := c.determineOutputFormat()
	if err != nil {
		return nil, err
	}

	outputWriter := output
	if c.quiet && c.outputFile == "" && outputFormat == domain.OutputFormatText {
		outputWriter = io.Discard
	}

	request := domain.DefaultDuplicationRequest()
	request.Paths = paths
	request.Recursive = c.recursive
	request.ConfigPath = c.configFile
	request.MinWindow = c.minWindow
	request.MaxWindow = c.maxWindow
	request.MinDumpLength = c.minDumpLength
	request.MinOccurrences = c.minOccurrences
	request.MaxDisplayed = c.maxDisplayed
	request.OutputFormat = outputFormat
	request.OutputWriter = outputWriter
	request.Timeout = c.timeout

	explicit := GetExplicitFlags(cmd)
	if explicit["include"] {
		request.IncludePatterns = c.includePatterns
	}
	if explicit["exclude"] {
		request.ExcludePatterns = c.excludePatterns
	}
	if c.configFile == "" {
		// No explicit config file: search upward from the first path.
		request.ConfigPath = config.SearchRoot(paths[0])
	}

	return request, nil
}

// determineOutputFormat maps the format flags to an output format.
func (c *CheckCommand) determineOutputFormat() (domain.OutputFormat, error) {
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

// createUseCase wires the check use case with its dependencies.
func (c *CheckCommand) createUseCase() *app.CheckUseCase {
	return app.NewCheckUseCase(
		service.NewDuplicationService(service.NewParallelExecutor(), service.NewProgressManager()),
		service.NewFileReader(),
		service.NewDuplicationFormatter(),
		service.NewDuplicationConfigLoader(),
	)
}

// NewCheckCmd creates the check cobra command.
func NewCheckCmd() *cobra.Command {
	return NewCheckCommand().CreateCobraCommand()
}
