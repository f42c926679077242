package domain

import (
	"context"
	"io"
	"time"
)

// OutputFormat represents the supported output formats.
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
)

// ProgressManager tracks analysis progress on interactive terminals.
type ProgressManager interface {
	// Initialize sets up progress tracking with the maximum value.
	Initialize(maxValue int)

	// Start starts the progress bar.
	Start()

	// Update updates the progress.
	Update(processed, total int)

	// Complete marks the progress as completed.
	Complete(success bool)

	// SetWriter sets the output writer for progress bars.
	SetWriter(writer io.Writer)

	// IsInteractive returns true if progress bars should be shown.
	IsInteractive() bool

	// Close cleans up any resources.
	Close()
}

// ParallelExecutor manages parallel execution of per-file analysis
// tasks. The whole pipeline runs independently per file, so tasks
// share nothing and need no coordination beyond completion.
type ParallelExecutor interface {
	// Execute runs tasks in parallel.
	Execute(ctx context.Context, tasks []ExecutableTask) error

	// SetMaxConcurrency sets the maximum number of concurrent tasks.
	SetMaxConcurrency(max int)

	// SetTimeout sets the timeout for the whole batch.
	SetTimeout(timeout time.Duration)
}

// ExecutableTask is a unit of work runnable by a ParallelExecutor.
type ExecutableTask interface {
	// Name returns the task name, used in error messages.
	Name() string

	// Execute runs the task.
	Execute(ctx context.Context) (interface{}, error)

	// IsEnabled returns whether the task should run.
	IsEnabled() bool
}

// ErrorCategory classifies an error for user-facing reporting.
type ErrorCategory string

const (
	ErrorCategoryInput      ErrorCategory = "Input Error"
	ErrorCategoryConfig     ErrorCategory = "Configuration Error"
	ErrorCategoryProcessing ErrorCategory = "Processing Error"
	ErrorCategoryOutput     ErrorCategory = "Output Error"
	ErrorCategoryTimeout    ErrorCategory = "Timeout Error"
	ErrorCategoryExternal   ErrorCategory = "External Tool Error"
	ErrorCategoryUnknown    ErrorCategory = "Unknown Error"
)

// CategorizedError pairs an error with its category.
type CategorizedError struct {
	Category ErrorCategory
	Message  string
	Original error
}

// Error implements the error interface.
func (e *CategorizedError) Error() string {
	if e.Original != nil {
		return e.Original.Error()
	}
	return e.Message
}

// ErrorCategorizer categorizes errors for better reporting.
type ErrorCategorizer interface {
	// Categorize determines the category of an error.
	Categorize(err error) *CategorizedError

	// GetRecoverySuggestions returns recovery hints for a category.
	GetRecoverySuggestions(category ErrorCategory) []string
}
