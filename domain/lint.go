package domain

import (
	"context"
	"io"
)

// LintIssue is one style or error finding from the external checker.
type LintIssue struct {
	FilePath string `json:"file_path" yaml:"file_path"`
	Line     int    `json:"line" yaml:"line"`
	Column   int    `json:"column" yaml:"column"`
	Message  string `json:"message" yaml:"message"`
}

// LintRequest configures a run of the wrapped external checker.
type LintRequest struct {
	Paths           []string `json:"paths"`
	Recursive       bool     `json:"recursive"`
	IncludePatterns []string `json:"include_patterns"`
	ExcludePatterns []string `json:"exclude_patterns"`

	// Executable is the checker binary to invoke (default "pyflakes").
	Executable string `json:"executable"`

	OutputFormat OutputFormat `json:"output_format"`
	OutputWriter io.Writer    `json:"-"`
}

// LintResponse carries the issues found by the external checker,
// sorted by file and line.
type LintResponse struct {
	Issues   []*LintIssue `json:"issues" yaml:"issues"`
	Warnings []string     `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	FilesChecked int    `json:"files_checked" yaml:"files_checked"`
	Duration     int64  `json:"duration_ms" yaml:"duration_ms"`
	Success      bool   `json:"success" yaml:"success"`
	Error        string `json:"error,omitempty" yaml:"error,omitempty"`
}

// LintService wraps an independent third-party style/error checker.
// It reports separately from duplication detection and shares none of
// its pipeline.
type LintService interface {
	Check(ctx context.Context, req *LintRequest) (*LintResponse, error)
}

// LintFormatter formats lint results for an output sink.
type LintFormatter interface {
	Format(response *LintResponse, format OutputFormat, writer io.Writer) error
}

// Validate checks request invariants.
func (req *LintRequest) Validate() error {
	if len(req.Paths) == 0 {
		return NewValidationError("paths cannot be empty")
	}
	return nil
}

// DefaultLintRequest returns a request with standard settings.
func DefaultLintRequest() *LintRequest {
	return &LintRequest{
		Paths:           []string{"."},
		Recursive:       true,
		IncludePatterns: []string{"**/*.py"},
		Executable:      "pyflakes",
		OutputFormat:    OutputFormatText,
	}
}
