package domain

import (
	"context"
	"io"
	"time"
)

// MatchRange is one matched block location, inclusive line bounds.
type MatchRange struct {
	StartLine int `json:"start_line" yaml:"start_line"`
	EndLine   int `json:"end_line" yaml:"end_line"`
}

// Finding is one reported duplicate-block diagnostic.
type Finding struct {
	FilePath string `json:"file_path" yaml:"file_path"`
	Line     int    `json:"line" yaml:"line"`
	Column   int    `json:"column" yaml:"column"`
	Code     string `json:"code" yaml:"code"`
	Message  string `json:"message" yaml:"message"`

	// Occurrences lists every accepted match location, primary first.
	Occurrences []MatchRange `json:"occurrences" yaml:"occurrences"`
	Count       int          `json:"count" yaml:"count"`
}

// DuplicationStatistics summarizes one detection run.
type DuplicationStatistics struct {
	FilesAnalyzed  int `json:"files_analyzed" yaml:"files_analyzed"`
	LinesAnalyzed  int `json:"lines_analyzed" yaml:"lines_analyzed"`
	TotalFindings  int `json:"total_findings" yaml:"total_findings"`
	TotalLocations int `json:"total_locations" yaml:"total_locations"`
}

// DuplicationRequest configures a duplicate-block detection run.
type DuplicationRequest struct {
	// Input
	Paths           []string `json:"paths"`
	Recursive       bool     `json:"recursive"`
	IncludePatterns []string `json:"include_patterns"`
	ExcludePatterns []string `json:"exclude_patterns"`

	// Analysis configuration
	MinWindow      int `json:"min_window"`
	MaxWindow      int `json:"max_window"`
	MinDumpLength  int `json:"min_dump_length"`
	MinOccurrences int `json:"min_occurrences"`
	MaxDisplayed   int `json:"max_displayed"`

	// Output configuration
	OutputFormat OutputFormat  `json:"output_format"`
	OutputWriter io.Writer     `json:"-"`
	ConfigPath   string        `json:"config_path"`
	Timeout      time.Duration `json:"timeout"`
}

// DuplicationResponse carries the results of one detection run.
type DuplicationResponse struct {
	Findings   []*Finding             `json:"findings" yaml:"findings"`
	Statistics *DuplicationStatistics `json:"statistics" yaml:"statistics"`
	Warnings   []string               `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	Duration int64  `json:"duration_ms" yaml:"duration_ms"`
	Success  bool   `json:"success" yaml:"success"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// DuplicationService is the interface for duplicate-block detection.
type DuplicationService interface {
	// Analyze runs detection over the request's paths.
	Analyze(ctx context.Context, req *DuplicationRequest) (*DuplicationResponse, error)

	// AnalyzeFiles runs detection over explicit file paths.
	AnalyzeFiles(ctx context.Context, filePaths []string, req *DuplicationRequest) (*DuplicationResponse, error)
}

// DuplicationFormatter formats detection results for an output sink.
type DuplicationFormatter interface {
	Format(response *DuplicationResponse, format OutputFormat, writer io.Writer) error
}

// DuplicationConfigLoader loads detection configuration from files.
type DuplicationConfigLoader interface {
	LoadConfig(path string) (*DuplicationRequest, error)
	GetDefaultConfig() *DuplicationRequest
}

// Validate checks request invariants.
func (req *DuplicationRequest) Validate() error {
	if len(req.Paths) == 0 {
		return NewValidationError("paths cannot be empty")
	}
	if req.MinWindow < 1 {
		return NewValidationError("min_window must be >= 1")
	}
	if req.MaxWindow < req.MinWindow {
		return NewValidationError("max_window must be >= min_window")
	}
	if req.MinOccurrences < 2 {
		return NewValidationError("min_occurrences must be >= 2")
	}
	if req.MaxDisplayed < 1 {
		return NewValidationError("max_displayed must be >= 1")
	}
	return nil
}

// DefaultDuplicationRequest returns a request with standard settings.
func DefaultDuplicationRequest() *DuplicationRequest {
	return &DuplicationRequest{
		Paths:           []string{"."},
		Recursive:       true,
		IncludePatterns: []string{"**/*.py"},
		ExcludePatterns: []string{},
		MinWindow:       2,
		MaxWindow:       6,
		MinDumpLength:   50,
		MinOccurrences:  3,
		MaxDisplayed:    8,
		OutputFormat:    OutputFormatText,
	}
}
