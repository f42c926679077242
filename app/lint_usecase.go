package app

import (
	"context"
	"fmt"
	"time"

	"github.com/drace-lint/drace/domain"
)

// LintUseCase orchestrates runs of the wrapped external checker.
type LintUseCase struct {
	service    domain.LintService
	fileReader FileCollector
	formatter  domain.LintFormatter
}

// NewLintUseCase creates a new lint use case with the given dependencies.
func NewLintUseCase(
	service domain.LintService,
	fileReader FileCollector,
	formatter domain.LintFormatter,
) *LintUseCase {
	return &LintUseCase{
		service:    service,
		fileReader: fileReader,
		formatter:  formatter,
	}
}

// Execute resolves the request's paths, runs the checker, and writes
// the formatted results.
func (uc *LintUseCase) Execute(ctx context.Context, req domain.LintRequest) (*domain.LintResponse, error) {
	startTime := time.Now()

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	files, err := uc.fileReader.CollectPythonFiles(req.Paths, req.Recursive, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to collect files: %w", err)
	}

	if len(files) == 0 {
		emptyResponse := &domain.LintResponse{Issues: []*domain.LintIssue{}, Success: true}
		if req.OutputWriter != nil {
			if err := uc.formatter.Format(emptyResponse, req.OutputFormat, req.OutputWriter); err != nil {
				return nil, err
			}
		}
		return emptyResponse, nil
	}

	fileReq := req
	fileReq.Paths = files
	response, err := uc.service.Check(ctx, &fileReq)
	if err != nil {
		return nil, fmt.Errorf("lint check failed: %w", err)
	}

	response.Duration = time.Since(startTime).Milliseconds()

	if req.OutputWriter == nil {
		return nil, fmt.Errorf("no output writer specified")
	}
	if err := uc.formatter.Format(response, req.OutputFormat, req.OutputWriter); err != nil {
		return nil, fmt.Errorf("failed to format output: %w", err)
	}

	return response, nil
}
