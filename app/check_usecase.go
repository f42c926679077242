package app

import (
	"context"
	"fmt"
	"time"

	"github.com/drace-lint/drace/domain"
)

// FileCollector resolves request paths into concrete Python files.
type FileCollector interface {
	CollectPythonFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)
	IsValidPythonFile(path string) bool
}

// CheckUseCase orchestrates duplicate-block detection.
type CheckUseCase struct {
	service      domain.DuplicationService
	fileReader   FileCollector
	formatter    domain.DuplicationFormatter
	configLoader domain.DuplicationConfigLoader
}

// NewCheckUseCase creates a new check use case with the given dependencies.
func NewCheckUseCase(
	service domain.DuplicationService,
	fileReader FileCollector,
	formatter domain.DuplicationFormatter,
	configLoader domain.DuplicationConfigLoader,
) *CheckUseCase {
	return &CheckUseCase{
		service:      service,
		fileReader:   fileReader,
		formatter:    formatter,
		configLoader: configLoader,
	}
}

// Execute runs detection over the request's paths and writes the
// formatted results. It returns the response so callers can decide the
// exit status from the finding count.
func (uc *CheckUseCase) Execute(ctx context.Context, req domain.DuplicationRequest) (*domain.DuplicationResponse, error) {
	startTime := time.Now()

	if req.ConfigPath != "" {
		configReq, err := uc.configLoader.LoadConfig(req.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		req = uc.mergeConfiguration(*configReq, req)
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	files, err := uc.fileReader.CollectPythonFiles(req.Paths, req.Recursive, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to collect files: %w", err)
	}

	if len(files) == 0 {
		return uc.outputEmptyResults(req)
	}

	response, err := uc.service.AnalyzeFiles(ctx, files, &req)
	if err != nil {
		return nil, fmt.Errorf("duplication analysis failed: %w", err)
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

// ExecuteWithFiles runs detection on explicit file paths, skipping
// anything that is not a Python source file.
func (uc *CheckUseCase) ExecuteWithFiles(ctx context.Context, filePaths []string, req domain.DuplicationRequest) (*domain.DuplicationResponse, error) {
	startTime := time.Now()

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	validFiles := []string{}
	for _, filePath := range filePaths {
		if uc.fileReader.IsValidPythonFile(filePath) {
			validFiles = append(validFiles, filePath)
		}
	}

	if len(validFiles) == 0 {
		return uc.outputEmptyResults(req)
	}

	response, err := uc.service.AnalyzeFiles(ctx, validFiles, &req)
	if err != nil {
		return nil, fmt.Errorf("duplication analysis failed: %w", err)
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

// mergeConfiguration merges file configuration with request parameters.
// Request parameters take precedence over configuration file values.
func (uc *CheckUseCase) mergeConfiguration(configReq, requestReq domain.DuplicationRequest) domain.DuplicationRequest {
	merged := configReq

	if len(requestReq.Paths) > 0 {
		merged.Paths = requestReq.Paths
	}
	merged.Recursive = requestReq.Recursive

	defaultReq := domain.DefaultDuplicationRequest()
	if requestReq.MinWindow != defaultReq.MinWindow {
		merged.MinWindow = requestReq.MinWindow
	}
	if requestReq.MaxWindow != defaultReq.MaxWindow {
		merged.MaxWindow = requestReq.MaxWindow
	}
	if requestReq.MinDumpLength != defaultReq.MinDumpLength {
		merged.MinDumpLength = requestReq.MinDumpLength
	}
	if requestReq.MinOccurrences != defaultReq.MinOccurrences {
		merged.MinOccurrences = requestReq.MinOccurrences
	}
	if requestReq.MaxDisplayed != defaultReq.MaxDisplayed {
		merged.MaxDisplayed = requestReq.MaxDisplayed
	}

	merged.OutputFormat = requestReq.OutputFormat
	merged.OutputWriter = requestReq.OutputWriter
	merged.Timeout = requestReq.Timeout

	if len(requestReq.IncludePatterns) > 0 {
		merged.IncludePatterns = requestReq.IncludePatterns
	}
	if len(requestReq.ExcludePatterns) > 0 {
		merged.ExcludePatterns = requestReq.ExcludePatterns
	}

	return merged
}

// outputEmptyResults writes an empty response when no files matched.
func (uc *CheckUseCase) outputEmptyResults(req domain.DuplicationRequest) (*domain.DuplicationResponse, error) {
	emptyResponse := &domain.DuplicationResponse{
		Findings:   []*domain.Finding{},
		Statistics: &domain.DuplicationStatistics{},
		Success:    true,
	}

	if req.OutputWriter != nil {
		if err := uc.formatter.Format(emptyResponse, req.OutputFormat, req.OutputWriter); err != nil {
			return nil, err
		}
	}
	return emptyResponse, nil
}
