package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/drace-lint/drace/domain"
	"github.com/drace-lint/drace/internal/analyzer"
	"github.com/drace-lint/drace/internal/constants"
	"github.com/drace-lint/drace/internal/parser"
)

// DuplicationService implements domain.DuplicationService. Each file
// runs the whole detection pipeline independently, so files are
// analyzed concurrently through the parallel executor; nothing is
// shared between runs except the appended results.
type DuplicationService struct {
	executor domain.ParallelExecutor
	progress domain.ProgressManager
}

// NewDuplicationService creates a duplication service. executor and
// progress may be nil; the service then runs sequentially and
// silently.
func NewDuplicationService(executor domain.ParallelExecutor, progress domain.ProgressManager) *DuplicationService {
	return &DuplicationService{
		executor: executor,
		progress: progress,
	}
}

// Analyze runs detection over the request's paths. The paths are
// expected to already be concrete files (the use case layer resolves
// directories and patterns).
func (s *DuplicationService) Analyze(ctx context.Context, req *domain.DuplicationRequest) (*domain.DuplicationResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("duplication request cannot be nil")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid duplication request: %w", err)
	}
	return s.AnalyzeFiles(ctx, req.Paths, req)
}

// AnalyzeFiles runs detection over the given files.
func (s *DuplicationService) AnalyzeFiles(ctx context.Context, filePaths []string, req *domain.DuplicationRequest) (*domain.DuplicationResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("duplication request cannot be nil")
	}
	if len(filePaths) == 0 {
		return nil, fmt.Errorf("file paths cannot be empty")
	}

	startTime := time.Now()

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	if s.progress != nil {
		s.progress.Initialize(len(filePaths))
		s.progress.Start()
		defer s.progress.Close()
	}

	var (
		mu            sync.Mutex
		findings      []*domain.Finding
		warnings      []string
		linesAnalyzed int
		processed     int
	)

	runFile := func(ctx context.Context, filePath string) error {
		fileFindings, lines, warn := s.analyzeOneFile(ctx, filePath, req)

		mu.Lock()
		defer mu.Unlock()
		findings = append(findings, fileFindings...)
		linesAnalyzed += lines
		if warn != "" {
			warnings = append(warnings, warn)
		}
		processed++
		if s.progress != nil {
			s.progress.Update(processed, len(filePaths))
		}
		return nil
	}

	if s.executor != nil && len(filePaths) > 1 {
		tasks := make([]domain.ExecutableTask, 0, len(filePaths))
		for _, filePath := range filePaths {
			filePath := filePath
			tasks = append(tasks, NewSimpleTask(filePath, true, func(ctx context.Context) (interface{}, error) {
				return nil, runFile(ctx, filePath)
			}))
		}
		if err := s.executor.Execute(ctx, tasks); err != nil {
			return nil, err
		}
	} else {
		for _, filePath := range filePaths {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("duplication analysis cancelled: %w", ctx.Err())
			default:
			}
			if err := runFile(ctx, filePath); err != nil {
				return nil, err
			}
		}
	}

	if s.progress != nil {
		s.progress.Complete(true)
	}

	sortFindings(findings)

	return &domain.DuplicationResponse{
		Findings:   findings,
		Statistics: buildStatistics(findings, len(filePaths), linesAnalyzed),
		Warnings:   warnings,
		Duration:   time.Since(startTime).Milliseconds(),
		Success:    true,
	}, nil
}

// analyzeOneFile parses and analyzes a single file. Unreadable or
// unparseable files produce a warning, never a run failure.
func (s *DuplicationService) analyzeOneFile(ctx context.Context, filePath string, req *domain.DuplicationRequest) (findings []*domain.Finding, lines int, warning string) {
	content, err := NewFileReader().ReadFile(filePath)
	if err != nil {
		return nil, 0, fmt.Sprintf("failed to read file %s: %v", filePath, err)
	}

	result, err := parser.New().Parse(ctx, content)
	if err != nil {
		return nil, 0, fmt.Sprintf("failed to parse file %s: %v", filePath, err)
	}
	if result.HadErrors {
		warning = fmt.Sprintf("syntax errors in %s; analyzing recoverable portions", filePath)
	}

	detector := analyzer.NewDuplicationDetector(&analyzer.DuplicationConfig{
		MinWindow:      req.MinWindow,
		MaxWindow:      req.MaxWindow,
		MinDumpLength:  req.MinDumpLength,
		MinOccurrences: req.MinOccurrences,
	})

	for _, sel := range detector.Detect(result.AST) {
		findings = append(findings, buildFinding(filePath, sel, req.MaxDisplayed))
	}
	return findings, len(strings.Split(string(content), "\n")), warning
}

// buildFinding formats one selection into the reported diagnostic,
// anchored at the primary occurrence's start line, column 1.
func buildFinding(filePath string, sel *analyzer.Selection, maxDisplayed int) *domain.Finding {
	occurrences := make([]domain.MatchRange, len(sel.Matches))
	for i, m := range sel.Matches {
		occurrences[i] = domain.MatchRange{StartLine: m.Start, EndLine: m.End}
	}

	displayed := occurrences
	if len(displayed) > maxDisplayed {
		displayed = displayed[:maxDisplayed]
	}
	parts := make([]string, len(displayed))
	for i, m := range displayed {
		parts[i] = fmt.Sprintf("%d-%d", m.StartLine, m.EndLine)
	}

	message := fmt.Sprintf(
		"repeated block detected (%d occurrences); consider extracting a function for the block at lines %s",
		sel.Count, strings.Join(parts, ", "))
	if len(occurrences) > maxDisplayed {
		message += fmt.Sprintf(" (and %d more occurrences)", len(occurrences)-maxDisplayed)
	}

	return &domain.Finding{
		FilePath:    filePath,
		Line:        sel.Primary.Start,
		Column:      1,
		Code:        constants.DuplicationRuleCode,
		Message:     message,
		Occurrences: occurrences,
		Count:       sel.Count,
	}
}

func sortFindings(findings []*domain.Finding) {
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].FilePath != findings[j].FilePath {
			return findings[i].FilePath < findings[j].FilePath
		}
		return findings[i].Line < findings[j].Line
	})
}

func buildStatistics(findings []*domain.Finding, filesAnalyzed, linesAnalyzed int) *domain.DuplicationStatistics {
	totalLocations := 0
	for _, f := range findings {
		totalLocations += f.Count
	}
	return &domain.DuplicationStatistics{
		FilesAnalyzed:  filesAnalyzed,
		LinesAnalyzed:  linesAnalyzed,
		TotalFindings:  len(findings),
		TotalLocations: totalLocations,
	}
}
