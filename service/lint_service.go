package service

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/drace-lint/drace/domain"
)

// LintService implements domain.LintService by wrapping an installed
// pyflakes-compatible checker. It is fully independent of the
// duplication pipeline and reports separately.
type LintService struct {
	fileReader *FileReader
}

// NewLintService creates a lint service.
func NewLintService() *LintService {
	return &LintService{fileReader: NewFileReader()}
}

// Check collects the request's Python files, runs the external
// checker over them, and returns its issues sorted by file and line.
// An exit status of 1 means the checker found issues, not that it
// failed; a missing executable is a configuration error.
func (s *LintService) Check(ctx context.Context, req *domain.LintRequest) (*domain.LintResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("lint request cannot be nil")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid lint request: %w", err)
	}

	executable := req.Executable
	if executable == "" {
		executable = "pyflakes"
	}
	if _, err := exec.LookPath(executable); err != nil {
		return nil, domain.NewConfigError(
			fmt.Sprintf("checker %q not found on PATH; install it or set lint.executable", executable), err)
	}

	files, err := s.fileReader.CollectPythonFiles(req.Paths, req.Recursive, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	response := &domain.LintResponse{
		FilesChecked: len(files),
		Success:      true,
	}
	if len(files) == 0 {
		return response, nil
	}

	cmd := exec.CommandContext(ctx, executable, files...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		// pyflakes exits 1 when it reports issues; anything else is a
		// genuine tool failure.
		if !errors.As(err, &exitErr) || exitErr.ExitCode() > 1 {
			return nil, domain.NewExternalToolError(executable,
				fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String())))
		}
	}

	response.Issues = parseCheckerOutput(&stdout)
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		response.Warnings = append(response.Warnings, msg)
	}

	sort.Slice(response.Issues, func(i, j int) bool {
		a, b := response.Issues[i], response.Issues[j]
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		return a.Line < b.Line
	})

	response.Duration = time.Since(startTime).Milliseconds()
	return response, nil
}

// parseCheckerOutput parses pyflakes-style diagnostics, one per line:
// "file.py:12:5: message" or the older "file.py:12: message".
func parseCheckerOutput(r *bytes.Buffer) []*domain.LintIssue {
	var issues []*domain.LintIssue

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if issue := parseIssueLine(line); issue != nil {
			issues = append(issues, issue)
		}
	}
	return issues
}

func parseIssueLine(line string) *domain.LintIssue {
	parts := strings.SplitN(line, ":", 4)
	if len(parts) < 3 {
		return nil
	}

	lineno, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil
	}

	issue := &domain.LintIssue{
		FilePath: parts[0],
		Line:     lineno,
		Column:   1,
	}
	if len(parts) == 4 {
		if col, err := strconv.Atoi(strings.TrimSpace(parts[2])); err == nil {
			issue.Column = col
			issue.Message = strings.TrimSpace(parts[3])
			return issue
		}
		// Third segment was not a column; it belongs to the message.
		issue.Message = strings.TrimSpace(parts[2] + ":" + parts[3])
		return issue
	}
	issue.Message = strings.TrimSpace(parts[2])
	return issue
}
