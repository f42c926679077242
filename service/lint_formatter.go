package service

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/drace-lint/drace/domain"
)

// LintFormatter implements domain.LintFormatter.
type LintFormatter struct{}

// NewLintFormatter creates a new lint formatter.
func NewLintFormatter() *LintFormatter {
	return &LintFormatter{}
}

// Format writes the response in the requested format.
func (f *LintFormatter) Format(response *domain.LintResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		return f.formatAsText(response, writer)
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		return f.formatAsCSV(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *LintFormatter) formatAsText(response *domain.LintResponse, writer io.Writer) error {
	for _, warning := range response.Warnings {
		fmt.Fprintf(writer, "Warning: %s\n", warning)
	}
	for _, issue := range response.Issues {
		fmt.Fprintf(writer, "%s:%d:%d: %s\n", issue.FilePath, issue.Line, issue.Column, issue.Message)
	}
	fmt.Fprintf(writer, "\nFiles checked: %d, issues: %d\n", response.FilesChecked, len(response.Issues))
	return nil
}

func (f *LintFormatter) formatAsCSV(response *domain.LintResponse, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	defer csvWriter.Flush()

	if err := csvWriter.Write([]string{"file", "line", "column", "message"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, issue := range response.Issues {
		record := []string{
			issue.FilePath,
			fmt.Sprintf("%d", issue.Line),
			fmt.Sprintf("%d", issue.Column),
			issue.Message,
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	return nil
}
