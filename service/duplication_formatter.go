package service

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/drace-lint/drace/domain"
)

// DuplicationFormatter implements domain.DuplicationFormatter.
type DuplicationFormatter struct{}

// NewDuplicationFormatter creates a new duplication formatter.
func NewDuplicationFormatter() *DuplicationFormatter {
	return &DuplicationFormatter{}
}

// Format writes the response in the requested format.
func (f *DuplicationFormatter) Format(response *domain.DuplicationResponse, format domain.OutputFormat, writer io.Writer) error {
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

func (f *DuplicationFormatter) formatAsText(response *domain.DuplicationResponse, writer io.Writer) error {
	if !response.Success {
		fmt.Fprintf(writer, "Duplication analysis failed: %s\n", response.Error)
		return nil
	}

	for _, warning := range response.Warnings {
		fmt.Fprintf(writer, "Warning: %s\n", warning)
	}

	for _, finding := range response.Findings {
		fmt.Fprintf(writer, "%s:%d:%d: %s %s\n",
			finding.FilePath, finding.Line, finding.Column, finding.Code, finding.Message)
	}

	if stats := response.Statistics; stats != nil {
		fmt.Fprintf(writer, "\nFiles analyzed: %d\n", stats.FilesAnalyzed)
		fmt.Fprintf(writer, "Lines analyzed: %d\n", stats.LinesAnalyzed)
		fmt.Fprintf(writer, "Repeated blocks reported: %d (%d locations)\n",
			stats.TotalFindings, stats.TotalLocations)
		fmt.Fprintf(writer, "Analysis duration: %dms\n", response.Duration)
	}
	return nil
}

func (f *DuplicationFormatter) formatAsCSV(response *domain.DuplicationResponse, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	defer csvWriter.Flush()

	header := []string{"file", "line", "column", "code", "occurrences", "message"}
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, finding := range response.Findings {
		record := []string{
			finding.FilePath,
			fmt.Sprintf("%d", finding.Line),
			fmt.Sprintf("%d", finding.Column),
			finding.Code,
			fmt.Sprintf("%d", finding.Count),
			finding.Message,
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	return nil
}
