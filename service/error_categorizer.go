package service

import (
	"context"
	"errors"

	"github.com/drace-lint/drace/domain"
)

// ErrorCategorizerImpl implements the ErrorCategorizer interface.
type ErrorCategorizerImpl struct{}

// NewErrorCategorizer creates an error categorizer.
func NewErrorCategorizer() domain.ErrorCategorizer {
	return &ErrorCategorizerImpl{}
}

// Categorize determines the category of an error.
func (c *ErrorCategorizerImpl) Categorize(err error) *domain.CategorizedError {
	if err == nil {
		return nil
	}

	category := domain.ErrorCategoryUnknown
	if errors.Is(err, context.DeadlineExceeded) {
		category = domain.ErrorCategoryTimeout
	} else {
		var domainErr domain.DomainError
		if errors.As(err, &domainErr) {
			category = categoryForCode(domainErr.Code)
		}
	}

	return &domain.CategorizedError{
		Category: category,
		Message:  err.Error(),
		Original: err,
	}
}

func categoryForCode(code string) domain.ErrorCategory {
	switch code {
	case domain.ErrCodeInvalidInput, domain.ErrCodeFileNotFound:
		return domain.ErrorCategoryInput
	case domain.ErrCodeConfigError:
		return domain.ErrorCategoryConfig
	case domain.ErrCodeParseError, domain.ErrCodeAnalysisError:
		return domain.ErrorCategoryProcessing
	case domain.ErrCodeOutputError, domain.ErrCodeUnsupportedFormat:
		return domain.ErrorCategoryOutput
	case domain.ErrCodeExternalTool:
		return domain.ErrorCategoryExternal
	default:
		return domain.ErrorCategoryUnknown
	}
}

// GetRecoverySuggestions returns recovery hints for a category.
func (c *ErrorCategorizerImpl) GetRecoverySuggestions(category domain.ErrorCategory) []string {
	switch category {
	case domain.ErrorCategoryInput:
		return []string{
			"Check that the given paths exist and are readable",
			"Verify include/exclude patterns match the intended files",
		}
	case domain.ErrorCategoryConfig:
		return []string{
			"Validate .drace.toml or the [tool.drace] section of pyproject.toml",
			"Run 'drace init' to generate a starter configuration",
		}
	case domain.ErrorCategoryProcessing:
		return []string{
			"Check the reported file for unsupported syntax",
		}
	case domain.ErrorCategoryOutput:
		return []string{
			"Use one of: text, json, yaml, csv",
			"Check that the output destination is writable",
		}
	case domain.ErrorCategoryExternal:
		return []string{
			"Install the external checker (pip install pyflakes)",
			"Point lint.executable at a pyflakes-compatible binary",
		}
	case domain.ErrorCategoryTimeout:
		return []string{
			"Increase the timeout or analyze fewer files per run",
		}
	default:
		return nil
	}
}
