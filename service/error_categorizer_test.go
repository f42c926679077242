package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drace-lint/drace/domain"
)

func TestErrorCategorizer_Categorize(t *testing.T) {
	c := NewErrorCategorizer()

	tests := []struct {
		name string
		err  error
		want domain.ErrorCategory
	}{
		{"file not found", domain.NewFileNotFoundError("a.py", nil), domain.ErrorCategoryInput},
		{"config", domain.NewConfigError("bad toml", nil), domain.ErrorCategoryConfig},
		{"parse", domain.NewParseError("a.py", nil), domain.ErrorCategoryProcessing},
		{"format", domain.NewUnsupportedFormatError("xml"), domain.ErrorCategoryOutput},
		{"external tool", domain.NewExternalToolError("pyflakes", nil), domain.ErrorCategoryExternal},
		{"timeout", context.DeadlineExceeded, domain.ErrorCategoryTimeout},
		{"plain error", errors.New("boom"), domain.ErrorCategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categorized := c.Categorize(tt.err)
			require.NotNil(t, categorized)
			assert.Equal(t, tt.want, categorized.Category)
		})
	}

	assert.Nil(t, c.Categorize(nil))
}

func TestErrorCategorizer_RecoverySuggestions(t *testing.T) {
	c := NewErrorCategorizer()
	assert.NotEmpty(t, c.GetRecoverySuggestions(domain.ErrorCategoryExternal))
	assert.NotEmpty(t, c.GetRecoverySuggestions(domain.ErrorCategoryConfig))
	assert.Nil(t, c.GetRecoverySuggestions(domain.ErrorCategoryUnknown))
}
