package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drace-lint/drace/domain"
)

func TestParseIssueLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want *domain.LintIssue
	}{
		{
			name: "with column",
			line: "src/app.py:12:5: undefined name 'foo'",
			want: &domain.LintIssue{FilePath: "src/app.py", Line: 12, Column: 5, Message: "undefined name 'foo'"},
		},
		{
			name: "without column",
			line: "src/app.py:3: 'os' imported but unused",
			want: &domain.LintIssue{FilePath: "src/app.py", Line: 3, Column: 1, Message: "'os' imported but unused"},
		},
		{
			name: "message containing colons",
			line: "app.py:7:1: syntax error: invalid token",
			want: &domain.LintIssue{FilePath: "app.py", Line: 7, Column: 1, Message: "syntax error: invalid token"},
		},
		{
			name: "non-numeric column folds into message",
			line: "app.py:7: redefinition: of unused name",
			want: &domain.LintIssue{FilePath: "app.py", Line: 7, Column: 1, Message: "redefinition: of unused name"},
		},
		{
			name: "unparseable line",
			line: "some free-form diagnostic",
			want: nil,
		},
		{
			name: "non-numeric line number",
			line: "app.py:abc: message",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseIssueLine(tt.line))
		})
	}
}

func TestParseCheckerOutput(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("a.py:1:1: unused import\n")
	buf.WriteString("\n")
	buf.WriteString("b.py:2: undefined name\n")

	issues := parseCheckerOutput(&buf)
	require.Len(t, issues, 2)
	assert.Equal(t, "a.py", issues[0].FilePath)
	assert.Equal(t, "b.py", issues[1].FilePath)
}

func TestLintService_MissingExecutable(t *testing.T) {
	svc := NewLintService()
	req := domain.DefaultLintRequest()
	req.Paths = []string{t.TempDir()}
	req.Executable = "definitely-not-a-real-checker-binary"

	_, err := svc.Check(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found on PATH")
}

func TestLintService_NilRequest(t *testing.T) {
	_, err := NewLintService().Check(context.Background(), nil)
	assert.Error(t, err)
}
