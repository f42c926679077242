package parser

import (
	"context"
	"fmt"
	"io"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Parser parses Python source into the internal AST using tree-sitter.
type Parser struct {
	parser *sitter.Parser
}

// New creates a Parser with the Python grammar loaded.
func New() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Parser{parser: p}
}

// ParseResult holds the outcome of parsing one source unit.
type ParseResult struct {
	AST        *Node
	SourceCode []byte
	HadErrors  bool // localized syntax errors were present and skipped
}

// Parse parses Python source code. Tree-sitter recovers from localized
// syntax errors, so a tree with ERROR regions is still converted and
// analyzed; HadErrors is set so callers can warn. Only a completely
// unusable parse returns an error.
func (p *Parser) Parse(ctx context.Context, source []byte) (*ParseResult, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("parse produced no syntax tree")
	}

	ast := NewBuilder(source).Build(root)
	return &ParseResult{
		AST:        ast,
		SourceCode: source,
		HadErrors:  root.HasError(),
	}, nil
}

// ParseFile parses Python source read from r.
func (p *Parser) ParseFile(ctx context.Context, r io.Reader) (*ParseResult, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	return p.Parse(ctx, source)
}
