package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, source string) *ParseResult {
	t.Helper()
	result, err := New().Parse(context.Background(), []byte(source))
	require.NoError(t, err)
	require.NotNil(t, result.AST)
	return result
}

func TestParser_SimpleModule(t *testing.T) {
	source := `x = 1
y = compute(x)
print(y)
`
	result := parseSource(t, source)
	assert.False(t, result.HadErrors)

	module := result.AST
	assert.Equal(t, NodeModule, module.Type)
	require.Len(t, module.Body, 3)

	assign := module.Body[0]
	assert.Equal(t, NodeAssign, assign.Type)
	require.Len(t, assign.Targets, 1)
	assert.Equal(t, NodeName, assign.Targets[0].Type)
	assert.Equal(t, "x", assign.Targets[0].Name)
	constant, ok := assign.Value.(*Node)
	require.True(t, ok)
	assert.Equal(t, NodeConstant, constant.Type)
	assert.Equal(t, int64(1), constant.Value)

	call := module.Body[1]
	assert.Equal(t, NodeAssign, call.Type)
	value, ok := call.Value.(*Node)
	require.True(t, ok)
	assert.Equal(t, NodeCall, value.Type)

	expr := module.Body[2]
	assert.Equal(t, NodeExpr, expr.Type)
}

func TestParser_FunctionDef(t *testing.T) {
	source := `def greet(name, punctuation="!"):
    message = "hello " + name
    return message + punctuation
`
	result := parseSource(t, source)
	require.Len(t, result.AST.Body, 1)

	fn := result.AST.Body[0]
	assert.Equal(t, NodeFunctionDef, fn.Type)
	assert.Equal(t, "greet", fn.Name)
	require.Len(t, fn.Args, 2)
	assert.Equal(t, "name", fn.Args[0].Name)
	assert.Equal(t, "punctuation", fn.Args[1].Name)
	require.Len(t, fn.Body, 2)
	assert.Equal(t, NodeAssign, fn.Body[0].Type)
	assert.Equal(t, NodeReturn, fn.Body[1].Type)
}

func TestParser_DecoratedDefinition(t *testing.T) {
	source := `@cached
def load():
    pass
`
	result := parseSource(t, source)
	require.Len(t, result.AST.Body, 1)

	fn := result.AST.Body[0]
	assert.Equal(t, NodeFunctionDef, fn.Type)
	assert.Equal(t, "load", fn.Name)
	assert.Len(t, fn.Decorator, 1)
}

func TestParser_IfElifElse(t *testing.T) {
	source := `if a:
    x = 1
elif b:
    x = 2
else:
    x = 3
`
	result := parseSource(t, source)
	require.Len(t, result.AST.Body, 1)

	ifStmt := result.AST.Body[0]
	assert.Equal(t, NodeIf, ifStmt.Type)
	require.NotNil(t, ifStmt.Test)
	require.Len(t, ifStmt.Body, 1)
	// The elif chain becomes a nested If alongside the else body.
	require.Len(t, ifStmt.Orelse, 2)
	assert.Equal(t, NodeIf, ifStmt.Orelse[0].Type)
	assert.Equal(t, NodeAssign, ifStmt.Orelse[1].Type)
}

func TestParser_ForWhileWith(t *testing.T) {
	source := `for item in items:
    use(item)
else:
    finish()

while running:
    tick()

with open(path) as f:
    data = f.read()
`
	result := parseSource(t, source)
	require.Len(t, result.AST.Body, 3)

	forStmt := result.AST.Body[0]
	assert.Equal(t, NodeFor, forStmt.Type)
	require.Len(t, forStmt.Targets, 1)
	require.NotNil(t, forStmt.Iter)
	assert.Len(t, forStmt.Body, 1)
	assert.Len(t, forStmt.Orelse, 1)

	whileStmt := result.AST.Body[1]
	assert.Equal(t, NodeWhile, whileStmt.Type)
	require.NotNil(t, whileStmt.Test)
	assert.Len(t, whileStmt.Body, 1)

	withStmt := result.AST.Body[2]
	assert.Equal(t, NodeWith, withStmt.Type)
	assert.Len(t, withStmt.Body, 1)
}

func TestParser_TryStatement(t *testing.T) {
	source := `try:
    risky()
except ValueError:
    recover()
except KeyError:
    skip()
else:
    celebrate()
finally:
    cleanup()
`
	result := parseSource(t, source)
	require.Len(t, result.AST.Body, 1)

	try := result.AST.Body[0]
	assert.Equal(t, NodeTry, try.Type)
	assert.Len(t, try.Body, 1)
	require.Len(t, try.Handlers, 2)
	assert.Equal(t, NodeExceptHandler, try.Handlers[0].Type)
	assert.Len(t, try.Handlers[0].Body, 1)
	assert.Len(t, try.Orelse, 1)
	assert.Len(t, try.Finalbody, 1)

	// Every nested block is visible to the sequence extractor.
	lists := try.StatementLists()
	assert.Len(t, lists, 5)
}

func TestParser_Locations(t *testing.T) {
	source := `x = 1
def f():
    y = 2
    z = 3
`
	result := parseSource(t, source)
	require.Len(t, result.AST.Body, 2)

	assert.Equal(t, 1, result.AST.Body[0].Location.StartLine)

	fn := result.AST.Body[1]
	assert.Equal(t, 2, fn.Location.StartLine)
	assert.Equal(t, 4, fn.EndLine())
	require.Len(t, fn.Body, 2)
	assert.Equal(t, 3, fn.Body[0].Location.StartLine)
	assert.Equal(t, 4, fn.Body[1].Location.StartLine)
	assert.True(t, fn.Body[0].Location.HasPosition())
}

func TestParser_SyntaxErrorTolerance(t *testing.T) {
	source := `def broken(:
    pass

x = 1
`
	result := parseSource(t, source)
	assert.True(t, result.HadErrors, "localized syntax errors should be flagged")
	assert.NotNil(t, result.AST, "a damaged file is still analyzed")
}

func TestParser_ParseFile(t *testing.T) {
	result, err := New().ParseFile(context.Background(), strings.NewReader("a = 1\n"))
	require.NoError(t, err)
	assert.Len(t, result.AST.Body, 1)
}

func TestNode_Walk(t *testing.T) {
	source := `def outer():
    if flag:
        inner()
`
	result := parseSource(t, source)

	var types []NodeType
	result.AST.Walk(func(n *Node) bool {
		types = append(types, n.Type)
		return true
	})

	assert.Contains(t, types, NodeModule)
	assert.Contains(t, types, NodeFunctionDef)
	assert.Contains(t, types, NodeIf)
	assert.Contains(t, types, NodeCall)
}

func TestNode_IsStatement(t *testing.T) {
	assert.True(t, NewNode(NodeAssign).IsStatement())
	assert.True(t, NewNode(NodePass).IsStatement())
	assert.False(t, NewNode(NodeName).IsStatement())
	assert.False(t, NewNode(NodeCall).IsStatement())
}
