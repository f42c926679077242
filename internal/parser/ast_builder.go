package parser

import (
	"strconv"

	sitter "github.com/smacker/go-tree-sitter"
)

// Builder converts tree-sitter parse trees into the internal AST.
type Builder struct {
	source []byte
}

// NewBuilder creates a Builder over the given source bytes.
func NewBuilder(source []byte) *Builder {
	return &Builder{source: source}
}

// Build converts a tree-sitter root node into an AST node.
func (b *Builder) Build(root *sitter.Node) *Node {
	return b.buildNode(root)
}

func (b *Builder) buildNode(ts *sitter.Node) *Node {
	if ts == nil {
		return nil
	}

	switch ts.Type() {
	case "module":
		return b.buildModule(ts)
	case "function_definition":
		return b.buildFunctionDef(ts, nil)
	case "class_definition":
		return b.buildClassDef(ts, nil)
	case "decorated_definition":
		return b.buildDecoratedDefinition(ts)
	case "if_statement":
		return b.buildIfStatement(ts)
	case "elif_clause":
		return b.buildElifClause(ts)
	case "for_statement":
		return b.buildForStatement(ts)
	case "while_statement":
		return b.buildWhileStatement(ts)
	case "with_statement":
		return b.buildWithStatement(ts)
	case "try_statement":
		return b.buildTryStatement(ts)
	case "except_clause":
		return b.buildExceptClause(ts)
	case "return_statement":
		return b.buildSimpleStatement(ts, NodeReturn)
	case "delete_statement":
		return b.buildSimpleStatement(ts, NodeDelete)
	case "raise_statement":
		return b.buildSimpleStatement(ts, NodeRaise)
	case "assert_statement":
		return b.buildSimpleStatement(ts, NodeAssert)
	case "import_statement":
		return b.buildImport(ts, NodeImport)
	case "import_from_statement":
		return b.buildImport(ts, NodeImportFrom)
	case "global_statement":
		return b.buildSimpleStatement(ts, NodeGlobal)
	case "nonlocal_statement":
		return b.buildSimpleStatement(ts, NodeNonlocal)
	case "pass_statement":
		return b.buildLeafStatement(ts, NodePass)
	case "break_statement":
		return b.buildLeafStatement(ts, NodeBreak)
	case "continue_statement":
		return b.buildLeafStatement(ts, NodeContinue)
	case "expression_statement":
		return b.buildExpressionStatement(ts)
	case "assignment":
		return b.buildAssignment(ts)
	case "augmented_assignment":
		return b.buildAugmentedAssignment(ts)

	case "binary_operator":
		return b.buildBinaryLike(ts, NodeBinOp)
	case "boolean_operator":
		return b.buildBinaryLike(ts, NodeBoolOp)
	case "comparison_operator":
		return b.buildCompare(ts)
	case "unary_operator", "not_operator":
		return b.buildUnaryOp(ts)
	case "named_expression":
		return b.buildNamedExpr(ts)
	case "conditional_expression":
		return b.buildGeneric(ts, NodeIfExp)
	case "lambda":
		return b.buildLambda(ts)
	case "call":
		return b.buildCall(ts)
	case "attribute":
		return b.buildAttribute(ts)
	case "subscript":
		return b.buildSubscript(ts)
	case "slice":
		return b.buildGeneric(ts, NodeSlice)
	case "list":
		return b.buildGeneric(ts, NodeList)
	case "tuple", "expression_list", "pattern_list":
		return b.buildGeneric(ts, NodeTuple)
	case "dictionary":
		return b.buildGeneric(ts, NodeDict)
	case "set":
		return b.buildGeneric(ts, NodeSet)
	case "list_comprehension":
		return b.buildGeneric(ts, NodeListComp)
	case "set_comprehension":
		return b.buildGeneric(ts, NodeSetComp)
	case "dictionary_comprehension":
		return b.buildGeneric(ts, NodeDictComp)
	case "generator_expression":
		return b.buildGeneric(ts, NodeGeneratorExp)
	case "for_in_clause", "if_clause":
		return b.buildGeneric(ts, NodeComprehension)
	case "await":
		return b.buildGeneric(ts, NodeAwait)
	case "yield":
		return b.buildYield(ts)
	case "starred_expression", "list_splat", "dictionary_splat":
		return b.buildGeneric(ts, NodeStarred)
	case "parenthesized_expression":
		return b.unwrapSingle(ts)
	case "identifier":
		return b.buildName(ts)
	case "integer", "float", "string", "concatenated_string", "true", "false", "none", "ellipsis":
		return b.buildConstant(ts)

	default:
		// Unrecognized grammar kinds degrade to a structural node that
		// matches only when literally identical in shape.
		return b.buildGeneric(ts, NodeType(ts.Type()))
	}
}

func (b *Builder) buildModule(ts *sitter.Node) *Node {
	node := NewNode(NodeModule)
	node.Location = b.location(ts)
	node.Body = b.buildStatements(ts)
	return node
}

func (b *Builder) buildFunctionDef(ts *sitter.Node, decorators []*Node) *Node {
	node := NewNode(NodeFunctionDef)
	if b.hasChildOfType(ts, "async") {
		node.Type = NodeAsyncFunctionDef
	}
	node.Location = b.location(ts)
	node.Decorator = decorators

	if name := ts.ChildByFieldName("name"); name != nil {
		node.Name = b.text(name)
	}
	if params := ts.ChildByFieldName("parameters"); params != nil {
		node.Args = b.buildParameters(params)
	}
	// Return type annotations are deliberately not modeled: the
	// canonicalizer would drop them anyway.
	if body := ts.ChildByFieldName("body"); body != nil {
		node.Body = b.buildStatements(body)
	}
	return node
}

func (b *Builder) buildClassDef(ts *sitter.Node, decorators []*Node) *Node {
	node := NewNode(NodeClassDef)
	node.Location = b.location(ts)
	node.Decorator = decorators

	if name := ts.ChildByFieldName("name"); name != nil {
		node.Name = b.text(name)
	}
	if supers := ts.ChildByFieldName("superclasses"); supers != nil {
		for i := 0; i < int(supers.NamedChildCount()); i++ {
			if base := b.buildNode(supers.NamedChild(i)); base != nil {
				node.Bases = append(node.Bases, base)
			}
		}
	}
	if body := ts.ChildByFieldName("body"); body != nil {
		node.Body = b.buildStatements(body)
	}
	return node
}

func (b *Builder) buildDecoratedDefinition(ts *sitter.Node) *Node {
	var decorators []*Node
	for i := 0; i < int(ts.ChildCount()); i++ {
		child := ts.Child(i)
		if child != nil && child.Type() == "decorator" {
			if dec := b.buildGeneric(child, NodeType("Decorator")); dec != nil {
				decorators = append(decorators, dec)
			}
		}
	}

	def := ts.ChildByFieldName("definition")
	if def == nil {
		return b.buildGeneric(ts, NodeType(ts.Type()))
	}
	switch def.Type() {
	case "function_definition":
		return b.buildFunctionDef(def, decorators)
	case "class_definition":
		return b.buildClassDef(def, decorators)
	default:
		return b.buildNode(def)
	}
}

func (b *Builder) buildIfStatement(ts *sitter.Node) *Node {
	node := NewNode(NodeIf)
	node.Location = b.location(ts)
	node.Test = b.buildNode(ts.ChildByFieldName("condition"))
	if cons := ts.ChildByFieldName("consequence"); cons != nil {
		node.Body = b.buildStatements(cons)
	}
	// elif chains become nested If nodes in the else branch, matching
	// Python's own AST shape.
	for i := 0; i < int(ts.ChildCount()); i++ {
		child := ts.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "elif_clause":
			if elif := b.buildElifClause(child); elif != nil {
				node.Orelse = append(node.Orelse, elif)
			}
		case "else_clause":
			node.Orelse = append(node.Orelse, b.buildElseBody(child)...)
		}
	}
	return node
}

func (b *Builder) buildElifClause(ts *sitter.Node) *Node {
	node := NewNode(NodeIf)
	node.Location = b.location(ts)
	node.Test = b.buildNode(ts.ChildByFieldName("condition"))
	if cons := ts.ChildByFieldName("consequence"); cons != nil {
		node.Body = b.buildStatements(cons)
	}
	return node
}

func (b *Builder) buildElseBody(ts *sitter.Node) []*Node {
	if body := ts.ChildByFieldName("body"); body != nil {
		return b.buildStatements(body)
	}
	return nil
}

func (b *Builder) buildForStatement(ts *sitter.Node) *Node {
	node := NewNode(NodeFor)
	if b.hasChildOfType(ts, "async") {
		node.Type = NodeAsyncFor
	}
	node.Location = b.location(ts)
	if left := ts.ChildByFieldName("left"); left != nil {
		node.Targets = append(node.Targets, b.buildNode(left))
	}
	node.Iter = b.buildNode(ts.ChildByFieldName("right"))
	if body := ts.ChildByFieldName("body"); body != nil {
		node.Body = b.buildStatements(body)
	}
	if alt := ts.ChildByFieldName("alternative"); alt != nil {
		node.Orelse = b.buildElseBody(alt)
	}
	return node
}

func (b *Builder) buildWhileStatement(ts *sitter.Node) *Node {
	node := NewNode(NodeWhile)
	node.Location = b.location(ts)
	node.Test = b.buildNode(ts.ChildByFieldName("condition"))
	if body := ts.ChildByFieldName("body"); body != nil {
		node.Body = b.buildStatements(body)
	}
	if alt := ts.ChildByFieldName("alternative"); alt != nil {
		node.Orelse = b.buildElseBody(alt)
	}
	return node
}

func (b *Builder) buildWithStatement(ts *sitter.Node) *Node {
	node := NewNode(NodeWith)
	if b.hasChildOfType(ts, "async") {
		node.Type = NodeAsyncWith
	}
	node.Location = b.location(ts)
	for i := 0; i < int(ts.ChildCount()); i++ {
		child := ts.Child(i)
		if child != nil && child.Type() == "with_clause" {
			for j := 0; j < int(child.NamedChildCount()); j++ {
				item := child.NamedChild(j)
				if item != nil && item.Type() == "with_item" {
					node.Children = append(node.Children, b.buildGeneric(item, NodeWithItem))
				}
			}
		}
	}
	if body := ts.ChildByFieldName("body"); body != nil {
		node.Body = b.buildStatements(body)
	}
	return node
}

func (b *Builder) buildTryStatement(ts *sitter.Node) *Node {
	node := NewNode(NodeTry)
	node.Location = b.location(ts)
	if body := ts.ChildByFieldName("body"); body != nil {
		node.Body = b.buildStatements(body)
	}
	for i := 0; i < int(ts.ChildCount()); i++ {
		child := ts.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "except_clause", "except_group_clause":
			if h := b.buildExceptClause(child); h != nil {
				node.Handlers = append(node.Handlers, h)
			}
		case "else_clause":
			node.Orelse = b.buildElseBody(child)
		case "finally_clause":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				sub := child.NamedChild(j)
				if sub != nil && sub.Type() == "block" {
					node.Finalbody = b.buildStatements(sub)
				}
			}
		}
	}
	return node
}

func (b *Builder) buildExceptClause(ts *sitter.Node) *Node {
	node := NewNode(NodeExceptHandler)
	node.Location = b.location(ts)
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		child := ts.NamedChild(i)
		if child == nil {
			continue
		}
		if child.Type() == "block" {
			node.Body = b.buildStatements(child)
		} else if node.Test == nil {
			node.Test = b.buildNode(child)
		}
	}
	return node
}

// buildSimpleStatement covers statements that are a keyword followed
// by zero or more expressions (return, raise, assert, del, global...).
func (b *Builder) buildSimpleStatement(ts *sitter.Node, t NodeType) *Node {
	node := NewNode(t)
	node.Location = b.location(ts)
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		if child := b.buildNode(ts.NamedChild(i)); child != nil {
			node.Children = append(node.Children, child)
		}
	}
	return node
}

func (b *Builder) buildLeafStatement(ts *sitter.Node, t NodeType) *Node {
	node := NewNode(t)
	node.Location = b.location(ts)
	return node
}

func (b *Builder) buildImport(ts *sitter.Node, t NodeType) *Node {
	node := NewNode(t)
	node.Location = b.location(ts)
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		child := ts.NamedChild(i)
		if child != nil {
			node.Children = append(node.Children, b.buildName(child))
		}
	}
	return node
}

func (b *Builder) buildExpressionStatement(ts *sitter.Node) *Node {
	// expression_statement wraps assignments as well as bare
	// expressions in the tree-sitter grammar.
	if ts.NamedChildCount() == 1 {
		child := ts.NamedChild(0)
		switch child.Type() {
		case "assignment":
			return b.buildAssignment(child)
		case "augmented_assignment":
			return b.buildAugmentedAssignment(child)
		}
	}

	node := NewNode(NodeExpr)
	node.Location = b.location(ts)
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		if child := b.buildNode(ts.NamedChild(i)); child != nil {
			node.Children = append(node.Children, child)
		}
	}
	return node
}

func (b *Builder) buildAssignment(ts *sitter.Node) *Node {
	node := NewNode(NodeAssign)
	node.Location = b.location(ts)
	if left := ts.ChildByFieldName("left"); left != nil {
		node.Targets = append(node.Targets, b.buildNode(left))
	}
	if right := ts.ChildByFieldName("right"); right != nil {
		node.Value = b.buildNode(right)
	}
	// Variable annotations (x: int = 1) are dropped, mirroring the
	// canonicalizer's treatment of def annotations.
	return node
}

func (b *Builder) buildAugmentedAssignment(ts *sitter.Node) *Node {
	node := NewNode(NodeAugAssign)
	node.Location = b.location(ts)
	if left := ts.ChildByFieldName("left"); left != nil {
		node.Targets = append(node.Targets, b.buildNode(left))
	}
	if op := ts.ChildByFieldName("operator"); op != nil {
		node.Op = b.text(op)
	}
	if right := ts.ChildByFieldName("right"); right != nil {
		node.Value = b.buildNode(right)
	}
	return node
}

func (b *Builder) buildBinaryLike(ts *sitter.Node, t NodeType) *Node {
	node := NewNode(t)
	node.Location = b.location(ts)
	if op := ts.ChildByFieldName("operator"); op != nil {
		node.Op = b.text(op)
	}
	if left := ts.ChildByFieldName("left"); left != nil {
		node.Children = append(node.Children, b.buildNode(left))
	}
	if right := ts.ChildByFieldName("right"); right != nil {
		node.Children = append(node.Children, b.buildNode(right))
	}
	return node
}

func (b *Builder) buildCompare(ts *sitter.Node) *Node {
	node := NewNode(NodeCompare)
	node.Location = b.location(ts)
	for i := 0; i < int(ts.ChildCount()); i++ {
		child := ts.Child(i)
		if child == nil {
			continue
		}
		if child.IsNamed() {
			if operand := b.buildNode(child); operand != nil {
				node.Children = append(node.Children, operand)
			}
		} else {
			node.Op += child.Type()
		}
	}
	return node
}

func (b *Builder) buildUnaryOp(ts *sitter.Node) *Node {
	node := NewNode(NodeUnaryOp)
	node.Location = b.location(ts)
	if op := ts.ChildByFieldName("operator"); op != nil {
		node.Op = b.text(op)
	} else if ts.Type() == "not_operator" {
		node.Op = "not"
	}
	if arg := ts.ChildByFieldName("argument"); arg != nil {
		node.Children = append(node.Children, b.buildNode(arg))
	} else {
		for i := 0; i < int(ts.NamedChildCount()); i++ {
			if child := b.buildNode(ts.NamedChild(i)); child != nil {
				node.Children = append(node.Children, child)
			}
		}
	}
	return node
}

func (b *Builder) buildNamedExpr(ts *sitter.Node) *Node {
	node := NewNode(NodeNamedExpr)
	node.Location = b.location(ts)
	if name := ts.ChildByFieldName("name"); name != nil {
		node.Targets = append(node.Targets, b.buildNode(name))
	}
	if value := ts.ChildByFieldName("value"); value != nil {
		node.Value = b.buildNode(value)
	}
	return node
}

func (b *Builder) buildLambda(ts *sitter.Node) *Node {
	node := NewNode(NodeLambda)
	node.Location = b.location(ts)
	if params := ts.ChildByFieldName("parameters"); params != nil {
		node.Args = b.buildParameters(params)
	}
	if body := ts.ChildByFieldName("body"); body != nil {
		node.Children = append(node.Children, b.buildNode(body))
	}
	return node
}

func (b *Builder) buildCall(ts *sitter.Node) *Node {
	node := NewNode(NodeCall)
	node.Location = b.location(ts)
	if fn := ts.ChildByFieldName("function"); fn != nil {
		node.Value = b.buildNode(fn)
	}
	if args := ts.ChildByFieldName("arguments"); args != nil {
		node.Args, node.Keywords = b.buildCallArguments(args)
	}
	return node
}

func (b *Builder) buildCallArguments(ts *sitter.Node) (args, keywords []*Node) {
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		child := ts.NamedChild(i)
		if child == nil {
			continue
		}
		if child.Type() == "keyword_argument" {
			kw := NewNode(NodeKeyword)
			kw.Location = b.location(child)
			if name := child.ChildByFieldName("name"); name != nil {
				kw.Name = b.text(name)
			}
			if value := child.ChildByFieldName("value"); value != nil {
				kw.Value = b.buildNode(value)
			}
			keywords = append(keywords, kw)
		} else {
			args = append(args, b.buildNode(child))
		}
	}
	return args, keywords
}

func (b *Builder) buildAttribute(ts *sitter.Node) *Node {
	node := NewNode(NodeAttribute)
	node.Location = b.location(ts)
	if obj := ts.ChildByFieldName("object"); obj != nil {
		node.Value = b.buildNode(obj)
	}
	if attr := ts.ChildByFieldName("attribute"); attr != nil {
		node.Name = b.text(attr)
	}
	return node
}

func (b *Builder) buildSubscript(ts *sitter.Node) *Node {
	node := NewNode(NodeSubscript)
	node.Location = b.location(ts)
	if value := ts.ChildByFieldName("value"); value != nil {
		node.Value = b.buildNode(value)
	}
	if sub := ts.ChildByFieldName("subscript"); sub != nil {
		node.Children = append(node.Children, b.buildNode(sub))
	}
	return node
}

func (b *Builder) buildYield(ts *sitter.Node) *Node {
	t := NodeYield
	if b.hasChildOfType(ts, "from") {
		t = NodeYieldFrom
	}
	return b.buildGeneric(ts, t)
}

func (b *Builder) buildParameters(ts *sitter.Node) []*Node {
	var params []*Node
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		child := ts.NamedChild(i)
		if child == nil {
			continue
		}
		arg := NewNode(NodeArg)
		arg.Location = b.location(child)
		switch child.Type() {
		case "identifier":
			arg.Name = b.text(child)
		case "typed_parameter", "default_parameter", "typed_default_parameter",
			"list_splat_pattern", "dictionary_splat_pattern":
			// The parameter's annotation and default are intentionally
			// not preserved; only the name matters to canonical shape.
			if name := b.firstIdentifier(child); name != "" {
				arg.Name = name
			}
		default:
			arg.Name = b.text(child)
		}
		params = append(params, arg)
	}
	return params
}

func (b *Builder) firstIdentifier(ts *sitter.Node) string {
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		child := ts.NamedChild(i)
		if child != nil && child.Type() == "identifier" {
			return b.text(child)
		}
	}
	return ""
}

func (b *Builder) buildName(ts *sitter.Node) *Node {
	node := NewNode(NodeName)
	node.Location = b.location(ts)
	node.Name = b.text(ts)
	return node
}

func (b *Builder) buildConstant(ts *sitter.Node) *Node {
	node := NewNode(NodeConstant)
	node.Location = b.location(ts)

	text := b.text(ts)
	switch ts.Type() {
	case "integer":
		if v, err := strconv.ParseInt(text, 0, 64); err == nil {
			node.Value = v
		} else {
			node.Value = text
		}
	case "float":
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			node.Value = v
		} else {
			node.Value = text
		}
	case "true":
		node.Value = true
	case "false":
		node.Value = false
	case "none":
		node.Value = nil
	default:
		node.Value = text
	}
	return node
}

// buildGeneric builds a node of type t whose named children all land
// in Children, preserving source order.
func (b *Builder) buildGeneric(ts *sitter.Node, t NodeType) *Node {
	node := NewNode(t)
	node.Location = b.location(ts)
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		if child := b.buildNode(ts.NamedChild(i)); child != nil {
			node.Children = append(node.Children, child)
		}
	}
	return node
}

func (b *Builder) unwrapSingle(ts *sitter.Node) *Node {
	if ts.NamedChildCount() == 1 {
		return b.buildNode(ts.NamedChild(0))
	}
	return b.buildGeneric(ts, NodeTuple)
}

// buildStatements converts a block (or module) into its statement
// list, skipping comments and ERROR regions.
func (b *Builder) buildStatements(ts *sitter.Node) []*Node {
	var stmts []*Node
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		child := ts.NamedChild(i)
		if child == nil || child.Type() == "comment" || child.Type() == "ERROR" {
			continue
		}
		if stmt := b.buildNode(child); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

func (b *Builder) hasChildOfType(ts *sitter.Node, t string) bool {
	for i := 0; i < int(ts.ChildCount()); i++ {
		child := ts.Child(i)
		if child != nil && child.Type() == t {
			return true
		}
	}
	return false
}

func (b *Builder) text(ts *sitter.Node) string {
	return ts.Content(b.source)
}

func (b *Builder) location(ts *sitter.Node) Location {
	return Location{
		StartLine: int(ts.StartPoint().Row) + 1,
		StartCol:  int(ts.StartPoint().Column),
		EndLine:   int(ts.EndPoint().Row) + 1,
		EndCol:    int(ts.EndPoint().Column),
	}
}
