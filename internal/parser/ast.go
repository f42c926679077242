package parser

import "fmt"

// NodeType identifies the kind of an AST node.
type NodeType string

// Python AST node types.
const (
	NodeModule NodeType = "Module"

	// Statements
	NodeFunctionDef      NodeType = "FunctionDef"
	NodeAsyncFunctionDef NodeType = "AsyncFunctionDef"
	NodeClassDef         NodeType = "ClassDef"
	NodeReturn           NodeType = "Return"
	NodeDelete           NodeType = "Delete"
	NodeAssign           NodeType = "Assign"
	NodeAugAssign        NodeType = "AugAssign"
	NodeFor              NodeType = "For"
	NodeAsyncFor         NodeType = "AsyncFor"
	NodeWhile            NodeType = "While"
	NodeIf               NodeType = "If"
	NodeWith             NodeType = "With"
	NodeAsyncWith        NodeType = "AsyncWith"
	NodeRaise            NodeType = "Raise"
	NodeTry              NodeType = "Try"
	NodeAssert           NodeType = "Assert"
	NodeImport           NodeType = "Import"
	NodeImportFrom       NodeType = "ImportFrom"
	NodeGlobal           NodeType = "Global"
	NodeNonlocal         NodeType = "Nonlocal"
	NodeExpr             NodeType = "Expr"
	NodePass             NodeType = "Pass"
	NodeBreak            NodeType = "Break"
	NodeContinue         NodeType = "Continue"

	// Expressions
	NodeBoolOp       NodeType = "BoolOp"
	NodeNamedExpr    NodeType = "NamedExpr"
	NodeBinOp        NodeType = "BinOp"
	NodeUnaryOp      NodeType = "UnaryOp"
	NodeLambda       NodeType = "Lambda"
	NodeIfExp        NodeType = "IfExp"
	NodeDict         NodeType = "Dict"
	NodeSet          NodeType = "Set"
	NodeListComp     NodeType = "ListComp"
	NodeSetComp      NodeType = "SetComp"
	NodeDictComp     NodeType = "DictComp"
	NodeGeneratorExp NodeType = "GeneratorExp"
	NodeAwait        NodeType = "Await"
	NodeYield        NodeType = "Yield"
	NodeYieldFrom    NodeType = "YieldFrom"
	NodeCompare      NodeType = "Compare"
	NodeCall         NodeType = "Call"
	NodeConstant     NodeType = "Constant"
	NodeAttribute    NodeType = "Attribute"
	NodeSubscript    NodeType = "Subscript"
	NodeStarred      NodeType = "Starred"
	NodeName         NodeType = "Name"
	NodeList         NodeType = "List"
	NodeTuple        NodeType = "Tuple"
	NodeSlice        NodeType = "Slice"

	// Other
	NodeExceptHandler NodeType = "ExceptHandler"
	NodeArg           NodeType = "Arg"
	NodeKeyword       NodeType = "Keyword"
	NodeComprehension NodeType = "Comprehension"
	NodeWithItem      NodeType = "WithItem"
)

// Location is the position of a node in the source file. Lines are
// 1-based; a zero StartLine means the node has no position information
// (synthetic or generated) and cannot anchor a diagnostic.
type Location struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// HasPosition reports whether the node carries usable line information.
func (l Location) HasPosition() bool {
	return l.StartLine > 0
}

// Node is a single AST node. Field usage depends on Type; unused
// fields stay nil. Nodes built from unrecognized tree-sitter kinds
// keep the raw grammar name as their Type and carry only Children.
type Node struct {
	Type     NodeType
	Value    interface{} // constant value, or a *Node for callee/operand slots
	Children []*Node
	Location Location

	Name      string  // identifier, attribute name, def name, keyword name
	Op        string  // operator text for BinOp/UnaryOp/BoolOp/AugAssign/Compare
	Targets   []*Node // assignment targets
	Body      []*Node // statement list of compound statements
	Orelse    []*Node // else branch (or elif chain for If)
	Handlers  []*Node // except clauses of Try
	Finalbody []*Node // finally clause of Try
	Test      *Node   // condition of If/While, assert expression
	Iter      *Node   // iterable of For
	Args      []*Node // positional call arguments, def parameters
	Keywords  []*Node // keyword call arguments
	Decorator []*Node // decorators of defs
	Bases     []*Node // base classes of ClassDef
}

// NewNode creates a node of the given type.
func NewNode(t NodeType) *Node {
	return &Node{Type: t}
}

// EndLine returns the last source line of the node, falling back to
// the start line when the end is unknown.
func (n *Node) EndLine() int {
	if n.Location.EndLine > 0 {
		return n.Location.EndLine
	}
	return n.Location.StartLine
}

// IsStatement reports whether the node is a Python statement.
func (n *Node) IsStatement() bool {
	switch n.Type {
	case NodeFunctionDef, NodeAsyncFunctionDef, NodeClassDef,
		NodeReturn, NodeDelete, NodeAssign, NodeAugAssign,
		NodeFor, NodeAsyncFor, NodeWhile, NodeIf, NodeWith, NodeAsyncWith,
		NodeRaise, NodeTry, NodeAssert, NodeImport, NodeImportFrom,
		NodeGlobal, NodeNonlocal, NodeExpr, NodePass, NodeBreak, NodeContinue:
		return true
	default:
		return false
	}
}

// fields returns every child node slot in a fixed order. The order is
// part of the canonical dump contract: two structurally identical
// nodes must enumerate their children identically.
func (n *Node) fields() []*Node {
	var all []*Node
	all = append(all, n.Targets...)
	if n.Test != nil {
		all = append(all, n.Test)
	}
	if n.Iter != nil {
		all = append(all, n.Iter)
	}
	if v, ok := n.Value.(*Node); ok {
		all = append(all, v)
	}
	all = append(all, n.Args...)
	all = append(all, n.Keywords...)
	all = append(all, n.Children...)
	all = append(all, n.Body...)
	all = append(all, n.Orelse...)
	all = append(all, n.Handlers...)
	all = append(all, n.Finalbody...)
	all = append(all, n.Decorator...)
	all = append(all, n.Bases...)
	return all
}

// Walk traverses the subtree depth-first. Returning false from the
// visitor prunes the walk below the current node.
func (n *Node) Walk(visit func(*Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for _, child := range n.fields() {
		if child != nil {
			child.Walk(visit)
		}
	}
}

// StatementLists returns every ordered statement list owned by this
// node: module and def bodies, branch bodies of conditionals and
// loops including else clauses, try/except/finally bodies, and with
// bodies. Class bodies are not statement lists here; walking still
// descends through them to reach the methods inside. Nodes without
// nested blocks return nil.
func (n *Node) StatementLists() [][]*Node {
	var lists [][]*Node
	switch n.Type {
	case NodeModule, NodeFunctionDef, NodeAsyncFunctionDef,
		NodeWith, NodeAsyncWith:
		lists = append(lists, n.Body)
	case NodeIf, NodeFor, NodeAsyncFor, NodeWhile:
		lists = append(lists, n.Body)
		if len(n.Orelse) > 0 {
			lists = append(lists, n.Orelse)
		}
	case NodeTry:
		lists = append(lists, n.Body)
		for _, h := range n.Handlers {
			lists = append(lists, h.Body)
		}
		if len(n.Orelse) > 0 {
			lists = append(lists, n.Orelse)
		}
		if len(n.Finalbody) > 0 {
			lists = append(lists, n.Finalbody)
		}
	}
	return lists
}

// String renders a short description for debugging.
func (n *Node) String() string {
	if n.Name != "" {
		return fmt.Sprintf("%s(%s)", n.Type, n.Name)
	}
	return string(n.Type)
}
