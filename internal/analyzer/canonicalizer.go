package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/drace-lint/drace/internal/parser"
)

// Sentinels substituted for definition names so that two defs with
// different names but identical bodies canonicalize identically.
const (
	functionSentinel = "_fn"
	classSentinel    = "_cls"
)

// Canonicalizer rewrites a statement sequence into a deterministic
// textual normal form in which identifier text, attribute names, and
// literal values are unobservable; only their positions and repetition
// pattern survive. One Canonicalizer covers exactly one pass: the
// first distinct name seen becomes _N0, the second _N1, and repeats
// reuse their placeholder. Attributes (_A) and constants (_C) get the
// same treatment in their own namespaces.
//
// The Canonicalizer never mutates parser nodes; it serializes directly
// from the read-only tree.
type Canonicalizer struct {
	names     map[string]string
	constants map[string]string
	nameCount int
	constant  int
}

// NewCanonicalizer creates a Canonicalizer for a single pass.
func NewCanonicalizer() *Canonicalizer {
	return &Canonicalizer{
		names:     make(map[string]string),
		constants: make(map[string]string),
	}
}

// CanonicalDump serializes a list of consecutive statements, wrapped
// in a synthetic module container, into the canonical form. Calling it
// twice on structurally identical input yields byte-identical output.
func CanonicalDump(stmts []*parser.Node) string {
	c := NewCanonicalizer()
	var sb strings.Builder
	sb.WriteString("Module(")
	for i, stmt := range stmts {
		if i > 0 {
			sb.WriteByte(',')
		}
		c.write(&sb, stmt)
	}
	sb.WriteByte(')')
	return sb.String()
}

// HashDump digests a canonical dump into the content hash used as the
// grouping key. SHA-256 keeps the collision probability negligible for
// any realistic corpus.
func HashDump(dump string) string {
	sum := sha256.Sum256([]byte(dump))
	return hex.EncodeToString(sum[:])
}

func (c *Canonicalizer) mapName(name string) string {
	if ph, ok := c.names[name]; ok {
		return ph
	}
	ph := fmt.Sprintf("_N%d", c.nameCount)
	c.nameCount++
	c.names[name] = ph
	return ph
}

// mapAttribute shares the physical counter with names but uses a
// disjoint prefix and key prefix, so _A7 and _N7 can never collide.
func (c *Canonicalizer) mapAttribute(attr string) string {
	key := "attr::" + attr
	if ph, ok := c.names[key]; ok {
		return ph
	}
	ph := fmt.Sprintf("_A%d", c.nameCount)
	c.nameCount++
	c.names[key] = ph
	return ph
}

func (c *Canonicalizer) mapConstant(value interface{}) string {
	key := constantKey(value)
	if ph, ok := c.constants[key]; ok {
		return ph
	}
	ph := fmt.Sprintf("_C%d", c.constant)
	c.constant++
	c.constants[key] = ph
	return ph
}

// constantKey builds a type-tagged key so that equal-valued constants
// map to one placeholder and distinct values (including the same text
// at different types, like 1 and "1") never share one.
func constantKey(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "none"
	case bool:
		return fmt.Sprintf("bool:%t", v)
	case int64:
		return fmt.Sprintf("int:%d", v)
	case float64:
		return fmt.Sprintf("float:%g", v)
	case string:
		return "str:" + v
	default:
		return fmt.Sprintf("%T:%v", v, v)
	}
}

// write serializes one node. Identifier-bearing kinds are replaced by
// placeholders; every other kind keeps its structural shape and
// recurses. Decorators, base-class lists, and annotations are dropped
// entirely: they can leak names not structurally essential and would
// cause false negatives across otherwise identical code.
func (c *Canonicalizer) write(sb *strings.Builder, n *parser.Node) {
	if n == nil {
		return
	}

	switch n.Type {
	case parser.NodeName:
		sb.WriteString("Name(")
		sb.WriteString(c.mapName(n.Name))
		sb.WriteByte(')')
		return

	case parser.NodeAttribute:
		sb.WriteString("Attribute(")
		if obj, ok := n.Value.(*parser.Node); ok {
			c.write(sb, obj)
			sb.WriteByte(',')
		}
		sb.WriteString(c.mapAttribute(n.Name))
		sb.WriteByte(')')
		return

	case parser.NodeConstant:
		sb.WriteString("Constant(")
		sb.WriteString(c.mapConstant(n.Value))
		sb.WriteByte(')')
		return

	case parser.NodeArg:
		sb.WriteString("Arg(")
		sb.WriteString(c.mapName(n.Name))
		sb.WriteByte(')')
		return

	case parser.NodeFunctionDef, parser.NodeAsyncFunctionDef:
		c.writeCompound(sb, n, functionSentinel)
		return

	case parser.NodeClassDef:
		c.writeCompound(sb, n, classSentinel)
		return

	case parser.NodeKeyword:
		// Keyword argument names are call-site API, not local naming;
		// they stay verbatim.
		sb.WriteString("Keyword(")
		sb.WriteString(n.Name)
		if v, ok := n.Value.(*parser.Node); ok {
			sb.WriteByte(',')
			c.write(sb, v)
		}
		sb.WriteByte(')')
		return
	}

	c.writeCompound(sb, n, "")
}

// writeCompound serializes a node's kind, operator, and child slots in
// a fixed order. The order is load-bearing: it is what makes the dump
// a faithful shape fingerprint.
func (c *Canonicalizer) writeCompound(sb *strings.Builder, n *parser.Node, sentinel string) {
	sb.WriteString(string(n.Type))
	sb.WriteByte('(')

	first := true
	sep := func() {
		if !first {
			sb.WriteByte(',')
		}
		first = false
	}

	if sentinel != "" {
		sep()
		sb.WriteString(sentinel)
	}
	if n.Op != "" {
		sep()
		sb.WriteString(n.Op)
	}

	c.writeList(sb, &first, "targets", n.Targets)
	if n.Test != nil {
		sep()
		c.write(sb, n.Test)
	}
	if n.Iter != nil {
		sep()
		c.write(sb, n.Iter)
	}
	if v, ok := n.Value.(*parser.Node); ok {
		sep()
		c.write(sb, v)
	}
	c.writeList(sb, &first, "args", n.Args)
	c.writeList(sb, &first, "keywords", n.Keywords)
	c.writeList(sb, &first, "", n.Children)
	c.writeList(sb, &first, "body", n.Body)
	c.writeList(sb, &first, "orelse", n.Orelse)
	c.writeList(sb, &first, "handlers", n.Handlers)
	c.writeList(sb, &first, "finally", n.Finalbody)
	// Decorator and Bases are never serialized.

	sb.WriteByte(')')
}

// writeList serializes a non-empty node slice as label=[...]. The
// label disambiguates which slot a list came from, so an If with only
// a body can never collide with one whose statements sit in orelse.
func (c *Canonicalizer) writeList(sb *strings.Builder, first *bool, label string, nodes []*parser.Node) {
	if len(nodes) == 0 {
		return
	}
	if !*first {
		sb.WriteByte(',')
	}
	*first = false
	if label != "" {
		sb.WriteString(label)
		sb.WriteByte('=')
	}
	sb.WriteByte('[')
	for i, node := range nodes {
		if i > 0 {
			sb.WriteByte(',')
		}
		c.write(sb, node)
	}
	sb.WriteByte(']')
}
