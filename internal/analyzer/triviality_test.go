package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drace-lint/drace/internal/constants"
)

// wideRanges are occurrence spans that trip none of the sequential
// rules: multi-line and mutually disjoint.
var wideRanges = []LineRange{{10, 14}, {30, 34}, {50, 54}}

func longDump(filler string) string {
	return "Module(" + strings.Repeat(filler, 20) + ")"
}

func TestIsTrivialDump_ShortDump(t *testing.T) {
	assert.True(t, isTrivialDump("Module(Pass())", wideRanges, constants.DefaultMinDumpLength),
		"dumps below the length floor are noise")
	assert.False(t, isTrivialDump(longDump("Expr(Call(Name(_N0))),"), wideRanges, constants.DefaultMinDumpLength))
}

func TestIsTrivialDump_ReturnStatements(t *testing.T) {
	dump := longDump("Expr(Name(_N0)),") + "Return(Name(_N1))"
	assert.True(t, isTrivialDump(dump, wideRanges, constants.DefaultMinDumpLength),
		"blocks containing return are treated as boilerplate")
}

func TestIsTrivialDump_ArgumentRegistration(t *testing.T) {
	dump := "Module(" +
		"Expr(Call(Attribute(Name(_N0),_A1),args=[Constant(_C0)],keywords=[Keyword(help,Constant(_C1))]))," +
		"Expr(Call(Attribute(Name(_N0),_A1),args=[Constant(_C2)],keywords=[Keyword(help,Constant(_C3))]))" +
		")"
	assert.True(t, isTrivialDump(dump, wideRanges, constants.DefaultMinDumpLength),
		"repeated add_argument-style calls are suppressed")

	// A single call on an attribute is not enough to trip the rule.
	single := longDump("Assign(targets=[Name(_N0)],BinOp(+,Name(_N1),Name(_N2))),") +
		"Expr(Call(Attribute(Name(_N3),_A4),keywords=[Keyword(x,Constant(_C0))]))"
	assert.False(t, isTrivialDump(single, wideRanges, constants.DefaultMinDumpLength))
}

func TestTriviallySequential_SingleLineRuns(t *testing.T) {
	// Three consecutive single-line occurrences: one run of identical
	// statements matching itself, not duplication.
	assert.True(t, triviallySequential([]LineRange{{10, 10}, {11, 11}, {12, 12}}))
	assert.True(t, triviallySequential([]LineRange{{5, 6}, {40, 41}}),
		"a two-line span anywhere in the group rejects it")
}

func TestTriviallySequential_OverlappingWindows(t *testing.T) {
	assert.True(t, triviallySequential([]LineRange{{10, 13}, {12, 15}, {40, 43}}),
		"overlapping spans come from shifted windows over one block")
	assert.True(t, triviallySequential([]LineRange{{20, 24}, {24, 28}}),
		"a shared boundary line counts as overlap")
}

func TestTriviallySequential_DisjointSpans(t *testing.T) {
	assert.False(t, triviallySequential(wideRanges))
	assert.False(t, triviallySequential([]LineRange{{10, 14}}),
		"a single occurrence cannot be sequential")
	assert.False(t, triviallySequential([]LineRange{{10, 12}, {13, 15}}),
		"adjacent but non-overlapping spans are genuine repeats")
}
