package analyzer

import (
	"github.com/drace-lint/drace/internal/parser"
)

// Occurrence is one located instance of a canonical shape.
type Occurrence struct {
	StartLine int
	EndLine   int
	Dump      string
}

// LineRange is an inclusive span of source lines.
type LineRange struct {
	Start int
	End   int
}

// Lines returns the number of source lines covered.
func (r LineRange) Lines() int {
	return r.End - r.Start + 1
}

// CollectSequences walks every statement-bearing block in the tree
// (module body, def bodies, conditional and loop branches including
// else clauses, try/except/finally bodies, with bodies) and emits
// every contiguous statement window of length maxLen down to minLen.
// Longer windows are emitted first so longer exact matches are
// discovered before their sub-windows. Each window is canonicalized
// and hashed; the result maps hash to the occurrences observed across
// the whole tree.
//
// Windows whose first statement has no position information are
// skipped: they cannot anchor a diagnostic. Overlapping windows from
// one block are all emitted; the triviality filter detects and rejects
// that intentional redundancy later.
func CollectSequences(root *parser.Node, minLen, maxLen int) map[string][]Occurrence {
	sequences := make(map[string][]Occurrence)
	if root == nil || minLen < 1 || maxLen < minLen {
		return sequences
	}

	root.Walk(func(n *parser.Node) bool {
		for _, stmts := range n.StatementLists() {
			collectWindows(sequences, stmts, minLen, maxLen)
		}
		return true
	})
	return sequences
}

func collectWindows(sequences map[string][]Occurrence, stmts []*parser.Node, minLen, maxLen int) {
	n := len(stmts)
	for length := maxLen; length >= minLen; length-- {
		if n < length {
			continue
		}
		for i := 0; i+length <= n; i++ {
			window := stmts[i : i+length]
			if !window[0].Location.HasPosition() {
				continue
			}
			dump := CanonicalDump(window)
			hash := HashDump(dump)
			sequences[hash] = append(sequences[hash], Occurrence{
				StartLine: window[0].Location.StartLine,
				EndLine:   window[length-1].EndLine(),
				Dump:      dump,
			})
		}
	}
}
