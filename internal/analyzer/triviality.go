package analyzer

import (
	"sort"
	"strings"
)

// isTrivialDump decides whether a candidate group is boilerplate
// rather than genuine duplication. dump is the group's representative
// canonical form; ranges are the line spans of all its occurrences.
// Any single rule rejects the group. Testing only the representative
// is sound: all occurrences in a group are structurally identical by
// construction.
func isTrivialDump(dump string, ranges []LineRange, minDumpLength int) bool {
	if len(dump) < minDumpLength {
		return true
	}
	if strings.Contains(dump, "Return(") {
		// Return-only one-liners are near-universally boilerplate.
		return true
	}
	if looksLikeArgumentRegistration(dump) {
		return true
	}
	return triviallySequential(ranges)
}

// looksLikeArgumentRegistration matches the shape of CLI-argument
// registration blocks (parser.add_argument(...) and friends): at least
// two nested call-on-attribute-of-name expressions combined with a
// keyword argument or literal constant. A rough structural allowlist
// for one very common false-positive shape; tunable, not a guarantee.
func looksLikeArgumentRegistration(dump string) bool {
	return strings.Count(dump, "Call(Attribute(Name(") >= 2 &&
		(strings.Contains(dump, "Keyword(") || strings.Contains(dump, "Constant("))
}

// triviallySequential reports whether the occurrence spans are an
// artifact of sliding-window redundancy within one physical block:
// occurrences spanning at most two lines, or consecutive occurrences
// whose ranges overlap or touch, mean the "duplication" is really one
// run of statements matching itself at shifted offsets.
func triviallySequential(ranges []LineRange) bool {
	if len(ranges) < 2 {
		return false
	}

	sorted := make([]LineRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	for i, r := range sorted {
		if r.End-r.Start <= 1 {
			return true
		}
		if i+1 < len(sorted) {
			next := sorted[i+1]
			if next.Start >= r.Start && next.Start <= r.End {
				return true
			}
		}
	}
	return false
}
