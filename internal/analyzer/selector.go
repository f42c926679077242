package analyzer

import (
	"sort"
)

// CandidateGroup is the set of all distinct located occurrences
// sharing one canonical-form hash, plus derived metadata.
type CandidateGroup struct {
	Hash           string
	Occurrences    []LineRange // deduplicated, discovery order
	Count          int
	Length         int    // line span of the group's bounding extent
	Representative string // dump of the first distinct occurrence
}

// Selection is one accepted finding: a candidate group that survived
// ranking and greedy overlap pruning.
type Selection struct {
	Hash    string
	Primary LineRange   // first accepted occurrence in source order
	Matches []LineRange // all accepted occurrences, by start line
	Count   int
	Length  int
}

// BuildCandidates turns the raw hash→occurrences map into filtered
// candidate groups. Occurrences with identical (start,end) are
// collapsed keeping the first dump; groups below minOccurrences
// distinct locations or rejected by the triviality filter are
// discarded.
func BuildCandidates(sequences map[string][]Occurrence, minOccurrences, minDumpLength int) []*CandidateGroup {
	var candidates []*CandidateGroup

	for hash, occurrences := range sequences {
		seen := make(map[LineRange]bool)
		var unique []LineRange
		representative := ""
		for _, occ := range occurrences {
			r := LineRange{Start: occ.StartLine, End: occ.EndLine}
			if seen[r] {
				continue
			}
			seen[r] = true
			unique = append(unique, r)
			if representative == "" {
				representative = occ.Dump
			}
		}
		if len(unique) < minOccurrences {
			continue
		}
		if isTrivialDump(representative, unique, minDumpLength) {
			continue
		}

		extent := unique[0]
		for _, r := range unique[1:] {
			if r.Start < extent.Start {
				extent.Start = r.Start
			}
			if r.End > extent.End {
				extent.End = r.End
			}
		}

		candidates = append(candidates, &CandidateGroup{
			Hash:           hash,
			Occurrences:    unique,
			Count:          len(unique),
			Length:         extent.Lines(),
			Representative: representative,
		})
	}

	return candidates
}

// SelectFindings ranks candidate groups and greedily picks a mutually
// non-overlapping subset. Groups are processed by descending
// occurrence count, then descending bounding span, then ascending
// earliest start line (the explicit tie-break that keeps output stable
// across runs regardless of map iteration order). A group is accepted
// only if at least two of its occurrences share no line with
// previously accepted ones; accepting it claims every line of its
// unclaimed occurrences. Greedy interval packing, not optimal: a
// higher-ranked group always wins contested lines.
func SelectFindings(candidates []*CandidateGroup) []*Selection {
	ranked := make([]*CandidateGroup, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		if ranked[i].Length != ranked[j].Length {
			return ranked[i].Length > ranked[j].Length
		}
		return earliestStart(ranked[i]) < earliestStart(ranked[j])
	})

	occupied := make(map[int]bool)
	var selected []*Selection

	for _, cand := range ranked {
		occs := make([]LineRange, len(cand.Occurrences))
		copy(occs, cand.Occurrences)
		sort.Slice(occs, func(i, j int) bool { return occs[i].Start < occs[j].Start })

		var unclaimed []LineRange
		for _, r := range occs {
			if !overlapsOccupied(occupied, r) {
				unclaimed = append(unclaimed, r)
			}
		}
		// A pattern must still have two independent unclaimed
		// locations to be worth reporting.
		if len(unclaimed) < 2 {
			continue
		}

		for _, r := range unclaimed {
			for line := r.Start; line <= r.End; line++ {
				occupied[line] = true
			}
		}

		selected = append(selected, &Selection{
			Hash:    cand.Hash,
			Primary: unclaimed[0],
			Matches: unclaimed,
			Count:   len(unclaimed),
			Length:  cand.Length,
		})
	}

	return selected
}

func earliestStart(c *CandidateGroup) int {
	earliest := c.Occurrences[0].Start
	for _, r := range c.Occurrences[1:] {
		if r.Start < earliest {
			earliest = r.Start
		}
	}
	return earliest
}

// overlapsOccupied does a per-line membership check. Linear in the
// span length, which is bounded by the window size in practice.
func overlapsOccupied(occupied map[int]bool, r LineRange) bool {
	for line := r.Start; line <= r.End; line++ {
		if occupied[line] {
			return true
		}
	}
	return false
}
