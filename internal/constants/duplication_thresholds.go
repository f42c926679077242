package constants

// Duplication detection thresholds. The defaults were tuned on real
// Python codebases; they trade recall for a low false-positive rate,
// since every reported block asks a human to refactor.
const (
	// DefaultMinWindowStatements is the smallest statement window
	// considered a duplication candidate. Single statements repeat
	// constantly in normal code and are never worth extracting.
	DefaultMinWindowStatements = 2

	// DefaultMaxWindowStatements is the largest statement window
	// emitted per block. Longer exact repeats are still found through
	// their windows; capping the length bounds the candidate count.
	DefaultMaxWindowStatements = 6

	// DefaultMinDumpLength is the minimum canonical dump size in
	// characters. Shapes serializing below this are structurally too
	// small to be meaningful duplication.
	DefaultMinDumpLength = 50

	// DefaultMinOccurrences is the number of distinct locations a
	// shape must appear at before it is reportable. Two occurrences
	// are routinely incidental; three are not.
	DefaultMinOccurrences = 3

	// DefaultMaxDisplayedMatches caps the line ranges listed in one
	// diagnostic message.
	DefaultMaxDisplayedMatches = 8
)

// DuplicationRuleCode is the diagnostic code attached to every
// duplicate-block finding.
const DuplicationRuleCode = "Z202"
