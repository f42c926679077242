package analyzer

import (
	"github.com/drace-lint/drace/internal/constants"
	"github.com/drace-lint/drace/internal/parser"
)

// DuplicationConfig holds the tunable knobs of duplicate-block
// detection.
type DuplicationConfig struct {
	// MinWindow and MaxWindow bound the statement window lengths
	// extracted from every block.
	MinWindow int
	MaxWindow int

	// MinDumpLength is the smallest canonical dump (in characters)
	// considered meaningful.
	MinDumpLength int

	// MinOccurrences is the number of distinct locations required
	// before a shape is reportable.
	MinOccurrences int
}

// DefaultDuplicationConfig returns the standard configuration.
func DefaultDuplicationConfig() *DuplicationConfig {
	return &DuplicationConfig{
		MinWindow:      constants.DefaultMinWindowStatements,
		MaxWindow:      constants.DefaultMaxWindowStatements,
		MinDumpLength:  constants.DefaultMinDumpLength,
		MinOccurrences: constants.DefaultMinOccurrences,
	}
}

// DuplicationDetector finds repeated statement sequences in one
// syntax tree. It holds no cross-run state: each Detect call is a pure
// function of its input tree.
type DuplicationDetector struct {
	config *DuplicationConfig
}

// NewDuplicationDetector creates a detector with the given config,
// falling back to defaults when nil.
func NewDuplicationDetector(config *DuplicationConfig) *DuplicationDetector {
	if config == nil {
		config = DefaultDuplicationConfig()
	}
	return &DuplicationDetector{config: config}
}

// Detect runs the full pipeline over one parsed module: extract
// canonical statement windows, group them by content hash, drop
// trivial groups, and greedily select a non-overlapping set of
// findings. An empty result is a normal outcome, never an error.
func (d *DuplicationDetector) Detect(root *parser.Node) []*Selection {
	sequences := CollectSequences(root, d.config.MinWindow, d.config.MaxWindow)
	candidates := BuildCandidates(sequences, d.config.MinOccurrences, d.config.MinDumpLength)
	return SelectFindings(candidates)
}
