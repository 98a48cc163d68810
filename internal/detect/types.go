// Package detect implements the parallel per-window scoring pipeline, the
// result aggregator, the architecture decision heuristic, and the
// consolidator described in spec.md §4.4-4.7. It is the orchestration layer
// above internal/ngram (the statistical model) and internal/window (the
// sliding-window plan).
package detect

import "github.com/rbscholtus/isadetect/internal/window"

// KlRes pairs an architecture name with a divergence scalar.
type KlRes struct {
	Arch       string
	Divergence float64
}

// ArchDiv is a (arch, divergence) pair indexed under a range.
type ArchDiv = KlRes

// RangeDiv is a (range, divergence) pair indexed under an architecture.
type RangeDiv struct {
	Range      window.Range
	Divergence float64
}

// DetectionResult holds the raw, unaggregated per-window divergences for
// both n-gram orders, indexed both ways: by architecture and by range.
type DetectionResult struct {
	BigramsByArch   map[string][]RangeDiv
	BigramsByRange  map[window.Range][]ArchDiv
	TrigramsByArch  map[string][]RangeDiv
	TrigramsByRange map[window.Range][]ArchDiv
}

// RangeResult is one n-gram order's summary for a single range: the
// best (lowest-divergence) architecture, its divergence, and the mean and
// variance of divergences across all architectures scored in that range.
//
// Arch == "" signals that no architecture was scored for this range (the
// pathological "no corpus entries" case in spec.md §7.4); the heuristic
// treats that as an automatic reject.
type RangeResult struct {
	Arch       string
	Divergence float64
	Mean       float64
	Variance   float64
}

// Run is a consolidated, contiguous sequence of same-label ranges, as
// produced by Consolidate and consumed by the JSON/table output layer.
type Run struct {
	Range  window.Range
	Length int
	Arch   string
}

// ProcessedDetectionResult is the detector's top-level output: the window
// size used, global min/max divergence per order, per-range results for
// both orders, the per-range final label (nil = no label), and the derived
// architecture-to-ranges index.
type ProcessedDetectionResult struct {
	WindowSize int

	MinKLBigrams  float64
	MaxKLBigrams  float64
	MinKLTrigrams float64
	MaxKLTrigrams float64

	BigramResults  map[window.Range]RangeResult
	TrigramResults map[window.Range]RangeResult

	// ArchIndex assigns each architecture a stable integer index, in
	// ascending name order, for callers (plots, color assignment) that want
	// a deterministic per-architecture slot.
	ArchIndex map[string]int

	RangeToFinalLabel map[window.Range]*string
	ArchToFinalRanges map[string][]window.Range
}
