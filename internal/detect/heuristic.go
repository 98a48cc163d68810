package detect

import (
	"math"
	"strings"

	"github.com/rbscholtus/isadetect/internal/support"
)

// wordsPrefix marks architecture names denoting natural-language (non-code)
// reference classes, per spec.md §3.
const wordsPrefix = "_words"

// strictArchs is the hardcoded set of architectures whose byte statistics
// are known to collide with common non-code patterns, so they need a
// higher-confidence bar before the heuristic assigns their label (spec.md
// §6). Kept next to the heuristic itself for auditability, mirroring the
// teacher's habit of keeping validation tables (e.g. validMetricSets in
// cmd/keycraft/flags.go) next to the code that consults them.
var strictArchs = map[string]struct{}{
	"OCaml": {}, "PIC10": {}, "PIC16": {}, "PIC18": {}, "PIC24": {},
	"6502": {}, "#6502#cc65": {}, "TI_MSP430": {}, "IA-64": {}, "Cell-SPU": {},
	"AVR": {}, "FR-V": {}, "M68k": {}, "RL78": {}, "HP-PA": {}, "FR30": {},
	"ARC32eb": {}, "Epiphany": {}, "MIPS16": {}, "Stormy16": {}, "Visium": {},
	"M32C": {}, "CLIPPER": {}, "TMS320C2x": {}, "TMS320C6x": {}, "i860": {},
	"8051": {}, "Cray": {}, "MCore": {}, "V850": {}, "NDS32": {},
	"CompactRISC": {}, "WE32000": {},
}

// isStrict reports whether arch is on the strict list. Exact match;
// unknown architectures are non-strict.
func isStrict(arch string) bool {
	_, ok := strictArchs[arch]
	return ok
}

// thresholds is one (MAX_ABS_DIV, INSTANT_STD_DEV, COMM_STD_DEV) triple used
// by a single rule evaluation. See spec.md §4.6 for the table of values.
type thresholds struct {
	maxAbs  float64
	instant float64
	comm    float64
}

var (
	bgNonStrict = thresholds{maxAbs: 5.0, instant: 2.0, comm: 1.0}
	bgStrict    = thresholds{maxAbs: 4.0, instant: 2.5, comm: 1.5}
	tgNonStrict = thresholds{maxAbs: 6.0, instant: 2.0, comm: 1.0}
	tgStrict    = thresholds{maxAbs: 5.0, instant: 2.5, comm: 1.5}
)

// finalRangeResult applies the decision heuristic from spec.md §4.6 to one
// range's bigram and trigram results, returning the assigned architecture
// label or nil if no rule fires.
//
// Rules are evaluated in order; the first that applies wins. An input with
// an empty Arch (no architecture scored) has zero divergence, mean and
// variance, so it neither triggers rule 1 nor satisfies any acceptance rule
// of its own; when both inputs are empty the result is nil.
func finalRangeResult(bg, tg RangeResult) *string {
	bgT := support.IfThen(isStrict(bg.Arch), bgStrict, bgNonStrict)
	tgT := support.IfThen(isStrict(tg.Arch), tgStrict, tgNonStrict)

	sigmaBG := math.Sqrt(bg.Variance)
	sigmaTG := math.Sqrt(tg.Variance)

	// Rule 1: reject on distance.
	if bg.Divergence > bgT.maxAbs && tg.Divergence > tgT.maxAbs {
		return nil
	}

	// Rule 2: instant (trigram).
	if tg.Divergence < tg.Mean-tgT.instant*sigmaTG {
		arch := tg.Arch
		return &arch
	}

	// Rule 3: instant (bigram).
	if bg.Divergence < bg.Mean-bgT.instant*sigmaBG {
		arch := bg.Arch
		return &arch
	}

	// Rule 4: concurrence.
	if bg.Divergence < bg.Mean-bgT.comm*sigmaBG &&
		tg.Divergence < tg.Mean-tgT.comm*sigmaTG &&
		bg.Arch == tg.Arch {
		arch := tg.Arch
		return &arch
	}

	// Rule 5: text special case.
	if tg.Divergence < tg.Mean-sigmaTG && strings.HasPrefix(tg.Arch, wordsPrefix) {
		arch := tg.Arch
		return &arch
	}

	return nil
}
