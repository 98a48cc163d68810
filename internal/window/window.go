// Package window picks a half-window size for a file of a given length and
// enumerates the overlapping windows the detector scores independently.
package window

import "math/bits"

// Range is a half-open byte offset interval [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns End - Start.
func (r Range) Len() int {
	return r.End - r.Start
}

// bigFileDivisor and bigFileMask are the empirical constants from the
// big-file half-window formula. Retained verbatim for behavioral parity;
// see the design notes on the decision heuristic's thresholds for the same
// "keep constants as-is" posture.
const (
	bigFileDivisor = 170
	bigFileMask    = 0xFFFFF000
)

// HalfWindow picks the half-window size w for a file of length l. A window
// spans 2*w bytes; consecutive windows start w bytes apart, giving 50%
// overlap.
func HalfWindow(l int) int {
	return halfWindow(l, false)
}

// halfWindow is HalfWindow with an escape hatch: forceBig runs the big-file
// formula regardless of l, for the CLI's --big-file flag (spec.md §6), which
// lets an operator exercise that branch on a file too small to reach it
// naturally.
func halfWindow(l int, forceBig bool) int {
	if !forceBig {
		switch {
		case l <= 0x1000:
			return 0x100
		case l <= 0x8000:
			return 0x200
		case l <= 0x20000:
			return 0x400
		case l <= 0x100000:
			return 0x800
		case l <= 0x1000000:
			return 0x1000
		}
	}

	floorLog2 := bits.Len(uint(l)) - 1
	if floorLog2 <= 0 {
		floorLog2 = 1
	}
	w := (l / (bigFileDivisor * floorLog2)) & bigFileMask
	if w <= 0 {
		// Defensive floor: the masked formula can round to zero for small
		// or pathological lengths. Spec.md treats the formula's constants
		// as empirical and fixed; this guard only prevents a zero-width
		// step, it isn't part of the formula.
		w = 0x1000
	}
	return w
}

// Plan enumerates the overlapping windows covering [0, l), using the
// half-window size HalfWindow(l). Window starts are 0, w, 2w, ... while
// start < l; each window spans [start, min(l, start+2w)). The union of
// emitted windows covers [0, l) exactly. Consecutive windows overlap by w
// bytes, except that windows clipped at l are shorter and a final window
// shorter than w lies entirely inside its predecessor.
func Plan(l int) []Range {
	return PlanWithOptions(l, false)
}

// PlanWithOptions is Plan with the same --big-file escape hatch as
// halfWindow.
func PlanWithOptions(l int, forceBig bool) []Range {
	if l <= 0 {
		return nil
	}

	w := halfWindow(l, forceBig)
	ranges := make([]Range, 0, l/w+1)
	for start := 0; start < l; start += w {
		end := start + 2*w
		if end > l {
			end = l
		}
		ranges = append(ranges, Range{Start: start, End: end})
	}
	return ranges
}
