package detect

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/rbscholtus/isadetect/internal/window"
)

// minDivergenceFloor discards near-zero divergences (degenerate self
// matches) when computing the global minimum. Empirical constant, retained
// verbatim per spec.md §9.
const minDivergenceFloor = 0.1

// Aggregate reshapes a DetectionResult into a ProcessedDetectionResult:
// global min/max divergences, per-range winner/mean/variance for both
// n-gram orders, the architecture index, and the final per-range label
// (spec.md §4.5).
func Aggregate(det *DetectionResult) *ProcessedDetectionResult {
	archIndex := buildArchIndex(det.BigramsByArch, det.TrigramsByArch)

	// The longest range is a full window; only ranges clipped at the end of
	// the file are shorter.
	winSize := 0
	for r := range det.BigramsByRange {
		winSize = max(winSize, r.Len())
	}

	maxBG, minBG := globalMinMax(det.BigramsByRange)
	maxTG, minTG := globalMinMax(det.TrigramsByRange)

	bgResults := rangeResults(det.BigramsByRange)
	tgResults := rangeResults(det.TrigramsByRange)

	rangeToLabel := make(map[window.Range]*string, len(bgResults))
	archToRanges := make(map[string][]window.Range)

	allRanges := make([]window.Range, 0, len(bgResults))
	for r := range bgResults {
		allRanges = append(allRanges, r)
	}
	sort.Slice(allRanges, func(i, j int) bool { return allRanges[i].Start < allRanges[j].Start })

	for _, r := range allRanges {
		label := finalRangeResult(bgResults[r], tgResults[r])
		rangeToLabel[r] = label
		if label != nil {
			archToRanges[*label] = append(archToRanges[*label], r)
		}
	}

	return &ProcessedDetectionResult{
		WindowSize:        winSize,
		MinKLBigrams:      minBG,
		MaxKLBigrams:      maxBG,
		MinKLTrigrams:     minTG,
		MaxKLTrigrams:     maxTG,
		BigramResults:     bgResults,
		TrigramResults:    tgResults,
		ArchIndex:         archIndex,
		RangeToFinalLabel: rangeToLabel,
		ArchToFinalRanges: archToRanges,
	}
}

// buildArchIndex assigns each architecture seen in either order's by-arch
// map a stable integer index, in ascending name order, so iteration order
// is deterministic regardless of map randomization.
func buildArchIndex(byArchOrders ...map[string][]RangeDiv) map[string]int {
	seen := make(map[string]struct{})
	for _, byArch := range byArchOrders {
		for arch := range byArch {
			seen[arch] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for arch := range seen {
		names = append(names, arch)
	}
	sort.Strings(names)

	index := make(map[string]int, len(names))
	for i, arch := range names {
		index[arch] = i
	}
	return index
}

// globalMinMax returns the overall maximum divergence and the smallest
// divergence at or above minDivergenceFloor, across every range and
// architecture. If no divergence clears the floor, min is returned as
// +Inf (no architecture scored, or every score is a degenerate near-zero
// match).
func globalMinMax(byRange map[window.Range][]ArchDiv) (max, min float64) {
	max = math.Inf(-1)
	min = math.Inf(1)
	for _, ads := range byRange {
		for _, ad := range ads {
			if ad.Divergence > max {
				max = ad.Divergence
			}
			if ad.Divergence >= minDivergenceFloor && ad.Divergence < min {
				min = ad.Divergence
			}
		}
	}
	return max, min
}

// rangeResults computes, for every range, the winning (lowest-divergence)
// architecture plus the mean and population variance of divergences across
// all architectures scored in that range.
func rangeResults(byRange map[window.Range][]ArchDiv) map[window.Range]RangeResult {
	out := make(map[window.Range]RangeResult, len(byRange))
	for r, ads := range byRange {
		if len(ads) == 0 {
			out[r] = RangeResult{}
			continue
		}

		sorted := make([]ArchDiv, len(ads))
		copy(sorted, ads)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Divergence < sorted[j].Divergence })

		vals := make([]float64, len(sorted))
		for i, ad := range sorted {
			vals[i] = ad.Divergence
		}
		mean, variance := meanPopVariance(vals)

		out[r] = RangeResult{
			Arch:       sorted[0].Arch,
			Divergence: sorted[0].Divergence,
			Mean:       mean,
			Variance:   variance,
		}
	}
	return out
}

// meanPopVariance computes the mean and the population variance (divisor
// N, per spec.md §4.5/§8) of vals. gonum/stat.MeanVariance computes the
// Bessel-corrected sample variance (divisor N-1), which isn't what spec.md
// asks for, so the mean comes from gonum/stat and the variance is summed
// directly against that mean.
func meanPopVariance(vals []float64) (mean, variance float64) {
	mean = stat.Mean(vals, nil)
	if len(vals) == 0 {
		return 0, 0
	}
	var sumSq float64
	for _, v := range vals {
		d := v - mean
		sumSq += d * d
	}
	return mean, sumSq / float64(len(vals))
}
