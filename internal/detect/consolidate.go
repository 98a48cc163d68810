package detect

import (
	"sort"

	"github.com/rbscholtus/isadetect/internal/window"
)

// Consolidate sorts a ProcessedDetectionResult's per-range labels by range
// start and fuses runs of immediately-adjacent ranges bearing the same
// label into contiguous Runs (spec.md §4.7). "Adjacent" means next to each
// other in start-sorted order with no intervening unlabeled range, not
// necessarily byte-contiguous: windows overlap by construction (spec.md
// §4.3), so a fused run's byte span is simply [first range's start, last
// range's end). Ranges whose label is nil (no architecture assigned) are
// omitted from the output and also break a run in progress.
func Consolidate(labels map[window.Range]*string) []Run {
	ranges := make([]window.Range, 0, len(labels))
	for r := range labels {
		ranges = append(ranges, r)
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })

	var runs []Run
	var prevLabel *string

	for _, r := range ranges {
		label := labels[r]
		if label != nil {
			if n := len(runs); n > 0 && prevLabel != nil && *prevLabel == *label {
				last := &runs[n-1]
				last.Range.End = r.End
				last.Length = last.Range.Len()
			} else {
				runs = append(runs, Run{Range: r, Length: r.Len(), Arch: *label})
			}
		}
		prevLabel = label
	}

	return runs
}
