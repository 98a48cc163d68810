package plotting

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/rbscholtus/isadetect/internal/detect"
	"github.com/rbscholtus/isadetect/internal/window"
)

// DivergenceByRange renders, for one n-gram order, a line chart of every
// range's winning (lowest) divergence against its byte offset, one line per
// architecture that won at least one range. Color assignment is a
// deterministic function of an architecture's index in processed.ArchIndex
// (spec.md §10's "color assignment for plots" collaborator), so the same
// architecture always renders in the same color across runs and plots.
func DivergenceByRange(processed *detect.ProcessedDetectionResult, order string, path string) error {
	results := processed.BigramResults
	if order == "trigram" {
		results = processed.TrigramResults
	}

	ranges := make([]window.Range, 0, len(results))
	for r := range results {
		ranges = append(ranges, r)
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })

	byArch := make(map[string]plotter.XYs)
	for _, r := range ranges {
		rr := results[r]
		if rr.Arch == "" {
			continue
		}
		byArch[rr.Arch] = append(byArch[rr.Arch], plotter.XY{
			X: float64(r.Start),
			Y: rr.Divergence,
		})
	}

	archNames := make([]string, 0, len(byArch))
	for arch := range byArch {
		archNames = append(archNames, arch)
	}
	sort.Strings(archNames)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s divergence by offset", order)
	p.X.Label.Text = "byte offset"
	p.Y.Label.Text = "KL divergence"

	for _, arch := range archNames {
		idx := processed.ArchIndex[arch]
		line, err := plotter.NewLine(byArch[arch])
		if err != nil {
			return fmt.Errorf("plotting: building line for %s: %w", arch, err)
		}
		line.Color = plotutil.Color(idx)
		p.Add(line)
		p.Legend.Add(arch, line)
	}

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("plotting: saving %s: %w", path, err)
	}
	return nil
}
