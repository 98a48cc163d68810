// Package plotting renders the optional PDF charts the CLI wrapper produces
// alongside its JSON and table output: a reference corpus's top unigram
// frequencies, and a target file's per-range divergence against its winning
// architecture. Plot rendering is explicitly outside the detection core
// (spec.md §10); it only ever consumes a already-built *ngram.Stats or
// *detect.ProcessedDetectionResult.
//
// Grounded on gonum.org/v1/plot usage in the pack's bamToBigWig tool
// (saveCrossCorrPlot): plot.New, a plotter.XYs/plotter series, and
// p.Save(width, height, path) as the render-to-file idiom.
package plotting

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/rbscholtus/isadetect/internal/ngram"
)

// CorpusTopUnigrams renders a bar chart of a reference corpus's topN most
// frequent byte values to path.
func CorpusTopUnigrams(stats *ngram.Stats, topN int, path string) error {
	freqs := stats.TopUnigrams()
	if topN > 0 && topN < len(freqs) {
		freqs = freqs[:topN]
	}

	values := make(plotter.Values, len(freqs))
	for i, fr := range freqs {
		values[i] = fr.Count
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: top %d byte unigrams", stats.Arch, len(values))
	p.Y.Label.Text = "frequency"

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return fmt.Errorf("plotting: building bar chart for %s: %w", stats.Arch, err)
	}
	bars.Color = plotutil.Color(0)
	p.Add(bars)

	labels := make([]string, len(freqs))
	for i, fr := range freqs {
		labels[i] = fmt.Sprintf("0x%02x", fr.Key)
	}
	p.NominalX(labels...)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("plotting: saving %s: %w", path, err)
	}
	return nil
}
