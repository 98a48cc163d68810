package detect

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rbscholtus/isadetect/internal/ngram"
	"github.com/rbscholtus/isadetect/internal/window"
)

// refBaseCount is the additive smoothing count used for reference corpus
// statistics, per spec.md §3.
const refBaseCount = 0.01

// BuildReferences constructs one ngram.Stats per corpus entry, in parallel.
// Each reference is built independently of the others; there is no shared
// mutable state inside a single build, so results are collected under a
// mutex purely to populate the output map (not to serialize any work).
//
// Grounded on the teacher's internal/keycraft/bls.go steepestDescentParallel,
// which spreads independent per-chunk work across goroutines and collects
// results after a WaitGroup; here an errgroup.Group plays that role since
// each task is a simple independent computation with no local best-of-chunk
// reduction to perform.
func BuildReferences(ctx context.Context, corpora map[string][]byte) (map[string]*ngram.Stats, error) {
	out := make(map[string]*ngram.Stats, len(corpora))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for name, data := range corpora {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			s := ngram.Build(name, data, refBaseCount)
			mu.Lock()
			out[name] = s
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// windowOutcome is one window's scored result, kept in a pre-sized slice
// indexed by window position so the parallel stage needs no ordering
// guarantee: results land in their planned slot regardless of completion
// order, and the caller never observes goroutine scheduling order.
type windowOutcome struct {
	rng      window.Range
	bigrams  []KlRes
	trigrams []KlRes
}

// Detect scores every window of data against every reference architecture
// and returns the raw per-window, per-architecture divergences (spec.md
// §4.4). Window construction, target-stats building, and scoring against
// all references happen independently per window; the only ordering
// requirement downstream is that the per-window klSum loops run in a fixed
// serial order, which klSum's map iteration inside a single window already
// gives (parallelism only decides which window runs when, never how a
// single window's own sums are accumulated).
func Detect(ctx context.Context, data []byte, refs map[string]*ngram.Stats) (*DetectionResult, error) {
	return DetectWithOptions(ctx, data, refs, false)
}

// DetectWithOptions is Detect with the --big-file escape hatch threaded
// through to window.PlanWithOptions.
func DetectWithOptions(ctx context.Context, data []byte, refs map[string]*ngram.Stats, forceBigFile bool) (*DetectionResult, error) {
	ranges := window.PlanWithOptions(len(data), forceBigFile)
	outcomes := make([]windowOutcome, len(ranges))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, r := range ranges {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			outcomes[i] = scoreWindow(r, data[r.Start:r.End], refs)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return collect(outcomes), nil
}

// scoreWindow builds the window's own (unsmoothed) statistics and scores
// them against every reference, sorted ascending by divergence.
func scoreWindow(r window.Range, data []byte, refs map[string]*ngram.Stats) windowOutcome {
	target := ngram.Build(ngram.Target, data, 0)

	bigrams := make([]KlRes, 0, len(refs))
	trigrams := make([]KlRes, 0, len(refs))
	for arch, ref := range refs {
		d := ngram.KL(target, ref)
		assertFinite(arch, "bigram", d.Bigrams)
		assertFinite(arch, "trigram", d.Trigrams)
		bigrams = append(bigrams, KlRes{Arch: arch, Divergence: d.Bigrams})
		trigrams = append(trigrams, KlRes{Arch: arch, Divergence: d.Trigrams})
	}

	sort.Slice(bigrams, func(i, j int) bool { return bigrams[i].Divergence < bigrams[j].Divergence })
	sort.Slice(trigrams, func(i, j int) bool { return trigrams[i].Divergence < trigrams[j].Divergence })

	return windowOutcome{rng: r, bigrams: bigrams, trigrams: trigrams}
}

// collect reshapes the per-window outcomes into the dual-indexed
// DetectionResult. outcomes is already in range-start order (it was
// populated by index from window.Plan's ordered output), so no further
// sort is required to satisfy the range-start ordering guarantee.
func collect(outcomes []windowOutcome) *DetectionResult {
	res := &DetectionResult{
		BigramsByArch:   make(map[string][]RangeDiv),
		BigramsByRange:  make(map[window.Range][]ArchDiv, len(outcomes)),
		TrigramsByArch:  make(map[string][]RangeDiv),
		TrigramsByRange: make(map[window.Range][]ArchDiv, len(outcomes)),
	}

	for _, o := range outcomes {
		res.BigramsByRange[o.rng] = o.bigrams
		res.TrigramsByRange[o.rng] = o.trigrams
		for _, kr := range o.bigrams {
			res.BigramsByArch[kr.Arch] = append(res.BigramsByArch[kr.Arch], RangeDiv{Range: o.rng, Divergence: kr.Divergence})
		}
		for _, kr := range o.trigrams {
			res.TrigramsByArch[kr.Arch] = append(res.TrigramsByArch[kr.Arch], RangeDiv{Range: o.rng, Divergence: kr.Divergence})
		}
	}

	return res
}
