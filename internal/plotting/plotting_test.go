package plotting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rbscholtus/isadetect/internal/detect"
	"github.com/rbscholtus/isadetect/internal/ngram"
	"github.com/rbscholtus/isadetect/internal/window"
)

func TestCorpusTopUnigramsWritesFile(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog repeatedly for good measure")
	stats := ngram.Build("ARM", data, 0.01)

	path := filepath.Join(t.TempDir(), "corpus.pdf")
	if err := CorpusTopUnigrams(stats, 10, path); err != nil {
		t.Fatalf("CorpusTopUnigrams: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("expected a non-empty plot file at %s, stat err=%v", path, err)
	}
}

func TestDivergenceByRangeWritesFile(t *testing.T) {
	r1 := window.Range{Start: 0, End: 100}
	r2 := window.Range{Start: 100, End: 200}

	processed := &detect.ProcessedDetectionResult{
		ArchIndex: map[string]int{"ARM": 0, "MIPS": 1},
		BigramResults: map[window.Range]detect.RangeResult{
			r1: {Arch: "ARM", Divergence: 0.2},
			r2: {Arch: "MIPS", Divergence: 1.5},
		},
		TrigramResults: map[window.Range]detect.RangeResult{
			r1: {Arch: "ARM", Divergence: 0.3},
			r2: {Arch: "MIPS", Divergence: 1.8},
		},
	}

	path := filepath.Join(t.TempDir(), "divs.pdf")
	if err := DivergenceByRange(processed, "bigram", path); err != nil {
		t.Fatalf("DivergenceByRange: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("expected a non-empty plot file at %s, stat err=%v", path, err)
	}
}

func TestDivergenceByRangeSkipsUnlabeledRanges(t *testing.T) {
	r1 := window.Range{Start: 0, End: 100}
	processed := &detect.ProcessedDetectionResult{
		ArchIndex:     map[string]int{},
		BigramResults: map[window.Range]detect.RangeResult{r1: {}},
	}

	path := filepath.Join(t.TempDir(), "divs-empty.pdf")
	if err := DivergenceByRange(processed, "bigram", path); err != nil {
		t.Fatalf("DivergenceByRange with no labeled ranges should still render an empty chart: %v", err)
	}
}
