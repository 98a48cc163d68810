package detect

import (
	"context"
	"testing"

	"github.com/rbscholtus/isadetect/internal/window"
)

// sampleCorpora returns one reference whose byte statistics an ARM-like
// target will match almost exactly, plus a dozen mutually-similar "junk"
// references and a natural-language one. A realistic corpus set has dozens
// of architectures, so a single close match barely moves the global mean
// and variance; this mirrors that by keeping the junk references many and
// close together rather than just one or two.
func sampleCorpora() map[string][]byte {
	corpora := make(map[string][]byte, 14)
	corpora["ARM"] = pseudoRandom(4096, 37, 11, 251)
	for i := 0; i < 12; i++ {
		mult := 41 + 2*i
		add := 13 + 3*i
		corpora[junkName(i)] = pseudoRandom(4096, mult, add, 253)
	}
	corpora["_words_en"] = []byte(`the quick brown fox jumps over the lazy dog and then runs away into the forest at dusk while the owls begin to call from the tall pines`)
	return corpora
}

func junkName(i int) string {
	return "junk" + string(rune('A'+i))
}

func pseudoRandom(n, mult, add, mod int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte((i*mult + add) % mod)
	}
	return out
}

func TestDetectEndToEnd(t *testing.T) {
	ctx := context.Background()
	refs, err := BuildReferences(ctx, sampleCorpora())
	if err != nil {
		t.Fatalf("BuildReferences: %v", err)
	}
	if len(refs) != 14 {
		t.Fatalf("expected 14 references, got %d", len(refs))
	}

	data := pseudoRandom(0x2000, 37, 11, 251) // looks like the ARM reference

	det, err := Detect(ctx, data, refs)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	processed := Aggregate(det)
	if processed.WindowSize != window.HalfWindow(len(data))*2 {
		t.Fatalf("unexpected window size: %d", processed.WindowSize)
	}

	runs := Consolidate(processed.RangeToFinalLabel)
	for _, run := range runs {
		if run.Arch != "ARM" {
			t.Fatalf("expected ARM-like data to be labeled ARM, got run %+v", run)
		}
	}
}

func TestDetectDeterministic(t *testing.T) {
	ctx := context.Background()
	refs, err := BuildReferences(ctx, sampleCorpora())
	if err != nil {
		t.Fatalf("BuildReferences: %v", err)
	}

	data := make([]byte, 0x4000)
	for i := range data {
		data[i] = byte(i % 256)
	}

	det1, err := Detect(ctx, data, refs)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	det2, err := Detect(ctx, data, refs)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	p1 := Aggregate(det1)
	p2 := Aggregate(det2)

	runs1 := Consolidate(p1.RangeToFinalLabel)
	runs2 := Consolidate(p2.RangeToFinalLabel)

	if len(runs1) != len(runs2) {
		t.Fatalf("non-deterministic run count: %d vs %d", len(runs1), len(runs2))
	}
	for i := range runs1 {
		if runs1[i] != runs2[i] {
			t.Fatalf("non-deterministic run at %d: %+v vs %+v", i, runs1[i], runs2[i])
		}
	}
}

func TestDetectShortFile(t *testing.T) {
	ctx := context.Background()
	refs, err := BuildReferences(ctx, sampleCorpora())
	if err != nil {
		t.Fatalf("BuildReferences: %v", err)
	}

	det, err := Detect(ctx, []byte{0x41, 0x42}, refs)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	processed := Aggregate(det)
	if len(processed.BigramResults) != 1 {
		t.Fatalf("expected exactly one range for a 2-byte file, got %d", len(processed.BigramResults))
	}
	runs := Consolidate(processed.RangeToFinalLabel)
	if len(runs) != 0 {
		t.Fatalf("expected no labeled runs for a 2-byte file, got %+v", runs)
	}
}

func TestDetectNoCorpusEntries(t *testing.T) {
	ctx := context.Background()
	det, err := Detect(ctx, make([]byte, 0x1000), nil)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	processed := Aggregate(det)
	runs := Consolidate(processed.RangeToFinalLabel)
	if len(runs) != 0 {
		t.Fatalf("expected no runs when there are no reference architectures, got %+v", runs)
	}
}
