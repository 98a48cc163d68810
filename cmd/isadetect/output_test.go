package main

import (
	"encoding/json"
	"testing"

	"github.com/rbscholtus/isadetect/internal/detect"
	"github.com/rbscholtus/isadetect/internal/window"
)

func TestRangeResultJSONShape(t *testing.T) {
	r := rangeResultJSON{Range: [2]int{10, 20}, Len: 10, Arch: "ARM"}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `[[10,20],10,"ARM"]`
	if string(b) != want {
		t.Fatalf("expected %s, got %s", want, b)
	}
}

func TestFileResultJSONShape(t *testing.T) {
	fr := fileResult{
		File: "sample.bin",
		RangeResults: []rangeResultJSON{
			{Range: [2]int{0, 100}, Len: 100, Arch: "ARM"},
		},
	}
	b, err := json.Marshal(fr)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"file":"sample.bin","range_results":[[[0,100],100,"ARM"]]}`
	if string(b) != want {
		t.Fatalf("expected %s, got %s", want, b)
	}
}

func TestFileResultOmitsUnknownRanges(t *testing.T) {
	mips := "MIPS"
	runs := detect.Consolidate(map[window.Range]*string{
		{Start: 0, End: 50}:   &mips,
		{Start: 50, End: 100}: nil, // unknown range
	})
	fr := fileResult{File: "x", RangeResults: make([]rangeResultJSON, 0, len(runs))}
	for _, r := range runs {
		fr.RangeResults = append(fr.RangeResults, rangeResultJSON{
			Range: [2]int{r.Range.Start, r.Range.End},
			Len:   r.Length,
			Arch:  r.Arch,
		})
	}
	if len(fr.RangeResults) != 1 {
		t.Fatalf("expected exactly the one known run, got %d", len(fr.RangeResults))
	}
}
