package window

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHalfWindowTable(t *testing.T) {
	tests := []struct {
		l    int
		want int
	}{
		{0, 0x100},
		{0x1000, 0x100},
		{0x1001, 0x200},
		{0x8000, 0x200},
		{0x8001, 0x400},
		{0x20000, 0x400},
		{0x20001, 0x800},
		{0x100000, 0x800},
		{0x100001, 0x1000},
		{0x1000000, 0x1000},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, HalfWindow(tt.l), "HalfWindow(%#x)", tt.l)
	}
}

func TestHalfWindowBigFile(t *testing.T) {
	l := 0x2000000 // 32 MiB, > 0x1000000 threshold
	w := HalfWindow(l)
	require.Positive(t, w, "half-window")
	require.Zero(t, w&0xFFF, "half-window should be a multiple of 0x1000, got %#x", w)
}

func TestPlanCoversWholeFile(t *testing.T) {
	for _, l := range []int{0, 1, 2, 3, 0x2000, 0x10000, 0x123456} {
		ranges := Plan(l)
		if l == 0 {
			require.Empty(t, ranges, "Plan(0)")
			continue
		}
		require.NotEmpty(t, ranges, "Plan(%d)", l)
		require.Zero(t, ranges[0].Start, "Plan(%d): first range should start at 0", l)
		require.Equal(t, l, ranges[len(ranges)-1].End, "Plan(%d): last range should end at %d", l, l)
		for _, r := range ranges {
			require.Less(t, r.Start, r.End, "Plan(%d): degenerate range %+v", l, r)
		}
	}
}

func TestPlanOverlap(t *testing.T) {
	l := 0x2000
	w := HalfWindow(l)
	ranges := Plan(l)
	for i := 0; i < len(ranges)-1; i++ {
		require.Equal(t, w, ranges[i+1].Start-ranges[i].Start, "window %d stride", i)
	}
}

func TestPlanAllZeroFileWindowSize(t *testing.T) {
	l := 0x2000
	w := HalfWindow(l)
	require.Equal(t, 0x200, w, "half-window for 0x2000-byte file")
}

func TestPlanWithOptionsForceBigFile(t *testing.T) {
	l := 0x2000 // well under the natural big-file threshold
	normal := PlanWithOptions(l, false)
	forced := PlanWithOptions(l, true)

	require.False(t, len(normal) == len(forced) && normal[0].End == forced[0].End,
		"forcing big-file mode should change the window plan for a small file")
	require.Zero(t, forced[0].Start, "forced plan start")
	require.Equal(t, l, forced[len(forced)-1].End, "forced plan must still cover [0, %d), got %+v", l, forced)
}
