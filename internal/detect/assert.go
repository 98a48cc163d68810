package detect

import (
	"fmt"
	"math"
)

// assertFinite panics if a computed divergence is NaN. Per spec.md §7.3,
// NaN cannot occur for non-degenerate inputs (the smoothing floor is
// strictly positive for every reference), so seeing one here means a
// programmer error upstream, not a runtime condition callers should expect
// to recover from.
func assertFinite(arch, order string, div float64) {
	if math.IsNaN(div) {
		panic(fmt.Sprintf("detect: NaN %s divergence against reference %q", order, arch))
	}
}
