// Package support holds small generic helpers shared across the detector,
// corpus loader, and CLI. Ported from the teacher's internal/keycraft
// common.go and trimmed to what this module actually uses.
package support

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
)

// IfThen returns `a` if the condition is true, otherwise returns `b`.
// Both `a` and `b` are always evaluated before the function is called,
// so avoid using it with expensive operations or values that may be invalid.
func IfThen[T any](condition bool, a, b T) T {
	if condition {
		return a
	}
	return b
}

// CountPair is a key/count pair extracted from a map[K]float64, used to
// render sorted top-N n-gram dumps.
type CountPair[K comparable] struct {
	Key   K
	Count float64
}

// SortedByCount returns a slice of key/count pairs from a map, sorted in
// descending order by count.
func SortedByCount[K comparable](m map[K]float64) []CountPair[K] {
	if m == nil {
		return []CountPair[K]{}
	}

	pairs := make([]CountPair[K], 0, len(m))
	for k, v := range m {
		pairs = append(pairs, CountPair[K]{k, v})
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Count > pairs[j].Count
	})

	return pairs
}

// CloseFile closes a file and logs any error that occurs.
func CloseFile(file *os.File) {
	if err := file.Close(); err != nil {
		log.Printf("error closing file: %v", err)
	}
}

// MustFprintf writes a formatted string to the given writer, logging and
// exiting on error. Simplifies error handling for progress output where
// a write failure is unrecoverable.
func MustFprintf(w io.Writer, format string, args ...interface{}) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		log.Fatalf("write failed: %v", err)
	}
}
