// Package ngram computes byte 1-, 2-, and 3-gram frequency distributions
// over a byte slice, with an optional additive smoothing floor. It is the
// statistical heart of the detector: every reference architecture and every
// sliding window of a target file is reduced to one of these distributions
// before anything gets compared.
//
// Adapted from the teacher's internal/keycraft/corpus.go, which builds the
// same kind of n-gram frequency model over rune text for keyboard-layout
// analysis. Here the alphabet is the 256 byte values rather than Unicode
// runes, and a smoothing base count replaces plain occurrence counting.
package ngram

import "github.com/rbscholtus/isadetect/internal/support"

// Target is the synthetic architecture name given to window statistics.
const Target = "target"

// bigramKey packs two bytes into a dense key.
func bigramKey(a, b byte) uint16 {
	return uint16(a)<<8 | uint16(b)
}

// trigramKey packs three bytes into a dense 24-bit key.
func trigramKey(a, b, c byte) uint32 {
	return uint32(a)<<16 | uint32(b)<<8 | uint32(c)
}

// Stats is an immutable byte n-gram frequency model for one architecture
// (or, for window statistics, the synthetic name Target).
//
// Unigrams, Bigrams, and Trigrams map an n-gram to its observed frequency
// (a probability in [0,1]). UnigramBase, BigramBase, and TrigramBase are the
// smoothing floor probabilities assigned to any n-gram of the corresponding
// order that was never observed.
type Stats struct {
	Arch string

	Unigrams map[byte]float64
	Bigrams  map[uint16]float64
	Trigrams map[uint32]float64

	UnigramBase float64
	BigramBase  float64
	TrigramBase float64
}

// Build constructs a Stats from data using base as the additive smoothing
// count. Reference architecture statistics use a small positive base
// (conventionally 0.01); window/target statistics are built with base = 0,
// meaning no smoothing and a zero floor.
//
// The sliding window of 3 bytes (stride 1) yields max(0, len(data)-2)
// triples; each triple (x, y, z) bumps the unigram count for x, the bigram
// count for (x, y), and the trigram count for (x, y, z). A triple's own y
// and z never get their own unigram/bigram increment except when they later
// become the x of a subsequent triple, so the final one or two bytes of
// data are undercounted relative to a naive per-byte scan. This is
// intentional and applies identically to reference and target data.
//
// The first time an n-gram is seen its count starts at 1+base rather than
// 1; later occurrences each add a plain 1. This folds one copy of the
// smoothing mass into the first hit so that any n-gram that was never
// observed carries a weight of exactly `base`, i.e. a frequency of
// base/Qtotal after normalization (the UnigramBase/BigramBase/TrigramBase
// floor), while every observed n-gram's frequency already carries its share
// of the smoothing.
func Build(arch string, data []byte, base float64) *Stats {
	uCounts := make(map[byte]float64)
	bCounts := make(map[uint16]float64)
	tCounts := make(map[uint32]float64)

	numWindows := len(data) - 2
	for i := 0; i < numWindows; i++ {
		x, y, z := data[i], data[i+1], data[i+2]
		bump(uCounts, x, base)
		bump(bCounts, bigramKey(x, y), base)
		bump(tCounts, trigramKey(x, y, z), base)
	}

	s := &Stats{
		Arch:     arch,
		Unigrams: make(map[byte]float64, len(uCounts)),
		Bigrams:  make(map[uint16]float64, len(bCounts)),
		Trigrams: make(map[uint32]float64, len(tCounts)),
	}

	s.UnigramBase = normalize(uCounts, s.Unigrams, base, 1)
	s.BigramBase = normalize(bCounts, s.Bigrams, base, 2)
	s.TrigramBase = normalize(tCounts, s.Trigrams, base, 3)

	return s
}

// bump increments the count for key k: 1+base for the first occurrence,
// plain 1 for every occurrence after that.
func bump[K comparable](m map[K]float64, k K, base float64) {
	if _, ok := m[k]; ok {
		m[k]++
	} else {
		m[k] = 1 + base
	}
}

// TopUnigrams returns this Stats's byte unigrams sorted by descending
// frequency, for diagnostic dumps and plotting. Mirrors the teacher's
// Corpus.StringSorted "top N by count" behavior (internal/keycraft/corpus.go),
// generalized from text bigram counts to byte unigram frequencies.
func (s *Stats) TopUnigrams() []support.CountPair[byte] {
	return support.SortedByCount(s.Unigrams)
}

// alphabetSize returns 256^order.
func alphabetSize(order int) float64 {
	size := 1.0
	for range order {
		size *= 256.0
	}
	return size
}

// normalize converts raw counts into frequencies in place (writing into
// dst) and returns the smoothing base frequency for this order. Qtotal is
// the total probability mass: the smoothing floor spread over every unseen
// n-gram, plus the accumulated raw counts (each of which already carries
// the +base folded into its first hit).
func normalize[K comparable](counts map[K]float64, dst map[K]float64, base float64, order int) float64 {
	observed := float64(len(counts))
	var sum float64
	for _, c := range counts {
		sum += c
	}

	qtotal := base*(alphabetSize(order)-observed) + sum
	if qtotal == 0 {
		// No data and no smoothing mass (base == 0, data too short):
		// every frequency and the floor itself are degenerately zero.
		return 0
	}

	for k, c := range counts {
		dst[k] = c / qtotal
	}

	return base / qtotal
}
