package passphrase

import (
	"math"
	"math/rand/v2"
)

// distribution is the weighted set of next symbols recorded for one context.
// symbols and counts are parallel slices in ascending symbol order; total is
// the sum of counts and is always at least 1 for a distribution in the table.
type distribution struct {
	symbols []byte
	counts  []int
	total   int
}

// sample draws one symbol with probability proportional to its count, using
// cumulative-weight inversion over a uniform draw in [0, total). The second
// return value is the entropy cost of the draw in bits, -log2(count/total),
// computed from the same count and total that decided the draw so the
// reported strength exactly matches the randomness consumed.
func (d *distribution) sample(rng *rand.Rand) (byte, float64) {
	n := rng.IntN(d.total)
	for i, count := range d.counts {
		n -= count
		if n < 0 {
			return d.symbols[i], -math.Log2(float64(count) / float64(d.total))
		}
	}
	// Unreachable: the counts sum to total by construction.
	panic("passphrase: weighted draw exhausted distribution")
}

// entropy returns the Shannon entropy of the distribution in bits.
func (d *distribution) entropy() float64 {
	var bits float64
	for _, count := range d.counts {
		p := float64(count) / float64(d.total)
		bits -= p * math.Log2(p)
	}
	return bits
}
