package passphrase

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func TestSampleSingleOutcome(t *testing.T) {
	d := newDistribution(map[byte]int{'x': 7})
	rng := testRand(1)

	for i := 0; i < 10; i++ {
		sym, bits := d.sample(rng)
		require.Equal(t, byte('x'), sym)
		require.Zero(t, bits, "a certain draw costs no entropy")
	}
}

func TestSampleEntropyMatchesDraw(t *testing.T) {
	// counts {a:3, b:1}: drawing 'a' costs -log2(3/4), drawing 'b' costs 2.
	d := newDistribution(map[byte]int{'a': 3, 'b': 1})
	rng := testRand(2)

	costA := -math.Log2(3.0 / 4.0)
	var drewA, drewB int
	for i := 0; i < 4000; i++ {
		sym, bits := d.sample(rng)
		switch sym {
		case 'a':
			drewA++
			require.InDelta(t, costA, bits, 1e-12)
		case 'b':
			drewB++
			require.InDelta(t, 2.0, bits, 1e-12)
		default:
			t.Fatalf("sample returned symbol %q outside the distribution", sym)
		}
	}

	// The draw frequencies should track the 3:1 weights.
	ratio := float64(drewA) / 4000
	require.InDelta(t, 0.75, ratio, 0.03)
}

func TestSampleEqualWeights(t *testing.T) {
	d := newDistribution(map[byte]int{'a': 1, 'b': 1})
	rng := testRand(3)

	_, bits := d.sample(rng)
	require.InDelta(t, 1.0, bits, 1e-12, "an even two-way draw costs exactly one bit")
}

func TestDistributionEntropy(t *testing.T) {
	testCases := []struct {
		name     string
		counts   map[byte]int
		expected float64
	}{
		{"single outcome", map[byte]int{'a': 5}, 0},
		{"fair coin", map[byte]int{'a': 1, 'b': 1}, 1},
		{"two one one", map[byte]int{'a': 2, 'b': 1, 'c': 1}, 1.5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := newDistribution(tc.counts)
			require.InDelta(t, tc.expected, d.entropy(), 1e-12)
		})
	}
}
