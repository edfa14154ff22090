package passphrase

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewModelTransitionCounts(t *testing.T) {
	// Words "aab" and "aac" with order 1: the second letters observed after
	// 'a' are {a:2, b:1, c:1}; the end marker is reachable only from the
	// contexts ending in 'b' or 'c'.
	m, err := NewModel([]string{"aab", "aac"}, 1)
	require.NoError(t, err)

	start := m.transitions["^"]
	require.NotNil(t, start)
	require.Equal(t, []byte{'a'}, start.symbols)
	require.Equal(t, []int{2}, start.counts)

	a := m.transitions["a"]
	require.NotNil(t, a)
	require.Equal(t, []byte{'a', 'b', 'c'}, a.symbols)
	require.Equal(t, []int{2, 1, 1}, a.counts)
	require.Equal(t, 4, a.total)

	for _, context := range []string{"b", "c"} {
		dist := m.transitions[context]
		require.NotNil(t, dist)
		require.Equal(t, []byte{endSymbol}, dist.symbols)
		require.Equal(t, []int{1}, dist.counts)
	}
	require.Len(t, m.transitions, 4)
}

func TestNewModelPadding(t *testing.T) {
	// With order 3 a three-letter word contributes one transition per padded
	// window: ^^^ -> t, ^^t -> h, ^th -> e, the -> $.
	m, err := NewModel([]string{"the"}, 3)
	require.NoError(t, err)
	require.Len(t, m.transitions, 4)

	for _, context := range []string{"^^^", "^^t", "^th", "the"} {
		require.Contains(t, m.transitions, context)
	}
	require.Equal(t, []byte{endSymbol}, m.transitions["the"].symbols)
}

func TestNewModelEmptyCorpus(t *testing.T) {
	m, err := NewModel(nil, 3)
	require.NoError(t, err)
	require.Empty(t, m.transitions)
	require.Equal(t, 3, m.Order())
}

func TestNewModelInvalidOrder(t *testing.T) {
	for _, order := range []int{0, -2} {
		_, err := NewModel([]string{"word"}, order)
		require.ErrorIs(t, err, ErrInvalidOrder)
	}
}

// Every context's counts must derive probabilities that sum to one.
func TestModelNormalization(t *testing.T) {
	words, err := TokenizeString(
		"it is a truth universally acknowledged that a single man in "+
			"possession of a good fortune must be in want of a wife", 4)
	require.NoError(t, err)

	for _, order := range []int{1, 2, 3} {
		m, err := NewModel(words, order)
		require.NoError(t, err)
		for context, dist := range m.transitions {
			var sum float64
			for _, count := range dist.counts {
				require.GreaterOrEqual(t, count, 1)
				sum += float64(count) / float64(dist.total)
			}
			require.InDelta(t, 1.0, sum, 1e-9, "context %q", context)
		}
	}
}

func TestModelEntropy(t *testing.T) {
	// A single repeated word without internal repetition is fully
	// deterministic at order 2.
	m, err := NewModel([]string{"abc", "abc"}, 2)
	require.NoError(t, err)
	require.Zero(t, m.Entropy())

	// For aab/aac at order 1 the only uncertain context is 'a', whose
	// distribution {2,1,1}/4 carries 1.5 bits.
	m, err = NewModel([]string{"aab", "aac"}, 1)
	require.NoError(t, err)
	require.InDelta(t, 1.5, m.Entropy(), 1e-9)
}

func TestModelStats(t *testing.T) {
	m, err := NewModel([]string{"aab", "aac"}, 1)
	require.NoError(t, err)

	stats := m.Stats()
	require.Equal(t, 4, stats.Contexts)
	require.Equal(t, 6, stats.Transitions)
	// Each word contributes len+1 observations.
	require.Equal(t, 8, stats.TotalFrequency)
	require.Equal(t, 1, stats.StartSymbols)
}

func TestModelPrune(t *testing.T) {
	m, err := NewModel([]string{"aab", "aac"}, 1)
	require.NoError(t, err)

	removed := m.Prune(2)
	require.Equal(t, 4, removed) // a->b, a->c, b->$, c->$

	// The rare continuations are gone, their contexts with them.
	require.Len(t, m.transitions, 2)
	require.Equal(t, []byte{'a'}, m.transitions["a"].symbols)
	require.Equal(t, []int{2}, m.transitions["a"].counts)

	// Pruning everything leaves an empty model.
	removed = m.Prune(3)
	require.Equal(t, 2, removed)
	require.Empty(t, m.transitions)
}
