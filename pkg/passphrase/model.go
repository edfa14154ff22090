package passphrase

import (
	"fmt"
	"sort"
)

const (
	// startSymbol pads the context at the beginning of every word. It is
	// outside the lowercase letter range, so a padded context can never
	// collide with one formed from letters.
	startSymbol = '^'
	// endSymbol marks the end of a word. It only ever appears as an observed
	// next symbol, never inside a context.
	endSymbol = '$'
)

// Model is a character-level Markov chain built from a tokenized corpus.
// For every context of `order` preceding symbols it stores the weighted
// distribution of observed next symbols. A Model is immutable once built
// (Prune being the one pre-generation exception) and may be read by any
// number of concurrent generation walks.
type Model struct {
	order       int
	transitions map[string]*distribution
}

// NewModel builds the transition table from the given words, which must be
// the output of Tokenize (lowercase ASCII letters only). Each word is padded
// with `order` start markers and terminated by one end marker, and an
// order-wide window slides across the padded sequence counting every
// (context, next symbol) observation.
//
// An empty word list is not an error here; it yields a model with an empty
// table, which any later generation call rejects with ErrEmptyModel.
func NewModel(words []string, order int) (*Model, error) {
	if order < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidOrder, order)
	}

	counts := make(map[string]map[byte]int)
	padded := make([]byte, 0, 64)
	for _, word := range words {
		if len(word) == 0 {
			continue
		}
		padded = padded[:0]
		for i := 0; i < order; i++ {
			padded = append(padded, startSymbol)
		}
		padded = append(padded, word...)
		padded = append(padded, endSymbol)

		// The last window starts just before the end marker, so the marker
		// is observed as a next symbol exactly once per word.
		for i := 0; i+order < len(padded); i++ {
			context := string(padded[i : i+order])
			next := padded[i+order]
			dist, ok := counts[context]
			if !ok {
				dist = make(map[byte]int)
				counts[context] = dist
			}
			dist[next]++
		}
	}

	transitions := make(map[string]*distribution, len(counts))
	for context, dist := range counts {
		transitions[context] = newDistribution(dist)
	}

	return &Model{order: order, transitions: transitions}, nil
}

// Order returns the number of preceding symbols each context holds.
func (m *Model) Order() int {
	return m.order
}

// Entropy returns the total Shannon entropy of the transition table: the sum
// over every context of -p*log2(p) across its distribution. A model with
// zero total entropy is fully deterministic, so no walk through it can ever
// accumulate a positive number of bits.
func (m *Model) Entropy() float64 {
	var total float64
	for _, dist := range m.transitions {
		total += dist.entropy()
	}
	return total
}

// startContext returns the all-start-marker context that begins every word.
func (m *Model) startContext() string {
	ctx := make([]byte, m.order)
	for i := range ctx {
		ctx[i] = startSymbol
	}
	return string(ctx)
}

// ModelStats holds aggregated statistics for a built Model.
type ModelStats struct {
	Contexts       int // number of distinct contexts in the table
	Transitions    int // number of unique (context, next symbol) links
	TotalFrequency int // sum of all observation counts
	StartSymbols   int // distinct symbols reachable from the all-start context
}

// Stats returns a snapshot of the model's table for diagnostics.
func (m *Model) Stats() ModelStats {
	stats := ModelStats{Contexts: len(m.transitions)}
	for _, dist := range m.transitions {
		stats.Transitions += len(dist.counts)
		stats.TotalFrequency += dist.total
	}
	if start, ok := m.transitions[m.startContext()]; ok {
		stats.StartSymbols = len(start.counts)
	}
	return stats
}

// Prune removes every transition observed fewer than minCount times, along
// with any context left without transitions, and returns the number of
// links removed. Pruning shrinks models built from noisy corpora but makes
// them sparser; it must happen before the model is handed to any Generator.
func (m *Model) Prune(minCount int) int {
	var removed int
	for context, dist := range m.transitions {
		kept := make(map[byte]int, len(dist.counts))
		for i, sym := range dist.symbols {
			if dist.counts[i] >= minCount {
				kept[sym] = dist.counts[i]
			} else {
				removed++
			}
		}
		if len(kept) == 0 {
			delete(m.transitions, context)
			continue
		}
		if len(kept) != len(dist.counts) {
			m.transitions[context] = newDistribution(kept)
		}
	}
	return removed
}

// newDistribution freezes a count map into a distribution with a
// deterministic symbol order.
func newDistribution(counts map[byte]int) *distribution {
	d := &distribution{
		symbols: make([]byte, 0, len(counts)),
		counts:  make([]int, 0, len(counts)),
	}
	for sym := range counts {
		d.symbols = append(d.symbols, sym)
	}
	sort.Slice(d.symbols, func(i, j int) bool { return d.symbols[i] < d.symbols[j] })
	for _, sym := range d.symbols {
		d.counts = append(d.counts, counts[sym])
		d.total += counts[sym]
	}
	return d
}
