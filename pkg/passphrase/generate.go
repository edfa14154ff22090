package passphrase

import (
	crand "crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
)

// Passphrase is one generated phrase together with the exact number of
// entropy bits consumed while sampling it.
type Passphrase struct {
	Phrase  string
	Entropy float64
}

// Generator walks a Model to produce passphrases. It is not safe for
// concurrent use itself (it owns a single randomness source), but any number
// of Generators may share one Model.
type Generator struct {
	model  *Model
	rng    *rand.Rand
	logger *slog.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithRand sets the randomness source used for weighted draws. The default
// is a ChaCha8 generator seeded from crypto/rand.
func WithRand(rng *rand.Rand) GeneratorOption {
	return func(g *Generator) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// WithLogger sets the logger for generation diagnostics. By default all
// logs are discarded.
func WithLogger(logger *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator creates a Generator over the given model.
func NewGenerator(model *Model, opts ...GeneratorOption) *Generator {
	g := &Generator{
		model:  model,
		rng:    newSeededRand(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// newSeededRand returns a ChaCha8-backed rand seeded from the platform's
// cryptographic source.
func newSeededRand() *rand.Rand {
	var seed [32]byte
	// crypto/rand.Read is documented to never return an error.
	_, _ = crand.Read(seed[:])
	return rand.New(rand.NewChaCha8(seed))
}

// Passphrase generates words until the accumulated entropy reaches
// minEntropy, returning the space-joined phrase and its exact entropy.
// At least one word is always produced, so the phrase is never empty even
// for a zero threshold; the total may overshoot the threshold by up to one
// word's entropy and is never trimmed.
//
// On any fatal condition the in-progress phrase is discarded entirely:
// an empty transition table returns ErrEmptyModel, a context with no
// recorded transitions returns ErrModelTooSparse, and a positive threshold
// against a zero-entropy model returns ErrNoEntropy rather than walking
// forever.
func (g *Generator) Passphrase(minEntropy float64) (Passphrase, error) {
	if minEntropy < 0 {
		return Passphrase{}, fmt.Errorf("%w: got %v", ErrInvalidMinEntropy, minEntropy)
	}
	if len(g.model.transitions) == 0 {
		return Passphrase{}, ErrEmptyModel
	}
	if minEntropy > 0 && g.model.Entropy() == 0 {
		return Passphrase{}, ErrNoEntropy
	}

	var phrase strings.Builder
	var total float64
	var words int

	for {
		word, bits, err := g.word()
		if err != nil {
			return Passphrase{}, err
		}
		if words > 0 {
			phrase.WriteByte(' ')
		}
		phrase.WriteString(word)
		total += bits
		words++

		g.logger.Debug("word generated",
			slog.Int("length", len(word)),
			slog.Float64("word_bits", bits),
			slog.Float64("total_bits", total),
		)

		if total >= minEntropy {
			return Passphrase{Phrase: phrase.String(), Entropy: total}, nil
		}
	}
}

// word generates a single word: starting from the all-start-marker context,
// it repeatedly samples the next symbol and slides the context window until
// the end-of-word marker is drawn. It returns the word and the exact entropy
// of the draws that produced it (including the final end-marker draw).
func (g *Generator) word() (string, float64, error) {
	context := []byte(g.model.startContext())
	var word strings.Builder
	var bits float64

	for {
		dist, ok := g.model.transitions[string(context)]
		if !ok {
			// The generated suffix never occurred with a continuation in the
			// training corpus. Fail the attempt instead of truncating.
			return "", 0, fmt.Errorf("%w: no transitions for context %q", ErrModelTooSparse, context)
		}
		sym, cost := dist.sample(g.rng)
		bits += cost
		if sym == endSymbol {
			return word.String(), bits, nil
		}
		word.WriteByte(sym)
		context = append(context[1:], sym)
	}
}
