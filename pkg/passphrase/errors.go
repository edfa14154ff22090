package passphrase

import "errors"

// Sentinel errors returned by model construction and generation. They are
// distinct so callers can pick user-facing messages with errors.Is; wrapped
// errors carry additional context.
var (
	// ErrEmptyModel is returned when generation is attempted against a model
	// whose transition table is empty, typically because tokenization
	// produced no qualifying words.
	ErrEmptyModel = errors.New("passphrase: model has no transitions")

	// ErrModelTooSparse is returned when a generation walk reaches a context
	// with no recorded transitions. The corpus is too small for the requested
	// n-gram order; the caller may retry with a lower order or more text.
	ErrModelTooSparse = errors.New("passphrase: model too sparse")

	// ErrNoEntropy is returned when a positive entropy threshold is requested
	// from a model whose every distribution is deterministic. Such a walk
	// accumulates zero bits and could never terminate.
	ErrNoEntropy = errors.New("passphrase: corpus has no entropy")

	// ErrInvalidOrder is returned by NewModel for an n-gram order below one.
	ErrInvalidOrder = errors.New("passphrase: ngram order must be at least 1")

	// ErrInvalidMinEntropy is returned for a negative entropy threshold.
	ErrInvalidMinEntropy = errors.New("passphrase: minimum entropy must not be negative")

	// ErrInvalidMinWordLength is returned by the tokenizer for a minimum
	// word length below one.
	ErrInvalidMinWordLength = errors.New("passphrase: minimum word length must be at least 1")
)
