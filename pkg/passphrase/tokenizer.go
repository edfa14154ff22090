package passphrase

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Tokenize reads a corpus from r and returns its words in order. A word is a
// maximal run of ASCII letters, lowercased; every other byte is a separator.
// Runs shorter than minWordLength are discarded. A corpus with no qualifying
// words returns an empty slice and no error; the resulting empty model then
// fails at generation time rather than here.
func Tokenize(r io.Reader, minWordLength int) ([]string, error) {
	if minWordLength < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMinWordLength, minWordLength)
	}

	br := bufio.NewReader(r)
	var words []string
	var current []byte

	flush := func() {
		if len(current) >= minWordLength {
			words = append(words, string(current))
		}
		current = current[:0]
	}

	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("reading corpus: %w", err)
		}
		switch {
		case b >= 'a' && b <= 'z':
			current = append(current, b)
		case b >= 'A' && b <= 'Z':
			current = append(current, b+('a'-'A'))
		default:
			flush()
		}
	}
	flush()

	return words, nil
}

// TokenizeString is a convenience wrapper around Tokenize for in-memory text.
func TokenizeString(text string, minWordLength int) ([]string, error) {
	return Tokenize(strings.NewReader(text), minWordLength)
}
