/*
Package passphrase generates human-pronounceable, high-entropy passphrases
by sampling a character-level Markov chain trained on a text corpus.

A corpus is tokenized into lowercase words, which train an immutable Model:
for every context of a fixed number of preceding symbols, the model records
how often each next symbol (a letter, or the end-of-word marker) followed it.
A Generator walks the model with weighted-random draws, concatenating words
until a caller-supplied minimum entropy is reached. The reported entropy is
the exact sum of -log2(count/total) over every draw actually made, so it is
a true lower bound on the strength of the returned phrase.

A Model may be shared by any number of Generators running concurrently;
each Generator owns its own randomness source.
*/
package passphrase
