// Package alphabet assigns dense integer indices to the characters of a word
// list, in order of first appearance.
//
// Every later stage of inference works on indices in [0, dim) rather than
// runes, so matrices can be plain dim×dim slices. [Index] builds the mapping
// once; [Alphabet] is the read-only reverse lookup used to turn ranked
// indices back into characters.
package alphabet

// Word is a word rewritten as alphabet indices, one per character, in the
// original order.
type Word []int

// Alphabet is the reverse mapping from dense index to character.
// a[i] is the i-th distinct character seen.
type Alphabet []rune

// Index converts each word into its index sequence and returns the alphabet
// that produced them. Indices are assigned in first-seen order, scanning
// words left to right and each word left to right. Index never fails; an
// empty input yields an empty alphabet.
func Index(words []string) ([]Word, Alphabet) {
	seen := make(map[rune]int)
	indexed := make([]Word, 0, len(words))
	var chars Alphabet

	for _, w := range words {
		word := make(Word, 0, len(w))
		for _, r := range w {
			i, ok := seen[r]
			if !ok {
				i = len(chars)
				seen[r] = i
				chars = append(chars, r)
			}
			word = append(word, i)
		}
		indexed = append(indexed, word)
	}
	return indexed, chars
}

// Dim returns the alphabet size.
func (a Alphabet) Dim() int { return len(a) }

// Rune returns the character at index i.
func (a Alphabet) Rune(i int) rune { return a[i] }

// Restore maps indices back to characters, preserving order.
func (a Alphabet) Restore(indices []int) []rune {
	out := make([]rune, len(indices))
	for i, idx := range indices {
		out[i] = a[idx]
	}
	return out
}

// Word rebuilds the string for an indexed word.
func (a Alphabet) Word(w Word) string {
	return string(a.Restore(w))
}
