package tokenizer

import "unicode/utf8"

// Similarity is a position-anchored character match ratio: the number of
// equal characters at equal offsets divided by the longer length. Equal
// strings score 1. Invalid UTF-8 bytes count as one character each and only
// match the identical byte.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longer := max(la, lb)

	matches := 0
	for i, j := 0, 0; i < len(a) && j < len(b); {
		_, wa := utf8.DecodeRuneInString(a[i:])
		_, wb := utf8.DecodeRuneInString(b[j:])
		if a[i:i+wa] == b[j:j+wb] {
			matches++
		}
		i += wa
		j += wb
	}
	return float64(matches) / float64(longer)
}
