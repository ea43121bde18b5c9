package strength

import (
	"math"
	"unicode/utf8"
)

// Entropy estimates the information content of password in bits.
//
// It computes the Shannon entropy of the password's own code-point
// distribution and multiplies it by the length in code points. The
// estimate knows nothing about dictionaries or keyboard patterns: it
// only measures how evenly the characters that are present are used.
// The empty string has exactly 0 bits, as does any single repeated
// character.
func Entropy(password string) float64 {
	n := utf8.RuneCountInString(password)
	if n == 0 {
		return 0
	}

	freq := make(map[rune]int, n)
	for _, r := range password {
		freq[r]++
	}
	if len(freq) == 1 {
		return 0
	}

	total := float64(n)
	h := 0.0
	for _, count := range freq {
		p := float64(count) / total
		h -= p * math.Log2(p)
	}
	return h * total
}

// Length returns the password length in code points.
func Length(password string) int {
	return utf8.RuneCountInString(password)
}
