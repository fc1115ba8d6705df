package match

import (
	"strings"
	"unicode/utf8"

	"github.com/sandevgo/crmchat/pkg/textnorm"
)

// Similarity returns how alike two strings are, from 0 (unrelated) to 1
// (equal after normalization). The ladder is: equality, containment (0.9),
// shared words (handles reversed names such as "כהן יוסי"), and finally
// PositionalDistance.
func Similarity(a, b string) float64 {
	s1 := textnorm.Normalize(a)
	s2 := textnorm.Normalize(b)

	if s1 == s2 {
		return 1
	}
	if s1 == "" || s2 == "" {
		return 0
	}
	if strings.Contains(s1, s2) || strings.Contains(s2, s1) {
		return 0.9
	}

	words1 := textnorm.Words(s1)
	words2 := textnorm.Words(s2)
	matching := 0
	for _, w1 := range words1 {
		for _, w2 := range words2 {
			if strings.Contains(w1, w2) || strings.Contains(w2, w1) {
				matching++
				break
			}
		}
	}
	if matching > 0 {
		return float64(matching) / float64(max(len(words1), len(words2)))
	}

	maxLen := max(utf8.RuneCountInString(s1), utf8.RuneCountInString(s2))
	return 1 - float64(PositionalDistance(s1, s2))/float64(maxLen)
}

// PositionalDistance counts the characters that differ at the same index
// plus the length difference. It is not an edit distance: a single
// insertion near the start shifts every later character and is counted as
// many mismatches, and transpositions count twice.
func PositionalDistance(a, b string) int {
	r1 := []rune(a)
	r2 := []rune(b)

	distance := 0
	for i := 0; i < min(len(r1), len(r2)); i++ {
		if r1[i] != r2[i] {
			distance++
		}
	}
	if len(r1) > len(r2) {
		distance += len(r1) - len(r2)
	} else {
		distance += len(r2) - len(r1)
	}
	return distance
}
