package primitives

import (
	"slices"
	"unicode"
)

// Letters is the multiset of letters still available to an anagram under construction.
//
// It is stored as a sequence of runes. Only counts matter: two occurrences of the same
// letter are interchangeable, so removing the first one is as good as removing any.
//
// A Letters value is never modified in place. Consume returns a new value, so a value can
// be handed to any number of concurrent branches without copying.
type Letters struct {
	runes []rune
}

// NewLetters returns the letters of phrase with all whitespace removed.
func NewLetters(phrase string) Letters {
	runes := make([]rune, 0, len(phrase))
	for _, r := range phrase {
		if unicode.IsSpace(r) {
			continue
		}
		runes = append(runes, r)
	}
	return Letters{runes: runes}
}

// IsAlphabetic reports whether r has the Unicode Alphabetic property: a letter, a letter
// number such as a Roman numeral, or a mark that belongs to a letter.
func IsAlphabetic(r rune) bool {
	return unicode.In(r, unicode.L, unicode.Nl, unicode.Other_Alphabetic)
}

// Consume removes one occurrence of r.
//
// Characters that are not alphabetic are consumed for free, and the receiver is returned
// unchanged. If r is a letter that is not available, ok is false.
func (l Letters) Consume(r rune) (remaining Letters, ok bool) {
	if !IsAlphabetic(r) {
		return l, true
	}

	idx := slices.Index(l.runes, r)
	if idx < 0 {
		return Letters{}, false
	}

	rest := make([]rune, 0, len(l.runes)-1)
	rest = append(rest, l.runes[:idx]...)
	rest = append(rest, l.runes[idx+1:]...)
	return Letters{runes: rest}, true
}

// Len returns the number of runes left.
func (l Letters) Len() int {
	return len(l.runes)
}

// IsEmpty reports whether every letter has been consumed.
func (l Letters) IsEmpty() bool {
	return len(l.runes) == 0
}

func (l Letters) String() string {
	return string(l.runes)
}

// Contains reports whether the letters of word can all be taken from phrase, one
// occurrence per letter. Characters of word that are not letters are skipped.
func Contains(word, phrase string) bool {
	remaining := []rune(phrase)
	for _, r := range word {
		if !IsAlphabetic(r) {
			continue
		}
		idx := slices.Index(remaining, r)
		if idx < 0 {
			return false
		}
		remaining = slices.Delete(remaining, idx, idx+1)
	}
	return true
}
