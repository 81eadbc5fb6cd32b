package internal

import (
	"context"
	"slices"
	"strings"
	"unicode/utf8"

	"crosswarped.com/anagram/pkg/primitives"
)

// DefaultMinWordLength is the shortest word kept when FilterParams.MinWordLength is nil.
const DefaultMinWordLength = 2

type FilterParams struct {
	// Phrase is the phrase anagrams are searched for. Only words whose letters it
	// contains are kept.
	Phrase        string
	MinWordLength *int
	MaxWordLength *int
}

type params struct {
	phrase        string
	minWordLength int
	maxWordLength int
}

func asParams(p FilterParams) params {
	pp := params{
		phrase: p.Phrase,
	}

	if p.MinWordLength == nil {
		pp.minWordLength = DefaultMinWordLength
	} else {
		pp.minWordLength = *p.MinWordLength
	}

	if p.MaxWordLength == nil {
		pp.maxWordLength = primitives.NewLetters(p.Phrase).Len()
	} else {
		pp.maxWordLength = *p.MaxWordLength
	}

	return pp
}

// FilterWords turns the raw lines of a dictionary into the word list the trie is built from.
//
// Empty entries and entries containing anything but letters are dropped, the rest are
// lower-cased and deduplicated. Words whose letters cannot all be taken from the phrase,
// or whose length is out of bounds, are dropped too. The result is sorted by length, then
// alphabetically.
func FilterWords(ctx context.Context, lines []string, p FilterParams) ([]string, error) {
	params := asParams(p)

	words := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" || strings.ContainsFunc(line, isNotLetter) {
			continue
		}
		words = append(words, strings.ToLower(line))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slices.Sort(words)
	words = slices.Compact(words)

	kept := words[:0]
	for _, word := range words {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		n := utf8.RuneCountInString(word)
		if n < params.minWordLength || n > params.maxWordLength {
			continue
		}
		if !primitives.Contains(word, params.phrase) {
			continue
		}
		kept = append(kept, word)
	}

	slices.SortStableFunc(kept, func(a, b string) int {
		return utf8.RuneCountInString(a) - utf8.RuneCountInString(b)
	})
	return kept, nil
}

func isNotLetter(r rune) bool {
	return !primitives.IsAlphabetic(r)
}
