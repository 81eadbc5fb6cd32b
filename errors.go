package anagram

import (
	"errors"
	"fmt"
)

var (
	// ErrNilTrie is returned when a Finder is created without a trie.
	ErrNilTrie = errors.New("trie root must not be nil")

	// ErrEmptyPhrase is returned when the phrase has no characters left once whitespace is removed.
	ErrEmptyPhrase = errors.New("phrase must not be empty")
)

// ErrInvalidMaxWords indicates a maximum word count below one.
type ErrInvalidMaxWords struct {
	MaxWords int
}

func (e *ErrInvalidMaxWords) Error() string {
	return fmt.Sprintf("invalid max words: %d (must be at least 1)", e.MaxWords)
}
