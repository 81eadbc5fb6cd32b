package anagram

import (
	"fmt"
	"strings"
)

// Match is an anagram of the phrase whose digest is one of the accepted digests.
type Match struct {
	// Text is the anagram, words separated by single spaces.
	Text string
	// Digest is the lowercase hex digest of Text.
	Digest string
}

// Words returns the words of the anagram.
func (m Match) Words() []string {
	return strings.Fields(m.Text)
}

// Repr returns the match the way it is persisted: the digest, a space, then the anagram.
func (m Match) Repr() string {
	return m.Digest + " " + m.Text
}

func (m Match) DebugString() string {
	return fmt.Sprintf("Match{text: %q, digest: %s, words: %d}", m.Text, m.Digest, len(m.Words()))
}
