// Package trie implements the prefix tree the anagram search walks.
package trie

import "iter"

// RootCharacter is the character held by the root of every trie. It is never matched
// against a phrase.
const RootCharacter = '_'

// Letter is a node in the trie. Each node represents one letter; the path from the root
// to a node spells a prefix of one or more dictionary words.
//
// A trie is built once and is read-only afterwards, so it may be shared between any
// number of goroutines.
type Letter struct {
	character rune
	// children are kept in insertion order. No two children share a character.
	children []*Letter
	isWord   bool
}

func newLetter(character rune) *Letter {
	return &Letter{character: character}
}

// Character returns the letter this node represents.
func (l *Letter) Character() rune {
	return l.character
}

// Children returns the next possible letters. The returned slice must not be modified.
func (l *Letter) Children() []*Letter {
	return l.children
}

// IsWord reports whether the path from the root to this node spells a dictionary word.
func (l *Letter) IsWord() bool {
	return l.isWord
}

// Child returns the child holding character, or nil.
func (l *Letter) Child(character rune) *Letter {
	for _, child := range l.children {
		if child.character == character {
			return child
		}
	}
	return nil
}

// Build creates a trie holding words and returns its root.
//
// Words are expected to be non-empty, lower case and alphabetic; they are not validated.
func Build(words []string) *Letter {
	root := newLetter(RootCharacter)
	for _, word := range words {
		root.Insert(word)
	}
	return root
}

// Insert adds word below l. Inserting a word more than once has no further effect.
func (l *Letter) Insert(word string) {
	parent := l
	for _, c := range word {
		parent = parent.findOrInsert(c)
	}
	if parent != l {
		parent.isWord = true
	}
}

func (l *Letter) findOrInsert(character rune) *Letter {
	if child := l.Child(character); child != nil {
		return child
	}
	child := newLetter(character)
	l.children = append(l.children, child)
	return child
}

// Walk follows word from l and returns the node it ends on, or nil if there is no such path.
func (l *Letter) Walk(word string) *Letter {
	node := l
	for _, c := range word {
		if node = node.Child(c); node == nil {
			return nil
		}
	}
	return node
}

// Contains reports whether word was inserted below l.
func (l *Letter) Contains(word string) bool {
	if word == "" {
		return false
	}
	node := l.Walk(word)
	return node != nil && node.isWord
}

// Words returns every word below l, depth first, children in insertion order.
func (l *Letter) Words() iter.Seq[string] {
	return func(yield func(string) bool) {
		l.words(nil, yield)
	}
}

func (l *Letter) words(prefix []rune, yield func(string) bool) bool {
	for _, child := range l.children {
		word := append(prefix, child.character)
		if child.isWord && !yield(string(word)) {
			return false
		}
		if !child.words(word, yield) {
			return false
		}
	}
	return true
}

// Size returns the number of nodes below l.
func (l *Letter) Size() int {
	n := 0
	for _, child := range l.children {
		n += 1 + child.Size()
	}
	return n
}
