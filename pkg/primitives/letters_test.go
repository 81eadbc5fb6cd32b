package primitives

import (
	"math/rand/v2"
	"testing"
)

func TestNewLetters(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
		want   string
	}{
		{"empty", "", ""},
		{"single word", "simple", "simple"},
		{"spaces removed", "poultry outwits ants", "poultryoutwitsants"},
		{"tabs and newlines removed", "a\tb\nc ", "abc"},
		{"punctuation kept", "it's", "it's"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewLetters(tt.phrase).String(); got != tt.want {
				t.Errorf("NewLetters(%q) = %q, want %q", tt.phrase, got, tt.want)
			}
		})
	}
}

func TestLetters_Consume(t *testing.T) {
	tests := []struct {
		name    string
		letters string
		char    rune
		want    string
		wantOk  bool
	}{
		{"consume present", "abc", 'b', "ac", true},
		{"consume first of duplicates", "abab", 'b', "aab", true},
		{"consume last letter", "a", 'a', "", true},
		{"consume absent", "abc", 'z', "", false},
		{"consume from empty", "", 'a', "", false},
		{"non-letter is free", "abc", '\'', "abc", true},
		{"digit is free", "abc", '7', "abc", true},
		{"case sensitive", "abc", 'A', "", false},
		{"letter number", "abⅫ", 'Ⅻ', "ab", true},
		{"absent letter number", "abc", 'Ⅻ', "", false},
		{"vowel sign", "का", 'ा', "क", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewLetters(tt.letters).Consume(tt.char)
			if ok != tt.wantOk {
				t.Fatalf("Consume(%q) ok = %v, want %v", tt.char, ok, tt.wantOk)
			}
			if ok && got.String() != tt.want {
				t.Errorf("Consume(%q) = %q, want %q", tt.char, got.String(), tt.want)
			}
		})
	}
}

func TestIsAlphabetic(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{'a', true},
		{'Z', true},
		{'é', true},
		{'Ⅻ', true},
		{'ा', true},
		{'7', false},
		{'\'', false},
		{' ', false},
		{'\u0301', false},
	}

	for _, tt := range tests {
		if got := IsAlphabetic(tt.r); got != tt.want {
			t.Errorf("IsAlphabetic(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestLetters_ConsumeDoesNotAlias(t *testing.T) {
	base := NewLetters("aabc")

	first, ok := base.Consume('a')
	if !ok {
		t.Fatal("Consume('a') failed")
	}
	second, ok := base.Consume('c')
	if !ok {
		t.Fatal("Consume('c') failed")
	}

	if base.String() != "aabc" {
		t.Errorf("receiver changed to %q", base.String())
	}
	if first.String() != "abc" {
		t.Errorf("first = %q, want %q", first.String(), "abc")
	}
	if second.String() != "aab" {
		t.Errorf("second = %q, want %q", second.String(), "aab")
	}
}

func TestLetters_IsEmpty(t *testing.T) {
	l := NewLetters("ab")
	if l.IsEmpty() {
		t.Error("IsEmpty() = true, want false")
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}

	l, _ = l.Consume('a')
	l, _ = l.Consume('b')
	if !l.IsEmpty() {
		t.Errorf("IsEmpty() = false after consuming everything, left %q", l.String())
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		word   string
		phrase string
		want   bool
	}{
		{"", "", true},
		{"mips", "simple", true},
		{"arm", "hard", false},
		{"dear", "phrase used here", true},
		{"potatoe", "another phrase", false},
		{"aa", "a", false},
		{"aa", "banana", true},
		{"it's", "tis", true},
		{"ant", "poultry outwits ants", true},
		{"zebra", "poultry outwits ants", false},
	}

	for _, tt := range tests {
		if got := Contains(tt.word, tt.phrase); got != tt.want {
			t.Errorf("Contains(%q, %q) = %v, want %v", tt.word, tt.phrase, got, tt.want)
		}
	}
}

// Contains must agree with a plain letter count comparison for any ordering of the input.
func TestContains_MatchesLetterCounts(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	const alphabet = "abcde"

	randomString := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = alphabet[rng.IntN(len(alphabet))]
		}
		return string(b)
	}

	for range 2000 {
		word := randomString(rng.IntN(6))
		phrase := randomString(rng.IntN(8))

		counts := make(map[rune]int)
		for _, r := range phrase {
			counts[r]++
		}
		want := true
		for _, r := range word {
			counts[r]--
			if counts[r] < 0 {
				want = false
			}
		}

		if got := Contains(word, phrase); got != want {
			t.Fatalf("Contains(%q, %q) = %v, want %v", word, phrase, got, want)
		}
	}
}

// Consuming a word letter by letter accepts exactly what Contains accepts.
func TestContains_AgreesWithConsume(t *testing.T) {
	words := []string{"ant", "tan", "anna", "tent", "a", "", "natant"}
	phrases := []string{"ant", "natant", "an ant", "t"}

	for _, phrase := range phrases {
		for _, word := range words {
			letters := NewLetters(phrase)
			ok := true
			for _, r := range word {
				if letters, ok = letters.Consume(r); !ok {
					break
				}
			}
			if got := Contains(word, phrase); got != ok {
				t.Errorf("Contains(%q, %q) = %v, consume walk = %v", word, phrase, got, ok)
			}
		}
	}
}
