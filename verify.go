package anagram

import (
	"crypto/md5"
	"encoding/hex"
)

// Verifier checks candidate anagrams against a fixed set of target digests.
type Verifier struct {
	accepted map[string]struct{}
}

// NewVerifier returns a Verifier accepting the given lowercase hex MD5 digests.
// Comparison is exact, so upper case digests never match.
func NewVerifier(hashes []string) *Verifier {
	accepted := make(map[string]struct{}, len(hashes))
	for _, h := range hashes {
		accepted[h] = struct{}{}
	}
	return &Verifier{accepted: accepted}
}

// Digest returns the lowercase hex MD5 of text.
func Digest(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Verify returns the digest of text and whether it is one of the accepted digests.
func (v *Verifier) Verify(text string) (string, bool) {
	if len(v.accepted) == 0 {
		return "", false
	}
	digest := Digest(text)
	if _, ok := v.accepted[digest]; !ok {
		return "", false
	}
	return digest, true
}

// Len returns the number of accepted digests.
func (v *Verifier) Len() int {
	return len(v.accepted)
}
