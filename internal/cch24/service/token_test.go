package service

import (
	"strings"
	"testing"
)

func TestRandomTokenIsUniform(t *testing.T) {
	const tokens = 10000
	counts := make(map[rune]int)
	for i := 0; i < tokens; i++ {
		token := randomToken()
		if len(token) != pageTokenLength {
			t.Fatalf("unexpected token length %d", len(token))
		}
		for _, r := range token {
			if !strings.ContainsRune(tokenAlphabet, r) {
				t.Fatalf("token %q has a character outside the alphabet", token)
			}
			counts[r]++
		}
	}

	want := float64(tokens*pageTokenLength) / float64(len(tokenAlphabet))
	for _, r := range tokenAlphabet {
		got := float64(counts[r])
		if got < want*0.9 || got > want*1.1 {
			t.Fatalf("character %q drawn %v times, want about %.0f", r, got, want)
		}
	}
}
