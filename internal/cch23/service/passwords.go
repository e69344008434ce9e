package service

import (
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"net/http"
	"strings"
	"unicode"
)

// Verdict is the judgement of a password. Status is the HTTP status that
// carries it.
type Verdict struct {
	Status int
	Nice   bool
	Reason string
}

func naughty(status int, reason string) Verdict {
	return Verdict{Status: status, Reason: reason}
}

// IsNice applies the three classic rules: at least three vowels, one letter
// that appears twice in a row, and none of the forbidden pairs.
func IsNice(input string) bool {
	vowels := 0
	doubled := false
	var prev rune
	for i, r := range input {
		if strings.ContainsRune("aeiouy", r) {
			vowels++
		}
		if i > 0 && r == prev && unicode.IsLetter(r) {
			doubled = true
		}
		prev = r
	}
	for _, bad := range []string{"ab", "cd", "pq", "xy"} {
		if strings.Contains(input, bad) {
			return false
		}
	}
	return vowels >= 3 && doubled
}

var gameRules = []struct {
	status int
	reason string
	ok     func(string) bool
}{
	{http.StatusBadRequest, "8 chars", func(s string) bool { return len([]rune(s)) >= 8 }},
	{http.StatusBadRequest, "more types of chars", hasCharTypes},
	{http.StatusBadRequest, "55555", func(s string) bool { return countDigits(s) >= 5 }},
	{http.StatusBadRequest, "math is hard", sumsTo2023},
	{http.StatusNotAcceptable, "not joyful enough", isJoyful},
	{http.StatusUnavailableForLegalReasons, "illegal: no sandwich", hasSandwich},
	{http.StatusRequestedRangeNotSatisfiable, "outranged", hasRangedChar},
	{http.StatusUpgradeRequired, "😳", hasEmoji},
	{http.StatusTeapot, "not a coffee brewer", hashEndsInA},
}

// JudgeGame runs the password game rules in order and stops at the first
// broken one.
func JudgeGame(input string) Verdict {
	for _, rule := range gameRules {
		if !rule.ok(input) {
			return naughty(rule.status, rule.reason)
		}
	}
	return Verdict{Status: http.StatusOK, Nice: true, Reason: "that's a nice password"}
}

func hasCharTypes(s string) bool {
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case 'A' <= r && r <= 'Z':
			upper = true
		case 'a' <= r && r <= 'z':
			lower = true
		case '0' <= r && r <= '9':
			digit = true
		}
	}
	return upper && lower && digit
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if '0' <= r && r <= '9' {
			n++
		}
	}
	return n
}

// sumsTo2023 adds up every maximal run of digits. Runs may exceed 64 bits.
func sumsTo2023(s string) bool {
	sum := new(big.Int)
	for _, run := range strings.FieldsFunc(s, func(r rune) bool { return r < '0' || r > '9' }) {
		n, ok := new(big.Int).SetString(run, 10)
		if !ok {
			return false
		}
		sum.Add(sum, n)
	}
	return sum.Cmp(big.NewInt(2023)) == 0
}

func isJoyful(s string) bool {
	var b strings.Builder
	for _, r := range s {
		if r == 'j' || r == 'o' || r == 'y' {
			b.WriteRune(r)
		}
	}
	return b.String() == "joy"
}

func hasSandwich(s string) bool {
	runes := []rune(s)
	for i := 0; i+2 < len(runes); i++ {
		a, b, c := runes[i], runes[i+1], runes[i+2]
		if unicode.IsLetter(a) && unicode.IsLetter(b) && a == c && a != b {
			return true
		}
	}
	return false
}

func hasRangedChar(s string) bool {
	for _, r := range s {
		if r >= 0x2980 && r <= 0x2BFF {
			return true
		}
	}
	return false
}

func hasEmoji(s string) bool {
	for _, r := range s {
		if r >= 0x1F000 && r <= 0x1FAFF {
			return true
		}
	}
	return false
}

func hashEndsInA(s string) bool {
	sum := sha256.Sum256([]byte(s))
	return strings.HasSuffix(hex.EncodeToString(sum[:]), "a")
}
