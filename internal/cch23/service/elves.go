package service

import "strings"

// ElfCount is the response of the elf counter.
type ElfCount struct {
	Elf         int `json:"elf"`
	ElfOnAShelf int `json:"elf on a shelf"`
	BareShelves int `json:"shelf with no elf on it"`
}

// countOverlapping counts occurrences of sub in s, allowing overlaps.
func countOverlapping(s, sub string) int {
	n := 0
	for i := 0; ; {
		j := strings.Index(s[i:], sub)
		if j < 0 {
			return n
		}
		n++
		i += j + 1
	}
}

// CountElves counts elves, elves sitting on shelves and empty shelves in text.
func CountElves(text string) ElfCount {
	onShelf := countOverlapping(text, "elf on a shelf")
	return ElfCount{
		Elf:         strings.Count(text, "elf"),
		ElfOnAShelf: onShelf,
		BareShelves: strings.Count(text, "shelf") - onShelf,
	}
}
