package tilemapping

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Tokenize splits word into tile units. At each position the longest
// matching multi-letter tile wins; anything else is one rune per unit.
// Tokenize("quit", []string{"qu"}) is ["qu", "i", "t"].
func Tokenize(word string, multi []string) []string {
	if len(multi) == 0 {
		return splitRunes(word)
	}
	sorted := slices.Clone(multi)
	slices.SortFunc(sorted, func(a, b string) int {
		return cmp.Compare(len(b), len(a))
	})
	units := make([]string, 0, utf8.RuneCountInString(word))
	for len(word) > 0 {
		matched := ""
		for _, m := range sorted {
			if m != "" && strings.HasPrefix(word, m) {
				matched = m
				break
			}
		}
		if matched == "" {
			_, size := utf8.DecodeRuneInString(word)
			matched = word[:size]
		}
		units = append(units, matched)
		word = word[len(matched):]
	}
	return units
}

func splitRunes(word string) []string {
	units := make([]string, 0, utf8.RuneCountInString(word))
	for _, r := range word {
		units = append(units, string(r))
	}
	return units
}
