package textnorm

import (
	"regexp"
	"strings"
	"unicode"
)

// leetMap covers the substitutions seen in live abuse traffic. Kept
// deliberately smaller than a full leet alphabet: mappings like 2→z or
// 9→g fire on ordinary text far more often than they recover attacks.
var leetMap = map[rune]rune{
	'4': 'a', '3': 'e', '1': 'i', '0': 'o', '5': 's', '7': 't', '8': 'b',
	'@': 'a', '$': 's', '!': 'i', '+': 't', '|': 'i',
}

// leetAlternation is the substitute set rendered safe for embedding in a
// regular expression. Symbols like $, + and | are regex metacharacters,
// so each literal is quoted before joining.
var leetAlternation = buildLeetAlternation()

func buildLeetAlternation() string {
	parts := make([]string, 0, len(leetMap))
	for r := range leetMap {
		parts = append(parts, regexp.QuoteMeta(string(r)))
	}
	// Deterministic order keeps the compiled pattern stable across runs.
	sortStrings(parts)
	return strings.Join(parts, "|")
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// foldLeet replaces digit/symbol substitutes with letters, but only when
// the substitute is interior to a word: both sides must reach a letter,
// possibly through further substitutes. "k1ll", "a$$hole" and "n00b"
// fold; "stop!!", "1st", "911" and "server-prod-03" do not. Without the
// interior rule ordinary punctuation and numbering would be rewritten
// into false positives on every message.
func foldLeet(text string) (string, int) {
	runes := []rune(text)
	changes := 0
	for i, r := range runes {
		repl, ok := leetMap[unicode.ToLower(r)]
		if !ok {
			continue
		}
		if !reachesLetter(runes, i, -1) || !reachesLetter(runes, i, +1) {
			continue
		}
		if unicode.IsUpper(r) {
			runes[i] = unicode.ToUpper(repl)
		} else {
			runes[i] = repl
		}
		changes++
	}
	if changes == 0 {
		return text, 0
	}
	return string(runes), changes
}

// reachesLetter walks from position i in direction dir, skipping over
// further substitutes, and reports whether the walk lands on a letter.
func reachesLetter(runes []rune, i, dir int) bool {
	for j := i + dir; j >= 0 && j < len(runes); j += dir {
		if unicode.IsLetter(runes[j]) {
			return true
		}
		if _, ok := leetMap[unicode.ToLower(runes[j])]; !ok {
			return false
		}
	}
	return false
}

// ContainsLeet reports whether text has an interior substitute, the
// cheap precheck used by scorers before paying for a full fold.
func ContainsLeet(text string) bool {
	runes := []rune(text)
	for i, r := range runes {
		if _, ok := leetMap[unicode.ToLower(r)]; !ok {
			continue
		}
		if reachesLetter(runes, i, -1) && reachesLetter(runes, i, +1) {
			return true
		}
	}
	return false
}
