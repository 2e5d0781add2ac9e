package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// confusableMap folds cross-script look-alikes to Latin. Compatibility
// decomposition (stripDiacritics) already covers fullwidth forms and the
// mathematical alphanumeric block, so this map only carries characters
// Unicode treats as distinct letters of other scripts.
var confusableMap = map[rune]rune{
	// Cyrillic lowercase
	'а': 'a', 'е': 'e', 'ё': 'e', 'і': 'i', 'ї': 'i', 'о': 'o', 'р': 'p',
	'с': 'c', 'у': 'y', 'х': 'x', 'ѕ': 's', 'ј': 'j', 'ԁ': 'd', 'ԛ': 'q',
	'ѡ': 'w', 'ь': 'b', 'к': 'k', 'м': 'm', 'т': 't', 'в': 'b', 'н': 'h',
	// Cyrillic uppercase
	'А': 'A', 'В': 'B', 'С': 'C', 'Е': 'E', 'Ё': 'E', 'Н': 'H', 'І': 'I',
	'Ї': 'I', 'Ј': 'J', 'К': 'K', 'М': 'M', 'О': 'O', 'Р': 'P', 'Ѕ': 'S',
	'Т': 'T', 'У': 'Y', 'Х': 'X',
	// Greek lowercase
	'α': 'a', 'β': 'b', 'ε': 'e', 'η': 'n', 'ι': 'i', 'κ': 'k', 'ν': 'v',
	'ο': 'o', 'ρ': 'p', 'τ': 't', 'υ': 'u', 'χ': 'x', 'ω': 'w',
	// Greek uppercase
	'Α': 'A', 'Β': 'B', 'Ε': 'E', 'Ζ': 'Z', 'Η': 'H', 'Ι': 'I', 'Κ': 'K',
	'Μ': 'M', 'Ν': 'N', 'Ο': 'O', 'Ρ': 'P', 'Τ': 'T', 'Υ': 'Y', 'Χ': 'X',
	// IPA and letterlike symbols
	'ɑ': 'a', 'ɡ': 'g', 'ɩ': 'i', 'ɪ': 'i', 'ℓ': 'l', 'ℯ': 'e', 'ℊ': 'g',
	'ℴ': 'o', 'ℎ': 'h',
}

// foldConfusables maps cross-script look-alike runes to their Latin
// equivalents, returning the folded text and the number of runes changed.
func foldConfusables(text string) (string, int) {
	var b strings.Builder
	b.Grow(len(text))
	changes := 0
	for _, r := range text {
		if mapped, ok := confusableMap[r]; ok {
			b.WriteRune(mapped)
			changes++
			continue
		}
		b.WriteRune(r)
	}
	if changes == 0 {
		return text, 0
	}
	return b.String(), changes
}

// removeCombining is stateless and safe to share. The chain wrapping it is
// not, so stripDiacritics builds a fresh chain per call.
var removeCombining = runes.Remove(runes.In(unicode.Mn))

// stripDiacritics decomposes compatibility equivalents (fullwidth forms,
// mathematical styles), drops combining marks, and recomposes, folding
// "𝐤𝐢𝐥𝐥", "ｋｉｌｌ" and "k̷i̷l̷l̷" down to plain letters. On a transform
// error the input is returned untouched; normalization never fails.
func stripDiacritics(text string) string {
	stripper := transform.Chain(norm.NFKD, removeCombining, norm.NFKC)
	out, _, err := transform.String(stripper, text)
	if err != nil {
		return text
	}
	return out
}

// stripInvisibles removes zero-width and format characters (Cf class:
// zero-width space/joiner, BiDi overrides, Unicode tags) plus variation
// selectors. These carry no visible content and exist in short user text
// almost exclusively to split keywords or smuggle payloads.
func stripInvisibles(text string) (string, int) {
	removed := 0
	out := strings.Map(func(r rune) rune {
		switch {
		case unicode.Is(unicode.Cf, r):
			removed++
			return -1
		case r >= 0xFE00 && r <= 0xFE0F: // variation selectors
			removed++
			return -1
		}
		return r
	}, text)
	if removed == 0 {
		return text, 0
	}
	return out, removed
}
