package textnorm

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// spacedRunRe finds runs of single characters separated by one space,
// dot, hyphen, underscore or asterisk: "k i l l", "k.i.l.l", "k-1-l-l".
// The unit class admits leet substitutes (quoted, since several are
// regex metacharacters) so spaced leetspeak is collapsed too.
var spacedRunRe = regexp.MustCompile(
	`(?:(?:[a-zA-Z0-9]|` + leetAlternation + `)[ ._*-]){2,}(?:[a-zA-Z0-9]|` + leetAlternation + `)`,
)

var whitespaceRe = regexp.MustCompile(`\s+`)

const (
	minRunLetters = 3
	maxRunLetters = 10
)

// repairSpacing collapses spaced-out letter runs into contiguous words
// and squeezes whitespace. Runs shorter than three units stay untouched
// ("a I" is prose, not evasion); runs longer than ten stay untouched
// (alphabet listings and initialisms, not hidden words). Returns the
// repaired text and the number of runs collapsed.
func repairSpacing(text string) (string, int) {
	collapsed := 0
	matches := spacedRunRe.FindAllStringIndex(text, -1)
	if len(matches) > 0 {
		var b strings.Builder
		b.Grow(len(text))
		cursor := 0
		for _, m := range matches {
			start, end := m[0], m[1]
			// A match glued to an adjacent word has stolen that word's
			// nearest letter as a run unit: "k i l l t" out of "k i l l
			// them", or the run starting on the final l of "will" in
			// "will k i l l you". Trim the stolen unit off instead of
			// discarding the match, so the run still collapses and the
			// neighboring word survives intact.
			if gluedLeft(text, start) {
				off := strings.IndexAny(text[start:end], " ._*-")
				if off < 0 {
					continue
				}
				start += off + 1
			}
			if gluedRight(text, end) {
				cut := strings.LastIndexAny(text[start:end], " ._*-")
				if cut <= 0 {
					continue
				}
				end = start + cut
			}
			joined := stripSeparators(text[start:end])
			n := utf8.RuneCountInString(joined)
			if n < minRunLetters || n > maxRunLetters {
				continue
			}
			b.WriteString(text[cursor:start])
			b.WriteString(joined)
			cursor = end
			collapsed++
		}
		b.WriteString(text[cursor:])
		text = b.String()
	}

	squeezed := whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(squeezed), collapsed
}

// gluedLeft reports a match preceded directly by a letter or digit, like
// the tail of "server-prod-03": an identifier, not a spaced word.
// regexp lacks lookarounds, so boundaries are checked by hand.
func gluedLeft(text string, start int) bool {
	if start == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:start])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// gluedRight reports a match running directly into a following letter or
// digit.
func gluedRight(text string, end int) bool {
	if end >= len(text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[end:])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func stripSeparators(run string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '.', '_', '*', '-':
			return -1
		}
		return r
	}, run)
}
