// Package textnorm recovers the text an adversary meant to send.
//
// Abusive content rarely arrives in plain form: confusable Unicode
// characters, leetspeak substitution, letter spacing and slang
// abbreviations all defeat literal keyword matching. Normalize runs a
// fixed pipeline of folds and records an EvasionSignal for every stage
// that actually changed the text, so downstream scoring can both match
// the recovered words and charge for the obfuscation itself.
//
// Normalize is a pure function: no shared state, no I/O, and it never
// fails. Malformed UTF-8 is sanitized, unrecognized sequences pass
// through unchanged.
package textnorm

import (
	"strings"
	"unicode/utf8"
)

// EvasionKind identifies which normalization stage fired.
type EvasionKind string

const (
	EvasionConfusable EvasionKind = "confusable"
	EvasionInvisible  EvasionKind = "invisible"
	EvasionLeetspeak  EvasionKind = "leetspeak"
	EvasionSpacing    EvasionKind = "spacing"
	EvasionSlang      EvasionKind = "slang"
)

// EvasionSignal records one obfuscation technique discovered while
// normalizing. Magnitude is scaled to [0,1]: the fraction of the input
// affected for character-level folds, or a per-occurrence step for
// word-level repairs.
type EvasionSignal struct {
	Kind      EvasionKind `json:"kind"`
	Magnitude float64     `json:"magnitude"`
	Detail    string      `json:"detail,omitempty"`
}

// Options tunes the conservative edges of normalization.
type Options struct {
	// ProfessionalHint suppresses slang expansion. Workplace text uses
	// abbreviations ("smh" in a commit message) that must not be
	// rewritten into their aggressive long forms before scoring.
	ProfessionalHint bool
}

// Result is the immutable product of Normalize. Original is retained
// because some detections (invisible characters, BiDi overrides,
// suspicious URLs) only make sense against the raw input.
type Result struct {
	Original   string
	Normalized string
	Signals    []EvasionSignal
}

// WasObfuscated reports whether any stage changed the text.
func (r Result) WasObfuscated() bool {
	return len(r.Signals) > 0
}

// HasSignal reports whether a specific evasion kind was detected.
func (r Result) HasSignal(kind EvasionKind) bool {
	for _, s := range r.Signals {
		if s.Kind == kind {
			return true
		}
	}
	return false
}

// EvasionMagnitude sums the magnitudes of all detected signals.
func (r Result) EvasionMagnitude() float64 {
	total := 0.0
	for _, s := range r.Signals {
		total += s.Magnitude
	}
	return total
}

// Normalize folds text into its most matchable form.
//
// Stage order matters and is part of the contract:
//  1. confusable folding: homoglyph mapping, invisible/format character
//     stripping, then compatibility decomposition with combining-mark
//     removal and recomposition
//  2. leetspeak folding
//  3. spaced-letter collapse and whitespace squeeze
//  4. second leetspeak pass: collapsing "k 1 l l" exposes substitutes
//     the first pass could not see inside one-character tokens
//  5. slang expansion (skipped under Options.ProfessionalHint)
//
// Normalization is idempotent: feeding Result.Normalized back through
// Normalize returns the same string.
func Normalize(text string, opts Options) Result {
	res := Result{Original: text}
	if text == "" {
		return res
	}

	cur := text
	if !utf8.ValidString(cur) {
		cur = strings.ToValidUTF8(cur, "")
	}
	runeCount := utf8.RuneCountInString(cur)
	if runeCount == 0 {
		res.Normalized = cur
		return res
	}

	cur, confusables := foldConfusables(cur)
	cur, invisibles := stripInvisibles(cur)

	// Combining-mark abuse (zalgo-style "k̷i̷l̷l̷") belongs to the same
	// evasion class as confusables: count runes dropped by decomposition.
	before := utf8.RuneCountInString(cur)
	cur = stripDiacritics(cur)
	if after := utf8.RuneCountInString(cur); after < before {
		confusables += before - after
	}

	if confusables > 0 {
		res.Signals = append(res.Signals, EvasionSignal{
			Kind:      EvasionConfusable,
			Magnitude: ratio(confusables, runeCount),
			Detail:    "look-alike characters folded to Latin",
		})
	}
	if invisibles > 0 {
		res.Signals = append(res.Signals, EvasionSignal{
			Kind:      EvasionInvisible,
			Magnitude: ratio(invisibles, runeCount),
			Detail:    "invisible or format characters removed",
		})
	}

	cur, leet := foldLeet(cur)

	var collapsed int
	cur, collapsed = repairSpacing(cur)
	if collapsed > 0 {
		res.Signals = append(res.Signals, EvasionSignal{
			Kind:      EvasionSpacing,
			Magnitude: stepMagnitude(collapsed),
			Detail:    "spaced-out letters collapsed",
		})
		// Collapse can expose substitutes that were lone tokens before.
		var more int
		cur, more = foldLeet(cur)
		leet += more
	}
	if leet > 0 {
		res.Signals = append(res.Signals, EvasionSignal{
			Kind:      EvasionLeetspeak,
			Magnitude: ratio(leet, runeCount),
			Detail:    "digit/symbol substitutes folded to letters",
		})
	}

	if !opts.ProfessionalHint {
		var expanded int
		cur, expanded = expandSlang(cur)
		if expanded > 0 {
			res.Signals = append(res.Signals, EvasionSignal{
				Kind:      EvasionSlang,
				Magnitude: stepMagnitude(expanded),
				Detail:    "abbreviations expanded",
			})
		}
	}

	res.Normalized = cur
	return res
}

func ratio(changed, total int) float64 {
	if total <= 0 {
		return 0
	}
	r := float64(changed) / float64(total)
	if r > 1 {
		r = 1
	}
	return r
}

// stepMagnitude maps an occurrence count onto [0,1] in 0.25 steps so a
// single collapsed word registers without saturating the signal.
func stepMagnitude(n int) float64 {
	m := 0.25 * float64(n)
	if m > 1 {
		m = 1
	}
	return m
}
