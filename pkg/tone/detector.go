// Package tone classifies a message along independent context axes:
// professional register, constructive intent, sarcasm, modern slang and
// emotional tone. The engine uses these signals to discount trigger-word
// matches that appear inside legitimate conversation.
//
// Detection is pure string work over curated vocabularies. Signals are
// computed fresh per call; nothing is shared between analyses.
package tone

import (
	"strings"

	"github.com/TryMightyAI/rampart/pkg/rules"
)

// Tone is the dominant emotional register of a message.
type Tone string

const (
	ToneNeutral    Tone = "neutral"
	ToneAngry      Tone = "angry"
	ToneSad        Tone = "sad"
	ToneAggressive Tone = "aggressive"
)

// Signals holds the context classification for one message. The axes are
// independent: a message can be professional and sarcastic at once.
type Signals struct {
	IsProfessional bool    `json:"is_professional"`
	Confidence     float64 `json:"confidence"`

	// EarlyProfessional marks an operational-incident message recognized
	// before any scoring ran. It unlocks the strongest protective discount.
	EarlyProfessional bool `json:"early_professional"`

	IsConstructive bool `json:"is_constructive"`
	IsSarcastic    bool `json:"is_sarcastic"`
	IsModernSlang  bool `json:"is_modern_slang"`

	EmotionalTone Tone `json:"emotional_tone"`

	// Lexicon is the professional vocabulary that matched, for flags.
	Lexicon string `json:"lexicon,omitempty"`
}

// Detect classifies text along all axes. raw is the original input,
// normalized the folded form; incident phrasing is checked on both since
// normalization can reshape identifiers like host names.
func Detect(raw, normalized string) Signals {
	sig := Signals{EmotionalTone: ToneNeutral}
	lower := strings.ToLower(normalized)

	sig.IsProfessional, sig.Confidence, sig.Lexicon = detectProfessional(lower)

	if matchesIncidentPhrasing(raw) || matchesIncidentPhrasing(normalized) {
		sig.EarlyProfessional = true
		sig.IsProfessional = true
		if sig.Confidence < earlyProfessionalConfidence {
			sig.Confidence = earlyProfessionalConfidence
		}
	}

	sig.IsConstructive = containsAnyPhrase(lower, constructivePhrases)
	sig.IsSarcastic = containsAnyPhrase(lower, sarcasmPhrases)
	sig.IsModernSlang = detectModernSlang(lower)
	sig.EmotionalTone = detectEmotion(lower)

	return sig
}

// earlyProfessionalConfidence is the floor confidence once incident
// phrasing fires. High enough to unlock the maximum protective discount.
const earlyProfessionalConfidence = 0.95

// detectProfessional counts distinct vocabulary hits per professional
// lexicon and keeps the best one. Two matches are required before the
// signal fires at all; density maps to confidence in fixed steps.
func detectProfessional(lower string) (bool, float64, string) {
	bestScore := 0
	bestLexicon := ""

	for _, lex := range rules.ProfessionalLexicons {
		if score := lex.CountHits(lower); score > bestScore && score >= 2 {
			bestScore = score
			bestLexicon = lex.Name()
		}
	}

	confidence := 0.0
	switch {
	case bestScore >= 5:
		confidence = 0.9
	case bestScore >= 3:
		confidence = 0.7
	case bestScore >= 2:
		confidence = 0.5
	}

	return bestScore >= 2, confidence, bestLexicon
}

// matchesIncidentPhrasing reports whether text reads like an operational
// incident message (outage, runaway process, security response). These
// short-circuit to protected status before any scoring happens.
func matchesIncidentPhrasing(text string) bool {
	for _, re := range incidentPhrasings {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func containsAnyPhrase(lower string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// detectModernSlang matches single-token slang on word boundaries.
// Substring matching would fire "fr" inside "from", so short tokens go
// through field comparison; multi-word slang still uses Contains.
func detectModernSlang(lower string) bool {
	for _, p := range slangPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	for _, f := range strings.Fields(lower) {
		f = strings.Trim(f, ".,!?;:'\"()")
		if _, ok := slangTokens[f]; ok {
			return true
		}
	}
	return false
}

// detectEmotion takes a majority vote over the emotion word lists. A tone
// needs at least two hits; one stray word stays neutral.
func detectEmotion(lower string) Tone {
	counts := map[Tone]int{}
	fields := strings.Fields(lower)

	for _, f := range fields {
		f = strings.Trim(f, ".,!?;:'\"()")
		for tone, words := range emotionWords {
			if _, ok := words[f]; ok {
				counts[tone]++
			}
		}
	}
	for tone, phrases := range emotionPhrases {
		for _, p := range phrases {
			if strings.Contains(lower, p) {
				counts[tone]++
			}
		}
	}

	best := ToneNeutral
	bestCount := 1 // ties below 2 stay neutral
	for _, tone := range []Tone{ToneAngry, ToneSad, ToneAggressive} {
		if counts[tone] > bestCount {
			bestCount = counts[tone]
			best = tone
		}
	}
	return best
}
