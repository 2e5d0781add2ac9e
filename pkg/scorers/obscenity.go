package scorers

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// profanity tiers. The dictionary is shared process-wide and built lazily
// on first use, once, then only read.
type profanityDict struct {
	strong map[string]struct{}
	mild   map[string]struct{}
}

var (
	profanityOnce sync.Once
	profanity     *profanityDict
)

func loadProfanity() *profanityDict {
	profanityOnce.Do(func() {
		profanity = &profanityDict{
			strong: wordSet(
				"fuck", "fucking", "fucker", "motherfucker", "shit", "bullshit",
				"bitch", "asshole", "bastard", "cunt", "dick", "prick",
				"whore", "slut", "douchebag", "dipshit", "cocksucker",
			),
			mild: wordSet(
				"damn", "dammit", "hell", "crap", "piss", "pissed",
				"ass", "arse", "jerk", "scum",
			),
		}
	})
	return profanity
}

func wordSet(words ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

const (
	strongProfanityPoints = 3.0
	mildProfanityPoints   = 1.0

	// directedMultiplier applies when profanity sits next to a
	// second-person pronoun; "fuck you" outranks "fuck, traffic".
	directedMultiplier = 1.5

	// professionalSoftening halves profanity points in professional
	// context when the module runs context-aware. Venting about a broken
	// deploy is not abuse.
	professionalSoftening = 0.5
)

// ObscenityModule scores profanity density on the normalized text, so
// folded spellings ("a$$hole", "f u c k") land as their plain forms.
type ObscenityModule struct {
	cfg Config
}

func NewObscenityModule() *ObscenityModule { return &ObscenityModule{cfg: DefaultConfig()} }

func (m *ObscenityModule) Name() string { return ModuleObscenity }

func (m *ObscenityModule) Init(cfg Config) error {
	m.cfg = cfg
	loadProfanity()
	return nil
}

func (m *ObscenityModule) Analyze(ctx context.Context, in Input) (SubScore, error) {
	dict := loadProfanity()
	sub := SubScore{Source: m.Name()}

	tokens := tokenize(in.Normalized)
	strongHits, mildHits := 0, 0
	directed := false

	for i, tok := range tokens {
		tier := 0.0
		if _, ok := dict.strong[tok]; ok {
			strongHits++
			tier = strongProfanityPoints
		} else if _, ok := dict.mild[tok]; ok {
			mildHits++
			tier = mildProfanityPoints
		}
		if tier == 0 {
			continue
		}
		if nearSecondPerson(tokens, i) {
			directed = true
		}
	}

	points := float64(strongHits)*strongProfanityPoints + float64(mildHits)*mildProfanityPoints
	if points == 0 {
		return sub, nil
	}

	if directed {
		points *= directedMultiplier
		sub.Tags = append(sub.Tags, "[OBSCENITY] directed at second person (x1.5)")
	}
	if m.cfg.ContextAware && in.Context.IsProfessional {
		points *= professionalSoftening
		sub.Tags = append(sub.Tags, "[OBSCENITY] professional context softening (x0.5)")
	}

	sub.Points = points
	sub.Tags = append(sub.Tags,
		fmt.Sprintf("[OBSCENITY] %d strong, %d mild profanity hits (+%.1f)", strongHits, mildHits, points))
	return sub, nil
}

// nearSecondPerson reports whether a second-person pronoun sits within two
// tokens of position i.
func nearSecondPerson(tokens []string, i int) bool {
	lo, hi := i-2, i+2
	if lo < 0 {
		lo = 0
	}
	if hi >= len(tokens) {
		hi = len(tokens) - 1
	}
	for j := lo; j <= hi; j++ {
		switch tokens[j] {
		case "you", "your", "yours", "yourself", "you're", "youre", "u", "ur":
			return true
		}
	}
	return false
}

// tokenize lowercases and splits on punctuation, keeping word interiors.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '\''
	})
}
