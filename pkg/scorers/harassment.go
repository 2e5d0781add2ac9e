package scorers

import (
	"context"
	"fmt"
	"strings"

	"github.com/TryMightyAI/rampart/pkg/rules"
	"github.com/TryMightyAI/rampart/pkg/tone"
)

const (
	// targetingPoints charges second-person density: a message that keeps
	// saying "you" while negative is aimed at someone.
	targetingPoints = 2.5

	// imperativePoints charges hostile imperative openings ("get out",
	// "shut up" style commands).
	imperativePoints = 2.0

	// hostileTonePoints couples targeting with an angry or aggressive
	// register.
	hostileTonePoints = 2.0

	// minTargetingPronouns is the second-person count before targeting
	// fires; one "you" is conversation.
	minTargetingPronouns = 3
)

// hostileImperatives open a command aimed at the reader. Checked against
// sentence starts only.
var hostileImperatives = []string{
	"get out", "get lost", "go away", "shut", "stop talking",
	"leave", "quit", "disappear", "back off",
}

// HarassmentModule scores targeting heuristics the rule table cannot
// express: second-person density, hostile imperatives and tone coupling.
// Table-driven harassment rules run in the pattern_table module; the two
// deliberately measure different things.
type HarassmentModule struct {
	cfg Config
}

func NewHarassmentModule() *HarassmentModule { return &HarassmentModule{cfg: DefaultConfig()} }

func (m *HarassmentModule) Name() string { return ModuleHarassment }

func (m *HarassmentModule) Init(cfg Config) error {
	m.cfg = cfg
	return nil
}

func (m *HarassmentModule) Analyze(ctx context.Context, in Input) (SubScore, error) {
	sub := SubScore{Source: m.Name()}
	dict := loadSentiment()

	tokens := tokenize(in.Normalized)
	secondPerson, negative := 0, 0
	for _, tok := range tokens {
		switch tok {
		case "you", "your", "yours", "yourself", "you're", "youre":
			secondPerson++
		}
		if _, ok := dict.negative[tok]; ok {
			negative++
		}
	}

	points := 0.0

	// Sustained second-person address plus negative vocabulary.
	if secondPerson >= minTargetingPronouns && negative > 0 {
		points += targetingPoints
		sub.Tags = append(sub.Tags,
			fmt.Sprintf("[HARASSMENT] targeting: %d second-person, %d negative (+%.1f)",
				secondPerson, negative, targetingPoints))
	}

	if op := openingImperative(in.Normalized); op != "" {
		points += imperativePoints
		sub.Tags = append(sub.Tags,
			fmt.Sprintf("[HARASSMENT] hostile imperative %q (+%.1f)", op, imperativePoints))
	}

	hostileTone := in.Context.EmotionalTone == tone.ToneAngry ||
		in.Context.EmotionalTone == tone.ToneAggressive
	if hostileTone && secondPerson > 0 {
		points += hostileTonePoints
		sub.Tags = append(sub.Tags,
			fmt.Sprintf("[HARASSMENT] %s tone aimed at reader (+%.1f)",
				in.Context.EmotionalTone, hostileTonePoints))
	}

	// Workplace settings raise the stakes; the target cannot disengage.
	if points > 0 && rules.WorkplaceLexicon.Matches(in.Normalized) {
		boost := in.Hyper.Weights.WorkplaceBoost
		points *= boost
		sub.Tags = append(sub.Tags,
			fmt.Sprintf("[HARASSMENT] workplace context (x%.1f)", boost))
	}

	if m.cfg.ContextAware && in.Context.IsConstructive && points > 0 {
		points *= 0.6
		sub.Tags = append(sub.Tags, "[HARASSMENT] constructive framing softening (x0.6)")
	}

	sub.Points = points
	return sub, nil
}

// openingImperative returns the hostile imperative a sentence starts with,
// or "". Only sentence starts count; "please stop talking over Maria in
// reviews" opens with please, not a command.
func openingImperative(text string) string {
	for _, sentence := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	}) {
		sentence = strings.TrimSpace(sentence)
		for _, imp := range hostileImperatives {
			if strings.HasPrefix(sentence, imp) {
				return imp
			}
		}
	}
	return ""
}
