package scorers

import (
	"context"
	"fmt"
	"strings"

	"github.com/TryMightyAI/rampart/pkg/rules"
)

// evasionSignalScale converts a normalizer evasion magnitude (0..1) into
// points, before the evasion category cap.
const evasionSignalScale = 3.0

// PatternTableModule walks the full rule table: every category in
// canonical order, early-stop match limit, per-category weight and point
// cap from the hyperparameter snapshot. Steganography rules scan the raw
// input because normalization strips the exact characters they detect;
// every other category scans the normalized text. Normalizer evasion
// signals are charged into the evasion category alongside its rules.
type PatternTableModule struct {
	cfg   Config
	table *rules.Table
}

func NewPatternTableModule() *PatternTableModule {
	return &PatternTableModule{cfg: DefaultConfig()}
}

func (m *PatternTableModule) Name() string { return ModulePatternTable }

func (m *PatternTableModule) Init(cfg Config) error {
	m.cfg = cfg
	m.table = rules.Get()
	return nil
}

func (m *PatternTableModule) Analyze(ctx context.Context, in Input) (SubScore, error) {
	if m.table == nil {
		m.table = rules.Get()
	}
	sub := SubScore{Source: m.Name()}
	hp := in.Hyper

	workplace := rules.WorkplaceLexicon.Matches(in.Normalized)

	for _, cat := range rules.AllCategories {
		text := in.Normalized
		if cat == rules.CategorySteganography {
			text = in.Raw
		}

		catPoints := 0.0
		weight := hp.CategoryWeight(string(cat))

		for _, p := range m.table.MatchCategory(text, cat, hp.Caps.MatchLimit) {
			pts := p.BaseWeight * weight
			if cat == rules.CategoryHarassment && workplace {
				pts *= hp.Weights.WorkplaceBoost
			}
			catPoints += pts
			sub.Tags = append(sub.Tags,
				fmt.Sprintf("[%s] %s detected (+%.1f)", tagName(cat), p.Name, pts))
		}

		if cat == rules.CategoryEvasion {
			for _, sig := range in.Evasion {
				pts := sig.Magnitude * evasionSignalScale * weight
				catPoints += pts
				sub.Tags = append(sub.Tags,
					fmt.Sprintf("[EVASION] %s obfuscation (+%.1f)", sig.Kind, pts))
			}
		}

		if maxPts := hp.CategoryCap(string(cat)); catPoints > maxPts {
			sub.Tags = append(sub.Tags,
				fmt.Sprintf("[%s] capped at %.1f (was %.1f)", tagName(cat), maxPts, catPoints))
			catPoints = maxPts
		}
		sub.Points += catPoints
	}

	return sub, nil
}

func tagName(cat rules.Category) string {
	return strings.ToUpper(strings.ReplaceAll(string(cat), "_", "-"))
}
