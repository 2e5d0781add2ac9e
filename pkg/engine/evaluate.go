package engine

import (
	"context"
	"fmt"

	"github.com/TryMightyAI/rampart/pkg/hyper"
)

// LabeledCase is one ground-truth example for tuning evaluation.
type LabeledCase struct {
	Input  AnalysisInput `json:"input"`
	IsSpam bool          `json:"is_spam"`
}

// Metrics reports how a candidate tuning performed over labeled cases.
// Objective is the scalar an optimizer maximizes; false positives are
// penalized harder than misses because wrongly blocking legitimate mail
// costs more trust than letting one borderline message through.
type Metrics struct {
	Accuracy          float64 `json:"accuracy"`
	FalsePositiveRate float64 `json:"false_positive_rate"`
	FalseNegativeRate float64 `json:"false_negative_rate"`
	Objective         float64 `json:"objective"`
}

// objectiveFPRWeight scales the false-positive penalty in the objective.
const objectiveFPRWeight = 0.5

// EvaluateHyperparameters scores a candidate tuning against labeled
// cases without touching the live store: the candidate is applied to a
// throwaway snapshot and a shadow engine runs every case through it.
// The shadow engine skips the ensemble phase so evaluation stays
// deterministic and needs no model endpoints.
func (e *Engine) EvaluateHyperparameters(ctx context.Context, params map[string]float64, cases []LabeledCase) (Metrics, error) {
	if len(cases) == 0 {
		return Metrics{}, fmt.Errorf("no labeled cases provided")
	}

	candidate := hyper.NewStore(*e.store.Snapshot())
	if len(params) > 0 {
		if err := candidate.Apply(params); err != nil {
			return Metrics{}, fmt.Errorf("candidate rejected: %w", err)
		}
	}

	shadow := &Engine{
		cfg:     e.cfg,
		store:   candidate,
		modules: e.modules,
		table:   e.table,
		weights: e.weights,
	}

	var correct, falsePos, falseNeg, actualSpam, actualHam int
	for _, c := range cases {
		if c.IsSpam {
			actualSpam++
		} else {
			actualHam++
		}

		verdict := shadow.Analyze(ctx, c.Input).IsSpam
		switch {
		case verdict == c.IsSpam:
			correct++
		case verdict && !c.IsSpam:
			falsePos++
		default:
			falseNeg++
		}
	}

	m := Metrics{
		Accuracy: float64(correct) / float64(len(cases)),
	}
	if actualHam > 0 {
		m.FalsePositiveRate = float64(falsePos) / float64(actualHam)
	}
	if actualSpam > 0 {
		m.FalseNegativeRate = float64(falseNeg) / float64(actualSpam)
	}
	m.Objective = m.Accuracy - objectiveFPRWeight*m.FalsePositiveRate
	return m, nil
}
