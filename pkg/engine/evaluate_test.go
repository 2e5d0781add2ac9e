package engine

import (
	"context"
	"math"
	"testing"
)

func labeledCases() []LabeledCase {
	return []LabeledCase{
		{Input: AnalysisInput{Message: "Go kill yourself, nobody likes you"}, IsSpam: true},
		{Input: AnalysisInput{Message: "you are worthless, everyone hates you"}, IsSpam: true},
		{Input: AnalysisInput{Message: "Thanks for the update, the report looks great."}, IsSpam: false},
		{Input: AnalysisInput{Message: "The deployment pipeline finished without errors."}, IsSpam: false},
	}
}

func TestEvaluateDefaultsSeparateObviousCases(t *testing.T) {
	e := newTestEngine(t)

	m, err := e.EvaluateHyperparameters(context.Background(), nil, labeledCases())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Accuracy != 1.0 {
		t.Errorf("expected accuracy 1.0, got %g", m.Accuracy)
	}
	if m.FalsePositiveRate != 0 || m.FalseNegativeRate != 0 {
		t.Errorf("expected zero error rates, got FPR %g FNR %g", m.FalsePositiveRate, m.FalseNegativeRate)
	}
	if math.Abs(m.Objective-m.Accuracy) > 1e-9 {
		t.Errorf("with zero FPR objective must equal accuracy, got %g", m.Objective)
	}
}

func TestEvaluateObjectivePenalizesFalsePositives(t *testing.T) {
	e := newTestEngine(t)

	// Labels deliberately inverted: every verdict is wrong, half as false
	// positives and half as misses.
	inverted := []LabeledCase{
		{Input: AnalysisInput{Message: "Go kill yourself, nobody likes you"}, IsSpam: false},
		{Input: AnalysisInput{Message: "Thanks for the update, the report looks great."}, IsSpam: true},
	}

	m, err := e.EvaluateHyperparameters(context.Background(), nil, inverted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Accuracy != 0 {
		t.Errorf("expected accuracy 0, got %g", m.Accuracy)
	}
	if m.FalsePositiveRate != 1.0 {
		t.Errorf("expected FPR 1.0, got %g", m.FalsePositiveRate)
	}
	if m.FalseNegativeRate != 1.0 {
		t.Errorf("expected FNR 1.0, got %g", m.FalseNegativeRate)
	}
	if math.Abs(m.Objective-(-0.5)) > 1e-9 {
		t.Errorf("expected objective -0.5, got %g", m.Objective)
	}
}

func TestEvaluateCandidateDoesNotTouchLiveStore(t *testing.T) {
	e := newTestEngine(t)

	before := e.store.Snapshot().Weights.Harassment
	_, err := e.EvaluateHyperparameters(context.Background(),
		map[string]float64{"weights.harassment": 0.1}, labeledCases())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := e.store.Snapshot().Weights.Harassment; got != before {
		t.Errorf("live store mutated by evaluation: %g -> %g", before, got)
	}
}

func TestEvaluateCandidateAffectsVerdicts(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	harassment := []LabeledCase{
		{Input: AnalysisInput{Message: "Go kill yourself, nobody likes you"}, IsSpam: true},
	}

	base, err := e.EvaluateHyperparameters(ctx, nil, harassment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base.Accuracy != 1.0 {
		t.Fatalf("defaults must catch direct harassment, accuracy %g", base.Accuracy)
	}

	// A crippled candidate should start missing it.
	crippled, err := e.EvaluateHyperparameters(ctx, map[string]float64{
		"weights.harassment":        0.1,
		"weights.modern_harassment": 0.1,
		"weights.evasion":           0.1,
		"caps.harassment":           5.0,
	}, harassment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if crippled.Accuracy >= base.Accuracy && crippled.FalseNegativeRate == 0 {
		t.Errorf("expected the crippled candidate to degrade, got %+v", crippled)
	}
}

func TestEvaluateRejectsBadInput(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	if _, err := e.EvaluateHyperparameters(ctx, nil, nil); err == nil {
		t.Error("expected error for empty case set")
	}
	if _, err := e.EvaluateHyperparameters(ctx, map[string]float64{"weights.nope": 1}, labeledCases()); err == nil {
		t.Error("expected error for unknown path")
	}
	if _, err := e.EvaluateHyperparameters(ctx, map[string]float64{"weights.harassment": 99}, labeledCases()); err == nil {
		t.Error("expected error for out-of-range value")
	}
}
