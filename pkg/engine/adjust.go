package engine

import (
	"fmt"
	"math"

	"github.com/TryMightyAI/rampart/pkg/hyper"
	"github.com/TryMightyAI/rampart/pkg/tone"
)

// lowConfidenceGate is the ensemble confidence below which a nontrivial
// score gets scaled down. The reduction is continuous at the gate: as
// confidence approaches it the scale approaches 1.
const lowConfidenceGate = 0.5

// applyAdjustments runs the protective pipeline over an accumulated score:
// professional discounts, context discounts, the soft cap, and the
// low-ensemble-confidence reduction. Fixed order; the score is clamped at
// zero after every subtractive step. Adjustments only ever lower a score.
func applyAdjustments(score float64, signals tone.Signals, voted bool, voteConfidence float64, hp *hyper.Hyperparameters) (float64, []string) {
	var flags []string
	if score <= 0 {
		return clampScore(score), flags
	}

	// Professional family: early-professional and lexicon-professional are
	// the same protection at different strengths, so only one applies.
	switch {
	case signals.EarlyProfessional:
		reduced := math.Max(score*(1-hp.Protection.EarlyReduction), hp.Protection.EarlyFloor)
		if reduced < score {
			flags = append(flags, fmt.Sprintf(
				"[PROTECTED] early professional context (%.1f -> %.1f)", score, reduced))
			score = clampScore(reduced)
		}
	case signals.IsProfessional:
		fraction := hp.Protection.ProfessionalMin +
			(hp.Protection.ProfessionalMax-hp.Protection.ProfessionalMin)*signals.Confidence
		next, removed := discountStep(score, fraction, hp.Protection.MaxDiscountPoints)
		if removed > 0 {
			flags = append(flags, fmt.Sprintf(
				"[PROTECTED] professional %s context -%.1f (confidence %.2f)",
				signals.Lexicon, removed, signals.Confidence))
			score = next
		}
	}

	if signals.IsConstructive {
		next, removed := discountStep(score, hp.Protection.ConstructiveDiscount, hp.Protection.MaxDiscountPoints)
		if removed > 0 {
			flags = append(flags, fmt.Sprintf("[PROTECTED] constructive framing -%.1f", removed))
			score = next
		}
	}

	if signals.IsSarcastic {
		next, removed := discountStep(score, hp.Protection.SarcasmDiscount, hp.Protection.MaxDiscountPoints)
		if removed > 0 {
			flags = append(flags, fmt.Sprintf("[PROTECTED] sarcastic register -%.1f", removed))
			score = next
		}
	}

	if signals.IsModernSlang {
		next, removed := discountStep(score, hp.Protection.SlangDiscount, hp.Protection.MaxDiscountPoints)
		if removed > 0 {
			flags = append(flags, fmt.Sprintf("[PROTECTED] informal slang register -%.1f", removed))
			score = next
		}
	}

	// Diminishing returns above the soft cap keep stacked rule hits from
	// running the scale away.
	if score > hp.Thresholds.SoftCapStart {
		capped := hp.Thresholds.SoftCapStart + (score-hp.Thresholds.SoftCapStart)*hp.Thresholds.SoftCapSlope
		flags = append(flags, fmt.Sprintf("[CAPPED] soft cap %.1f -> %.1f", score, capped))
		score = capped
	}

	// A weakly-convinced ensemble pulls a nontrivial score toward the
	// floor instead of letting lexical evidence stand unchallenged.
	if voted && voteConfidence < lowConfidenceGate && score > hp.Thresholds.Low {
		scale := hp.Thresholds.LowConfidenceFloor +
			(1-hp.Thresholds.LowConfidenceFloor)*(voteConfidence/lowConfidenceGate)
		scaled := score * scale
		flags = append(flags, fmt.Sprintf(
			"[CONFIDENCE] low ensemble confidence %.2f, score %.1f -> %.1f",
			voteConfidence, score, scaled))
		score = scaled
	}

	return clampScore(score), flags
}

// discountStep removes fraction×score, holding the removal to the
// per-step point cap. Returns the clamped new score and the points
// actually removed.
func discountStep(score, fraction, maxPoints float64) (float64, float64) {
	if score <= 0 || fraction <= 0 {
		return clampScore(score), 0
	}
	removed := score * fraction
	if maxPoints > 0 && removed > maxPoints {
		removed = maxPoints
	}
	return clampScore(score - removed), removed
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	return score
}
