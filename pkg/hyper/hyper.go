// Package hyper owns the tunable scoring constants: category weights and
// caps, protective discount factors, ensemble thresholds and verdict
// boundaries. The engine reads one immutable snapshot per analysis; an
// external optimizer publishes whole new snapshots through the Store.
// Nothing in this package is edited in place after publication.
package hyper

import "fmt"

// Hyperparameters is one complete, internally consistent tuning set.
// All values are defaults to be re-tuned, not derived truths.
type Hyperparameters struct {
	Weights    CategoryWeights `yaml:"weights" json:"weights"`
	Caps       CategoryCaps    `yaml:"caps" json:"caps"`
	Protection Protection      `yaml:"protection" json:"protection"`
	Ensemble   Ensemble        `yaml:"ensemble" json:"ensemble"`
	Thresholds Thresholds      `yaml:"thresholds" json:"thresholds"`
}

// CategoryWeights multiply each rule category's base points. WorkplaceBoost
// additionally multiplies harassment hits when workplace vocabulary is
// present (the target cannot walk away from a coworker).
type CategoryWeights struct {
	Evasion           float64 `yaml:"evasion" json:"evasion"`
	Harassment        float64 `yaml:"harassment" json:"harassment"`
	CrossCultural     float64 `yaml:"cross_cultural" json:"cross_cultural"`
	AIGenerated       float64 `yaml:"ai_generated" json:"ai_generated"`
	ModernHarassment  float64 `yaml:"modern_harassment" json:"modern_harassment"`
	Steganography     float64 `yaml:"steganography" json:"steganography"`
	SocialEngineering float64 `yaml:"social_engineering" json:"social_engineering"`
	WorkplaceBoost    float64 `yaml:"workplace_boost" json:"workplace_boost"`
}

// CategoryCaps bound each category's total contribution in absolute points
// so no single signal family can dominate the verdict. MatchLimit is the
// early-stop cap on rule hits per category scan.
type CategoryCaps struct {
	Evasion           float64 `yaml:"evasion" json:"evasion"`
	Harassment        float64 `yaml:"harassment" json:"harassment"`
	CrossCultural     float64 `yaml:"cross_cultural" json:"cross_cultural"`
	AIGenerated       float64 `yaml:"ai_generated" json:"ai_generated"`
	ModernHarassment  float64 `yaml:"modern_harassment" json:"modern_harassment"`
	Steganography     float64 `yaml:"steganography" json:"steganography"`
	SocialEngineering float64 `yaml:"social_engineering" json:"social_engineering"`
	MatchLimit        int     `yaml:"match_limit" json:"match_limit"`
}

// Protection controls the layered discounts applied after scoring.
// Discount fractions are of the current running score; MaxDiscountPoints
// caps any single standard discount in absolute points. The early
// professional path has its own reduction and floor.
type Protection struct {
	EarlyReduction       float64 `yaml:"early_reduction" json:"early_reduction"`
	EarlyFloor           float64 `yaml:"early_floor" json:"early_floor"`
	ProfessionalMin      float64 `yaml:"professional_min" json:"professional_min"`
	ProfessionalMax      float64 `yaml:"professional_max" json:"professional_max"`
	ConstructiveDiscount float64 `yaml:"constructive_discount" json:"constructive_discount"`
	SarcasmDiscount      float64 `yaml:"sarcasm_discount" json:"sarcasm_discount"`
	SlangDiscount        float64 `yaml:"slang_discount" json:"slang_discount"`
	MaxDiscountPoints    float64 `yaml:"max_discount_points" json:"max_discount_points"`
}

// Ensemble gates and shapes the external-model vote.
type Ensemble struct {
	VotingThreshold     float64 `yaml:"voting_threshold" json:"voting_threshold"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold" json:"confidence_threshold"`
	MinModels           int     `yaml:"min_models" json:"min_models"`
	TimeoutMs           int     `yaml:"timeout_ms" json:"timeout_ms"`
	ProfessionalDamp    float64 `yaml:"professional_damp" json:"professional_damp"`
	VoteScale           float64 `yaml:"vote_scale" json:"vote_scale"`
}

// Thresholds are the verdict boundaries plus final normalization knobs.
// SoftCapStart begins diminishing returns; points above it are multiplied
// by SoftCapSlope. LowConfidenceFloor scales nontrivial scores when the
// ensemble voted with weak conviction.
type Thresholds struct {
	Low                float64 `yaml:"low" json:"low"`
	Moderate           float64 `yaml:"moderate" json:"moderate"`
	High               float64 `yaml:"high" json:"high"`
	Critical           float64 `yaml:"critical" json:"critical"`
	SoftCapStart       float64 `yaml:"soft_cap_start" json:"soft_cap_start"`
	SoftCapSlope       float64 `yaml:"soft_cap_slope" json:"soft_cap_slope"`
	LowConfidenceFloor float64 `yaml:"low_confidence_floor" json:"low_confidence_floor"`
}

// CategoryWeight returns the multiplier for a rule category name.
// Unknown categories multiply by 1 so new rule families fail neutral.
func (h *Hyperparameters) CategoryWeight(category string) float64 {
	switch category {
	case "evasion":
		return h.Weights.Evasion
	case "harassment":
		return h.Weights.Harassment
	case "cross_cultural":
		return h.Weights.CrossCultural
	case "ai_generated":
		return h.Weights.AIGenerated
	case "modern_harassment":
		return h.Weights.ModernHarassment
	case "steganography":
		return h.Weights.Steganography
	case "social_engineering":
		return h.Weights.SocialEngineering
	}
	return 1.0
}

// CategoryCap returns the point cap for a rule category name. Unknown
// categories get a generous default rather than zero, which would silently
// mute them.
func (h *Hyperparameters) CategoryCap(category string) float64 {
	switch category {
	case "evasion":
		return h.Caps.Evasion
	case "harassment":
		return h.Caps.Harassment
	case "cross_cultural":
		return h.Caps.CrossCultural
	case "ai_generated":
		return h.Caps.AIGenerated
	case "modern_harassment":
		return h.Caps.ModernHarassment
	case "steganography":
		return h.Caps.Steganography
	case "social_engineering":
		return h.Caps.SocialEngineering
	}
	return 20.0
}

// Validate checks range and ordering constraints. A set that fails
// validation is never published to readers.
func (h *Hyperparameters) Validate() error {
	for path, f := range fields {
		v := f.get(h)
		if v < f.min || v > f.max {
			return fmt.Errorf("hyperparameter %s = %g outside [%g, %g]", path, v, f.min, f.max)
		}
	}
	if h.Thresholds.Low >= h.Thresholds.Moderate ||
		h.Thresholds.Moderate >= h.Thresholds.High ||
		h.Thresholds.High >= h.Thresholds.Critical {
		return fmt.Errorf("risk thresholds must be strictly increasing: %g/%g/%g/%g",
			h.Thresholds.Low, h.Thresholds.Moderate, h.Thresholds.High, h.Thresholds.Critical)
	}
	if h.Protection.ProfessionalMin > h.Protection.ProfessionalMax {
		return fmt.Errorf("professional discount range inverted: min %g > max %g",
			h.Protection.ProfessionalMin, h.Protection.ProfessionalMax)
	}
	return nil
}
