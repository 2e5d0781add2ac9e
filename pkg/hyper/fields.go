package hyper

import "math"

// field describes one tunable value: its legal range and typed accessors.
// The table drives Validate, Ranges and Apply so the three can never
// disagree about what exists or what is legal.
type field struct {
	min, max float64
	get      func(*Hyperparameters) float64
	set      func(*Hyperparameters, float64)
}

func intField(min, max float64, get func(*Hyperparameters) *int) field {
	return field{
		min: min,
		max: max,
		get: func(h *Hyperparameters) float64 { return float64(*get(h)) },
		set: func(h *Hyperparameters, v float64) { *get(h) = int(math.Round(v)) },
	}
}

func floatField(min, max float64, get func(*Hyperparameters) *float64) field {
	return field{
		min: min,
		max: max,
		get: func(h *Hyperparameters) float64 { return *get(h) },
		set: func(h *Hyperparameters, v float64) { *get(h) = v },
	}
}

var fields = map[string]field{
	// Category weights
	"weights.evasion":            floatField(0.1, 3.0, func(h *Hyperparameters) *float64 { return &h.Weights.Evasion }),
	"weights.harassment":         floatField(0.1, 3.0, func(h *Hyperparameters) *float64 { return &h.Weights.Harassment }),
	"weights.cross_cultural":     floatField(0.1, 3.0, func(h *Hyperparameters) *float64 { return &h.Weights.CrossCultural }),
	"weights.ai_generated":       floatField(0.1, 3.0, func(h *Hyperparameters) *float64 { return &h.Weights.AIGenerated }),
	"weights.modern_harassment":  floatField(0.1, 3.0, func(h *Hyperparameters) *float64 { return &h.Weights.ModernHarassment }),
	"weights.steganography":      floatField(0.1, 3.0, func(h *Hyperparameters) *float64 { return &h.Weights.Steganography }),
	"weights.social_engineering": floatField(0.1, 3.0, func(h *Hyperparameters) *float64 { return &h.Weights.SocialEngineering }),
	"weights.workplace_boost":    floatField(1.0, 2.5, func(h *Hyperparameters) *float64 { return &h.Weights.WorkplaceBoost }),

	// Category caps
	"caps.evasion":            floatField(2.0, 40.0, func(h *Hyperparameters) *float64 { return &h.Caps.Evasion }),
	"caps.harassment":         floatField(5.0, 60.0, func(h *Hyperparameters) *float64 { return &h.Caps.Harassment }),
	"caps.cross_cultural":     floatField(5.0, 50.0, func(h *Hyperparameters) *float64 { return &h.Caps.CrossCultural }),
	"caps.ai_generated":       floatField(3.0, 40.0, func(h *Hyperparameters) *float64 { return &h.Caps.AIGenerated }),
	"caps.modern_harassment":  floatField(2.0, 30.0, func(h *Hyperparameters) *float64 { return &h.Caps.ModernHarassment }),
	"caps.steganography":      floatField(3.0, 40.0, func(h *Hyperparameters) *float64 { return &h.Caps.Steganography }),
	"caps.social_engineering": floatField(5.0, 50.0, func(h *Hyperparameters) *float64 { return &h.Caps.SocialEngineering }),
	"caps.match_limit":        intField(3, 8, func(h *Hyperparameters) *int { return &h.Caps.MatchLimit }),

	// Protection
	"protection.early_reduction":       floatField(0.5, 0.99, func(h *Hyperparameters) *float64 { return &h.Protection.EarlyReduction }),
	"protection.early_floor":           floatField(0.0, 5.0, func(h *Hyperparameters) *float64 { return &h.Protection.EarlyFloor }),
	"protection.professional_min":      floatField(0.1, 0.9, func(h *Hyperparameters) *float64 { return &h.Protection.ProfessionalMin }),
	"protection.professional_max":      floatField(0.2, 0.95, func(h *Hyperparameters) *float64 { return &h.Protection.ProfessionalMax }),
	"protection.constructive_discount": floatField(0.0, 0.8, func(h *Hyperparameters) *float64 { return &h.Protection.ConstructiveDiscount }),
	"protection.sarcasm_discount":      floatField(0.0, 0.8, func(h *Hyperparameters) *float64 { return &h.Protection.SarcasmDiscount }),
	"protection.slang_discount":        floatField(0.0, 0.8, func(h *Hyperparameters) *float64 { return &h.Protection.SlangDiscount }),
	"protection.max_discount_points":   floatField(2.0, 30.0, func(h *Hyperparameters) *float64 { return &h.Protection.MaxDiscountPoints }),

	// Ensemble
	"ensemble.voting_threshold":     floatField(0.0, 1.0, func(h *Hyperparameters) *float64 { return &h.Ensemble.VotingThreshold }),
	"ensemble.confidence_threshold": floatField(0.0, 1.0, func(h *Hyperparameters) *float64 { return &h.Ensemble.ConfidenceThreshold }),
	"ensemble.min_models":           intField(2, 10, func(h *Hyperparameters) *int { return &h.Ensemble.MinModels }),
	"ensemble.timeout_ms":           intField(100, 30000, func(h *Hyperparameters) *int { return &h.Ensemble.TimeoutMs }),
	"ensemble.professional_damp":    floatField(0.05, 1.0, func(h *Hyperparameters) *float64 { return &h.Ensemble.ProfessionalDamp }),
	"ensemble.vote_scale":           floatField(1.0, 25.0, func(h *Hyperparameters) *float64 { return &h.Ensemble.VoteScale }),

	// Thresholds
	"thresholds.low":                  floatField(0.5, 10.0, func(h *Hyperparameters) *float64 { return &h.Thresholds.Low }),
	"thresholds.moderate":             floatField(1.0, 20.0, func(h *Hyperparameters) *float64 { return &h.Thresholds.Moderate }),
	"thresholds.high":                 floatField(2.0, 40.0, func(h *Hyperparameters) *float64 { return &h.Thresholds.High }),
	"thresholds.critical":             floatField(3.0, 80.0, func(h *Hyperparameters) *float64 { return &h.Thresholds.Critical }),
	"thresholds.soft_cap_start":       floatField(20.0, 100.0, func(h *Hyperparameters) *float64 { return &h.Thresholds.SoftCapStart }),
	"thresholds.soft_cap_slope":       floatField(0.1, 1.0, func(h *Hyperparameters) *float64 { return &h.Thresholds.SoftCapSlope }),
	"thresholds.low_confidence_floor": floatField(0.3, 1.0, func(h *Hyperparameters) *float64 { return &h.Thresholds.LowConfidenceFloor }),
}

// Ranges returns the legal [min, max] for every tunable path. External
// optimizers consume this to bound their search space.
func Ranges() map[string][2]float64 {
	out := make(map[string][2]float64, len(fields))
	for path, f := range fields {
		out[path] = [2]float64{f.min, f.max}
	}
	return out
}
