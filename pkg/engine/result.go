package engine

import "github.com/TryMightyAI/rampart/pkg/hyper"

// RiskLevel is the verdict band for a final score.
type RiskLevel string

const (
	RiskClean    RiskLevel = "CLEAN"
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// AnalysisResult is the verdict for one input. Flags are audit strings in
// phase execution order; they explain the score, they never drive it.
type AnalysisResult struct {
	AnalysisID       string    `json:"analysis_id"`
	Score            float64   `json:"score"`
	RiskLevel        RiskLevel `json:"risk_level"`
	IsSpam           bool      `json:"is_spam"`
	Flags            []string  `json:"flags"`
	ProcessingTimeMs float64   `json:"processing_time_ms"`
}

// riskLevelFor maps a clamped score onto the verdict bands. The bands are
// a step function: raising a score never lowers its level.
func riskLevelFor(score float64, th hyper.Thresholds) RiskLevel {
	switch {
	case score >= th.Critical:
		return RiskCritical
	case score >= th.High:
		return RiskHigh
	case score >= th.Moderate:
		return RiskModerate
	case score >= th.Low:
		return RiskLow
	default:
		return RiskClean
	}
}
