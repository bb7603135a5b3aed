package pipeline

import (
	"math"

	"github.com/credguard/verdict/core/domain"
	"github.com/credguard/verdict/stages"
)

// MapVerdict converts raw stage outputs into the public verdict shape.
// Pure and deterministic: identical inputs always yield identical verdicts.
//
// The synthesis score is a safety score (higher is safer); the public risk
// score runs the other way, so riskScore = clamp(100 - score, 0, 100). The
// two must agree in direction with the verdict band even though they come
// from different remote computations.
func MapVerdict(stability *stages.StabilityResult, burden *stages.BurdenResult, synthesis *stages.SynthesisResult, negotiationScript string) domain.FinalVerdict {
	// Unknown verdict strings collapse to the conservative middle band
	// rather than propagating unmapped.
	riskLevel := domain.RiskRisky
	switch synthesis.Verdict {
	case "Safe":
		riskLevel = domain.RiskSafe
	case "Dangerous":
		riskLevel = domain.RiskDangerous
	}

	// Advisory text, not a set: concatenated in order, duplicates allowed.
	flags := make([]string, 0, len(stability.RiskFlags)+len(burden.HiddenTraps))
	flags = append(flags, stability.RiskFlags...)
	flags = append(flags, burden.HiddenTraps...)

	return domain.FinalVerdict{
		RiskLevel:         riskLevel,
		ConfidenceScore:   int(math.Round(synthesis.Confidence * 100)),
		Explanation:       synthesis.Explanation,
		RiskFlags:         flags,
		RiskScore:         clamp(100-int(math.Round(synthesis.Score)), 0, 100),
		Suggestions:       synthesis.Suggestions,
		FinancialTips:     synthesis.FinancialTips,
		NegotiationScript: negotiationScript,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
