package stages

import (
	"context"
	"fmt"

	"github.com/credguard/verdict/core/domain"
)

// SynthesisRequest joins the upstream stage scores with the raw financial
// figures the synthesis capability needs to personalize its suggestions.
type SynthesisRequest struct {
	FinancialStabilityScore float64 `json:"financial_stability_score"`
	CreditScoreBand         string  `json:"credit_score_band"`
	LoanBurdenScore         float64 `json:"loan_burden_score"`
	LoanNecessityLevel      string  `json:"loan_necessity_level"`
	MarketIsFair            bool    `json:"market_is_fair"`
	Language                string  `json:"language"`
	MonthlyIncome           float64 `json:"monthly_income"`
	MonthlyExpenses         float64 `json:"monthly_expenses"`
	LoanAmount              float64 `json:"loan_amount"`
	ExistingEMIs            float64 `json:"existing_emis"`
	DesiredEMI              float64 `json:"desired_emi"`
}

// SynthesisResult is the decision-synthesis output. Score is a safety score:
// higher means safer. Verdict is normally one of Safe, Risky, or Dangerous;
// unknown values are not a schema failure — the verdict mapper collapses
// them to the conservative middle band.
type SynthesisResult struct {
	Verdict       string              `json:"verdict"`
	Confidence    float64             `json:"confidence"` // 0-1
	Explanation   string              `json:"explanation"`
	Score         float64             `json:"score"` // 0-100, higher is safer
	Suggestions   []domain.Suggestion `json:"suggestions"`
	FinancialTips []string            `json:"financial_tips"`
}

func (r *SynthesisResult) validate() error {
	if r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("confidence %v outside [0,1]", r.Confidence)
	}
	if r.Score < 0 || r.Score > 100 {
		return fmt.Errorf("score %v outside [0,100]", r.Score)
	}
	return nil
}

// Synthesis produces the final decision from all upstream stage outputs.
func (c *Client) Synthesis(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	var out SynthesisResult
	if err := c.post(ctx, "synthesis", pathSynthesis, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
