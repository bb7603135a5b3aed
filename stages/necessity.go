package stages

import (
	"context"
	"fmt"
)

// NecessityRequest asks whether the loan is genuinely needed given the
// household's stability score and reserves.
type NecessityRequest struct {
	LoanPurpose             string  `json:"loan_purpose"`
	LoanAmount              float64 `json:"loan_amount"`
	FinancialStabilityScore float64 `json:"financial_stability_score"`
	Savings                 float64 `json:"savings"`
	EmergencyFund           float64 `json:"emergency_fund"`
	Language                string  `json:"language"`
}

// NecessityResult is the loan-necessity output.
type NecessityResult struct {
	NecessityLevel string `json:"necessity_level"`
	IsNecessary    bool   `json:"is_necessary"`
}

func (r *NecessityResult) validate() error {
	if r.NecessityLevel == "" {
		return fmt.Errorf("necessity_level is empty")
	}
	return nil
}

// Necessity evaluates whether the requested loan is needed at all.
func (c *Client) Necessity(ctx context.Context, req NecessityRequest) (*NecessityResult, error) {
	var out NecessityResult
	if err := c.post(ctx, "necessity", pathNecessity, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
