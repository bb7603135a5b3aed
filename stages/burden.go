package stages

import (
	"context"
	"fmt"
)

// LoanAnalysisRequest carries the loan terms shared by the burden and market
// capabilities. LenderName must never be empty on the wire; callers default
// it to "Generic Lender".
type LoanAnalysisRequest struct {
	Amount        float64 `json:"amount"`
	InterestRate  float64 `json:"interest_rate"`
	TenureMonths  int     `json:"tenure_months"`
	LenderName    string  `json:"lender_name"`
	Purpose       string  `json:"purpose"`
	MonthlyIncome float64 `json:"monthly_income"`
	Language      string  `json:"language"`
}

// BurdenResult is the loan-analysis output: a 0-100 burden score (higher is
// heavier), the total repayment, and hidden-trap warnings.
type BurdenResult struct {
	BurdenScore  float64  `json:"burden_score"`
	TotalPayable float64  `json:"total_payable"`
	HiddenTraps  []string `json:"hidden_traps"`
}

func (r *BurdenResult) validate() error {
	if r.BurdenScore < 0 || r.BurdenScore > 100 {
		return fmt.Errorf("burden_score %v outside [0,100]", r.BurdenScore)
	}
	if r.TotalPayable < 0 {
		return fmt.Errorf("total_payable %v is negative", r.TotalPayable)
	}
	return nil
}

// Burden scores how onerous the requested loan is for the household.
func (c *Client) Burden(ctx context.Context, req LoanAnalysisRequest) (*BurdenResult, error) {
	var out BurdenResult
	if err := c.post(ctx, "burden", pathBurden, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
