package stages

import (
	"context"
	"fmt"
)

// DebtItem describes one existing debt considered for consolidation.
type DebtItem struct {
	Name           string  `json:"name"`
	Amount         float64 `json:"amount"`
	InterestRate   float64 `json:"interest_rate"`
	MonthlyPayment float64 `json:"monthly_payment"`
}

// ConsolidationRequest asks whether rolling the listed debts into the new
// loan saves money.
type ConsolidationRequest struct {
	ExistingDebts       []DebtItem `json:"existing_debts"`
	NewLoanAmount       float64    `json:"new_loan_amount"`
	NewLoanInterestRate float64    `json:"new_loan_interest_rate"`
	NewLoanTenureMonths int        `json:"new_loan_tenure_months"`
}

// ConsolidationResult is the debt-consolidation comparator output.
type ConsolidationResult struct {
	ShouldConsolidate bool    `json:"should_consolidate"`
	MonthlySavings    float64 `json:"monthly_savings"`
	TotalSavings      float64 `json:"total_savings"`
	Recommendation    string  `json:"recommendation"`
}

func (r *ConsolidationResult) validate() error {
	if r.Recommendation == "" {
		return fmt.Errorf("recommendation is empty")
	}
	return nil
}

// Consolidation runs the debt-consolidation comparator. This is a parallel
// feature, never called by the verdict pipeline itself.
func (c *Client) Consolidation(ctx context.Context, req ConsolidationRequest) (*ConsolidationResult, error) {
	var out ConsolidationResult
	if err := c.post(ctx, "consolidation", pathConsolidation, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
