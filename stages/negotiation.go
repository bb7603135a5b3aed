package stages

import "context"

// NegotiationProfile extends the stability figures with the loan terms the
// mentor capability weaves into its script.
type NegotiationProfile struct {
	StabilityRequest

	LenderName   string  `json:"lender_name"`
	LoanAmount   float64 `json:"loan_amount"`
	InterestRate float64 `json:"interest_rate"`
}

// NegotiationRequest asks the mentor capability for a negotiation script
// tailored to the household, the loan, and the synthesized decision.
type NegotiationRequest struct {
	FinancialProfile  NegotiationProfile `json:"financial_profile"`
	DecisionSynthesis SynthesisResult    `json:"decision_synthesis"`
	Language          string             `json:"language"`
}

// NegotiationResult carries the optional script. An empty script from a
// successful call is treated by callers the same as an absent one.
type NegotiationResult struct {
	NegotiationScript string `json:"negotiation_script"`
}

// Negotiation requests a lender negotiation script. This is the only
// pipeline capability whose failure callers tolerate.
func (c *Client) Negotiation(ctx context.Context, req NegotiationRequest) (*NegotiationResult, error) {
	var out NegotiationResult
	if err := c.post(ctx, "negotiation", pathNegotiation, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
