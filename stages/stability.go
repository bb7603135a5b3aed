package stages

import (
	"context"
	"fmt"
)

// StabilityRequest carries the household figures the profile-analysis
// capability scores. Field names are fixed by the collaborator contract.
type StabilityRequest struct {
	Income        float64 `json:"income"`
	Expenses      float64 `json:"expenses"`
	Savings       float64 `json:"savings"`
	EmergencyFund float64 `json:"emergency_fund"`
	Assets        float64 `json:"assets"`
	ExistingEMIs  float64 `json:"existing_emis"`
	Dependents    int     `json:"dependents"`
	Language      string  `json:"language"`
}

// StabilityResult is the profile-analysis output: a 0-100 resilience score
// and advisory risk flags.
type StabilityResult struct {
	StabilityScore float64  `json:"stability_score"`
	RiskFlags      []string `json:"risk_flags"`
}

func (r *StabilityResult) validate() error {
	if r.StabilityScore < 0 || r.StabilityScore > 100 {
		return fmt.Errorf("stability_score %v outside [0,100]", r.StabilityScore)
	}
	return nil
}

// Stability scores the household's financial resilience.
func (c *Client) Stability(ctx context.Context, req StabilityRequest) (*StabilityResult, error) {
	var out StabilityResult
	if err := c.post(ctx, "stability", pathStability, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
