// Package domain defines the household financial profile, loan request, and
// verdict types exchanged with the risk pipeline. Values are owned by the
// caller for the lifetime of one verdict request and treated as immutable
// once handed to the pipeline.
package domain

// Asset is a single owned asset declared in a financial profile.
type Asset struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// FinancialProfile captures a household's monthly cash flow and holdings.
type FinancialProfile struct {
	MonthlyIncome   float64 `json:"monthlyIncome"`
	MonthlyExpenses float64 `json:"monthlyExpenses"`
	ExistingEMIs    float64 `json:"existingEMIs"`
	Savings         float64 `json:"savings"`
	Assets          []Asset `json:"assets"`
	Dependents      int     `json:"dependents"`

	// SpendingBehavior is a 0-100 slider value: 0 is wants-oriented,
	// 100 is needs-oriented.
	SpendingBehavior int `json:"spendingBehavior"`
}

// TotalAssets sums the declared asset values.
func (p FinancialProfile) TotalAssets() float64 {
	var sum float64
	for _, a := range p.Assets {
		sum += a.Value
	}
	return sum
}

// PurposeOther marks a loan purpose outside the enumerated reasons; when used,
// CustomPurpose carries the free-text reason.
const PurposeOther = "Other"

// LoanRequest describes the loan under evaluation.
type LoanRequest struct {
	Amount        float64 `json:"amount"`
	InterestRate  float64 `json:"interestRate"` // annual percent
	TenureMonths  int     `json:"tenureMonths"`
	Lender        string  `json:"lender"`
	Purpose       string  `json:"purpose"`
	CustomPurpose string  `json:"customPurpose,omitempty"`
}

// Band is an ordinal credit-quality category, Excellent best.
type Band string

const (
	BandExcellent Band = "Excellent"
	BandGood      Band = "Good"
	BandFair      Band = "Fair"
	BandPoor      Band = "Poor"
)

// CreditInsight is the output of the upstream credit-scoring step, consumed
// as an input to decision synthesis.
type CreditInsight struct {
	ScoreRange          string  `json:"scoreRange"`
	Band                Band    `json:"band"`
	ApprovalProbability float64 `json:"approvalProbability"` // 0-100
	ImpactNote          string  `json:"impactNote"`
}

// RiskLevel is the public verdict band.
type RiskLevel string

const (
	RiskSafe      RiskLevel = "SAFE"
	RiskRisky     RiskLevel = "RISKY"
	RiskDangerous RiskLevel = "DANGEROUS"
)

// Suggestion is one actionable recommendation attached to a verdict.
// Field names follow the synthesis service's wire format.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ActionType  string `json:"action_type"`
}

// FinalVerdict is the public result of one verdict computation.
//
// RiskScore and RiskLevel must agree in direction: SAFE sits at the lower end
// of the 0-100 scale, DANGEROUS at the upper end. NegotiationScript is absent
// when the optional negotiation stage did not produce one.
type FinalVerdict struct {
	RiskLevel         RiskLevel    `json:"riskLevel"`
	ConfidenceScore   int          `json:"confidenceScore"` // 0-100
	Explanation       string       `json:"explanation"`
	RiskFlags         []string     `json:"riskFlags"`
	RiskScore         int          `json:"riskScore"` // 0-100, higher is riskier
	Suggestions       []Suggestion `json:"suggestions"`
	FinancialTips     []string     `json:"financialTips"`
	NegotiationScript string       `json:"negotiationScript,omitempty"`
}
