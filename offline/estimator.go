// Package offline computes a degraded verdict without any remote stage
// service, driven entirely by the amortization calculator and fixed
// debt-to-income thresholds. It is the alternate entry point for
// environments where the verdict must be computable offline.
package offline

import (
	"fmt"

	"github.com/credguard/verdict/core/domain"
	"github.com/credguard/verdict/finance"
)

// Debt-to-income thresholds separating the three verdict bands.
const (
	dangerousThreshold = 0.60
	riskyThreshold     = 0.45
)

// Fixed scores per band. These intentionally differ from the remote
// pipeline's score-inversion scale; the two paths are kept as-is.
const (
	safeRiskScore    = 20
	safeConfidence   = 92
	riskyRiskScore   = 55
	riskyConfidence  = 80
	dangerRiskScore  = 85
	dangerConfidence = 95
)

// Estimate computes a verdict from the profile and loan alone. It never
// touches the network and only fails on missing required numeric inputs.
// A non-positive income makes the debt-to-income ratio undefined and is
// treated as maximal risk, not as an error.
func Estimate(profile domain.FinancialProfile, loan domain.LoanRequest) (*domain.FinalVerdict, error) {
	if err := loan.Validate(); err != nil {
		return nil, err
	}
	if profile.MonthlyExpenses < 0 {
		return nil, &domain.ValidationError{Field: "monthlyExpenses", Reason: "must not be negative"}
	}
	if profile.ExistingEMIs < 0 {
		return nil, &domain.ValidationError{Field: "existingEMIs", Reason: "must not be negative"}
	}

	emi := finance.MonthlyInstallment(loan.Amount, loan.InterestRate, loan.TenureMonths)

	ratio, ok := finance.DebtToIncome(profile.MonthlyIncome, profile.MonthlyExpenses, profile.ExistingEMIs, emi)
	if !ok {
		v := dangerousVerdict(emi, 0)
		v.Explanation = "Without a positive monthly income the new installment cannot be serviced at all. Taking this loan now would be dangerous."
		return v, nil
	}

	switch {
	case ratio > dangerousThreshold:
		return dangerousVerdict(emi, ratio), nil
	case ratio > riskyThreshold:
		return riskyVerdict(emi, ratio), nil
	default:
		return safeVerdict(emi, ratio), nil
	}
}

func safeVerdict(emi, ratio float64) *domain.FinalVerdict {
	return &domain.FinalVerdict{
		RiskLevel:       domain.RiskSafe,
		ConfidenceScore: safeConfidence,
		RiskScore:       safeRiskScore,
		Explanation: fmt.Sprintf(
			"With the new installment of %.0f your total obligations stay at %.0f%% of income, leaving comfortable headroom for essentials and savings.",
			emi, ratio*100),
		RiskFlags: []string{},
		Suggestions: []domain.Suggestion{
			{
				Title:       "Keep an emergency buffer",
				Description: "Maintain at least three months of expenses in savings while repaying.",
				ActionType:  "savings",
			},
		},
		FinancialTips: []string{
			"Set up an auto-debit for the installment to avoid missed payments.",
		},
	}
}

func riskyVerdict(emi, ratio float64) *domain.FinalVerdict {
	return &domain.FinalVerdict{
		RiskLevel:       domain.RiskRisky,
		ConfidenceScore: riskyConfidence,
		RiskScore:       riskyRiskScore,
		Explanation: fmt.Sprintf(
			"The new installment of %.0f pushes your total obligations to %.0f%% of income. One irregular month could strain the budget.",
			emi, ratio*100),
		RiskFlags: []string{
			"Debt obligations exceed 45% of monthly income",
		},
		Suggestions: []domain.Suggestion{
			{
				Title:       "Extend the tenure",
				Description: "A longer tenure lowers the monthly installment, at the cost of total interest.",
				ActionType:  "restructure",
			},
			{
				Title:       "Borrow less",
				Description: "Trimming the principal brings the obligation ratio back under 45%.",
				ActionType:  "reduce",
			},
		},
		FinancialTips: []string{
			"Review recurring subscriptions and cut what you do not use.",
			"Avoid taking on any additional EMI until this loan is repaid.",
		},
	}
}

func dangerousVerdict(emi, ratio float64) *domain.FinalVerdict {
	return &domain.FinalVerdict{
		RiskLevel:       domain.RiskDangerous,
		ConfidenceScore: dangerConfidence,
		RiskScore:       dangerRiskScore,
		Explanation: fmt.Sprintf(
			"The new installment of %.0f takes your total obligations to %.0f%% of income. Servicing this loan would leave almost nothing for living costs.",
			emi, ratio*100),
		RiskFlags: []string{
			"Debt obligations exceed 60% of monthly income",
			"High chance of default on an irregular income month",
		},
		Suggestions: []domain.Suggestion{
			{
				Title:       "Do not take this loan now",
				Description: "Reduce existing EMIs or raise income before borrowing again.",
				ActionType:  "defer",
			},
		},
		FinancialTips: []string{
			"List every existing EMI and target the highest-rate one first.",
			"Build a small emergency fund before committing to new debt.",
		},
	}
}
