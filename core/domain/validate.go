package domain

import "fmt"

// ValidationError reports malformed or missing required input, detected
// before any remote stage is invoked.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the profile fields a verdict computation requires.
// Income must be strictly positive; the remaining currency fields must be
// non-negative.
func (p FinancialProfile) Validate() error {
	if p.MonthlyIncome <= 0 {
		return &ValidationError{Field: "monthlyIncome", Reason: "must be greater than zero"}
	}
	if p.MonthlyExpenses < 0 {
		return &ValidationError{Field: "monthlyExpenses", Reason: "must not be negative"}
	}
	if p.ExistingEMIs < 0 {
		return &ValidationError{Field: "existingEMIs", Reason: "must not be negative"}
	}
	if p.Savings < 0 {
		return &ValidationError{Field: "savings", Reason: "must not be negative"}
	}
	if p.Dependents < 0 {
		return &ValidationError{Field: "dependents", Reason: "must not be negative"}
	}
	for i, a := range p.Assets {
		if a.Value < 0 {
			return &ValidationError{
				Field:  fmt.Sprintf("assets[%d].value", i),
				Reason: "must not be negative",
			}
		}
	}
	return nil
}

// Validate checks the loan fields a verdict computation requires.
func (l LoanRequest) Validate() error {
	if l.Amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if l.InterestRate < 0 {
		return &ValidationError{Field: "interestRate", Reason: "must not be negative"}
	}
	if l.TenureMonths <= 0 {
		return &ValidationError{Field: "tenureMonths", Reason: "must be greater than zero"}
	}
	if l.Purpose == PurposeOther && l.CustomPurpose == "" {
		return &ValidationError{Field: "customPurpose", Reason: "required when purpose is Other"}
	}
	return nil
}
