package domain_test

import (
	"testing"

	"github.com/credguard/verdict/core/domain"
)

func validProfile() domain.FinancialProfile {
	return domain.FinancialProfile{
		MonthlyIncome:   100000,
		MonthlyExpenses: 20000,
		ExistingEMIs:    5000,
		Savings:         150000,
		Assets:          []domain.Asset{{ID: "1", Name: "car", Value: 400000}},
		Dependents:      2,
	}
}

func TestFinancialProfileValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*domain.FinancialProfile)
		wantField string
	}{
		{"valid", func(p *domain.FinancialProfile) {}, ""},
		{"zero expenses and savings are fine", func(p *domain.FinancialProfile) {
			p.MonthlyExpenses = 0
			p.Savings = 0
			p.ExistingEMIs = 0
		}, ""},
		{"zero income", func(p *domain.FinancialProfile) { p.MonthlyIncome = 0 }, "monthlyIncome"},
		{"negative income", func(p *domain.FinancialProfile) { p.MonthlyIncome = -1 }, "monthlyIncome"},
		{"negative expenses", func(p *domain.FinancialProfile) { p.MonthlyExpenses = -1 }, "monthlyExpenses"},
		{"negative emis", func(p *domain.FinancialProfile) { p.ExistingEMIs = -1 }, "existingEMIs"},
		{"negative savings", func(p *domain.FinancialProfile) { p.Savings = -1 }, "savings"},
		{"negative dependents", func(p *domain.FinancialProfile) { p.Dependents = -1 }, "dependents"},
		{"negative asset value", func(p *domain.FinancialProfile) { p.Assets[0].Value = -1 }, "assets[0].value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)

			err := p.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate returned %v, want nil", err)
				}
				return
			}

			validationErr, ok := err.(*domain.ValidationError)
			if !ok {
				t.Fatalf("Validate returned %T, want *domain.ValidationError", err)
			}
			if validationErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", validationErr.Field, tt.wantField)
			}
		})
	}
}

func TestLoanRequestValidate(t *testing.T) {
	valid := domain.LoanRequest{Amount: 200000, InterestRate: 10, TenureMonths: 24, Purpose: "education"}

	tests := []struct {
		name      string
		mutate    func(*domain.LoanRequest)
		wantField string
	}{
		{"valid", func(l *domain.LoanRequest) {}, ""},
		{"zero rate is fine", func(l *domain.LoanRequest) { l.InterestRate = 0 }, ""},
		{"other purpose with custom text", func(l *domain.LoanRequest) {
			l.Purpose = domain.PurposeOther
			l.CustomPurpose = "wedding"
		}, ""},
		{"zero amount", func(l *domain.LoanRequest) { l.Amount = 0 }, "amount"},
		{"negative rate", func(l *domain.LoanRequest) { l.InterestRate = -0.5 }, "interestRate"},
		{"zero tenure", func(l *domain.LoanRequest) { l.TenureMonths = 0 }, "tenureMonths"},
		{"other purpose without custom text", func(l *domain.LoanRequest) { l.Purpose = domain.PurposeOther }, "customPurpose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := valid
			tt.mutate(&l)

			err := l.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate returned %v, want nil", err)
				}
				return
			}

			validationErr, ok := err.(*domain.ValidationError)
			if !ok {
				t.Fatalf("Validate returned %T, want *domain.ValidationError", err)
			}
			if validationErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", validationErr.Field, tt.wantField)
			}
		})
	}
}

func TestTotalAssets(t *testing.T) {
	p := domain.FinancialProfile{
		Assets: []domain.Asset{
			{Name: "car", Value: 400000},
			{Name: "gold", Value: 100000},
		},
	}
	if got, want := p.TotalAssets(), 500000.0; got != want {
		t.Errorf("TotalAssets = %v, want %v", got, want)
	}

	if got := (domain.FinancialProfile{}).TotalAssets(); got != 0 {
		t.Errorf("TotalAssets on empty profile = %v, want 0", got)
	}
}
