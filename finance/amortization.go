// Package finance provides the pure loan math shared by the remote verdict
// pipeline and the offline estimator: fixed-payment amortization, total
// repayment cost, and debt-to-income ratios.
package finance

import "math"

// MonthlyInstallment computes the fixed monthly payment (EMI) for a loan of
// the given principal, annual interest rate in percent, and term in months.
//
// A non-positive term yields 0; callers wanting a distinct treatment of
// degenerate terms must guard upstream. A zero rate degrades to straight-line
// repayment, avoiding the division by zero in the compound formula. The
// compound path is stable for terms up to 480 months and rates up to 60%.
func MonthlyInstallment(principal, annualRatePercent float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}

	r := annualRatePercent / 1200
	if r == 0 {
		return principal / float64(termMonths)
	}

	pow := math.Pow(1+r, float64(termMonths))
	return principal * r * pow / (pow - 1)
}

// TotalPayable is the total repayment over the full term at the fixed
// monthly installment.
func TotalPayable(principal, annualRatePercent float64, termMonths int) float64 {
	return MonthlyInstallment(principal, annualRatePercent, termMonths) * float64(termMonths)
}

// DebtToIncome computes (expenses + existing EMIs + new EMI) / income.
// The ratio is undefined when income is not positive; ok is false and
// callers must treat the case as maximal risk.
func DebtToIncome(income, expenses, existingEMIs, newEMI float64) (ratio float64, ok bool) {
	if income <= 0 {
		return 0, false
	}
	return (expenses + existingEMIs + newEMI) / income, true
}

// Round2 rounds a currency amount to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
