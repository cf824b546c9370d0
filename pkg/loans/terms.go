// Package loans provides the loan amortization engine: loan terms, prepayment
// plans, period-by-period schedules and their yearly aggregation.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/loan-analytics/pkg/constants"
	"github.com/iwvelando/loan-analytics/pkg/mathutil"
)

// LoanTerms describes a fixed-rate loan. It is immutable once constructed;
// use NewLoanTerms to build a validated value.
type LoanTerms struct {
	principal         float64
	annualRatePercent float64
	termYears         int
	paymentsPerYear   int
}

// NewLoanTerms validates the inputs and returns the loan terms. A
// paymentsPerYear of 0 selects monthly payments.
func NewLoanTerms(principal, annualRatePercent float64, termYears, paymentsPerYear int) (LoanTerms, error) {
	if paymentsPerYear == 0 {
		paymentsPerYear = constants.DefaultPaymentsPerYear
	}
	terms := LoanTerms{
		principal:         principal,
		annualRatePercent: annualRatePercent,
		termYears:         termYears,
		paymentsPerYear:   paymentsPerYear,
	}
	if err := terms.validate(); err != nil {
		return LoanTerms{}, err
	}
	return terms, nil
}

// MustLoanTerms is like NewLoanTerms but panics on invalid input. It is
// intended for tests and literals known to be valid.
func MustLoanTerms(principal, annualRatePercent float64, termYears, paymentsPerYear int) LoanTerms {
	terms, err := NewLoanTerms(principal, annualRatePercent, termYears, paymentsPerYear)
	if err != nil {
		panic(err)
	}
	return terms
}

func (t LoanTerms) validate() error {
	if !mathutil.IsFinite(t.principal) || t.principal <= 0 {
		return fmt.Errorf("%w: principal must be positive, got %v", ErrInvalidInput, t.principal)
	}
	if !mathutil.IsFinite(t.annualRatePercent) || t.annualRatePercent < 0 {
		return fmt.Errorf("%w: annual rate must be non-negative, got %v", ErrInvalidInput, t.annualRatePercent)
	}
	if t.termYears <= 0 {
		return fmt.Errorf("%w: term must be a positive number of years, got %d", ErrInvalidInput, t.termYears)
	}
	if t.paymentsPerYear <= 0 {
		return fmt.Errorf("%w: payments per year must be positive, got %d", ErrInvalidInput, t.paymentsPerYear)
	}
	if t.termYears > constants.MaxTotalPayments/t.paymentsPerYear {
		return fmt.Errorf("%w: %d years at %d payments per year exceeds %d payments",
			ErrInvalidInput, t.termYears, t.paymentsPerYear, constants.MaxTotalPayments)
	}
	return nil
}

// Principal returns the loan face value.
func (t LoanTerms) Principal() float64 { return t.principal }

// AnnualRatePercent returns the nominal annual rate, e.g. 6.5 for 6.5%.
func (t LoanTerms) AnnualRatePercent() float64 { return t.annualRatePercent }

// TermYears returns the term of the loan in years.
func (t LoanTerms) TermYears() int { return t.termYears }

// PaymentsPerYear returns the payment frequency.
func (t LoanTerms) PaymentsPerYear() int { return t.paymentsPerYear }

// PeriodicRate returns the interest rate applied per payment period.
func (t LoanTerms) PeriodicRate() float64 {
	return t.annualRatePercent / constants.PercentageMultiplier / float64(t.paymentsPerYear)
}

// TotalPayments returns the number of scheduled payments over the term.
func (t LoanTerms) TotalPayments() int {
	return t.termYears * t.paymentsPerYear
}

// LevelPayment calculates the fixed periodic payment (EMI) that amortizes the
// loan over its term using the standard annuity formula.
func (t LoanTerms) LevelPayment() float64 {
	n := float64(t.TotalPayments())
	r := t.PeriodicRate()
	if r == 0 {
		// For zero interest, simply divide the principal by the number of payments
		return t.principal / n
	}

	power := math.Pow(1+r, n)
	return t.principal * r * power / (power - 1)
}

// String implements fmt.Stringer for log and error messages.
func (t LoanTerms) String() string {
	return fmt.Sprintf("%.2f at %.3f%% over %d years (%d payments/year)",
		t.principal, t.annualRatePercent, t.termYears, t.paymentsPerYear)
}
