// Package affordability rates a new loan payment against a borrower's
// monthly income using the debt-to-income (DTI) ratio.
package affordability

import (
	"fmt"

	"github.com/iwvelando/loan-analytics/pkg/constants"
	"github.com/iwvelando/loan-analytics/pkg/loans"
	"github.com/iwvelando/loan-analytics/pkg/mathutil"
)

// Borrower holds the monthly figures a DTI ratio is computed from.
type Borrower struct {
	MonthlyIncome     float64 `yaml:"monthlyIncome" json:"monthlyIncome"`
	ExistingEMI       float64 `yaml:"existingEmi,omitempty" json:"existingEmi,omitempty"`
	CreditCardMinimum float64 `yaml:"creditCardMinimum,omitempty" json:"creditCardMinimum,omitempty"`
}

// MonthlyDebt is the borrower's existing monthly debt service.
func (b Borrower) MonthlyDebt() float64 {
	return b.ExistingEMI + b.CreditCardMinimum
}

// Validate rejects a non-positive income and negative or non-finite debts.
func (b Borrower) Validate() error {
	if !mathutil.IsFinite(b.MonthlyIncome) || b.MonthlyIncome <= 0 {
		return fmt.Errorf("%w: monthly income must be positive, got %g", loans.ErrInvalidInput, b.MonthlyIncome)
	}
	if !mathutil.IsFinite(b.ExistingEMI) || b.ExistingEMI < 0 {
		return fmt.Errorf("%w: existing EMI must be non-negative, got %g", loans.ErrInvalidInput, b.ExistingEMI)
	}
	if !mathutil.IsFinite(b.CreditCardMinimum) || b.CreditCardMinimum < 0 {
		return fmt.Errorf("%w: credit card minimum must be non-negative, got %g", loans.ErrInvalidInput, b.CreditCardMinimum)
	}
	return nil
}

// Assessment is the DTI readout for one loan.
type Assessment struct {
	MonthlyPayment  float64 `json:"monthlyPayment"`
	CurrentDTI      float64 `json:"currentDti"`
	ProjectedDTI    float64 `json:"projectedDti"`
	CurrentLabel    string  `json:"currentLabel"`
	ProjectedLabel  string  `json:"projectedLabel"`
	WithinThreshold bool    `json:"withinThreshold"`
}

// Status is APPROVED when the projected DTI is below the threshold and
// CAUTION otherwise.
func (a Assessment) Status() string {
	if a.WithinThreshold {
		return "APPROVED"
	}
	return "CAUTION"
}

// Label names a DTI percentage band.
func Label(dtiPercent float64) string {
	switch {
	case dtiPercent < 10:
		return "Excellent"
	case dtiPercent < 20:
		return "Healthy"
	case dtiPercent < constants.DTIThresholdPercent:
		return "Moderate"
	case dtiPercent < 50:
		return "Risky"
	default:
		return "Dangerous"
	}
}

// MonthlyEquivalent converts a per-period payment to its monthly amount.
func MonthlyEquivalent(payment float64, paymentsPerYear int) float64 {
	if paymentsPerYear <= 0 {
		return payment
	}
	return payment * float64(paymentsPerYear) / constants.MonthsPerYear
}

// Assess computes the current DTI from the borrower's existing debt and the
// projected DTI once newMonthlyPayment is added.
func Assess(b Borrower, newMonthlyPayment float64) (Assessment, error) {
	if err := b.Validate(); err != nil {
		return Assessment{}, err
	}
	if !mathutil.IsFinite(newMonthlyPayment) || newMonthlyPayment < 0 {
		return Assessment{}, fmt.Errorf("%w: monthly payment must be non-negative, got %g", loans.ErrInvalidInput, newMonthlyPayment)
	}

	current := mathutil.CalculatePercentage(b.MonthlyDebt(), b.MonthlyIncome)
	projected := mathutil.CalculatePercentage(b.MonthlyDebt()+newMonthlyPayment, b.MonthlyIncome)
	return Assessment{
		MonthlyPayment:  newMonthlyPayment,
		CurrentDTI:      current,
		ProjectedDTI:    projected,
		CurrentLabel:    Label(current),
		ProjectedLabel:  Label(projected),
		WithinThreshold: projected < constants.DTIThresholdPercent,
	}, nil
}
