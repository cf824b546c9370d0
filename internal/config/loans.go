package config

import (
	"fmt"

	"github.com/iwvelando/loan-analytics/pkg/loans"
)

// Loan indicates a loan and its parameters.
type Loan struct {
	Name            string     `yaml:"name"`
	Principal       float64    `yaml:"principal"`
	InterestRate    float64    `yaml:"interestRate"` // annual, percent
	TermYears       int        `yaml:"termYears"`
	PaymentsPerYear int        `yaml:"paymentsPerYear,omitempty"`
	StartDate       string     `yaml:"startDate,omitempty"`
	Prepayment      Prepayment `yaml:"prepayment,omitempty"`
}

// Prepayment holds optional payments on top of the level payment.
type Prepayment struct {
	ExtraPerPeriod float64 `yaml:"extraPerPeriod,omitempty"`
	LumpSum        float64 `yaml:"lumpSum,omitempty"`
	LumpSumPeriod  int     `yaml:"lumpSumPeriod,omitempty"`
}

// Terms converts the configured loan into validated loan terms.
func (loan Loan) Terms() (loans.LoanTerms, error) {
	terms, err := loans.NewLoanTerms(loan.Principal, loan.InterestRate, loan.TermYears, loan.PaymentsPerYear)
	if err != nil {
		return loans.LoanTerms{}, fmt.Errorf("loan '%s': %w", loan.Name, err)
	}
	return terms, nil
}

// Plan converts the configured prepayment into a prepayment plan.
func (loan Loan) Plan() loans.PrepaymentPlan {
	return loans.PrepaymentPlan{
		ExtraPerPeriod: loan.Prepayment.ExtraPerPeriod,
		LumpSum:        loan.Prepayment.LumpSum,
		LumpSumPeriod:  loan.Prepayment.LumpSumPeriod,
	}
}
