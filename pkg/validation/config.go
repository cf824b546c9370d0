package validation

import (
	"fmt"
	"time"

	"github.com/iwvelando/loan-analytics/pkg/datetime"
)

// ValidateStartDate checks that a loan's first payment month parses. An
// empty start date is allowed; callers substitute the current month.
func ValidateStartDate(loanName, startDate string) error {
	if startDate == "" {
		return nil
	}
	if _, err := time.Parse(datetime.DateTimeLayout, startDate); err != nil {
		return fmt.Errorf("loan '%s' has invalid start date %q, expected YYYY-MM: %w", loanName, startDate, err)
	}
	return nil
}

// ValidateLumpSumPeriod warns when a lump sum is scheduled after the last
// payment and would therefore never be applied.
func ValidateLumpSumPeriod(loanName string, lumpSum float64, lumpSumPeriod, totalPayments int) string {
	if lumpSum > 0 && lumpSumPeriod > totalPayments {
		return fmt.Sprintf("Loan '%s' lump sum at period %d is after the final scheduled payment %d and will not be applied",
			loanName, lumpSumPeriod, totalPayments)
	}
	return ""
}

// ValidateExtraPayment warns when the first payment including the extra
// amount already covers the whole principal.
func ValidateExtraPayment(loanName string, extraPerPeriod, levelPayment, principal float64) string {
	if extraPerPeriod > 0 && levelPayment+extraPerPeriod >= principal {
		return fmt.Sprintf("Loan '%s' extra payment %.2f pays off the loan in the first period", loanName, extraPerPeriod)
	}
	return ""
}

// ConfigValidator collects the loan facts needed for warnings.
type ConfigValidator struct {
	Compare bool
	Loans   []LoanConfig
}

// LoanConfig holds the validation view of one configured loan.
type LoanConfig struct {
	Name           string
	Principal      float64
	TotalPayments  int
	LevelPayment   float64
	ExtraPerPeriod float64
	LumpSum        float64
	LumpSumPeriod  int
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	if len(cv.Loans) == 0 {
		warnings = append(warnings, "No loans configured")
	}
	if cv.Compare && len(cv.Loans) == 1 {
		warnings = append(warnings, "Comparison requested with a single loan")
	}

	seen := make(map[string]bool, len(cv.Loans))
	for _, loan := range cv.Loans {
		if seen[loan.Name] {
			warnings = append(warnings, fmt.Sprintf("Loan name '%s' is used more than once", loan.Name))
		}
		seen[loan.Name] = true

		if warning := ValidateLumpSumPeriod(loan.Name, loan.LumpSum, loan.LumpSumPeriod, loan.TotalPayments); warning != "" {
			warnings = append(warnings, warning)
		}
		if warning := ValidateExtraPayment(loan.Name, loan.ExtraPerPeriod, loan.LevelPayment, loan.Principal); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	return warnings
}
