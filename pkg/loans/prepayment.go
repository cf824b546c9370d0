package loans

import (
	"fmt"

	"github.com/iwvelando/loan-analytics/pkg/mathutil"
)

// PrepaymentPlan describes payments made on top of the level payment. The
// zero value means no prepayment.
type PrepaymentPlan struct {
	// ExtraPerPeriod is added to the principal portion of every payment.
	ExtraPerPeriod float64 `json:"extraPerPeriod" yaml:"extraPerPeriod"`
	// LumpSum is a one-time principal payment made at LumpSumPeriod.
	LumpSum float64 `json:"lumpSum" yaml:"lumpSum"`
	// LumpSumPeriod is the 1-based period of the lump sum. Ignored when LumpSum is 0.
	LumpSumPeriod int `json:"lumpSumPeriod" yaml:"lumpSumPeriod"`
}

// Validate rejects negative or non-finite amounts and a lump sum without a
// valid period.
func (p PrepaymentPlan) Validate() error {
	if !mathutil.IsFinite(p.ExtraPerPeriod) || p.ExtraPerPeriod < 0 {
		return fmt.Errorf("%w: extra payment per period must be non-negative, got %v", ErrInvalidInput, p.ExtraPerPeriod)
	}
	if !mathutil.IsFinite(p.LumpSum) || p.LumpSum < 0 {
		return fmt.Errorf("%w: lump sum must be non-negative, got %v", ErrInvalidInput, p.LumpSum)
	}
	if p.LumpSum > 0 && p.LumpSumPeriod < 1 {
		return fmt.Errorf("%w: lump sum period must be at least 1, got %d", ErrInvalidInput, p.LumpSumPeriod)
	}
	return nil
}

// IsZero reports whether the plan makes no payments beyond the level payment.
func (p PrepaymentPlan) IsZero() bool {
	return p.ExtraPerPeriod == 0 && p.LumpSum == 0
}

// lumpSumAt returns the lump sum due at the given period, if any.
func (p PrepaymentPlan) lumpSumAt(period int) float64 {
	if p.LumpSum > 0 && period == p.LumpSumPeriod {
		return p.LumpSum
	}
	return 0
}
