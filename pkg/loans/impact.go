package loans

import "github.com/iwvelando/loan-analytics/pkg/mathutil"

// PrepaymentImpact compares a prepayment plan against the baseline schedule.
type PrepaymentImpact struct {
	Baseline      ScheduleTotals `json:"baseline"`
	WithPlan      ScheduleTotals `json:"withPlan"`
	InterestSaved float64        `json:"interestSaved"`
	PeriodsSaved  int            `json:"periodsSaved"`
}

// ComparePrepayment generates the schedule with and without plan and reports
// the interest and periods saved.
func (g *ScheduleGenerator) ComparePrepayment(loan LoanTerms, plan PrepaymentPlan) (PrepaymentImpact, error) {
	baseline, err := g.Generate(loan, PrepaymentPlan{})
	if err != nil {
		return PrepaymentImpact{}, err
	}
	prepaid, err := g.Generate(loan, plan)
	if err != nil {
		return PrepaymentImpact{}, err
	}

	impact := PrepaymentImpact{
		Baseline: Totals(baseline),
		WithPlan: Totals(prepaid),
	}
	impact.InterestSaved = mathutil.Round(impact.Baseline.Interest - impact.WithPlan.Interest)
	impact.PeriodsSaved = impact.Baseline.Periods - impact.WithPlan.Periods
	return impact, nil
}
