package loans

import (
	"fmt"

	"github.com/iwvelando/loan-analytics/pkg/mathutil"
	"go.uber.org/zap"
)

// PeriodRecord holds the values for a given payment period. Amounts are
// rounded to cents; the generator itself carries full precision.
type PeriodRecord struct {
	Period        int     `json:"period"`
	Payment       float64 `json:"payment"`
	PrincipalPaid float64 `json:"principal"`
	InterestPaid  float64 `json:"interest"`
	EndingBalance float64 `json:"balance"`
}

// ScheduleGenerator produces amortization schedules.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance.
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// GenerateSchedule builds the schedule for loan and plan without logging.
func GenerateSchedule(loan LoanTerms, plan PrepaymentPlan) ([]PeriodRecord, error) {
	return NewScheduleGenerator(nil).Generate(loan, plan)
}

// Generate simulates the loan period by period. Interest accrues on the
// balance before each payment; extra and lump-sum amounts go to principal.
// When the principal due reaches the remaining balance, or at the last
// scheduled period, the balance is paid off exactly and the schedule ends.
func (g *ScheduleGenerator) Generate(loan LoanTerms, plan PrepaymentPlan) ([]PeriodRecord, error) {
	if err := loan.validate(); err != nil {
		return nil, err
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	totalPayments := loan.TotalPayments()
	levelPayment := loan.LevelPayment()
	rate := loan.PeriodicRate()
	balance := loan.principal

	if plan.LumpSum > 0 && plan.LumpSumPeriod > totalPayments {
		g.logger.Debug(fmt.Sprintf("lump sum period %d is beyond the %d scheduled payments and will not be applied",
			plan.LumpSumPeriod, totalPayments),
			zap.String("op", "loans.Generate"),
		)
	}

	schedule := make([]PeriodRecord, 0, totalPayments)
	for period := 1; period <= totalPayments; period++ {
		interest := balance * rate
		principal := levelPayment - interest + plan.ExtraPerPeriod

		if lump := plan.lumpSumAt(period); lump > 0 {
			g.logger.Debug(fmt.Sprintf("period %d: applying lump sum payment %.2f", period, lump),
				zap.String("op", "loans.Generate"),
			)
			principal += lump
		}

		var payment float64
		if principal >= balance || period == totalPayments {
			// Final payment; any floating point residue is folded in here.
			principal = balance
			payment = principal + interest
			balance = 0
		} else {
			payment = levelPayment + plan.ExtraPerPeriod
			balance -= principal
		}

		schedule = append(schedule, PeriodRecord{
			Period:        period,
			Payment:       mathutil.Round(payment),
			PrincipalPaid: mathutil.Round(principal),
			InterestPaid:  mathutil.Round(interest),
			EndingBalance: mathutil.Round(balance),
		})

		if balance <= 0 {
			if period < totalPayments {
				g.logger.Debug(fmt.Sprintf("loan paid off at period %d of %d", period, totalPayments),
					zap.String("op", "loans.Generate"),
				)
			}
			break
		}
	}

	return schedule, nil
}

// ScheduleTotals aggregates a schedule.
type ScheduleTotals struct {
	Periods   int     `json:"periods"`
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	TotalPaid float64 `json:"totalPaid"`
}

// Totals sums the records of a schedule. TotalPaid is principal plus
// interest, so it includes lump sums.
func Totals(schedule []PeriodRecord) ScheduleTotals {
	var totals ScheduleTotals
	for _, record := range schedule {
		totals.Payment += record.Payment
		totals.Principal += record.PrincipalPaid
		totals.Interest += record.InterestPaid
	}
	totals.Periods = len(schedule)
	totals.Payment = mathutil.Round(totals.Payment)
	totals.Principal = mathutil.Round(totals.Principal)
	totals.Interest = mathutil.Round(totals.Interest)
	totals.TotalPaid = mathutil.Round(totals.Principal + totals.Interest)
	return totals
}
