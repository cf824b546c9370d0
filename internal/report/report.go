// Package report runs the amortization engine over a configuration and
// collects everything the output layers render.
package report

import (
	"context"
	"fmt"

	"github.com/iwvelando/loan-analytics/internal/config"
	"github.com/iwvelando/loan-analytics/pkg/affordability"
	"github.com/iwvelando/loan-analytics/pkg/comparison"
	"github.com/iwvelando/loan-analytics/pkg/datetime"
	"github.com/iwvelando/loan-analytics/pkg/loans"
	"go.uber.org/zap"
)

// LoanReport holds the computed results for one loan.
type LoanReport struct {
	Name              string                    `json:"name"`
	Principal         float64                   `json:"principal"`
	AnnualRatePercent float64                   `json:"annualRatePercent"`
	TermYears         int                       `json:"termYears"`
	PaymentsPerYear   int                       `json:"paymentsPerYear"`
	LevelPayment      float64                   `json:"levelPayment"`
	Plan              loans.PrepaymentPlan      `json:"prepayment"`
	Schedule          []loans.PeriodRecord      `json:"schedule"`
	Yearly            []loans.YearBucket        `json:"yearly"`
	Totals            loans.ScheduleTotals      `json:"totals"`
	Impact            *loans.PrepaymentImpact   `json:"impact,omitempty"`
	StartDate         string                    `json:"startDate,omitempty"`
	PayoffDate        string                    `json:"payoffDate,omitempty"`
	Affordability     *affordability.Assessment `json:"affordability,omitempty"`
}

// AssessAffordability rates the loan's monthly payment, extra payment
// included, against the borrower's income.
func (r *LoanReport) AssessAffordability(b affordability.Borrower) error {
	payment := affordability.MonthlyEquivalent(r.LevelPayment+r.Plan.ExtraPerPeriod, r.PaymentsPerYear)
	assessment, err := affordability.Assess(b, payment)
	if err != nil {
		return fmt.Errorf("loan '%s': %w", r.Name, err)
	}
	r.Affordability = &assessment
	return nil
}

// Report holds the results for a whole configuration.
type Report struct {
	Loans      []LoanReport        `json:"loans"`
	Comparison []comparison.Result `json:"comparison,omitempty"`
	Best       *comparison.Result  `json:"best,omitempty"`
}

// Analyzer computes loan reports.
type Analyzer struct {
	logger    *zap.Logger
	generator *loans.ScheduleGenerator
	engine    *comparison.Engine
}

// NewAnalyzer creates an analyzer that logs through logger.
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		logger:    logger,
		generator: loans.NewScheduleGenerator(logger),
		engine:    comparison.NewEngine(logger),
	}
}

// AnalyzeLoan generates the schedule, yearly summary and totals for one loan.
// The prepayment impact is included when plan is non-zero and the payoff
// date when startDate is set.
func (a *Analyzer) AnalyzeLoan(name string, terms loans.LoanTerms, plan loans.PrepaymentPlan, startDate string) (LoanReport, error) {
	schedule, err := a.generator.Generate(terms, plan)
	if err != nil {
		return LoanReport{}, fmt.Errorf("loan '%s': %w", name, err)
	}

	result := LoanReport{
		Name:              name,
		Principal:         terms.Principal(),
		AnnualRatePercent: terms.AnnualRatePercent(),
		TermYears:         terms.TermYears(),
		PaymentsPerYear:   terms.PaymentsPerYear(),
		LevelPayment:      terms.LevelPayment(),
		Plan:              plan,
		Schedule:          schedule,
		Yearly:            loans.SummarizeYearly(schedule, terms.PaymentsPerYear()),
		Totals:            loans.Totals(schedule),
		StartDate:         startDate,
	}

	if !plan.IsZero() {
		impact, err := a.generator.ComparePrepayment(terms, plan)
		if err != nil {
			return LoanReport{}, fmt.Errorf("loan '%s': %w", name, err)
		}
		result.Impact = &impact
	}

	if startDate != "" {
		payoff, err := datetime.PayoffDate(startDate, len(schedule), terms.PaymentsPerYear())
		if err != nil {
			return LoanReport{}, fmt.Errorf("loan '%s': %w", name, err)
		}
		result.PayoffDate = payoff
	}

	a.logger.Debug(fmt.Sprintf("analyzed loan %s: %d periods, %.2f interest", name, result.Totals.Periods, result.Totals.Interest),
		zap.String("op", "report.AnalyzeLoan"),
	)
	return result, nil
}

// Compare runs the comparison engine and picks the cheapest option.
func (a *Analyzer) Compare(ctx context.Context, candidates []comparison.Candidate) ([]comparison.Result, comparison.Result, error) {
	results, err := a.engine.Compare(ctx, candidates)
	if err != nil {
		return nil, comparison.Result{}, err
	}
	best, err := comparison.Best(results)
	if err != nil {
		return nil, comparison.Result{}, err
	}
	return results, best, nil
}

// GetReport processes every loan in the configuration and, when enabled,
// compares them. Defaults must already be applied.
func GetReport(ctx context.Context, logger *zap.Logger, conf config.Configuration) (Report, error) {
	analyzer := NewAnalyzer(logger)

	var result Report
	candidates := make([]comparison.Candidate, 0, len(conf.Loans))
	for _, loan := range conf.Loans {
		terms, err := loan.Terms()
		if err != nil {
			return Report{}, err
		}
		loanReport, err := analyzer.AnalyzeLoan(loan.Name, terms, loan.Plan(), loan.StartDate)
		if err != nil {
			return Report{}, err
		}
		if conf.Borrower != nil {
			if err := loanReport.AssessAffordability(*conf.Borrower); err != nil {
				return Report{}, err
			}
		}
		result.Loans = append(result.Loans, loanReport)
		candidates = append(candidates, comparison.Candidate{Name: loan.Name, Terms: terms})
	}

	if conf.Compare && len(candidates) > 0 {
		results, best, err := analyzer.Compare(ctx, candidates)
		if err != nil {
			return Report{}, err
		}
		result.Comparison = results
		result.Best = &best
	}

	return result, nil
}
