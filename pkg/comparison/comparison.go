// Package comparison runs the amortization engine over several loan
// configurations and ranks them by cost.
package comparison

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/iwvelando/loan-analytics/pkg/loans"
	"github.com/iwvelando/loan-analytics/pkg/mathutil"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Candidate names one loan configuration to compare.
type Candidate struct {
	Name  string
	Terms loans.LoanTerms
}

// Result holds the cost summary of one candidate.
type Result struct {
	ID                int     `json:"id"`
	Name              string  `json:"name"`
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annualRatePercent"`
	TermYears         int     `json:"termYears"`
	EMI               float64 `json:"emi"`
	TotalInterest     float64 `json:"totalInterest"`
	TotalPaid         float64 `json:"totalPaid"`
	Periods           int     `json:"periods"`
}

// InterestRatio is total interest per unit of principal; lower is cheaper.
func (r Result) InterestRatio() float64 {
	return mathutil.Ratio(r.TotalInterest, r.Principal)
}

// Engine compares loan candidates.
type Engine struct {
	logger    *zap.Logger
	generator *loans.ScheduleGenerator
}

// NewEngine creates a comparison engine.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger, generator: loans.NewScheduleGenerator(logger)}
}

// Compare is shorthand for NewEngine(nil).Compare.
func Compare(ctx context.Context, candidates []Candidate) ([]Result, error) {
	return NewEngine(nil).Compare(ctx, candidates)
}

// Compare generates a baseline schedule for every candidate, at most
// GOMAXPROCS at a time, and returns one result per candidate in input order. IDs start at 1.
func (e *Engine) Compare(ctx context.Context, candidates []Candidate) ([]Result, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: at least one loan configuration is required", loans.ErrInvalidInput)
	}

	results := make([]Result, len(candidates))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, candidate := range candidates {
		i, candidate := i, candidate
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			schedule, err := e.generator.Generate(candidate.Terms, loans.PrepaymentPlan{})
			if err != nil {
				return fmt.Errorf("loan %d (%s): %w", i+1, candidate.Name, err)
			}
			totals := loans.Totals(schedule)
			results[i] = Result{
				ID:                i + 1,
				Name:              candidate.Name,
				Principal:         candidate.Terms.Principal(),
				AnnualRatePercent: candidate.Terms.AnnualRatePercent(),
				TermYears:         candidate.Terms.TermYears(),
				EMI:               mathutil.Round(candidate.Terms.LevelPayment()),
				TotalInterest:     totals.Interest,
				TotalPaid:         mathutil.Round(candidate.Terms.Principal() + totals.Interest),
				Periods:           totals.Periods,
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	e.logger.Debug(fmt.Sprintf("compared %d loan configurations", len(results)),
		zap.String("op", "comparison.Compare"),
	)
	return results, nil
}

// Best returns the result with the lowest interest-to-principal ratio. Ties
// go to the earliest result.
func Best(results []Result) (Result, error) {
	if len(results) == 0 {
		return Result{}, fmt.Errorf("%w: no comparison results", loans.ErrInvalidInput)
	}
	best := results[0]
	for _, result := range results[1:] {
		if result.InterestRatio() < best.InterestRatio() {
			best = result
		}
	}
	return best, nil
}

// Rank returns a copy of results ordered from cheapest to most expensive by
// interest-to-principal ratio, keeping input order for ties.
func Rank(results []Result) []Result {
	ranked := append([]Result(nil), results...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].InterestRatio() < ranked[j].InterestRatio()
	})
	return ranked
}
