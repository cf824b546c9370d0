// Package output provides utilities for formatting and displaying loan reports.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/loan-analytics/internal/report"
	"github.com/iwvelando/loan-analytics/pkg/affordability"
	"github.com/iwvelando/loan-analytics/pkg/comparison"
	"github.com/iwvelando/loan-analytics/pkg/constants"
	"github.com/iwvelando/loan-analytics/pkg/format"
	"github.com/iwvelando/loan-analytics/pkg/loans"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Options controls what PrettyFormat renders.
type Options struct {
	// ScheduleLimit caps the schedule rows shown; 0 shows all.
	ScheduleLimit int
	Charts        bool
}

const ruleWidth = 78

func rule(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("-", ruleWidth))
}

func printer() *message.Printer {
	return message.NewPrinter(language.English)
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, rep report.Report, opts Options) {
	for i, loan := range rep.Loans {
		if i > 0 {
			fmt.Fprintln(w)
		}
		PrettyLoan(w, loan, opts)
	}
	if len(rep.Comparison) > 0 {
		fmt.Fprintln(w)
		PrettyComparison(w, rep.Comparison, rep.Best)
	}
}

// PrettyLoan renders the summary, schedule, yearly table, prepayment impact
// and optional charts for one loan.
func PrettyLoan(w io.Writer, loan report.LoanReport, opts Options) {
	p := printer()
	fmt.Fprintf(w, "--- Results for loan %s ---\n", loan.Name)
	_, _ = p.Fprintf(w, "Principal      : %.2f\n", loan.Principal)
	_, _ = p.Fprintf(w, "Annual Rate    : %.3f%%\n", loan.AnnualRatePercent)
	fmt.Fprintf(w, "Term           : %d years, %d payments/year\n", loan.TermYears, loan.PaymentsPerYear)
	_, _ = p.Fprintf(w, "Level Payment  : %.2f\n", loan.LevelPayment)
	_, _ = p.Fprintf(w, "Total Interest : %.2f\n", loan.Totals.Interest)
	_, _ = p.Fprintf(w, "Total Paid     : %.2f\n", loan.Totals.TotalPaid)
	if loan.PayoffDate != "" {
		fmt.Fprintf(w, "Debt-Free Date : %s\n", loan.PayoffDate)
	}

	PrettySchedule(w, loan.Schedule, opts.ScheduleLimit)
	PrettyYearly(w, loan.Yearly)
	if loan.Impact != nil {
		PrettyImpact(w, loan.Plan, *loan.Impact, loan.PaymentsPerYear)
	}
	if loan.Affordability != nil {
		PrettyAffordability(w, *loan.Affordability)
	}
	if opts.Charts {
		BalanceChart(w, loan.Schedule)
		BreakdownChart(w, loan.Totals)
	}
}

// PrettySchedule renders the first limit rows of the amortization schedule.
func PrettySchedule(w io.Writer, schedule []loans.PeriodRecord, limit int) {
	if limit <= 0 || limit > len(schedule) {
		limit = len(schedule)
	}
	p := printer()

	fmt.Fprintln(w, "\n=== AMORTIZATION SCHEDULE ===")
	rule(w)
	fmt.Fprintf(w, "%-6s %14s %14s %14s %16s\n", "Pmt#", "Payment", "Principal", "Interest", "Balance")
	rule(w)
	for _, record := range schedule[:limit] {
		_, _ = p.Fprintf(w, "%-6d %14.2f %14.2f %14.2f %16.2f\n",
			record.Period, record.Payment, record.PrincipalPaid, record.InterestPaid, record.EndingBalance)
	}
	rule(w)
	if limit < len(schedule) {
		fmt.Fprintf(w, "Showing %d of %d payments\n", limit, len(schedule))
	}
}

// PrettyYearly renders the yearly summary with a totals row.
func PrettyYearly(w io.Writer, yearly []loans.YearBucket) {
	p := printer()

	fmt.Fprintln(w, "\n=== YEARLY SUMMARY ===")
	rule(w)
	fmt.Fprintf(w, "%-6s %18s %18s %18s\n", "Year", "Interest Paid", "Principal Paid", "Ending Balance")
	rule(w)
	var interest, principal float64
	for _, bucket := range yearly {
		_, _ = p.Fprintf(w, "%-6d %18.2f %18.2f %18.2f\n",
			bucket.Year, bucket.InterestPaid, bucket.PrincipalPaid, bucket.EndingBalance)
		interest += bucket.InterestPaid
		principal += bucket.PrincipalPaid
	}
	rule(w)
	_, _ = p.Fprintf(w, "%-6s %18.2f %18.2f\n", "TOTAL", interest, principal)
	rule(w)
}

// PrettyImpact describes how much time and interest a prepayment plan saves.
func PrettyImpact(w io.Writer, plan loans.PrepaymentPlan, impact loans.PrepaymentImpact, paymentsPerYear int) {
	var desc []string
	if plan.ExtraPerPeriod > 0 {
		desc = append(desc, fmt.Sprintf("%s extra every period", format.Currency(plan.ExtraPerPeriod)))
	}
	if plan.LumpSum > 0 {
		desc = append(desc, fmt.Sprintf("%s lump sum at period %d", format.Currency(plan.LumpSum), plan.LumpSumPeriod))
	}
	tag := "no prepayments"
	if len(desc) > 0 {
		tag = strings.Join(desc, " + ")
	}

	fmt.Fprintf(w, "\n=== PREPAYMENT IMPACT (%s) ===\n", tag)
	fmt.Fprintf(w, "Time Saved     : %s\n", format.Duration(impact.PeriodsSaved, paymentsPerYear))
	fmt.Fprintf(w, "Interest Saved : %s\n", format.Currency(impact.InterestSaved))
	if impact.PeriodsSaved > 0 {
		fmt.Fprintln(w, "Status         : Accelerated Payoff")
	} else {
		fmt.Fprintln(w, "Status         : No change in payoff date")
	}
}

// PrettyAffordability renders the current and projected DTI bars and whether
// the projected DTI stays under the threshold.
func PrettyAffordability(w io.Writer, a affordability.Assessment) {
	fmt.Fprintln(w, "\n=== FINANCIAL HEALTH CHECK ===")
	fmt.Fprintf(w, "Monthly Payment : %s\n", format.Currency(a.MonthlyPayment))
	fmt.Fprintf(w, "%-15s : [%s] %.1f%%\n", "Current DTI", dtiBar(a.CurrentDTI), a.CurrentDTI)
	fmt.Fprintf(w, "%-15s : [%s] %.1f%%\n", "New DTI", dtiBar(a.ProjectedDTI), a.ProjectedDTI)
	if a.WithinThreshold {
		fmt.Fprintf(w, "Status          : %s (DTI below %g%% threshold)\n", a.Status(), constants.DTIThresholdPercent)
	} else {
		fmt.Fprintf(w, "Status          : %s (DTI exceeds %g%% threshold)\n", a.Status(), constants.DTIThresholdPercent)
	}
	fmt.Fprintf(w, "> Current DTI   : %.1f%% (%s)\n", a.CurrentDTI, a.CurrentLabel)
	fmt.Fprintf(w, "> Projected DTI : %.1f%% (%s)\n", a.ProjectedDTI, a.ProjectedLabel)
}

// PrettyComparison renders the comparison table and the best option.
func PrettyComparison(w io.Writer, results []comparison.Result, best *comparison.Result) {
	p := printer()

	fmt.Fprintln(w, "=== LOAN COMPARISON ===")
	fmt.Fprintln(w, strings.Repeat("-", 96))
	fmt.Fprintf(w, "%-6s %-20s %14s %8s %6s %12s %14s %14s %7s\n",
		"Loan", "Name", "Principal", "Rate %", "Years", "EMI", "Interest", "Total Paid", "Pmts")
	fmt.Fprintln(w, strings.Repeat("-", 96))
	for _, result := range results {
		_, _ = p.Fprintf(w, "%-6d %-20s %14.2f %8.2f %6d %12.2f %14.2f %14.2f %7d\n",
			result.ID, truncate(result.Name, 20), result.Principal, result.AnnualRatePercent, result.TermYears,
			result.EMI, result.TotalInterest, result.TotalPaid, result.Periods)
	}
	fmt.Fprintln(w, strings.Repeat("-", 96))
	if best != nil {
		fmt.Fprintf(w, "Best option: Loan %d (%s), lowest interest-to-principal ratio %.4f\n",
			best.ID, best.Name, best.InterestRatio())
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "~"
}
