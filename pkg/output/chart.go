package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/loan-analytics/pkg/constants"
	"github.com/iwvelando/loan-analytics/pkg/format"
	"github.com/iwvelando/loan-analytics/pkg/loans"
	"github.com/iwvelando/loan-analytics/pkg/mathutil"
)

const barGlyph = "█"

// bar returns a bar of ratio*ChartBarWidth glyphs padded to the full width.
func bar(ratio float64) string {
	n := int(ratio * constants.ChartBarWidth)
	if n < 0 {
		n = 0
	}
	if n > constants.ChartBarWidth {
		n = constants.ChartBarWidth
	}
	return strings.Repeat(barGlyph, n) + strings.Repeat(" ", constants.ChartBarWidth-n)
}

// dtiBar fills one '#' per DTIBarWidth-th of 100% and pads with '-'.
func dtiBar(percent float64) string {
	n := int(percent / 100 * constants.DTIBarWidth)
	if n < 0 {
		n = 0
	}
	if n > constants.DTIBarWidth {
		n = constants.DTIBarWidth
	}
	return strings.Repeat("#", n) + strings.Repeat("-", constants.DTIBarWidth-n)
}

// SampleSchedule picks roughly ChartSamples evenly spaced records and always
// includes the final record.
func SampleSchedule(schedule []loans.PeriodRecord) []loans.PeriodRecord {
	if len(schedule) == 0 {
		return nil
	}
	step := len(schedule) / constants.ChartSamples
	if step < 1 {
		step = 1
	}

	var sampled []loans.PeriodRecord
	for i := 0; i < len(schedule); i += step {
		sampled = append(sampled, schedule[i])
	}
	if last := schedule[len(schedule)-1]; sampled[len(sampled)-1].Period != last.Period {
		sampled = append(sampled, last)
	}
	return sampled
}

// BalanceChart prints a horizontal bar chart of the balance over time.
func BalanceChart(w io.Writer, schedule []loans.PeriodRecord) {
	fmt.Fprintln(w, "\n=== LOAN BALANCE TIMELINE ===")

	sampled := SampleSchedule(schedule)
	maxBalance := 0.0
	for _, record := range sampled {
		if record.EndingBalance > maxBalance {
			maxBalance = record.EndingBalance
		}
	}
	if mathutil.IsZero(maxBalance) {
		maxBalance = 1
	}

	for _, record := range sampled {
		fmt.Fprintf(w, "Pmt %4d | %s %16s\n",
			record.Period, bar(record.EndingBalance/maxBalance), format.NumericCurrency(record.EndingBalance))
	}
}

// BreakdownChart prints the principal versus interest split of the totals.
func BreakdownChart(w io.Writer, totals loans.ScheduleTotals) {
	fmt.Fprintln(w, "\n=== PAYMENT BREAKDOWN ===")

	total := totals.Principal + totals.Interest
	if total == 0 {
		fmt.Fprintln(w, "No data to display.")
		return
	}

	principalRatio := mathutil.Ratio(totals.Principal, total)
	interestRatio := mathutil.Ratio(totals.Interest, total)
	fmt.Fprintf(w, "Principal  %s %5.1f%%  (%s)\n", bar(principalRatio),
		mathutil.CalculatePercentage(totals.Principal, total), format.NumericCurrency(totals.Principal))
	fmt.Fprintf(w, "Interest   %s %5.1f%%  (%s)\n", bar(interestRatio),
		mathutil.CalculatePercentage(totals.Interest, total), format.NumericCurrency(totals.Interest))
	fmt.Fprintf(w, "Total Paid : %s\n", format.NumericCurrency(total))
}
