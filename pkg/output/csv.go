package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/iwvelando/loan-analytics/internal/report"
	"github.com/shopspring/decimal"
)

// money renders an amount with exactly two decimals.
func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// CsvFormat writes the report as CSV: per loan a summary block, the schedule
// and the yearly summary, followed by the comparison when present.
func CsvFormat(w io.Writer, rep report.Report, generated time.Time) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"Loan Analytics Report"},
		{"Generated", generated.Format("2006-01-02 15:04")},
	}
	for _, loan := range rep.Loans {
		rows = append(rows, loanRows(loan)...)
	}
	if len(rep.Comparison) > 0 {
		rows = append(rows,
			[]string{},
			[]string{"LOAN COMPARISON"},
			[]string{"Loan", "Name", "Principal", "Annual Rate", "Years", "EMI", "Total Interest", "Total Paid", "Payments"},
		)
		for _, result := range rep.Comparison {
			rows = append(rows, []string{
				strconv.Itoa(result.ID),
				result.Name,
				money(result.Principal),
				fmt.Sprintf("%g%%", result.AnnualRatePercent),
				strconv.Itoa(result.TermYears),
				money(result.EMI),
				money(result.TotalInterest),
				money(result.TotalPaid),
				strconv.Itoa(result.Periods),
			})
		}
		if rep.Best != nil {
			rows = append(rows, []string{"Best Option", strconv.Itoa(rep.Best.ID), rep.Best.Name})
		}
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

func loanRows(loan report.LoanReport) [][]string {
	rows := [][]string{
		{},
		{"LOAN SUMMARY", loan.Name},
		{"Principal", money(loan.Principal)},
		{"Annual Rate", fmt.Sprintf("%g%%", loan.AnnualRatePercent)},
		{"Tenure", fmt.Sprintf("%d years", loan.TermYears)},
		{"Payments Per Year", strconv.Itoa(loan.PaymentsPerYear)},
		{"Level Payment", money(loan.LevelPayment)},
		{"Total Interest", money(loan.Totals.Interest)},
		{"Total Payment", money(loan.Totals.TotalPaid)},
	}
	if loan.PayoffDate != "" {
		rows = append(rows, []string{"Debt-Free Date", loan.PayoffDate})
	}
	if loan.Impact != nil {
		rows = append(rows,
			[]string{"Interest Saved", money(loan.Impact.InterestSaved)},
			[]string{"Payments Saved", strconv.Itoa(loan.Impact.PeriodsSaved)},
		)
	}
	if a := loan.Affordability; a != nil {
		rows = append(rows,
			[]string{"Monthly Payment", money(a.MonthlyPayment)},
			[]string{"Current DTI", fmt.Sprintf("%.1f%%", a.CurrentDTI), a.CurrentLabel},
			[]string{"Projected DTI", fmt.Sprintf("%.1f%%", a.ProjectedDTI), a.ProjectedLabel},
			[]string{"DTI Status", a.Status()},
		)
	}

	rows = append(rows,
		[]string{},
		[]string{"AMORTIZATION SCHEDULE"},
		[]string{"Period", "Payment", "Principal", "Interest", "Balance"},
	)
	for _, record := range loan.Schedule {
		rows = append(rows, []string{
			strconv.Itoa(record.Period),
			money(record.Payment),
			money(record.PrincipalPaid),
			money(record.InterestPaid),
			money(record.EndingBalance),
		})
	}

	rows = append(rows,
		[]string{},
		[]string{"YEARLY SUMMARY"},
		[]string{"Year", "Interest Paid", "Principal Paid", "Ending Balance"},
	)
	for _, bucket := range loan.Yearly {
		rows = append(rows, []string{
			strconv.Itoa(bucket.Year),
			money(bucket.InterestPaid),
			money(bucket.PrincipalPaid),
			money(bucket.EndingBalance),
		})
	}
	return rows
}

// CsvString returns the CSV rendering of the report.
func CsvString(rep report.Report, generated time.Time) (string, error) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, rep, generated); err != nil {
		return "", err
	}
	return buf.String(), nil
}
