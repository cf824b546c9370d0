// Package format renders numbers and durations for human-readable output.
package format

import (
	"fmt"
	"math"

	"github.com/iwvelando/loan-analytics/pkg/constants"
	"github.com/iwvelando/loan-analytics/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	formatted := grouped(math.Abs(amount))
	if mathutil.Round(amount) < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	formatted := grouped(math.Abs(amount))
	if mathutil.Round(amount) < 0 {
		return "-" + formatted
	}
	return formatted
}

func grouped(value float64) string {
	return message.NewPrinter(language.English).Sprintf("%.2f", mathutil.Round(value))
}

// Duration renders a number of payment periods as years and months, e.g.
// "2 Years, 3 Months" or "7 Months".
func Duration(periods, paymentsPerYear int) string {
	if paymentsPerYear <= 0 {
		paymentsPerYear = constants.DefaultPaymentsPerYear
	}
	totalMonths := periods * constants.MonthsPerYear / paymentsPerYear
	years := totalMonths / constants.MonthsPerYear
	months := totalMonths % constants.MonthsPerYear

	if years > 0 {
		return fmt.Sprintf("%d %s, %d %s", years, plural(years, "Year"), months, plural(months, "Month"))
	}
	return fmt.Sprintf("%d %s", months, plural(months, "Month"))
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
