// Package datetime provides date and time utility functions.
package datetime

import (
	"fmt"
	"time"

	"github.com/iwvelando/loan-analytics/pkg/constants"
)

const (
	// DateTimeLayout is the format expected in config files and is also the output
	// date format.
	DateTimeLayout = constants.DateTimeLayout
)

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, months, 0).Format(layout), nil
}

// PayoffDate returns the month of the last of periods payments when the first
// payment falls in startMonth. Frequencies that divide a year into whole
// months step by months; others (e.g. weekly) step by days.
func PayoffDate(startMonth string, periods, paymentsPerYear int) (string, error) {
	if periods <= 0 {
		return "", fmt.Errorf("periods must be positive, got %d", periods)
	}
	if paymentsPerYear <= 0 {
		paymentsPerYear = constants.DefaultPaymentsPerYear
	}
	start, err := time.Parse(DateTimeLayout, startMonth)
	if err != nil {
		return "", err
	}

	elapsed := periods - 1
	if constants.MonthsPerYear%paymentsPerYear == 0 {
		step := constants.MonthsPerYear / paymentsPerYear
		return OffsetDate(startMonth, DateTimeLayout, elapsed*step)
	}
	days := elapsed * 365 / paymentsPerYear
	return start.AddDate(0, 0, days).Format(DateTimeLayout), nil
}

// CurrentMonth returns the month containing now in DateTimeLayout.
func CurrentMonth(now time.Time) string {
	return now.Format(DateTimeLayout)
}
