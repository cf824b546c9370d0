// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/loan-analytics/internal/report"
	"github.com/iwvelando/loan-analytics/pkg/comparison"
	"github.com/iwvelando/loan-analytics/pkg/mathutil"
)

// FindLoan finds a loan report by name in the loans slice.
// Returns a pointer to the report if found, nil otherwise.
func FindLoan(loans []report.LoanReport, name string) *report.LoanReport {
	for i := range loans {
		if loans[i].Name == name {
			return &loans[i]
		}
	}
	return nil
}

// FindResult finds a comparison result by name.
func FindResult(results []comparison.Result, name string) *comparison.Result {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// AlmostEqual reports whether a and b differ by at most tolerance.
func AlmostEqual(a, b, tolerance float64) bool {
	return mathutil.WithinTolerance(a, b, tolerance)
}
