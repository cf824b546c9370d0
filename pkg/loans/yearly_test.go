package loans

import (
	"math"
	"testing"
)

func TestSummarizeYearly(t *testing.T) {
	loan := MustLoanTerms(200000, 6, 3, 12)
	schedule, err := GenerateSchedule(loan, PrepaymentPlan{})
	if err != nil {
		t.Fatalf("GenerateSchedule() unexpected error: %v", err)
	}

	buckets := SummarizeYearly(schedule, loan.PaymentsPerYear())
	if len(buckets) != 3 {
		t.Fatalf("expected 3 yearly buckets, got %d", len(buckets))
	}

	totalPrincipal := 0.0
	for i, bucket := range buckets {
		if bucket.Year != i+1 {
			t.Errorf("bucket %d has year %d", i, bucket.Year)
		}
		chunk := schedule[i*12 : (i+1)*12]
		interest, principal := 0.0, 0.0
		for _, record := range chunk {
			interest += record.InterestPaid
			principal += record.PrincipalPaid
		}
		if math.Abs(bucket.InterestPaid-interest) > 0.005 {
			t.Errorf("year %d interest = %.2f, expected %.2f", bucket.Year, bucket.InterestPaid, interest)
		}
		if math.Abs(bucket.PrincipalPaid-principal) > 0.005 {
			t.Errorf("year %d principal = %.2f, expected %.2f", bucket.Year, bucket.PrincipalPaid, principal)
		}
		if bucket.EndingBalance != chunk[len(chunk)-1].EndingBalance {
			t.Errorf("year %d balance = %.2f, expected %.2f", bucket.Year, bucket.EndingBalance, chunk[len(chunk)-1].EndingBalance)
		}
		totalPrincipal += bucket.PrincipalPaid
	}

	if buckets[2].EndingBalance != 0 {
		t.Errorf("final year balance = %.2f, expected 0", buckets[2].EndingBalance)
	}
	if math.Abs(totalPrincipal-loan.Principal()) > 0.01*float64(len(schedule)) {
		t.Errorf("yearly principal totals %.2f, expected %.2f", totalPrincipal, loan.Principal())
	}
	if buckets[0].InterestPaid <= buckets[1].InterestPaid {
		t.Errorf("expected interest to decline year over year, got %.2f then %.2f",
			buckets[0].InterestPaid, buckets[1].InterestPaid)
	}
}

func TestSummarizeYearlyPartialFinalYear(t *testing.T) {
	loan := MustLoanTerms(100000, 12, 2, 12)
	schedule, err := GenerateSchedule(loan, PrepaymentPlan{LumpSum: 40000, LumpSumPeriod: 3})
	if err != nil {
		t.Fatalf("GenerateSchedule() unexpected error: %v", err)
	}
	if len(schedule) <= 12 || len(schedule) >= 24 {
		t.Fatalf("expected payoff during the second year, got %d periods", len(schedule))
	}

	buckets := SummarizeYearly(schedule, 12)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	if buckets[1].EndingBalance != 0 {
		t.Errorf("final bucket balance = %.2f, expected 0", buckets[1].EndingBalance)
	}
}

func TestSummarizeYearlyShortChunks(t *testing.T) {
	schedule := []PeriodRecord{
		{Period: 1, PrincipalPaid: 10, InterestPaid: 1, EndingBalance: 40},
		{Period: 2, PrincipalPaid: 10, InterestPaid: 0.8, EndingBalance: 30},
		{Period: 3, PrincipalPaid: 10, InterestPaid: 0.6, EndingBalance: 20},
		{Period: 4, PrincipalPaid: 10, InterestPaid: 0.4, EndingBalance: 10},
		{Period: 5, PrincipalPaid: 10, InterestPaid: 0.2, EndingBalance: 0},
	}

	tests := []struct {
		name            string
		paymentsPerYear int
		wantBuckets     int
		wantLastBalance float64
	}{
		{"Two per year", 2, 3, 0},
		{"Four per year", 4, 2, 0},
		{"Default frequency", 0, 1, 0},
		{"One per year", 1, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buckets := SummarizeYearly(schedule, tt.paymentsPerYear)
			if len(buckets) != tt.wantBuckets {
				t.Fatalf("expected %d buckets, got %d", tt.wantBuckets, len(buckets))
			}
			if last := buckets[len(buckets)-1]; last.EndingBalance != tt.wantLastBalance {
				t.Errorf("last balance = %.2f, expected %.2f", last.EndingBalance, tt.wantLastBalance)
			}
		})
	}

	buckets := SummarizeYearly(schedule, 2)
	if buckets[0].InterestPaid != 1.8 || buckets[0].PrincipalPaid != 20 || buckets[0].EndingBalance != 30 {
		t.Errorf("unexpected first bucket: %+v", buckets[0])
	}
	if buckets[2].InterestPaid != 0.2 || buckets[2].PrincipalPaid != 10 {
		t.Errorf("unexpected final bucket: %+v", buckets[2])
	}
}

func TestSummarizeYearlyEmpty(t *testing.T) {
	buckets := SummarizeYearly(nil, 12)
	if buckets == nil || len(buckets) != 0 {
		t.Errorf("expected an empty, non-nil result, got %v", buckets)
	}
}
