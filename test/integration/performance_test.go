package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/iwvelando/loan-analytics/internal/config"
	"github.com/iwvelando/loan-analytics/internal/report"
	"github.com/iwvelando/loan-analytics/pkg/comparison"
	"github.com/iwvelando/loan-analytics/pkg/loans"
	"go.uber.org/zap"
)

// TestPerformance tests performance characteristics
func TestPerformance(t *testing.T) {
	logger := zap.NewNop()

	start := time.Now()
	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	conf.ApplyDefaults(fixedNow)
	loadTime := time.Since(start)

	start = time.Now()
	rep, err := report.GetReport(context.Background(), logger, *conf)
	if err != nil {
		t.Fatalf("GetReport failed: %v", err)
	}
	reportTime := time.Since(start)

	totalTime := loadTime + reportTime

	t.Logf("Performance metrics:")
	t.Logf("  Load config: %v", loadTime)
	t.Logf("  Generate report: %v", reportTime)
	t.Logf("  Total time: %v", totalTime)

	if totalTime > 10*time.Second {
		t.Errorf("Total processing time %v exceeds 10 second threshold", totalTime)
	}
	if len(rep.Loans) != 4 {
		t.Errorf("Expected 4 loans, got %d", len(rep.Loans))
	}
}

// TestLargeComparison runs many candidates through the concurrent comparison.
func TestLargeComparison(t *testing.T) {
	candidates := make([]comparison.Candidate, 0, 200)
	for i := 0; i < 200; i++ {
		terms, err := loans.NewLoanTerms(100000+float64(i)*1000, 3+float64(i%50)/10, 5+i%26, 12)
		if err != nil {
			t.Fatalf("NewLoanTerms failed: %v", err)
		}
		candidates = append(candidates, comparison.Candidate{Name: fmt.Sprintf("candidate %d", i), Terms: terms})
	}

	start := time.Now()
	results, err := comparison.Compare(context.Background(), candidates)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	elapsed := time.Since(start)
	t.Logf("Compared %d candidates in %v", len(results), elapsed)

	if len(results) != len(candidates) {
		t.Fatalf("Expected %d results, got %d", len(candidates), len(results))
	}
	for i, result := range results {
		if result.Name != candidates[i].Name {
			t.Fatalf("Result %d out of order: %s", i, result.Name)
		}
		if result.ID != i+1 {
			t.Fatalf("Result %d has ID %d", i, result.ID)
		}
	}
	if elapsed > 10*time.Second {
		t.Errorf("Comparison time %v exceeds 10 second threshold", elapsed)
	}
}

func BenchmarkGenerateSchedule(b *testing.B) {
	terms := loans.MustLoanTerms(300000, 6.5, 30, 12)
	plan := loans.PrepaymentPlan{ExtraPerPeriod: 200, LumpSum: 10000, LumpSumPeriod: 60}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := loans.GenerateSchedule(terms, plan); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGetReport(b *testing.B) {
	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		b.Fatalf("LoadConfiguration failed: %v", err)
	}
	conf.ApplyDefaults(fixedNow)
	logger := zap.NewNop()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := report.GetReport(context.Background(), logger, *conf); err != nil {
			b.Fatal(err)
		}
	}
}
