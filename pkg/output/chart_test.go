package output

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/iwvelando/loan-analytics/pkg/constants"
	"github.com/iwvelando/loan-analytics/pkg/loans"
)

func makeSchedule(n int) []loans.PeriodRecord {
	schedule := make([]loans.PeriodRecord, n)
	for i := range schedule {
		schedule[i] = loans.PeriodRecord{Period: i + 1, EndingBalance: float64((n - i - 1) * 100)}
	}
	return schedule
}

func TestSampleSchedule(t *testing.T) {
	tests := []struct {
		name     string
		periods  int
		expected []int
	}{
		{"Empty", 0, nil},
		{"Shorter than samples", 3, []int{1, 2, 3}},
		{"Even split", 16, []int{1, 3, 5, 7, 9, 11, 13, 15, 16}},
		{"Last already sampled", 9, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{"Uneven split", 20, []int{1, 3, 5, 7, 9, 11, 13, 15, 17, 19, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampled := SampleSchedule(makeSchedule(tt.periods))
			if len(sampled) != len(tt.expected) {
				t.Fatalf("sampled %d records, expected %d", len(sampled), len(tt.expected))
			}
			for i, record := range sampled {
				if record.Period != tt.expected[i] {
					t.Errorf("sample %d has period %d, expected %d", i, record.Period, tt.expected[i])
				}
			}
		})
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		ratio  float64
		glyphs int
	}{
		{0, 0},
		{0.5, 20},
		{1, 40},
		{1.5, 40},
		{-0.2, 0},
	}

	for _, tt := range tests {
		result := bar(tt.ratio)
		if got := strings.Count(result, barGlyph); got != tt.glyphs {
			t.Errorf("bar(%v) has %d glyphs, expected %d", tt.ratio, got, tt.glyphs)
		}
		if utf8.RuneCountInString(result) != constants.ChartBarWidth {
			t.Errorf("bar(%v) width = %d, expected %d", tt.ratio, utf8.RuneCountInString(result), constants.ChartBarWidth)
		}
	}
}

func TestDTIBar(t *testing.T) {
	tests := []struct {
		percent float64
		filled  int
	}{
		{0, 0},
		{10, 3},
		{50, 18},
		{100, 36},
		{150, 36},
		{-5, 0},
	}

	for _, tt := range tests {
		result := dtiBar(tt.percent)
		if got := strings.Count(result, "#"); got != tt.filled {
			t.Errorf("dtiBar(%v) has %d filled cells, expected %d", tt.percent, got, tt.filled)
		}
		if len(result) != constants.DTIBarWidth {
			t.Errorf("dtiBar(%v) width = %d, expected %d", tt.percent, len(result), constants.DTIBarWidth)
		}
	}
}

func TestBalanceChart(t *testing.T) {
	var buf bytes.Buffer
	BalanceChart(&buf, makeSchedule(16))
	output := buf.String()

	if !strings.Contains(output, "Pmt   16 |") {
		t.Errorf("expected the final period in the chart, got:\n%s", output)
	}
	if !strings.Contains(output, strings.Repeat(barGlyph, constants.ChartBarWidth)) {
		t.Errorf("expected a full bar for the largest balance, got:\n%s", output)
	}
}

func TestBreakdownChart(t *testing.T) {
	var buf bytes.Buffer
	BreakdownChart(&buf, loans.ScheduleTotals{Principal: 750, Interest: 250})
	output := buf.String()

	for _, want := range []string{" 75.0%", " 25.0%", "Total Paid : 1,000.00"} {
		if !strings.Contains(output, want) {
			t.Errorf("breakdown output missing %q:\n%s", want, output)
		}
	}

	buf.Reset()
	BreakdownChart(&buf, loans.ScheduleTotals{})
	if !strings.Contains(buf.String(), "No data to display.") {
		t.Errorf("expected empty message, got:\n%s", buf.String())
	}
}
