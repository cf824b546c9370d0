package loans

import (
	"github.com/iwvelando/loan-analytics/pkg/constants"
	"github.com/iwvelando/loan-analytics/pkg/mathutil"
)

// YearBucket aggregates one year of payments.
type YearBucket struct {
	Year          int     `json:"year"`
	InterestPaid  float64 `json:"interest"`
	PrincipalPaid float64 `json:"principal"`
	EndingBalance float64 `json:"balance"`
}

// SummarizeYearly folds a schedule into consecutive chunks of
// paymentsPerYear records. The last bucket is shorter when the loan is paid
// off mid-year. A paymentsPerYear <= 0 selects monthly payments.
func SummarizeYearly(schedule []PeriodRecord, paymentsPerYear int) []YearBucket {
	if paymentsPerYear <= 0 {
		paymentsPerYear = constants.DefaultPaymentsPerYear
	}

	buckets := make([]YearBucket, 0, (len(schedule)+paymentsPerYear-1)/paymentsPerYear)
	for start := 0; start < len(schedule); start += paymentsPerYear {
		end := start + paymentsPerYear
		if end > len(schedule) {
			end = len(schedule)
		}
		chunk := schedule[start:end]

		bucket := YearBucket{
			Year:          start/paymentsPerYear + 1,
			EndingBalance: chunk[len(chunk)-1].EndingBalance,
		}
		for _, record := range chunk {
			bucket.InterestPaid += record.InterestPaid
			bucket.PrincipalPaid += record.PrincipalPaid
		}
		bucket.InterestPaid = mathutil.Round(bucket.InterestPaid)
		bucket.PrincipalPaid = mathutil.Round(bucket.PrincipalPaid)
		buckets = append(buckets, bucket)
	}
	return buckets
}
