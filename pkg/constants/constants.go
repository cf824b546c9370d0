// Package constants provides shared constants for the loan-analytics application.
package constants

// DateTimeLayout is the format expected in config files for loan start months
// and is also the output format for payoff dates.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DefaultPaymentsPerYear is the payment frequency used when none is given
	DefaultPaymentsPerYear = 12

	// MaxTotalPayments bounds termYears*paymentsPerYear: 100 years of daily payments
	MaxTotalPayments = 100 * 365

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Affordability constants
const (
	// DTIThresholdPercent is the highest projected debt-to-income ratio
	// considered affordable
	DTIThresholdPercent = 36.0

	// DTIBarWidth is the width in characters of a full DTI bar
	DTIBarWidth = 36
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Rendering constants
const (
	// ChartBarWidth is the width in characters of a full chart bar
	ChartBarWidth = 40

	// ChartSamples is the approximate number of rows sampled for the balance timeline
	ChartSamples = 8
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum JSON request body size (64 KB)
	DefaultMaxRequestSizeBytes int64 = 64 * 1024

	// DefaultCacheTTLSeconds is the default lifetime of a cached API response
	DefaultCacheTTLSeconds = 3600

	// DefaultCacheMaxEntries bounds the in-memory response cache
	DefaultCacheMaxEntries = 10000
)
