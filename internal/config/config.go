// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"fmt"
	"io"
	"time"

	"github.com/iwvelando/loan-analytics/pkg/affordability"
	"github.com/iwvelando/loan-analytics/pkg/constants"
	"github.com/iwvelando/loan-analytics/pkg/datetime"
	"github.com/iwvelando/loan-analytics/pkg/validation"
	"github.com/spf13/viper"
)

// DateTimeLayout is the format expected in config files and is also the output
// date format.
const DateTimeLayout = constants.DateTimeLayout

// Configuration holds all configuration for loan-analytics.
type Configuration struct {
	// StartDate is the first payment month for loans that do not set one.
	StartDate string `yaml:"startDate,omitempty"`
	Compare   bool   `yaml:"compare,omitempty"`
	Loans     []Loan `yaml:"loans"`
	// Borrower enables the debt-to-income readout for every loan.
	Borrower *affordability.Borrower `yaml:"borrower,omitempty"`
	Logging  LoggingConfig           `yaml:"logging,omitempty"`
	Output   OutputConfig            `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format        string `yaml:"format,omitempty"`        // pretty, csv
	ScheduleLimit int    `yaml:"scheduleLimit,omitempty"` // rows of the schedule shown, 0 for all
	Charts        bool   `yaml:"charts,omitempty"`
	CSVFile       string `yaml:"csvFile,omitempty"` // write CSV here instead of stdout
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ApplyDefaults fills in loan names and start dates that were left empty.
// Loans without a start date use the configuration's StartDate, or the month
// of now when that is empty too.
func (conf *Configuration) ApplyDefaults(now time.Time) {
	if conf.StartDate == "" {
		conf.StartDate = datetime.CurrentMonth(now)
	}
	for i := range conf.Loans {
		if conf.Loans[i].Name == "" {
			conf.Loans[i].Name = fmt.Sprintf("Loan %d", i+1)
		}
		if conf.Loans[i].StartDate == "" {
			conf.Loans[i].StartDate = conf.StartDate
		}
		if conf.Loans[i].PaymentsPerYear == 0 {
			conf.Loans[i].PaymentsPerYear = constants.DefaultPaymentsPerYear
		}
	}
}

// Validate returns the first hard error in the configuration: an unsupported
// output format, an unparseable start date, or invalid loan terms.
func (conf *Configuration) Validate() error {
	if conf.Output.Format != "" {
		if err := validation.ValidateOutputFormat(conf.Output.Format); err != nil {
			return err
		}
	}
	if err := validation.ValidateStartDate("default", conf.StartDate); err != nil {
		return err
	}
	if conf.Borrower != nil {
		if err := conf.Borrower.Validate(); err != nil {
			return fmt.Errorf("borrower: %w", err)
		}
	}
	for _, loan := range conf.Loans {
		if err := validation.ValidateStartDate(loan.Name, loan.StartDate); err != nil {
			return err
		}
		if _, err := loan.Terms(); err != nil {
			return err
		}
		if err := loan.Plan().Validate(); err != nil {
			return fmt.Errorf("loan '%s': %w", loan.Name, err)
		}
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (conf *Configuration) ValidateConfiguration() []string {
	validator := validation.ConfigValidator{Compare: conf.Compare}
	for _, loan := range conf.Loans {
		info := validation.LoanConfig{
			Name:           loan.Name,
			Principal:      loan.Principal,
			ExtraPerPeriod: loan.Prepayment.ExtraPerPeriod,
			LumpSum:        loan.Prepayment.LumpSum,
			LumpSumPeriod:  loan.Prepayment.LumpSumPeriod,
		}
		// Invalid terms are reported by Validate; only valid ones feed warnings.
		if terms, err := loan.Terms(); err == nil {
			info.TotalPayments = terms.TotalPayments()
			info.LevelPayment = terms.LevelPayment()
		}
		validator.Loans = append(validator.Loans, info)
	}
	return validator.ValidateAll()
}
