package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/iwvelando/loan-analytics/internal/config"
	"github.com/iwvelando/loan-analytics/internal/logging"
	"github.com/iwvelando/loan-analytics/internal/report"
	"github.com/iwvelando/loan-analytics/pkg/constants"
	"github.com/iwvelando/loan-analytics/pkg/output"
	"github.com/iwvelando/loan-analytics/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	csvFileFlag := flag.String("csv-file", "", "write CSV output to this file instead of stdout")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	now := time.Now()
	conf.ApplyDefaults(now)
	if err := conf.Validate(); err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	rep, err := report.GetReport(context.Background(), logger, *conf)
	if err != nil {
		logger.Fatal("failed to compute loan report",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, rep, output.Options{
			ScheduleLimit: conf.Output.ScheduleLimit,
			Charts:        conf.Output.Charts,
		})
	case constants.OutputFormatCSV:
		csvFile := conf.Output.CSVFile
		if *csvFileFlag != "" {
			csvFile = *csvFileFlag
		}
		if err := writeCSV(csvFile, rep, now); err != nil {
			logger.Fatal("failed to write CSV output",
				zap.String("op", "main"),
				zap.String("file", csvFile),
				zap.Error(err),
			)
		}
		if csvFile != "" {
			logger.Info("wrote CSV output",
				zap.String("op", "main"),
				zap.String("file", csvFile),
			)
		}
	}
}

// writeCSV writes the report to path, or to stdout when path is empty.
func writeCSV(path string, rep report.Report, generated time.Time) error {
	if path == "" {
		return output.CsvFormat(os.Stdout, rep, generated)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	return writeAndClose(file, rep, generated)
}

// writeAndClose writes the CSV report to wc and closes it. A close failure is
// returned when the write itself succeeded.
func writeAndClose(wc io.WriteCloser, rep report.Report, generated time.Time) (err error) {
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close CSV output: %w", cerr)
		}
	}()
	return output.CsvFormat(wc, rep, generated)
}
