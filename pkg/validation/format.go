// Package validation provides loan configuration validation utilities.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/loan-analytics/pkg/constants"
)

// OutputFormats lists the supported output formats.
var OutputFormats = []string{constants.OutputFormatPretty, constants.OutputFormatCSV}

// ValidateOutputFormat checks if the output format is one of the supported
// formats. Matching is case sensitive.
func ValidateOutputFormat(format string) error {
	for _, supported := range OutputFormats {
		if format == supported {
			return nil
		}
	}
	return fmt.Errorf("expected output format of %s, got %q", strings.Join(OutputFormats, " or "), format)
}
