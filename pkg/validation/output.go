package validation

import (
	"fmt"

	"github.com/flexibudget/budget-forecast/pkg/constants"
)

// ValidateOutputFormat checks that the requested output format is supported.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatHTML:
		return nil
	default:
		return fmt.Errorf("invalid output format %q, must be one of: %s, %s, %s",
			format, constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatHTML)
	}
}
