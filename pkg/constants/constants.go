// Package constants provides shared constants for the budget-forecast application.
package constants

// Projection constants
const (
	// DefaultProjectionMonths is the horizon used when none is configured
	DefaultProjectionMonths = 12

	// MaxInteractiveProjectionMonths is the upper bound offered by the web UI;
	// the engine itself accepts any positive horizon
	MaxInteractiveProjectionMonths = 36

	// AmortizationWindowMonths is the fixed window for the 12-month
	// amortization mode
	AmortizationWindowMonths = 12

	// MonthsPerQuarter is the number of months in a quarterly block
	MonthsPerQuarter = 3

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Currency constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatHTML is the printable HTML report format
	OutputFormatHTML = "html"
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
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML models (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)

// Assistant defaults
const (
	// DefaultAssistantModel is the Gemini model used for proposal generation
	DefaultAssistantModel = "gemini-2.0-flash"

	// AssistantAPIKeyEnv is the environment variable holding the Gemini API key
	AssistantAPIKeyEnv = "GEMINI_API_KEY"
)
