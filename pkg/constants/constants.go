// Package constants provides shared constants for the debt-dashboard application.
package constants

// Slider control ranges and defaults
const (
	// MinCapital is the lower bound of the capital allocation slider ($ billion)
	MinCapital = 0.1

	// MaxCapital is the upper bound of the capital allocation slider ($ billion)
	MaxCapital = 10.0

	// CapitalStep is the granularity of the capital allocation slider
	CapitalStep = 0.01

	// CapitalPrecision is the number of capital steps per $ billion
	CapitalPrecision = 100.0

	// DefaultCapital is the capital allocation shown when a session starts
	DefaultCapital = 1.2

	// MinRate is the lower bound of the restructuring favorability slider (%)
	MinRate = 0.0

	// MaxRate is the upper bound of the restructuring favorability slider (%)
	MaxRate = 100.0

	// RateStep is the granularity of the restructuring favorability slider
	RateStep = 1.0

	// DefaultRate is the restructuring favorability shown when a session starts
	DefaultRate = 75.0
)

// Dashboard thresholds
const (
	// FavorableRateThreshold is the rate above which the status panel reports integrity
	FavorableRateThreshold = 70.0

	// FavorableScoreThreshold is the minimum agent score above which the radar is green
	FavorableScoreThreshold = 70.0

	// VulnerableScoreThreshold is the upper bound of the vulnerable radar zone
	VulnerableScoreThreshold = 50.0
)

// Trend constants
const (
	// TrendPoints is the number of points in every synthesized series
	TrendPoints = 12

	// HealthTrendStartFactor scales the health index for the first trend point
	HealthTrendStartFactor = 0.8

	// ROITrendStartFactor scales the ROI for the first trend point
	ROITrendStartFactor = 0.9

	// HealthNoiseStdDev is the standard deviation of the health trend noise
	HealthNoiseStdDev = 1.0

	// ROINoiseStdDev is the standard deviation of the ROI trend noise
	ROINoiseStdDev = 0.2
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultEnvFile is the optional dotenv file loaded before the configuration
	DefaultEnvFile = ".env"

	// EnvPrefix prefixes every environment variable override
	EnvPrefix = "DASHBOARD"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultRequestsPerSecond is the default sustained request rate
	DefaultRequestsPerSecond = 50.0

	// DefaultRequestBurst is the default request burst size
	DefaultRequestBurst = 100

	// DefaultShutdownTimeout is the default graceful shutdown window
	DefaultShutdownTimeout = "10s"

	// DefaultMaxMessageSize bounds a single websocket slider update
	DefaultMaxMessageSize = "4K"

	// DefaultMaxMessageBytes is DefaultMaxMessageSize in bytes
	DefaultMaxMessageBytes int64 = 4 * 1024
)
