// Package constants provides shared constants for the flip-forecast application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerMonth converts permit and timeline delays expressed in days into months
	DaysPerMonth = 30

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Scoring constants
const (
	// DefaultRiskScore is the placeholder risk input used when a deal carries no override
	DefaultRiskScore = 50.0

	// DefaultMarketScore is the placeholder market input used when a deal carries no override
	DefaultMarketScore = 70.0

	// ROIForFullScore is the ROI percent that earns a full ROI sub-score
	ROIForFullScore = 20.0

	// CashFlowForFullScore is the monthly cash flow that earns a full cash-flow sub-score
	CashFlowForFullScore = 500.0

	// LowRiskScoreFloor is the deal score above which a deal is rated Low risk
	LowRiskScoreFloor = 75

	// MediumRiskScoreFloor is the deal score above which a deal is rated Medium risk
	MediumRiskScoreFloor = 50
)

// Exit strategy defaults
const (
	// WholesaleFactor is the conventional MAO multiplier applied to ARV
	WholesaleFactor = 0.70

	// ConservativeWholesaleFactor is the conservative MAO multiplier
	ConservativeWholesaleFactor = 0.65

	// DefaultRefinancePercent is the BRRRR cash-out refinance LTV against ARV
	DefaultRefinancePercent = 75.0

	// DefaultMortgageRate is the annual rate of the BRRRR refinance loan
	DefaultMortgageRate = 7.0

	// DefaultMortgageTermMonths is the term of the BRRRR refinance loan
	DefaultMortgageTermMonths = 360

	// DefaultRentRatio is the monthly rent as a fraction of ARV (the 0.8% rule)
	DefaultRentRatio = 0.008

	// DefaultExpenseRatio is the share of rent consumed by operating expenses
	DefaultExpenseRatio = 0.40

	// DefaultClosingEstimate is the share of purchase plus rehab reserved for BRRRR closing costs
	DefaultClosingEstimate = 0.03

	// DefaultAppreciationPercent is the annual appreciation used by refinance projections
	DefaultAppreciationPercent = 3.0

	// DefaultProjectionYears is the horizon of refinance projections
	DefaultProjectionYears = 5
)

// Risk analytics defaults
const (
	// CurveMinProfit is the lowest profit threshold of the default probability curve
	CurveMinProfit = -50000.0

	// CurveMaxProfit is the highest profit threshold of the default probability curve
	CurveMaxProfit = 200000.0

	// CurveSteps is the number of intervals in the default probability curve
	CurveSteps = 50

	// DelayCostPerDay is the carrying-cost heuristic applied to timeline delays
	DelayCostPerDay = 50.0

	// LongDelayDays is the single-risk day count that counts toward a 30+ day collision
	LongDelayDays = 20

	// ROIImpactBase and ROIImpactScale convert delay cost into an approximate ROI impact
	ROIImpactBase  = 100000.0
	ROIImpactScale = 15.0

	// HighSeverityExpectedLoss is the expected dollar impact at which a threat is high severity
	HighSeverityExpectedLoss = 5000.0

	// MaxThreats is the number of threats returned by TopThreats
	MaxThreats = 3

	// DefaultMonteCarloIterations is the sample count of a Monte Carlo run
	DefaultMonteCarloIterations = 2000

	// DefaultMonteCarloSeed keeps Monte Carlo output reproducible
	DefaultMonteCarloSeed = 42
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatYAML is the YAML report output format
	OutputFormatYAML = "yaml"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "deals.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "deals.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)
