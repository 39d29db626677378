// Package constants provides shared constants for the cost-of-living application.
package constants

// DateLayout is the canonical observation date format used in source files and
// in all output.
const DateLayout = "2006-01-02"

// DateColumn is the canonical name of the date column in every source table.
const DateColumn = "observation_date"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// CurrencyDecimals is the number of decimal places in CSV amounts
	CurrencyDecimals = 2

	// YAxisHeadroom is the multiplier applied to the largest plotted value to
	// get the upper bound of the individual-mode y axis.
	YAxisHeadroom = 1.1
)

// Mortgage, gas, electricity and healthcare assumptions. All money values are
// USD per month.
const (
	DefaultAnnualInterestRate = 0.0672
	DefaultTermMonths         = 360
	DefaultLoanToValue        = 0.80
	DefaultPropertyTax        = 658.0
	DefaultInsurance          = 66.0
	DefaultMilesPerMonth      = 1258.0
	DefaultMPG                = 33.5
	DefaultKWhPerMonth        = 1023.0
	DefaultHealthcareDivisor  = 24.0
)

// Value column names for each source category.
const (
	ColumnMedianIncome   = "median_income"
	ColumnListingPrice   = "listing_price"
	ColumnElecPrice      = "elec_price"
	ColumnGasPrice       = "gas_price"
	ColumnHealthcareCost = "healthcare_cost"
)

// Display mode constants
const (
	// ModeIndividual plots each expense separately on a zero-based axis
	ModeIndividual = "individual"

	// ModeCombined plots the sum of expenses on an auto-scaled axis
	ModeCombined = "combined"
)

// County identifiers
const (
	CountyLA      = "LA"
	CountyOC      = "OC"
	CountyVentura = "Ventura"

	// DefaultReferenceCounty supplies the year range for the summary slider
	DefaultReferenceCounty = CountyLA
)

// Salary slider defaults
const (
	DefaultSalaryMin  = 35000.0
	DefaultSalaryMax  = 300000.0
	DefaultSalaryStep = 5000.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment overrides of config keys
	EnvPrefix = "COL"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultReadHeaderTimeout bounds how long the server waits for request headers
	DefaultReadHeaderTimeout = "10s"
)

// Presentation strings
const (
	NoDataText          = "No data for this date"
	UserSalaryLabel     = "User Selected Salary"
	MedianSalaryLabel   = "Median Salary"
	CombinedLabel       = "Combined Expenses"
	SelectedSalaryLabel = "Selected Salary"
)
