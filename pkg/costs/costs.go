// Package costs converts raw monthly prices into the monthly cost components
// used by the dashboard: mortgage, gas, electricity and healthcare.
package costs

import (
	"fmt"
	"math"

	"github.com/iwvelando/cost-of-living/pkg/constants"
)

// Assumptions holds the fixed household parameters the cost formulas are
// evaluated with. Money values are USD per month.
type Assumptions struct {
	AnnualInterestRate float64 `mapstructure:"annualInterestRate" yaml:"annualInterestRate"` // fraction, e.g. 0.0672
	TermMonths         int     `mapstructure:"termMonths" yaml:"termMonths"`
	LoanToValue        float64 `mapstructure:"loanToValue" yaml:"loanToValue"`
	PropertyTax        float64 `mapstructure:"propertyTax" yaml:"propertyTax"`
	Insurance          float64 `mapstructure:"insurance" yaml:"insurance"`
	MilesPerMonth      float64 `mapstructure:"milesPerMonth" yaml:"milesPerMonth"`
	MPG                float64 `mapstructure:"mpg" yaml:"mpg"`
	KWhPerMonth        float64 `mapstructure:"kwhPerMonth" yaml:"kwhPerMonth"`
	HealthcareDivisor  float64 `mapstructure:"healthcareDivisor" yaml:"healthcareDivisor"`
}

// DefaultAssumptions returns the assumptions the dashboard ships with.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		AnnualInterestRate: constants.DefaultAnnualInterestRate,
		TermMonths:         constants.DefaultTermMonths,
		LoanToValue:        constants.DefaultLoanToValue,
		PropertyTax:        constants.DefaultPropertyTax,
		Insurance:          constants.DefaultInsurance,
		MilesPerMonth:      constants.DefaultMilesPerMonth,
		MPG:                constants.DefaultMPG,
		KWhPerMonth:        constants.DefaultKWhPerMonth,
		HealthcareDivisor:  constants.DefaultHealthcareDivisor,
	}
}

// Validate reports assumptions that would make a formula divide by zero or
// produce negative costs.
func (a Assumptions) Validate() error {
	switch {
	case a.TermMonths <= 0:
		return fmt.Errorf("termMonths must be positive, got %d", a.TermMonths)
	case a.MPG <= 0:
		return fmt.Errorf("mpg must be positive, got %v", a.MPG)
	case a.HealthcareDivisor <= 0:
		return fmt.Errorf("healthcareDivisor must be positive, got %v", a.HealthcareDivisor)
	case a.AnnualInterestRate < 0:
		return fmt.Errorf("annualInterestRate must not be negative, got %v", a.AnnualInterestRate)
	case a.LoanToValue < 0 || a.LoanToValue > 1:
		return fmt.Errorf("loanToValue must be within [0, 1], got %v", a.LoanToValue)
	case a.PropertyTax < 0 || a.Insurance < 0 || a.MilesPerMonth < 0 || a.KWhPerMonth < 0:
		return fmt.Errorf("propertyTax, insurance, milesPerMonth and kwhPerMonth must not be negative")
	}
	return nil
}

// AmortizedPayment returns the fixed monthly payment that retires principal
// over termMonths at the given annual rate. A non-positive rate degrades to a
// straight-line payment.
func AmortizedPayment(principal, annualRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if annualRate <= 0 {
		return principal / float64(termMonths)
	}

	r := annualRate / constants.MonthsPerYear
	power := math.Pow(1+r, float64(termMonths))
	return principal * r * power / (power - 1)
}

// MonthlyMortgage returns the monthly housing cost of buying at listingPrice:
// the amortized payment on the financed share plus property tax and insurance.
func (a Assumptions) MonthlyMortgage(listingPrice float64) float64 {
	principal := a.LoanToValue * listingPrice
	return AmortizedPayment(principal, a.AnnualInterestRate, a.TermMonths) + a.PropertyTax + a.Insurance
}

// MonthlyGasCost returns the monthly fuel cost for a gas price per gallon.
func (a Assumptions) MonthlyGasCost(pricePerGallon float64) float64 {
	return pricePerGallon / a.MPG * a.MilesPerMonth
}

// MonthlyElecCost returns the monthly electricity cost for a price per kWh.
func (a Assumptions) MonthlyElecCost(pricePerKWh float64) float64 {
	return pricePerKWh * a.KWhPerMonth
}

// MonthlyHealthcareCost normalizes an aggregate billing amount to a monthly cost.
func (a Assumptions) MonthlyHealthcareCost(billingAmount float64) float64 {
	return billingAmount / a.HealthcareDivisor
}

// Annualize converts a monthly amount to a yearly one.
func Annualize(monthly float64) float64 {
	return monthly * constants.MonthsPerYear
}
