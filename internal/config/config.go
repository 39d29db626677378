// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/iwvelando/cost-of-living/internal/aggregate"
	"github.com/iwvelando/cost-of-living/internal/salary"
	"github.com/iwvelando/cost-of-living/pkg/constants"
	"github.com/iwvelando/cost-of-living/pkg/costs"
	"github.com/iwvelando/cost-of-living/pkg/dataset"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for the cost-of-living dashboard.
type Configuration struct {
	Logging      LoggingConfig      `mapstructure:"logging" yaml:"logging,omitempty"`
	Output       OutputConfig       `mapstructure:"output" yaml:"output,omitempty"`
	Data         DataConfig         `mapstructure:"data" yaml:"data"`
	Assumptions  costs.Assumptions  `mapstructure:"assumptions" yaml:"assumptions"`
	Careers      []CareerConfig     `mapstructure:"careers" yaml:"careers"`
	SalarySlider SalarySliderConfig `mapstructure:"salarySlider" yaml:"salarySlider"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv, json
}

// DataConfig locates the source files. Relative paths resolve against Dir.
type DataConfig struct {
	Dir             string             `mapstructure:"dir" yaml:"dir"`
	ReferenceCounty string             `mapstructure:"referenceCounty" yaml:"referenceCounty"`
	Counties        []aggregate.County `mapstructure:"counties" yaml:"counties"`
	Healthcare      dataset.Source     `mapstructure:"healthcare" yaml:"healthcare"`
}

// CareerConfig is one career and its salary by year.
type CareerConfig struct {
	Name     string          `mapstructure:"name" yaml:"name"`
	Salaries map[int]float64 `mapstructure:"salaries" yaml:"salaries"`
}

// SalarySliderConfig bounds the manual salary control.
type SalarySliderConfig struct {
	Min  float64 `mapstructure:"min" yaml:"min"`
	Max  float64 `mapstructure:"max" yaml:"max"`
	Step float64 `mapstructure:"step" yaml:"step"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

// Default returns the configuration used when no file sets a value.
func Default() *Configuration {
	conf, err := decode(newViper())
	if err != nil {
		// Defaults are static and always decode.
		panic(err)
	}
	return conf
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	a := costs.DefaultAssumptions()
	v.SetDefault("data.dir", "data")
	v.SetDefault("data.referenceCounty", constants.DefaultReferenceCounty)
	v.SetDefault("assumptions.annualInterestRate", a.AnnualInterestRate)
	v.SetDefault("assumptions.termMonths", a.TermMonths)
	v.SetDefault("assumptions.loanToValue", a.LoanToValue)
	v.SetDefault("assumptions.propertyTax", a.PropertyTax)
	v.SetDefault("assumptions.insurance", a.Insurance)
	v.SetDefault("assumptions.milesPerMonth", a.MilesPerMonth)
	v.SetDefault("assumptions.mpg", a.MPG)
	v.SetDefault("assumptions.kwhPerMonth", a.KWhPerMonth)
	v.SetDefault("assumptions.healthcareDivisor", a.HealthcareDivisor)
	v.SetDefault("salarySlider.min", constants.DefaultSalaryMin)
	v.SetDefault("salarySlider.max", constants.DefaultSalaryMax)
	v.SetDefault("salarySlider.step", constants.DefaultSalaryStep)
	v.SetDefault("output.format", constants.OutputFormatPretty)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	if len(configuration.Data.Counties) == 0 {
		configuration.Data.Counties = DefaultCounties()
	}
	if configuration.Data.Healthcare.Path == "" {
		configuration.Data.Healthcare = DefaultHealthcare()
	}
	if len(configuration.Careers) == 0 {
		configuration.Careers = DefaultCareers()
	}
	return &configuration, nil
}

// CareerTable converts the configured careers for the salary resolver.
func (c *Configuration) CareerTable() salary.CareerTable {
	table := make(salary.CareerTable, len(c.Careers))
	for _, career := range c.Careers {
		table[career.Name] = career.Salaries
	}
	return table
}

// DefaultCareers returns the built-in career salary table in name order.
func DefaultCareers() []CareerConfig {
	table := salary.DefaultCareers()
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	careers := make([]CareerConfig, 0, len(names))
	for _, name := range names {
		careers = append(careers, CareerConfig{Name: name, Salaries: table[name]})
	}
	return careers
}

// Validate returns the first configuration problem that would make the
// pipeline fail or compute nonsense.
func (c *Configuration) Validate() error {
	if err := c.Assumptions.Validate(); err != nil {
		return fmt.Errorf("invalid assumptions: %w", err)
	}
	if len(c.Data.Counties) == 0 {
		return errors.New("no counties configured")
	}

	seen := make(map[string]struct{}, len(c.Data.Counties))
	for _, county := range c.Data.Counties {
		if county.ID == "" {
			return errors.New("county with empty id")
		}
		if _, dup := seen[county.ID]; dup {
			return fmt.Errorf("county %s configured twice", county.ID)
		}
		seen[county.ID] = struct{}{}

		for category, src := range map[string]dataset.Source{
			"income":      county.Income,
			"listing":     county.Listing,
			"electricity": county.Electricity,
			"gas":         county.Gas,
		} {
			if src.Path == "" {
				return fmt.Errorf("county %s has no %s source path", county.ID, category)
			}
		}
	}
	if c.Data.Healthcare.Path == "" {
		return errors.New("no healthcare source path")
	}
	if _, ok := seen[c.Data.ReferenceCounty]; !ok {
		return fmt.Errorf("reference county %q is not configured", c.Data.ReferenceCounty)
	}

	for _, career := range c.Careers {
		if career.Name == "" {
			return errors.New("career with empty name")
		}
		if len(career.Salaries) == 0 {
			return fmt.Errorf("career %s has no salaries", career.Name)
		}
	}

	if c.SalarySlider.Step <= 0 {
		return fmt.Errorf("salary slider step must be positive, got %v", c.SalarySlider.Step)
	}
	if c.SalarySlider.Min > c.SalarySlider.Max {
		return fmt.Errorf("salary slider min %v exceeds max %v", c.SalarySlider.Min, c.SalarySlider.Max)
	}
	return nil
}

// ValidateConfiguration returns warnings about configuration that works but
// deserves attention, such as a county borrowing another county's series.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	owner := make(map[string]string)
	for _, county := range c.Data.Counties {
		for _, src := range []dataset.Source{county.Income, county.Listing} {
			if _, ok := owner[src.Path]; !ok {
				owner[src.Path] = county.ID
			}
		}
	}
	for _, county := range c.Data.Counties {
		for category, src := range map[string]dataset.Source{
			"electricity": county.Electricity,
			"gas":         county.Gas,
		} {
			if first, ok := owner[src.Path]; ok && first != county.ID {
				warnings = append(warnings, fmt.Sprintf("County '%s' uses the %s source of county '%s' (%s)",
					county.ID, category, first, src.Path))
				continue
			}
			owner[src.Path] = county.ID
		}
	}
	sort.Strings(warnings)
	return warnings
}

// RawSources lists every distinct configured source in display order: incomes,
// listings, electricity, gas, then healthcare.
func (c *Configuration) RawSources() []dataset.Source {
	var sources []dataset.Source
	seen := make(map[string]struct{})
	add := func(src dataset.Source) {
		if _, ok := seen[src.Path]; ok {
			return
		}
		seen[src.Path] = struct{}{}
		sources = append(sources, src)
	}

	for _, pick := range []func(aggregate.County) dataset.Source{
		func(c aggregate.County) dataset.Source { return c.Income },
		func(c aggregate.County) dataset.Source { return c.Listing },
		func(c aggregate.County) dataset.Source { return c.Electricity },
		func(c aggregate.County) dataset.Source { return c.Gas },
	} {
		for _, county := range c.Data.Counties {
			add(pick(county))
		}
	}
	add(c.Data.Healthcare)
	return sources
}
