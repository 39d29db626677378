// Package dashboard answers the dashboard's questions: the expense chart for a
// county, a yearly summary, the raw source tables and the available options.
// Every call reloads its sources so edits to the data directory are picked up
// without a restart.
package dashboard

import (
	"context"
	"fmt"

	"github.com/iwvelando/cost-of-living/internal/aggregate"
	"github.com/iwvelando/cost-of-living/internal/chart"
	"github.com/iwvelando/cost-of-living/internal/config"
	"github.com/iwvelando/cost-of-living/internal/salary"
	"github.com/iwvelando/cost-of-living/internal/summary"
	"github.com/iwvelando/cost-of-living/pkg/dataset"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Request carries the user's selections.
type Request struct {
	County string
	Salary *float64
	Career string
	Mode   string
	// Year selects the summary year. Zero means the latest year with data.
	Year int
}

func (r Request) selection() salary.Selection {
	return salary.Selection{Salary: r.Salary, Career: r.Career}
}

// RawTable is one source file as loaded.
type RawTable struct {
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// CountyOption is a selectable county.
type CountyOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// SalaryRange bounds the manual salary control.
type SalaryRange struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// Options lists what a client may select.
type Options struct {
	Counties []CountyOption `json:"counties"`
	Careers  []string       `json:"careers"`
	Modes    []string       `json:"modes"`
	Salary   SalaryRange    `json:"salary"`
	MinYear  int            `json:"minYear"`
	MaxYear  int            `json:"maxYear"`
}

// Service wires the loader, aggregator and salary resolver together. It is
// safe for concurrent use.
type Service struct {
	logger     *zap.Logger
	conf       *config.Configuration
	loader     *dataset.Loader
	aggregator *aggregate.Aggregator
	resolver   *salary.Resolver
}

// New validates conf and builds a Service reading sources from fs. A nil fs
// means the OS filesystem.
func New(logger *zap.Logger, conf *config.Configuration, fs afero.Fs) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if conf == nil {
		return nil, fmt.Errorf("nil configuration")
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn(warning, zap.String("op", "dashboard.New"))
	}

	loader := dataset.NewLoader(logger, fs, conf.Data.Dir)
	return &Service{
		logger:     logger,
		conf:       conf,
		loader:     loader,
		aggregator: aggregate.NewAggregator(logger, loader, conf.Data.Counties, conf.Data.Healthcare, conf.Assumptions),
		resolver:   salary.NewResolver(conf.CareerTable()),
	}, nil
}

// Rows returns the observation rows for county.
func (s *Service) Rows(ctx context.Context, county string) ([]aggregate.ObservationRow, error) {
	return s.aggregator.Aggregate(ctx, county)
}

// Chart builds the line chart for the request's county, salary and mode.
func (s *Service) Chart(ctx context.Context, req Request) (*chart.Chart, error) {
	mode, err := chart.ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}

	rows, err := s.aggregator.Aggregate(ctx, req.County)
	if err != nil {
		return nil, err
	}

	salaries, err := s.resolver.ResolveSeries(req.selection(), aggregate.Dates(rows))
	if err != nil {
		return nil, err
	}

	s.logger.Debug("built chart",
		zap.String("op", "dashboard.Chart"),
		zap.String("county", req.County),
		zap.String("mode", string(mode)),
		zap.Int("rows", len(rows)),
	)
	return chart.Build(req.County, rows, salaries, mode)
}

// Summary builds the yearly comparison for the request's county and year.
func (s *Service) Summary(ctx context.Context, req Request) (summary.Summary, error) {
	rows, err := s.aggregator.Aggregate(ctx, req.County)
	if err != nil {
		return summary.Summary{}, err
	}

	year := req.Year
	if year == 0 {
		if _, maxYear, ok := summary.YearRange(rows); ok {
			year = maxYear
		}
	}

	sel := req.selection()
	amount, err := s.resolver.ForYear(sel, year)
	if err != nil {
		return summary.Summary{}, err
	}

	var careerLabel string
	if sel.HasCareer() {
		careerLabel = sel.Career
	}
	return summary.Build(rows, amount, year, careerLabel), nil
}

// RawData loads every distinct configured source.
func (s *Service) RawData(ctx context.Context) ([]RawTable, error) {
	sources := s.conf.RawSources()
	tables := make([]RawTable, 0, len(sources))
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		table, err := s.loader.Load(src)
		if err != nil {
			return nil, err
		}
		tables = append(tables, RawTable{
			Title:   src.Name(),
			Columns: append([]string(nil), table.Columns...),
			Rows:    table.Rows(),
		})
	}
	return tables, nil
}

// Options lists the counties, careers and modes, the salary bounds and the
// summary year range of the reference county.
func (s *Service) Options(ctx context.Context) (*Options, error) {
	rows, err := s.aggregator.Aggregate(ctx, s.conf.Data.ReferenceCounty)
	if err != nil {
		return nil, err
	}

	opts := &Options{
		Careers: s.resolver.Careers(),
		Salary: SalaryRange{
			Min:  s.conf.SalarySlider.Min,
			Max:  s.conf.SalarySlider.Max,
			Step: s.conf.SalarySlider.Step,
		},
	}
	opts.MinYear, opts.MaxYear, _ = summary.YearRange(rows)

	for _, c := range s.aggregator.Counties() {
		opts.Counties = append(opts.Counties, CountyOption{ID: c.ID, Label: c.Label})
	}
	for _, m := range chart.Modes() {
		opts.Modes = append(opts.Modes, string(m))
	}
	return opts, nil
}
