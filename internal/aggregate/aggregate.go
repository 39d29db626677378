// Package aggregate joins the per-category sources of a county into dated,
// annualized observation rows.
package aggregate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/iwvelando/cost-of-living/pkg/constants"
	"github.com/iwvelando/cost-of-living/pkg/costs"
	"github.com/iwvelando/cost-of-living/pkg/dataset"
	"github.com/iwvelando/cost-of-living/pkg/datetime"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// ErrUnknownCounty matches every *UnknownCountyError via errors.Is.
var ErrUnknownCounty = errors.New("unknown county")

// UnknownCountyError is returned for a county id with no configured sources.
type UnknownCountyError struct {
	County string
}

func (e *UnknownCountyError) Error() string {
	return fmt.Sprintf("unknown county: %q", e.County)
}

// Is lets errors.Is(err, ErrUnknownCounty) match.
func (e *UnknownCountyError) Is(target error) bool { return target == ErrUnknownCounty }

// DuplicateDateError is returned when a source that is joined as-is repeats a
// date.
type DuplicateDateError struct {
	Source string
	Date   time.Time
}

func (e *DuplicateDateError) Error() string {
	return fmt.Sprintf("source %s repeats date %s", e.Source, datetime.FormatDate(e.Date))
}

// County maps a county id to its four category sources. Counties without
// their own electricity or gas series point at another county's file.
type County struct {
	ID          string         `mapstructure:"id" yaml:"id"`
	Label       string         `mapstructure:"label" yaml:"label"`
	Income      dataset.Source `mapstructure:"income" yaml:"income"`
	Listing     dataset.Source `mapstructure:"listing" yaml:"listing"`
	Electricity dataset.Source `mapstructure:"electricity" yaml:"electricity"`
	Gas         dataset.Source `mapstructure:"gas" yaml:"gas"`
}

// ObservationRow is one date of a county's joined, annualized data.
type ObservationRow struct {
	Date             time.Time `json:"observationDate"`
	MedianIncome     float64   `json:"medianIncome"`
	AnnualMortgage   float64   `json:"annualMortgage"`
	AnnualGas        float64   `json:"annualGas"`
	AnnualElec       float64   `json:"annualElec"`
	AnnualHealthcare float64   `json:"annualHealthcare"`
}

// CombinedExpenses sums the four annual expense components.
func (r ObservationRow) CombinedExpenses() float64 {
	return r.AnnualMortgage + r.AnnualGas + r.AnnualElec + r.AnnualHealthcare
}

// MarshalJSON writes the date in the canonical layout, adds the combined
// expenses and writes missing values as null.
func (r ObservationRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date             string   `json:"observationDate"`
		MedianIncome     *float64 `json:"medianIncome"`
		AnnualMortgage   *float64 `json:"annualMortgage"`
		AnnualGas        *float64 `json:"annualGas"`
		AnnualElec       *float64 `json:"annualElec"`
		AnnualHealthcare *float64 `json:"annualHealthcare"`
		CombinedExpenses *float64 `json:"combinedExpenses"`
	}{
		Date:             datetime.FormatDate(r.Date),
		MedianIncome:     finite(r.MedianIncome),
		AnnualMortgage:   finite(r.AnnualMortgage),
		AnnualGas:        finite(r.AnnualGas),
		AnnualElec:       finite(r.AnnualElec),
		AnnualHealthcare: finite(r.AnnualHealthcare),
		CombinedExpenses: finite(r.CombinedExpenses()),
	})
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Dates returns the date of every row.
func Dates(rows []ObservationRow) []time.Time {
	dates := make([]time.Time, len(rows))
	for i, row := range rows {
		dates[i] = row.Date
	}
	return dates
}

// Aggregator builds observation rows. It holds only read-only configuration
// and may be shared between goroutines.
type Aggregator struct {
	logger      *zap.Logger
	loader      *dataset.Loader
	counties    []County
	healthcare  dataset.Source
	assumptions costs.Assumptions
}

// NewAggregator creates an Aggregator over the given counties and the shared
// healthcare source.
func NewAggregator(logger *zap.Logger, loader *dataset.Loader, counties []County, healthcare dataset.Source, assumptions costs.Assumptions) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		logger:      logger,
		loader:      loader,
		counties:    append([]County(nil), counties...),
		healthcare:  healthcare,
		assumptions: assumptions,
	}
}

// Counties returns the configured counties in configuration order.
func (a *Aggregator) Counties() []County {
	return append([]County(nil), a.counties...)
}

// County looks up a county by id.
func (a *Aggregator) County(id string) (County, error) {
	for _, c := range a.counties {
		if c.ID == id {
			return c, nil
		}
	}
	return County{}, &UnknownCountyError{County: id}
}

// Aggregate loads every source for county, inner-joins them on date, applies
// the cost formulas and returns the rows sorted by date. Either every source
// loads and joins or an error is returned.
func (a *Aggregator) Aggregate(ctx context.Context, county string) ([]ObservationRow, error) {
	c, err := a.County(county)
	if err != nil {
		return nil, err
	}

	categories := []struct {
		source dataset.Source
		column string
	}{
		{c.Income, constants.ColumnMedianIncome},
		{c.Listing, constants.ColumnListingPrice},
		{c.Electricity, constants.ColumnElecPrice},
		{c.Gas, constants.ColumnGasPrice},
	}

	values := make([]map[time.Time]float64, 0, len(categories)+1)
	var order []time.Time
	for i, category := range categories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		points, err := a.loadPoints(category.source, category.column)
		if err != nil {
			return nil, err
		}
		byDate, err := indexUnique(category.source.Name(), points)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			for _, p := range points {
				order = append(order, p.Date)
			}
		}
		values = append(values, byDate)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	healthcare, err := a.loadHealthcare()
	if err != nil {
		return nil, err
	}
	values = append(values, healthcare)

	rows := make([]ObservationRow, 0, len(order))
	for _, date := range order {
		joined, ok := lookupAll(values, date)
		if !ok {
			continue
		}
		rows = append(rows, a.observation(date, joined))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

	a.logger.Debug(fmt.Sprintf("joined %d rows for county %s", len(rows), county),
		zap.String("op", "aggregate.Aggregate"),
		zap.Int("incomeRows", len(order)),
		zap.Int("healthcareDates", len(healthcare)),
	)
	return rows, nil
}

func (a *Aggregator) observation(date time.Time, v []float64) ObservationRow {
	return ObservationRow{
		Date:             date,
		MedianIncome:     v[0],
		AnnualMortgage:   costs.Annualize(a.assumptions.MonthlyMortgage(v[1])),
		AnnualElec:       costs.Annualize(a.assumptions.MonthlyElecCost(v[2])),
		AnnualGas:        costs.Annualize(a.assumptions.MonthlyGasCost(v[3])),
		AnnualHealthcare: costs.Annualize(a.assumptions.MonthlyHealthcareCost(v[4])),
	}
}

func (a *Aggregator) loadPoints(src dataset.Source, column string) ([]dataset.Point, error) {
	table, err := a.loader.Load(src)
	if err != nil {
		return nil, err
	}
	return table.Series(column)
}

// loadHealthcare averages billing records that share a discharge date. Missing
// amounts are skipped; a date whose amounts are all missing stays NaN.
func (a *Aggregator) loadHealthcare() (map[time.Time]float64, error) {
	points, err := a.loadPoints(a.healthcare, constants.ColumnHealthcareCost)
	if err != nil {
		return nil, err
	}

	grouped := make(map[time.Time][]float64)
	for _, p := range points {
		if _, ok := grouped[p.Date]; !ok {
			grouped[p.Date] = nil
		}
		if !math.IsNaN(p.Value) {
			grouped[p.Date] = append(grouped[p.Date], p.Value)
		}
	}

	means := make(map[time.Time]float64, len(grouped))
	for date, amounts := range grouped {
		if len(amounts) == 0 {
			means[date] = math.NaN()
			continue
		}
		means[date] = stat.Mean(amounts, nil)
	}
	return means, nil
}

func indexUnique(source string, points []dataset.Point) (map[time.Time]float64, error) {
	byDate := make(map[time.Time]float64, len(points))
	for _, p := range points {
		if _, dup := byDate[p.Date]; dup {
			return nil, &DuplicateDateError{Source: source, Date: p.Date}
		}
		byDate[p.Date] = p.Value
	}
	return byDate, nil
}

func lookupAll(sources []map[time.Time]float64, date time.Time) ([]float64, bool) {
	joined := make([]float64, len(sources))
	for i, byDate := range sources {
		v, ok := byDate[date]
		if !ok {
			return nil, false
		}
		joined[i] = v
	}
	return joined, true
}
