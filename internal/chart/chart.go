// Package chart builds the line chart series that compare a salary with a
// county's annual expenses.
package chart

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/iwvelando/cost-of-living/internal/aggregate"
	"github.com/iwvelando/cost-of-living/pkg/constants"
	"github.com/iwvelando/cost-of-living/pkg/datetime"
	"github.com/iwvelando/cost-of-living/pkg/format"
	"gonum.org/v1/gonum/floats"
)

// ErrUnknownMode is returned by ParseMode for an unsupported display mode.
var ErrUnknownMode = errors.New("unknown display mode")

// Mode selects which series are drawn and how the y axis is scaled.
type Mode string

const (
	// Individual draws each expense separately on an axis starting at zero.
	Individual Mode = constants.ModeIndividual
	// Combined draws the sum of expenses on an auto-scaled axis.
	Combined Mode = constants.ModeCombined
)

// Modes lists the supported modes.
func Modes() []Mode {
	return []Mode{Individual, Combined}
}

// ParseMode parses a mode name. The empty string selects Individual.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case "", Individual:
		return Individual, nil
	case Combined:
		return Combined, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, value)
	}
}

// Series is one named line.
type Series struct {
	Name      string
	Dates     []time.Time
	Values    []float64
	HoverText []string
	Dashed    bool
}

// MarshalJSON writes dates in the canonical layout and missing values as null.
func (s Series) MarshalJSON() ([]byte, error) {
	dates := make([]string, len(s.Dates))
	for i, d := range s.Dates {
		dates[i] = datetime.FormatDate(d)
	}
	values := make([]*float64, len(s.Values))
	for i := range s.Values {
		if !math.IsNaN(s.Values[i]) && !math.IsInf(s.Values[i], 0) {
			v := s.Values[i]
			values[i] = &v
		}
	}
	return json.Marshal(struct {
		Name      string     `json:"name"`
		Dates     []string   `json:"x"`
		Values    []*float64 `json:"y"`
		HoverText []string   `json:"hoverText"`
		Dashed    bool       `json:"dashed"`
	}{s.Name, dates, values, s.HoverText, s.Dashed})
}

// Axis describes one chart axis. A nil Range means auto-scale.
type Axis struct {
	Title string      `json:"title"`
	Range *[2]float64 `json:"range,omitempty"`
}

// Chart is everything a renderer needs for the main line chart.
type Chart struct {
	Title  string   `json:"title"`
	Mode   Mode     `json:"mode"`
	Series []Series `json:"series"`
	XAxis  Axis     `json:"xAxis"`
	YAxis  Axis     `json:"yAxis"`
}

// Build returns the chart for rows. salary must hold one value per row.
func Build(county string, rows []aggregate.ObservationRow, salary []float64, mode Mode) (*Chart, error) {
	if len(salary) != len(rows) {
		return nil, fmt.Errorf("salary series has %d values for %d rows", len(salary), len(rows))
	}

	dates := aggregate.Dates(rows)
	column := func(get func(aggregate.ObservationRow) float64) []float64 {
		values := make([]float64, len(rows))
		for i, row := range rows {
			values[i] = get(row)
		}
		return values
	}

	salarySeries := newSeries(constants.SelectedSalaryLabel, dates, append([]float64(nil), salary...))
	salarySeries.Dashed = true
	income := newSeries("Median Income", dates, column(func(r aggregate.ObservationRow) float64 { return r.MedianIncome }))

	chart := &Chart{
		Title: fmt.Sprintf("Annual Costs & Income in %s County", county),
		Mode:  mode,
		XAxis: Axis{Title: "Date"},
		YAxis: Axis{Title: "Annual Amount (USD)"},
	}

	switch mode {
	case Combined:
		combined := newSeries(constants.CombinedLabel, dates, column(aggregate.ObservationRow.CombinedExpenses))
		chart.Series = []Series{combined, income, salarySeries}
	case Individual:
		chart.Series = []Series{
			newSeries("Annual Mortgage", dates, column(func(r aggregate.ObservationRow) float64 { return r.AnnualMortgage })),
			newSeries("Annual Gas", dates, column(func(r aggregate.ObservationRow) float64 { return r.AnnualGas })),
			newSeries("Annual Electricity", dates, column(func(r aggregate.ObservationRow) float64 { return r.AnnualElec })),
			newSeries("Annual Healthcare", dates, column(func(r aggregate.ObservationRow) float64 { return r.AnnualHealthcare })),
			income,
			salarySeries,
		}
		upper := constants.YAxisHeadroom * maxValue(chart.Series)
		chart.YAxis.Range = &[2]float64{0, upper}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	return chart, nil
}

func newSeries(name string, dates []time.Time, values []float64) Series {
	hover := make([]string, len(values))
	for i, v := range values {
		hover[i] = format.HoverText(v)
	}
	return Series{Name: name, Dates: dates, Values: values, HoverText: hover}
}

// maxValue returns the largest finite value across series, or 0.
func maxValue(series []Series) float64 {
	var finite []float64
	for _, s := range series {
		for _, v := range s.Values {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				finite = append(finite, v)
			}
		}
	}
	if len(finite) == 0 {
		return 0
	}
	return floats.Max(finite)
}
