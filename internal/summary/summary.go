// Package summary builds the single-year bar comparison of median salary,
// the user's salary and combined expenses.
package summary

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/iwvelando/cost-of-living/internal/aggregate"
	"github.com/iwvelando/cost-of-living/pkg/constants"
	"github.com/iwvelando/cost-of-living/pkg/format"
	"gonum.org/v1/gonum/stat"
)

// Summary is a three-bar comparison for one year.
type Summary struct {
	Title      string     `json:"title"`
	Year       int        `json:"year"`
	Categories [3]string  `json:"categories"`
	Values     [3]float64 `json:"values"`
	Text       [3]string  `json:"text"`
	Rows       int        `json:"rows"`
}

// MarshalJSON writes missing values as null.
func (s Summary) MarshalJSON() ([]byte, error) {
	var values [3]*float64
	for i := range s.Values {
		if !math.IsNaN(s.Values[i]) {
			v := s.Values[i]
			values[i] = &v
		}
	}
	type plain Summary
	return json.Marshal(struct {
		plain
		Values [3]*float64 `json:"values"`
	}{plain(s), values})
}

// Build summarizes the rows dated in year. careerLabel names the salary bar
// when a career was selected; leave it empty for a manually chosen salary.
// A year without rows yields zero for every bar.
func Build(rows []aggregate.ObservationRow, salaryForYear float64, year int, careerLabel string) Summary {
	salaryLabel := constants.UserSalaryLabel
	if careerLabel != "" {
		salaryLabel = careerLabel
	}

	s := Summary{
		Title:      fmt.Sprintf("Yearly Summary for %d", year),
		Year:       year,
		Categories: [3]string{constants.MedianSalaryLabel, salaryLabel, constants.CombinedLabel},
	}

	var income, expenses []float64
	for _, row := range rows {
		if row.Date.Year() != year {
			continue
		}
		income = append(income, row.MedianIncome)
		expenses = append(expenses, row.CombinedExpenses())
	}
	s.Rows = len(income)

	if s.Rows > 0 {
		s.Values = [3]float64{stat.Mean(income, nil), salaryForYear, stat.Mean(expenses, nil)}
	}
	for i, v := range s.Values {
		s.Text[i] = format.HoverText(v)
	}
	return s
}

// YearRange returns the first and last observation years in rows.
func YearRange(rows []aggregate.ObservationRow) (minYear, maxYear int, ok bool) {
	for i, row := range rows {
		y := row.Date.Year()
		if i == 0 || y < minYear {
			minYear = y
		}
		if i == 0 || y > maxYear {
			maxYear = y
		}
	}
	return minYear, maxYear, len(rows) > 0
}
