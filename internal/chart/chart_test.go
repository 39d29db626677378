package chart

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/iwvelando/cost-of-living/internal/aggregate"
	"github.com/iwvelando/cost-of-living/pkg/constants"
)

func testRows() []aggregate.ObservationRow {
	return []aggregate.ObservationRow{
		{
			Date:             time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
			MedianIncome:     80000,
			AnnualMortgage:   33000,
			AnnualGas:        1500,
			AnnualElec:       3000,
			AnnualHealthcare: 12000,
		},
		{
			Date:             time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
			MedianIncome:     90000,
			AnnualMortgage:   36000,
			AnnualGas:        math.NaN(),
			AnnualElec:       3200,
			AnnualHealthcare: 12500,
		},
	}
}

func seriesNames(c *Chart) []string {
	names := make([]string, len(c.Series))
	for i, s := range c.Series {
		names[i] = s.Name
	}
	return names
}

func TestBuildIndividual(t *testing.T) {
	c, err := Build("LA", testRows(), []float64{120000, 120000}, Individual)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := []string{"Annual Mortgage", "Annual Gas", "Annual Electricity", "Annual Healthcare", "Median Income", "Selected Salary"}
	if diff := cmp.Diff(want, seriesNames(c)); diff != "" {
		t.Errorf("series names mismatch (-want +got):\n%s", diff)
	}

	if c.YAxis.Range == nil {
		t.Fatal("expected a fixed y range in individual mode")
	}
	if c.YAxis.Range[0] != 0 {
		t.Errorf("y lower bound = %v, expected 0", c.YAxis.Range[0])
	}
	// The salary is the largest plotted value.
	if c.YAxis.Range[1] < 1.1*120000 {
		t.Errorf("y upper bound = %v, expected at least %v", c.YAxis.Range[1], 1.1*120000)
	}
	if c.Title != "Annual Costs & Income in LA County" {
		t.Errorf("unexpected title %q", c.Title)
	}
}

func TestBuildIndividualUpperBoundCoversExpenses(t *testing.T) {
	c, err := Build("OC", testRows(), []float64{10000, 10000}, Individual)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	for _, s := range c.Series {
		for _, v := range s.Values {
			if !math.IsNaN(v) && v*1.1 > c.YAxis.Range[1]+1e-9 {
				t.Errorf("%s value %v exceeds axis bound %v", s.Name, v, c.YAxis.Range[1])
			}
		}
	}
	if math.Abs(c.YAxis.Range[1]-90000*1.1) > 1e-6 {
		t.Errorf("y upper bound = %v, expected %v", c.YAxis.Range[1], 90000*1.1)
	}
}

func TestBuildCombined(t *testing.T) {
	c, err := Build("LA", testRows(), []float64{50000, 55000}, Combined)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if diff := cmp.Diff([]string{"Combined Expenses", "Median Income", "Selected Salary"}, seriesNames(c)); diff != "" {
		t.Errorf("series names mismatch (-want +got):\n%s", diff)
	}
	if c.YAxis.Range != nil {
		t.Errorf("expected auto-scaled y axis, got %v", *c.YAxis.Range)
	}

	combined := c.Series[0].Values
	if combined[0] != 33000+1500+3000+12000 {
		t.Errorf("combined[0] = %v", combined[0])
	}
	if !math.IsNaN(combined[1]) {
		t.Errorf("expected a missing component to leave the sum missing, got %v", combined[1])
	}
	if c.Series[0].HoverText[1] != constants.NoDataText {
		t.Errorf("hover[1] = %q, expected no-data sentinel", c.Series[0].HoverText[1])
	}
}

func TestSalarySeriesIsDashed(t *testing.T) {
	for _, mode := range Modes() {
		c, err := Build("LA", testRows(), []float64{1, 2}, mode)
		if err != nil {
			t.Fatalf("Build(%s) error = %v", mode, err)
		}
		for _, s := range c.Series {
			if s.Dashed != (s.Name == constants.SelectedSalaryLabel) {
				t.Errorf("mode %s: series %s dashed = %v", mode, s.Name, s.Dashed)
			}
		}
	}
}

func TestHoverText(t *testing.T) {
	c, err := Build("LA", testRows(), []float64{1, 2}, Individual)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	gas := c.Series[1]
	if diff := cmp.Diff([]string{"$1,500.00", constants.NoDataText}, gas.HoverText); diff != "" {
		t.Errorf("hover mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build("LA", testRows(), []float64{1}, Individual); err == nil {
		t.Error("expected error for mismatched salary length")
	}
	if _, err := Build("LA", testRows(), []float64{1, 2}, Mode("stacked")); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
}

func TestBuildEmptyRows(t *testing.T) {
	c, err := Build("LA", nil, nil, Individual)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if c.YAxis.Range[1] != 0 {
		t.Errorf("expected zero upper bound for empty chart, got %v", c.YAxis.Range[1])
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"", Individual, false},
		{"individual", Individual, false},
		{" Combined ", Combined, false},
		{"stacked", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode() = %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestSeriesJSONUsesNullForMissing(t *testing.T) {
	c, err := Build("LA", testRows(), []float64{1, 2}, Individual)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	body := string(data)
	if !strings.Contains(body, `"y":[1500,null]`) {
		t.Errorf("expected null for missing gas value, got %s", body)
	}
	if !strings.Contains(body, `"x":["2021-01-01","2022-01-01"]`) {
		t.Errorf("expected canonical dates, got %s", body)
	}
}
