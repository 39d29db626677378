package dataset

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/iwvelando/cost-of-living/pkg/datetime"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func newMemLoader(t *testing.T, files map[string]string) *Loader {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, contents := range files {
		if err := afero.WriteFile(fs, filepath.Join("/data", path), []byte(contents), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
	return NewLoader(zap.NewNop(), fs, "/data")
}

func TestLoad(t *testing.T) {
	loader := newMemLoader(t, map[string]string{
		"income.csv": "observation_date,median_income\n2021-01-01,80000\n2022-01-01,85000.5\n",
	})

	table, err := loader.Load(Source{Title: "Income", Path: "income.csv"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}
	if diff := cmp.Diff([]string{"observation_date", "median_income"}, table.Columns); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}

	series, err := table.Series("median_income")
	if err != nil {
		t.Fatalf("Series() error = %v", err)
	}
	want := []Point{
		{Date: datetime.MustParseTime(datetime.DateLayout, "2021-01-01"), Value: 80000},
		{Date: datetime.MustParseTime(datetime.DateLayout, "2022-01-01"), Value: 85000.5},
	}
	if diff := cmp.Diff(want, series); diff != "" {
		t.Errorf("series mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRenamesBeforeDateLookup(t *testing.T) {
	loader := newMemLoader(t, map[string]string{
		"healthcare.csv": "Name,Billing Amount,Discharge Date\nA,\"1,200.50\",2021-01-05\nB,300,2021-01-05\n",
	})

	table, err := loader.Load(Source{
		Path: "healthcare.csv",
		Renames: map[string]string{
			"Discharge Date": "observation_date",
			"Billing Amount": "healthcare_cost",
		},
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	values, err := table.Floats("healthcare_cost")
	if err != nil {
		t.Fatalf("Floats() error = %v", err)
	}
	if diff := cmp.Diff([]float64{1200.5, 300}, values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingValuesAreNaN(t *testing.T) {
	loader := newMemLoader(t, map[string]string{
		"gas.csv": "observation_date,gas_price\n2021-01-01,.\n2021-02-01,\n2021-03-01,3.9\n",
	})

	table, err := loader.Load(Source{Path: "gas.csv"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	values, err := table.Floats("gas_price")
	if err != nil {
		t.Fatalf("Floats() error = %v", err)
	}
	if !math.IsNaN(values[0]) || !math.IsNaN(values[1]) || values[2] != 3.9 {
		t.Errorf("unexpected values %v", values)
	}
}

func TestLoadErrors(t *testing.T) {
	loader := newMemLoader(t, map[string]string{
		"nodate.csv":  "date,value\n2021-01-01,1\n",
		"baddate.csv": "observation_date,value\nnot-a-date,1\n",
		"ragged.csv":  "observation_date,value\n2021-01-01,1,2\n",
		"empty.csv":   "",
	})

	tests := []struct {
		name   string
		path   string
		column string
		line   int
	}{
		{name: "Missing file", path: "missing.csv"},
		{name: "Missing date column", path: "nodate.csv", column: "observation_date", line: 1},
		{name: "Unparseable date", path: "baddate.csv", column: "observation_date", line: 2},
		{name: "Ragged row", path: "ragged.csv", line: 2},
		{name: "Empty file", path: "empty.csv", line: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Load(Source{Path: tt.path})
			if err == nil {
				t.Fatal("Load() expected error but got none")
			}
			if !errors.Is(err, ErrParse) {
				t.Errorf("expected errors.Is(err, ErrParse), got %v", err)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if parseErr.Column != tt.column {
				t.Errorf("Column = %q, expected %q", parseErr.Column, tt.column)
			}
			if parseErr.Line != tt.line {
				t.Errorf("Line = %d, expected %d", parseErr.Line, tt.line)
			}
		})
	}
}

func TestLoadMissingFileUnwrapsNotExist(t *testing.T) {
	loader := newMemLoader(t, nil)
	_, err := loader.Load(Source{Path: "missing.csv"})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist in chain, got %v", err)
	}
}

func TestFloatsErrors(t *testing.T) {
	loader := newMemLoader(t, map[string]string{
		"elec.csv": "observation_date,elec_price\n2021-01-01,0.25\n2021-02-01,abc\n",
	})
	table, err := loader.Load(Source{Path: "elec.csv"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if _, err := table.Floats("nope"); !errors.Is(err, ErrParse) {
		t.Errorf("expected parse error for missing column, got %v", err)
	}

	_, err = table.Floats("elec_price")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if parseErr.Line != 3 || parseErr.Value != "abc" {
		t.Errorf("unexpected error details: %+v", parseErr)
	}
}

func TestRowsNormalizesDates(t *testing.T) {
	loader := newMemLoader(t, map[string]string{
		"listing.csv": "\ufeffobservation_date,listing_price\n07/01/2021,650000\n",
	})
	table, err := loader.Load(Source{Path: "listing.csv"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	rows := table.Rows()
	if diff := cmp.Diff([][]string{{"2021-07-01", "650000"}}, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}

	rows[0][1] = "mutated"
	if table.Rows()[0][1] != "650000" {
		t.Error("Rows() must return a copy")
	}
}

func TestResolve(t *testing.T) {
	loader := NewLoader(nil, afero.NewMemMapFs(), "/srv/data")
	if got := loader.Resolve(Source{Path: "a.csv"}); got != filepath.Join("/srv/data", "a.csv") {
		t.Errorf("Resolve(relative) = %s", got)
	}
	if got := loader.Resolve(Source{Path: "/abs/a.csv"}); got != "/abs/a.csv" {
		t.Errorf("Resolve(absolute) = %s", got)
	}
}

func TestLoadRenamesIgnoreCase(t *testing.T) {
	loader := newMemLoader(t, map[string]string{
		"healthcare.csv": "Billing Amount,Discharge Date\n10,2021-01-05\n",
	})

	table, err := loader.Load(Source{
		Path:    "healthcare.csv",
		Renames: map[string]string{"discharge date": "observation_date", "billing amount": "healthcare_cost"},
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, ok := table.ColumnIndex("healthcare_cost"); !ok {
		t.Errorf("expected renamed column, got %v", table.Columns)
	}
}
