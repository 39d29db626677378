package salary

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func date(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func salaryPtr(v float64) *float64 {
	return &v
}

func TestResolveSeriesExplicitSalary(t *testing.T) {
	r := NewResolver(DefaultCareers())

	got, err := r.ResolveSeries(Selection{Salary: salaryPtr(50000)}, []time.Time{date(2021, 1), date(2021, 2)})
	if err != nil {
		t.Fatalf("ResolveSeries() error = %v", err)
	}
	if diff := cmp.Diff([]float64{50000, 50000}, got); diff != "" {
		t.Errorf("series mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveSeriesCareer(t *testing.T) {
	r := NewResolver(DefaultCareers())

	dates := []time.Time{date(2019, 6), date(2020, 1), date(2022, 7), date(2030, 1)}
	got, err := r.ResolveSeries(Selection{Career: "Data Analyst"}, dates)
	if err != nil {
		t.Fatalf("ResolveSeries() error = %v", err)
	}
	// Years outside the table use the latest year, 2023.
	want := []float64{100000, 82000, 94000, 100000}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("series mismatch (-want +got):\n%s", diff)
	}
}

func TestCareerTakesPrecedence(t *testing.T) {
	r := NewResolver(DefaultCareers())

	got, err := r.ForYear(Selection{Salary: salaryPtr(1), Career: "Web Developer"}, 2021)
	if err != nil {
		t.Fatalf("ForYear() error = %v", err)
	}
	if got != 105000 {
		t.Errorf("ForYear() = %v, expected 105000", got)
	}
}

func TestLatestYearIsComputed(t *testing.T) {
	r := NewResolver(CareerTable{
		"Plumber": {2020: 60000, 2024: 75000, 2022: 70000},
	})

	year, err := r.LatestYear("Plumber")
	if err != nil {
		t.Fatalf("LatestYear() error = %v", err)
	}
	if year != 2024 {
		t.Errorf("LatestYear() = %d, expected 2024", year)
	}

	got, err := r.CareerSalary("Plumber", 2031)
	if err != nil {
		t.Fatalf("CareerSalary() error = %v", err)
	}
	if got != 75000 {
		t.Errorf("CareerSalary(2031) = %v, expected 75000", got)
	}
}

func TestResolverErrors(t *testing.T) {
	r := NewResolver(CareerTable{"Empty": {}, "Data Analyst": {2020: 1}})

	tests := []struct {
		name    string
		sel     Selection
		wantErr error
	}{
		{"No selection", Selection{}, ErrNoSalarySelection},
		{"Unknown career", Selection{Career: "Astronaut"}, ErrUnknownCareer},
		{"Career without years", Selection{Career: "Empty"}, ErrUnknownCareer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.ResolveSeries(tt.sel, []time.Time{date(2021, 1)})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ResolveSeries() error = %v, expected %v", err, tt.wantErr)
			}
			_, err = r.ForYear(tt.sel, 2021)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ForYear() error = %v, expected %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveSeriesEmptyDates(t *testing.T) {
	r := NewResolver(DefaultCareers())
	got, err := r.ResolveSeries(Selection{Salary: salaryPtr(1)}, nil)
	if err != nil {
		t.Fatalf("ResolveSeries() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty series, got %v", got)
	}
}

func TestResolverCopiesTable(t *testing.T) {
	table := CareerTable{"Chef": {2020: 50000}}
	r := NewResolver(table)
	table["Chef"][2020] = 1

	got, err := r.CareerSalary("Chef", 2020)
	if err != nil {
		t.Fatalf("CareerSalary() error = %v", err)
	}
	if got != 50000 {
		t.Errorf("CareerSalary() = %v, expected the value at construction", got)
	}
}

func TestCareersSorted(t *testing.T) {
	r := NewResolver(DefaultCareers())
	want := []string{"Computer Systems Analyst", "Data Analyst", "Data Scientist", "Full Stack Developer", "Web Developer"}
	if diff := cmp.Diff(want, r.Careers()); diff != "" {
		t.Errorf("careers mismatch (-want +got):\n%s", diff)
	}
}
