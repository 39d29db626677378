// Package salary resolves the salary a user compares against: either a fixed
// amount or a career's salary for each observation year.
package salary

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrNoSalarySelection is returned when neither a salary nor a career is given.
var ErrNoSalarySelection = errors.New("either a salary or a career must be selected")

// ErrUnknownCareer matches every *UnknownCareerError via errors.Is.
var ErrUnknownCareer = errors.New("unknown career")

// UnknownCareerError is returned for a career missing from the table.
type UnknownCareerError struct {
	Career string
}

func (e *UnknownCareerError) Error() string {
	return fmt.Sprintf("unknown career: %q", e.Career)
}

// Is lets errors.Is(err, ErrUnknownCareer) match.
func (e *UnknownCareerError) Is(target error) bool { return target == ErrUnknownCareer }

// CareerTable maps a career to its salary by calendar year.
type CareerTable map[string]map[int]float64

// DefaultCareers returns the reference salaries for 2020 through 2023.
func DefaultCareers() CareerTable {
	return CareerTable{
		"Data Scientist":           {2020: 136000, 2021: 136000, 2022: 140000, 2023: 128000},
		"Web Developer":            {2020: 104000, 2021: 105000, 2022: 101000, 2023: 99000},
		"Full Stack Developer":     {2020: 105000, 2021: 119000, 2022: 105000, 2023: 137000},
		"Data Analyst":             {2020: 82000, 2021: 88000, 2022: 94000, 2023: 100000},
		"Computer Systems Analyst": {2020: 93000, 2021: 98000, 2022: 93000, 2023: 103000},
	}
}

// Selection is the user's choice. Career wins when both are set.
type Selection struct {
	Salary *float64
	Career string
}

// HasCareer reports whether the selection is career based.
func (s Selection) HasCareer() bool {
	return s.Career != ""
}

// Resolver answers salary lookups against an immutable career table.
type Resolver struct {
	careers CareerTable
	latest  map[string]int
}

// NewResolver copies table so later changes to it are not observed.
func NewResolver(table CareerTable) *Resolver {
	r := &Resolver{
		careers: make(CareerTable, len(table)),
		latest:  make(map[string]int, len(table)),
	}
	for career, years := range table {
		cp := make(map[int]float64, len(years))
		latest, found := 0, false
		for year, amount := range years {
			cp[year] = amount
			if !found || year > latest {
				latest, found = year, true
			}
		}
		r.careers[career] = cp
		if found {
			r.latest[career] = latest
		}
	}
	return r
}

// Careers returns the known careers sorted by name.
func (r *Resolver) Careers() []string {
	names := make([]string, 0, len(r.careers))
	for name := range r.careers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LatestYear returns the most recent year with a salary for career.
func (r *Resolver) LatestYear(career string) (int, error) {
	year, ok := r.latest[career]
	if !ok {
		return 0, &UnknownCareerError{Career: career}
	}
	return year, nil
}

// CareerSalary returns career's salary for year, falling back to the latest
// year on record when year is absent.
func (r *Resolver) CareerSalary(career string, year int) (float64, error) {
	years, ok := r.careers[career]
	if !ok || len(years) == 0 {
		return 0, &UnknownCareerError{Career: career}
	}
	if amount, ok := years[year]; ok {
		return amount, nil
	}
	return years[r.latest[career]], nil
}

// ForYear returns the single salary figure the selection implies for year.
func (r *Resolver) ForYear(sel Selection, year int) (float64, error) {
	if sel.HasCareer() {
		return r.CareerSalary(sel.Career, year)
	}
	if sel.Salary == nil {
		return 0, ErrNoSalarySelection
	}
	return *sel.Salary, nil
}

// ResolveSeries returns one salary per date: the career salary of each date's
// year, or the fixed salary repeated.
func (r *Resolver) ResolveSeries(sel Selection, dates []time.Time) ([]float64, error) {
	if !sel.HasCareer() && sel.Salary == nil {
		return nil, ErrNoSalarySelection
	}

	series := make([]float64, len(dates))
	for i, date := range dates {
		amount, err := r.ForYear(sel, date.Year())
		if err != nil {
			return nil, err
		}
		series[i] = amount
	}
	return series, nil
}
