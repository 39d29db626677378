// Package output provides utilities for formatting and displaying dashboard
// results on the command line.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/iwvelando/cost-of-living/internal/aggregate"
	"github.com/iwvelando/cost-of-living/internal/chart"
	"github.com/iwvelando/cost-of-living/internal/dashboard"
	"github.com/iwvelando/cost-of-living/internal/summary"
	"github.com/iwvelando/cost-of-living/pkg/constants"
	"github.com/iwvelando/cost-of-living/pkg/datetime"
	"github.com/iwvelando/cost-of-living/pkg/format"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"
)

var rowHeader = []string{
	"date",
	"median income",
	"annual mortgage",
	"annual gas",
	"annual electricity",
	"annual healthcare",
	"combined expenses",
}

var prettyRowHeader = []string{
	"Median Income",
	"Annual Mortgage",
	"Annual Gas",
	"Annual Electricity",
	"Annual Healthcare",
	"Combined Expenses",
}

func rowValues(row aggregate.ObservationRow) []float64 {
	return []float64{
		row.MedianIncome,
		row.AnnualMortgage,
		row.AnnualGas,
		row.AnnualElec,
		row.AnnualHealthcare,
		row.CombinedExpenses(),
	}
}

// amount renders a CSV cell; missing values are left empty.
func amount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return decimal.NewFromFloat(v).StringFixed(constants.CurrencyDecimals)
}

// newTable returns a light-style table that renders into w, with the given
// columns right-aligned.
func newTable(w io.Writer, rightAligned ...int) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	configs := make([]table.ColumnConfig, len(rightAligned))
	for i, n := range rightAligned {
		configs[i] = table.ColumnConfig{Number: n, Align: text.AlignRight}
	}
	t.SetColumnConfigs(configs)
	return t
}

// columns returns the 1-based indexes from..to.
func columns(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for n := from; n <= to; n++ {
		out = append(out, n)
	}
	return out
}

// PrettyRows outputs a human-readable table of observation rows.
func PrettyRows(w io.Writer, county string, rows []aggregate.ObservationRow) {
	fmt.Fprintf(w, "--- Observations for %s County ---\n", county)
	t := newTable(w, columns(2, len(prettyRowHeader)+1)...)
	header := table.Row{"Date"}
	for _, h := range prettyRowHeader {
		header = append(header, h)
	}
	t.AppendHeader(header)
	for _, row := range rows {
		r := table.Row{datetime.FormatDate(row.Date)}
		for _, v := range rowValues(row) {
			r = append(r, format.HoverText(v))
		}
		t.AppendRow(r)
	}
	t.Render()
}

// CsvRows outputs observation rows in comma-separated value format.
func CsvRows(w io.Writer, rows []aggregate.ObservationRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rowHeader); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{datetime.FormatDate(row.Date)}
		for _, v := range rowValues(row) {
			record = append(record, amount(v))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// PrettyChart outputs each chart series as a column.
func PrettyChart(w io.Writer, c *chart.Chart) {
	fmt.Fprintf(w, "--- %s (%s) ---\n", c.Title, c.Mode)
	if len(c.Series) == 0 {
		return
	}
	t := newTable(w, columns(2, len(c.Series)+1)...)
	header := table.Row{"Date"}
	for _, s := range c.Series {
		header = append(header, s.Name)
	}
	t.AppendHeader(header)
	for i, date := range c.Series[0].Dates {
		r := table.Row{datetime.FormatDate(date)}
		for _, s := range c.Series {
			r = append(r, s.HoverText[i])
		}
		t.AppendRow(r)
	}
	t.Render()
	if c.YAxis.Range != nil {
		fmt.Fprintf(w, "y axis: %s to %s\n", format.Currency(c.YAxis.Range[0]), format.Currency(c.YAxis.Range[1]))
	}
}

// CsvChart outputs chart series in comma-separated value format, one column
// per series.
func CsvChart(w io.Writer, c *chart.Chart) error {
	cw := csv.NewWriter(w)
	header := []string{"date"}
	for _, s := range c.Series {
		header = append(header, s.Name)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	if len(c.Series) > 0 {
		for i, date := range c.Series[0].Dates {
			record := []string{datetime.FormatDate(date)}
			for _, s := range c.Series {
				record = append(record, amount(s.Values[i]))
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// PrettySummary outputs the yearly comparison.
func PrettySummary(w io.Writer, s summary.Summary) {
	fmt.Fprintf(w, "--- %s ---\n", s.Title)
	t := newTable(w, 2)
	for i, category := range s.Categories {
		t.AppendRow(table.Row{category, s.Text[i]})
	}
	t.Render()
	if s.Rows == 0 {
		fmt.Fprintf(w, "(no observations in %d)\n", s.Year)
	}
}

// CsvSummary outputs the yearly comparison in comma-separated value format.
func CsvSummary(w io.Writer, s summary.Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"year", "category", "amount"}); err != nil {
		return err
	}
	for i, category := range s.Categories {
		if err := cw.Write([]string{strconv.Itoa(s.Year), category, amount(s.Values[i])}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// PrettyRaw outputs every raw table with its title.
func PrettyRaw(w io.Writer, tables []dashboard.RawTable) {
	for i, raw := range tables {
		fmt.Fprintf(w, "--- %s (%d rows) ---\n", raw.Title, len(raw.Rows))
		t := newTable(w)
		header := make(table.Row, len(raw.Columns))
		for j, c := range raw.Columns {
			header[j] = c
		}
		t.AppendHeader(header)
		for _, row := range raw.Rows {
			r := make(table.Row, len(row))
			for j, cell := range row {
				r[j] = cell
			}
			t.AppendRow(r)
		}
		t.Render()
		if i < len(tables)-1 {
			fmt.Fprintln(w)
		}
	}
}

// CsvRaw outputs every raw table as a CSV block preceded by a "# title" line.
func CsvRaw(w io.Writer, tables []dashboard.RawTable) error {
	for _, table := range tables {
		fmt.Fprintf(w, "# %s\n", table.Title)
		cw := csv.NewWriter(w)
		if err := cw.Write(table.Columns); err != nil {
			return err
		}
		if err := cw.WriteAll(table.Rows); err != nil {
			return err
		}
	}
	return nil
}

// JSON outputs v as indented JSON.
func JSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
