// Package dataset loads the dated CSV sources the dashboard is built from.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/cost-of-living/pkg/constants"
	"github.com/iwvelando/cost-of-living/pkg/datetime"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ErrParse matches every *ParseError via errors.Is.
var ErrParse = errors.New("dataset parse error")

// ParseError reports a source that could not be read or whose date or numeric
// columns could not be parsed. Line is 1-based and counts the header; it is 0
// when the failure is not tied to a line.
type ParseError struct {
	Source string
	Column string
	Line   int
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse %s", e.Source)
	if e.Line > 0 {
		fmt.Fprintf(&b, " line %d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %q", e.Column)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " value %q", e.Value)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrParse) match any ParseError.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// Source describes one CSV file. Renames maps header names found in the file to
// the names the rest of the pipeline expects and is applied before the date
// column is looked up. Rename keys match headers case-insensitively.
type Source struct {
	Title      string            `mapstructure:"title" yaml:"title"`
	Path       string            `mapstructure:"path" yaml:"path"`
	DateColumn string            `mapstructure:"dateColumn" yaml:"dateColumn,omitempty"`
	Renames    map[string]string `mapstructure:"renames" yaml:"renames,omitempty"`
}

// Name identifies the source in errors and logs.
func (s Source) Name() string {
	if s.Title != "" {
		return s.Title
	}
	return s.Path
}

func (s Source) dateColumn() string {
	if s.DateColumn != "" {
		return s.DateColumn
	}
	return constants.DateColumn
}

// Point is one dated value of a column.
type Point struct {
	Date  time.Time
	Value float64
}

// Table is a loaded source: its (renamed) header, the parsed date of every row
// and the raw cells. Tables are not modified after Load returns.
type Table struct {
	Source     string
	Columns    []string
	DateColumn string
	Dates      []time.Time
	cells      [][]string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Dates)
}

// ColumnIndex returns the position of column in the header.
func (t *Table) ColumnIndex(column string) (int, bool) {
	for i, c := range t.Columns {
		if c == column {
			return i, true
		}
	}
	return -1, false
}

// Floats parses column as numbers. Empty cells and FRED's "." placeholder are
// returned as NaN.
func (t *Table) Floats(column string) ([]float64, error) {
	idx, ok := t.ColumnIndex(column)
	if !ok {
		return nil, &ParseError{Source: t.Source, Column: column, Err: errors.New("column not found")}
	}

	values := make([]float64, len(t.cells))
	for i, row := range t.cells {
		raw := strings.TrimSpace(row[idx])
		if raw == "" || raw == "." {
			values[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			return nil, &ParseError{Source: t.Source, Column: column, Line: i + 2, Value: raw, Err: err}
		}
		values[i] = v
	}
	return values, nil
}

// Series pairs the parsed values of column with the row dates.
func (t *Table) Series(column string) ([]Point, error) {
	values, err := t.Floats(column)
	if err != nil {
		return nil, err
	}
	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{Date: t.Dates[i], Value: v}
	}
	return points, nil
}

// Rows returns a copy of the raw cells, one slice per data row, with the date
// column normalized to the canonical layout.
func (t *Table) Rows() [][]string {
	dateIdx, _ := t.ColumnIndex(t.DateColumn)
	rows := make([][]string, len(t.cells))
	for i, row := range t.cells {
		cp := append([]string(nil), row...)
		if dateIdx >= 0 {
			cp[dateIdx] = datetime.FormatDate(t.Dates[i])
		}
		rows[i] = cp
	}
	return rows
}

// Loader reads Sources from a filesystem. Relative paths resolve against
// BaseDir.
type Loader struct {
	fs      afero.Fs
	baseDir string
	logger  *zap.Logger
}

// NewLoader creates a loader. A nil fs means the OS filesystem.
func NewLoader(logger *zap.Logger, fs afero.Fs, baseDir string) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Loader{fs: fs, baseDir: baseDir, logger: logger}
}

// Resolve returns the path Load would open for src.
func (l *Loader) Resolve(src Source) string {
	if l.baseDir == "" || filepath.IsAbs(src.Path) {
		return src.Path
	}
	return filepath.Join(l.baseDir, src.Path)
}

// Load reads and parses src. Every row must have a parseable date; any failure
// is returned as a *ParseError.
func (l *Loader) Load(src Source) (*Table, error) {
	name := src.Name()
	path := l.Resolve(src)

	f, err := l.fs.Open(path)
	if err != nil {
		return nil, &ParseError{Source: name, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			l.logger.Warn("failed to close source",
				zap.String("op", "dataset.Load"),
				zap.String("path", path),
				zap.Error(closeErr),
			)
		}
	}()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty file")
		}
		return nil, &ParseError{Source: name, Line: 1, Err: err}
	}

	renames := make(map[string]string, len(src.Renames))
	for from, to := range src.Renames {
		renames[strings.ToLower(strings.TrimSpace(from))] = to
	}
	columns := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if renamed, ok := renames[strings.ToLower(h)]; ok {
			h = renamed
		}
		columns[i] = h
	}

	table := &Table{Source: name, Columns: columns, DateColumn: src.dateColumn()}
	dateIdx, ok := table.ColumnIndex(table.DateColumn)
	if !ok {
		return nil, &ParseError{Source: name, Column: table.DateColumn, Line: 1, Err: errors.New("date column not found")}
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Source: name, Line: line, Err: err}
		}

		date, err := datetime.ParseDate(record[dateIdx])
		if err != nil {
			return nil, &ParseError{Source: name, Column: table.DateColumn, Line: line, Value: record[dateIdx], Err: err}
		}
		table.Dates = append(table.Dates, date)
		table.cells = append(table.cells, record)
	}

	l.logger.Debug(fmt.Sprintf("loaded %d rows from %s", table.Len(), path),
		zap.String("op", "dataset.Load"),
		zap.String("source", name),
	)
	return table, nil
}
