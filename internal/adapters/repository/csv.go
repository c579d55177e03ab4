package repository

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/okian/wildfire/internal/domain/model"
)

// Column names in the source CSV.
const (
	ColumnDate   = "Date"
	ColumnRegion = "Region"
	ColumnArea   = "Estimated_fire_area"
	ColumnCount  = "Count"
)

// dateLayouts are tried in order. Slashed dates are month-first.
var dateLayouts = []string{
	"1/2/2006",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// SkippedRow describes a row dropped during load.
type SkippedRow struct {
	Line   int
	Reason string
}

// LoadReport summarises a load.
type LoadReport struct {
	Rows    int // data rows read, excluding the header
	Loaded  int
	Skipped []SkippedRow
}

// LoadFile opens path and loads it with LoadCSV.
func LoadFile(ctx context.Context, path string) ([]model.Record, LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadReport{}, fmt.Errorf("%w: %w", ErrOpenDataset, err)
	}
	defer func() { _ = f.Close() }()

	return LoadCSV(ctx, f)
}

// LoadCSV reads wildfire records from r. Columns are located by header name
// (case-insensitive); extra columns are ignored. A missing required column
// fails the load, a malformed row is skipped and reported.
func LoadCSV(ctx context.Context, r io.Reader) ([]model.Record, LoadReport, error) {
	var report LoadReport

	cr := csv.NewReader(bufio.NewReaderSize(r, 256*1024))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, report, ErrEmptyDataset
	}
	if err != nil {
		return nil, report, fmt.Errorf("read header: %w", err)
	}

	cols, err := locateColumns(header)
	if err != nil {
		return nil, report, err
	}

	records := make([]model.Record, 0, 1024)
	for {
		if err := ctx.Err(); err != nil {
			return nil, report, err
		}

		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		report.Rows++
		if err != nil {
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				return nil, report, fmt.Errorf("%w: after %d rows: %w", ErrReadDataset, report.Rows-1, err)
			}
			report.Skipped = append(report.Skipped, SkippedRow{Line: pe.StartLine, Reason: err.Error()})
			continue
		}
		line, _ := cr.FieldPos(0)

		rec, reason := cols.parse(row)
		if reason != "" {
			report.Skipped = append(report.Skipped, SkippedRow{Line: line, Reason: reason})
			continue
		}
		records = append(records, rec)
	}

	report.Loaded = len(records)
	return records, report, nil
}

type columns struct {
	date, region, area, count int
	width                     int
}

func locateColumns(header []string) (columns, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}

	c := columns{}
	var missing []string
	find := func(name string) int {
		i, ok := idx[strings.ToLower(name)]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		if i+1 > c.width {
			c.width = i + 1
		}
		return i
	}
	c.date = find(ColumnDate)
	c.region = find(ColumnRegion)
	c.area = find(ColumnArea)
	c.count = find(ColumnCount)

	if len(missing) > 0 {
		return columns{}, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return c, nil
}

// parse converts one row; a non-empty reason means the row is skipped.
func (c columns) parse(row []string) (model.Record, string) {
	if len(row) < c.width {
		return model.Record{}, fmt.Sprintf("expected at least %d fields, got %d", c.width, len(row))
	}

	region := strings.TrimSpace(row[c.region])
	if region == "" {
		return model.Record{}, "empty region"
	}

	date, err := parseDate(row[c.date])
	if err != nil {
		return model.Record{}, err.Error()
	}

	count, ok, err := parseNumber(ColumnCount, row[c.count])
	if err != nil {
		return model.Record{}, err.Error()
	}
	if !ok {
		return model.Record{}, "missing " + ColumnCount
	}

	area, ok, err := parseNumber(ColumnArea, row[c.area])
	if err != nil {
		return model.Record{}, err.Error()
	}
	if !ok {
		return model.NewRecordWithoutArea(region, date, count), ""
	}
	return model.NewRecord(region, date, area, count), ""
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// missingValues are cells read as "no value", as pandas does by default.
var missingValues = map[string]bool{
	"": true, "nan": true, "-nan": true, "na": true, "n/a": true, "#n/a": true,
	"null": true, "none": true, "<na>": true,
}

// parseNumber reads a finite number. ok is false for a missing cell;
// infinities and text are errors.
func parseNumber(column, s string) (v float64, ok bool, err error) {
	s = strings.TrimSpace(s)
	if missingValues[strings.ToLower(s)] {
		return 0, false, nil
	}
	v, err = strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("unparseable %s %q", column, s)
	}
	if math.IsNaN(v) {
		return 0, false, nil
	}
	if math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("non-finite %s %q", column, s)
	}
	return v, true, nil
}
