// Package figure maps a (year, region) selection onto the two dashboard
// charts: mean estimated fire area by month and fire count by month.
package figure

import (
	"fmt"
	"time"

	"github.com/okian/wildfire/internal/domain/model"
)

// Kind identifies a chart type.
type Kind string

// Supported chart kinds.
const (
	KindPie Kind = "pie"
	KindBar Kind = "bar"
)

// ParseKind validates a chart kind name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindPie, KindBar:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Figure is a renderer-neutral chart description. Labels and Values are
// parallel and never nil, so an empty selection serialises as [].
type Figure struct {
	Kind       Kind      `json:"kind"`
	Title      string    `json:"title"`
	XLabel     string    `json:"xLabel"`
	ValueLabel string    `json:"valueLabel"`
	Labels     []string  `json:"labels"`
	Values     []float64 `json:"values"`
}

// Empty reports whether the figure has no data points.
func (f Figure) Empty() bool {
	return len(f.Values) == 0
}

// Selection is the pair of dashboard control values.
type Selection struct {
	Year   int
	Region string
}

// Result holds both figures for one selection.
type Result struct {
	Pie  Figure `json:"pie"`
	Bar  Figure `json:"bar"`
	Rows int    `json:"rows"`
}

// MonthValue is one aggregated month.
type MonthValue struct {
	Month time.Month
	Value float64
}

// Filter keeps rows of region, then of year.
func Filter(records []model.Record, sel Selection) []model.Record {
	byRegion := make([]model.Record, 0, len(records))
	for _, r := range records {
		if r.Region == sel.Region {
			byRegion = append(byRegion, r)
		}
	}
	out := byRegion[:0]
	for _, r := range byRegion {
		if r.Year == sel.Year {
			out = append(out, r)
		}
	}
	return out
}

// MeanAreaByMonth averages EstimatedFireArea per month, in calendar order.
// Rows without an area are left out of the mean; a month whose rows all lack
// one has no value.
func MeanAreaByMonth(rows []model.Record) []MonthValue {
	var sum [13]float64
	var n [13]int
	for _, r := range rows {
		if !r.HasArea {
			continue
		}
		sum[r.Month] += r.EstimatedFireArea
		n[r.Month]++
	}
	out := make([]MonthValue, 0, 12)
	for m := time.January; m <= time.December; m++ {
		if n[m] > 0 {
			out = append(out, MonthValue{Month: m, Value: sum[m] / float64(n[m])})
		}
	}
	return out
}

// CountByMonth sums Count per month, in calendar order.
func CountByMonth(rows []model.Record) []MonthValue {
	var sum [13]float64
	var seen [13]bool
	for _, r := range rows {
		sum[r.Month] += r.Count
		seen[r.Month] = true
	}
	out := make([]MonthValue, 0, 12)
	for m := time.January; m <= time.December; m++ {
		if seen[m] {
			out = append(out, MonthValue{Month: m, Value: sum[m]})
		}
	}
	return out
}

// Build filters records by sel and produces the pie and bar figures.
func Build(records []model.Record, sel Selection) Result {
	return FromRows(Filter(records, sel), sel)
}

// FromRows builds the figures from rows that already match sel.
func FromRows(rows []model.Record, sel Selection) Result {
	label := model.RegionLabel(sel.Region)

	pie := newFigure(KindPie, fmt.Sprintf("Wildfires in %s in %d", label, sel.Year), "Estimated_fire_area", MeanAreaByMonth(rows))
	bar := newFigure(KindBar, fmt.Sprintf("Vegetation fires in %s in %d", label, sel.Year), "Count", CountByMonth(rows))

	return Result{Pie: pie, Bar: bar, Rows: len(rows)}
}

func newFigure(kind Kind, title, valueLabel string, points []MonthValue) Figure {
	f := Figure{
		Kind:       kind,
		Title:      title,
		XLabel:     "Month",
		ValueLabel: valueLabel,
		Labels:     make([]string, 0, len(points)),
		Values:     make([]float64, 0, len(points)),
	}
	for _, p := range points {
		f.Labels = append(f.Labels, p.Month.String())
		f.Values = append(f.Values, p.Value)
	}
	return f
}
