// Package model contains domain models passed between layers.
package model

import "time"

// Record is one row of the historical wildfires table.
type Record struct {
	Region            string    // region code, e.g. "WA"
	Date              time.Time // observation date
	Year              int       // derived from Date
	Month             time.Month
	EstimatedFireArea float64 // aggregated by mean; meaningful only when HasArea
	HasArea           bool    // false when the source cell was blank or NaN
	Count             float64 // vegetation fire incidence, aggregated by sum
}

// NewRecord derives Year and Month from date.
func NewRecord(region string, date time.Time, area, count float64) Record {
	r := NewRecordWithoutArea(region, date, count)
	r.EstimatedFireArea = area
	r.HasArea = true
	return r
}

// NewRecordWithoutArea builds a record whose fire area is missing. It still
// contributes its Count.
func NewRecordWithoutArea(region string, date time.Time, count float64) Record {
	return Record{
		Region: region,
		Date:   date,
		Year:   date.Year(),
		Month:  date.Month(),
		Count:  count,
	}
}

// MonthName returns the English month name, e.g. "January".
func (r Record) MonthName() string {
	return r.Month.String()
}
