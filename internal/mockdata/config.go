// Package mockdata generates synthetic wildfire CSV files in the layout of
// the historical dataset, so the dashboard can run without the real data.
package mockdata

import (
	"fmt"
	"slices"
)

// Config holds generator settings.
type Config struct {
	// FromYear and ToYear bound the generated dates, inclusive.
	FromYear int
	ToYear   int

	// Seed makes output reproducible: the same seed yields the same file.
	Seed uint64

	// Regions lists the region codes to generate. Empty means all known regions.
	Regions []string

	// FireDayRate scales how many days per year record fire activity (0, 1].
	FireDayRate float64
}

// DefaultConfig returns the settings used by genmock when no flags are given.
func DefaultConfig() Config {
	return Config{
		FromYear:    2005,
		ToYear:      2020,
		Seed:        1,
		FireDayRate: 0.6,
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.FromYear < 1900 || c.ToYear > 9999:
		return fmt.Errorf("%w: years must be within 1900..9999", ErrInvalidConfig)
	case c.ToYear < c.FromYear:
		return fmt.Errorf("%w: to year %d is before from year %d", ErrInvalidConfig, c.ToYear, c.FromYear)
	case c.FireDayRate <= 0 || c.FireDayRate > 1:
		return fmt.Errorf("%w: fire day rate must be in (0, 1], got %g", ErrInvalidConfig, c.FireDayRate)
	}
	if i := slices.Index(c.Regions, ""); i >= 0 {
		return fmt.Errorf("%w: empty region code at position %d", ErrInvalidConfig, i)
	}
	return nil
}
