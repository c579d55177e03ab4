// Package repository loads the wildfire table and serves read-only queries over it.
package repository

import (
	"context"

	"github.com/okian/wildfire/internal/domain/model"
)

// Store provides read access to the loaded wildfire table.
type Store interface {
	// Select returns the rows of region in year. The result must not be modified.
	Select(ctx context.Context, region string, year int) []model.Record

	// Years returns the distinct years across all regions, ascending.
	Years(ctx context.Context) []int

	// RegionCodes returns the distinct region codes present, sorted.
	RegionCodes(ctx context.Context) []string

	// Count returns the number of records held.
	Count(ctx context.Context) int
}
