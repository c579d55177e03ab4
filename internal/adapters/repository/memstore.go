package repository

import (
	"context"
	"slices"

	"github.com/okian/wildfire/internal/domain/model"
)

type selectionKey struct {
	region string
	year   int
}

// MemoryStore is an immutable, indexed, in-memory Store. It is safe for
// concurrent readers because nothing mutates it after construction.
type MemoryStore struct {
	records []model.Record
	index   map[selectionKey][]model.Record
	years   []int
	regions []string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore indexes records by (region, year). The input slice is copied.
func NewMemoryStore(records []model.Record) *MemoryStore {
	s := &MemoryStore{
		records: slices.Clone(records),
		index:   make(map[selectionKey][]model.Record),
	}

	yearSet := make(map[int]struct{})
	regionSet := make(map[string]struct{})
	for _, r := range s.records {
		k := selectionKey{region: r.Region, year: r.Year}
		s.index[k] = append(s.index[k], r)
		yearSet[r.Year] = struct{}{}
		regionSet[r.Region] = struct{}{}
	}

	s.years = make([]int, 0, len(yearSet))
	for y := range yearSet {
		s.years = append(s.years, y)
	}
	slices.Sort(s.years)

	s.regions = make([]string, 0, len(regionSet))
	for r := range regionSet {
		s.regions = append(s.regions, r)
	}
	slices.Sort(s.regions)

	return s
}

// Select returns the rows of region in year.
func (s *MemoryStore) Select(_ context.Context, region string, year int) []model.Record {
	return s.index[selectionKey{region: region, year: year}]
}

// Years returns the distinct years, ascending. The selector offers every
// year in the table regardless of the chosen region.
func (s *MemoryStore) Years(_ context.Context) []int {
	return slices.Clone(s.years)
}

// RegionCodes returns the distinct region codes, sorted.
func (s *MemoryStore) RegionCodes(_ context.Context) []string {
	return slices.Clone(s.regions)
}

// Count returns the number of records held.
func (s *MemoryStore) Count(_ context.Context) int {
	return len(s.records)
}

// Records returns a copy of every record in load order.
func (s *MemoryStore) Records(_ context.Context) []model.Record {
	return slices.Clone(s.records)
}
