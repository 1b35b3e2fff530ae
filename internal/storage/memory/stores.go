// Package memory provides in-memory store implementations used in tests and
// for running the harvester without a database.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/techjobs/harvester/internal/harvest"
)

// SummaryStore keeps listing summaries in a slice guarded by a mutex.
type SummaryStore struct {
	mu        sync.Mutex
	summaries []harvest.ListingSummary
}

// NewSummaryStore returns an empty SummaryStore.
func NewSummaryStore() *SummaryStore {
	return &SummaryStore{}
}

// DeleteAll drops every stored summary.
func (s *SummaryStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries = nil
	return nil
}

// Save appends one summary row.
func (s *SummaryStore) Save(_ context.Context, summary harvest.ListingSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries = append(s.summaries, summary)
	return nil
}

// All returns a copy of the stored summaries.
func (s *SummaryStore) All() []harvest.ListingSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]harvest.ListingSummary(nil), s.summaries...)
}

// ItemStore keeps listing items in a slice guarded by a mutex.
type ItemStore struct {
	mu    sync.Mutex
	items []harvest.ListingItem
}

// NewItemStore returns an empty ItemStore.
func NewItemStore() *ItemStore {
	return &ItemStore{}
}

// DeleteAll drops every stored item.
func (s *ItemStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return nil
}

// Save appends one item row.
func (s *ItemStore) Save(_ context.Context, item harvest.ListingItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
	return nil
}

// All returns a copy of the stored items.
func (s *ItemStore) All() []harvest.ListingItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]harvest.ListingItem(nil), s.items...)
}

// StatisticsStore keeps appended statistics rows.
type StatisticsStore struct {
	mu   sync.Mutex
	rows []harvest.Statistics
}

// NewStatisticsStore returns an empty StatisticsStore.
func NewStatisticsStore() *StatisticsStore {
	return &StatisticsStore{}
}

// Save appends one statistics row.
func (s *StatisticsStore) Save(_ context.Context, stats harvest.Statistics) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, stats)
	return nil
}

// Latest returns the most recently appended row.
func (s *StatisticsStore) Latest(_ context.Context) (harvest.Statistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.rows) == 0 {
		return harvest.Statistics{}, fmt.Errorf("no statistics recorded")
	}
	return s.rows[len(s.rows)-1], nil
}

// All returns a copy of every recorded statistics row.
func (s *StatisticsStore) All() []harvest.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]harvest.Statistics(nil), s.rows...)
}
