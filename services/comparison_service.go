package services

import (
	"container/list"
	"context"
	"fmt"
	"log"
	"sync"

	"boqportal/comparison"
	"boqportal/models"
	"boqportal/repository"
)

// QuoteSource is the part of the performa store the comparison needs.
type QuoteSource interface {
	ListPerformas(ctx context.Context, projectID int, filter repository.PerformaFilter) ([]models.PerformaGorm, error)
	QuoteSetVersion(ctx context.Context, projectID int) (string, error)
}

// ComparisonResult is a computed table plus the categories present in the project.
type ComparisonResult struct {
	Table               comparison.ComparisonTable
	AvailableCategories []string
}

type comparisonKey struct {
	projectID int
	version   string
	category  string
}

type cacheEntry struct {
	key    comparisonKey
	result ComparisonResult
}

// ComparisonService memoizes comparison tables per (project, quote set version, category).
// Any write to a project's performas changes its version, so stale entries are never served;
// they age out of the LRU instead.
type ComparisonService struct {
	source QuoteSource
	size   int

	mu      sync.RWMutex
	entries map[comparisonKey]*list.Element
	order   *list.List
}

// NewComparisonService creates the service. A size of zero disables caching.
func NewComparisonService(source QuoteSource, size int) *ComparisonService {
	return &ComparisonService{
		source:  source,
		size:    size,
		entries: make(map[comparisonKey]*list.Element),
		order:   list.New(),
	}
}

// Compare returns the comparison table of projectID for category ("" = every category).
func (s *ComparisonService) Compare(ctx context.Context, projectID int, category string) (ComparisonResult, error) {
	version, err := s.source.QuoteSetVersion(ctx, projectID)
	if err != nil {
		return ComparisonResult{}, fmt.Errorf("failed to read quote set version: %w", err)
	}
	key := comparisonKey{projectID: projectID, version: version, category: category}

	if result, ok := s.lookup(key); ok {
		return result, nil
	}

	performas, err := s.source.ListPerformas(ctx, projectID, repository.PerformaFilter{})
	if err != nil {
		return ComparisonResult{}, fmt.Errorf("failed to load performas: %w", err)
	}
	quotes := ToComparisonQuotes(performas)

	result := ComparisonResult{
		Table:               comparison.Compare(quotes, category),
		AvailableCategories: comparison.Categories(quotes),
	}
	if !result.Table.Anomalies.Empty() {
		log.Printf("[Comparison] project %d category %q: %d non-numeric totals, %d quotes with malformed items",
			projectID, category, len(result.Table.Anomalies.NonNumericTotals), len(result.Table.Anomalies.MalformedItems))
	}

	s.store(key, result)
	return result, nil
}

func (s *ComparisonService) lookup(key comparisonKey) (ComparisonResult, bool) {
	if s.size <= 0 {
		return ComparisonResult{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.entries[key]
	if !ok {
		return ComparisonResult{}, false
	}
	s.order.MoveToFront(el)
	return el.Value.(*cacheEntry).result, true
}

func (s *ComparisonService) store(key comparisonKey, result ComparisonResult) {
	if s.size <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.entries[key]; ok {
		el.Value.(*cacheEntry).result = result
		s.order.MoveToFront(el)
		return
	}
	s.entries[key] = s.order.PushFront(&cacheEntry{key: key, result: result})
	for s.order.Len() > s.size {
		oldest := s.order.Back()
		s.order.Remove(oldest)
		delete(s.entries, oldest.Value.(*cacheEntry).key)
	}
}

// Len returns the number of cached tables.
func (s *ComparisonService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.order.Len()
}
