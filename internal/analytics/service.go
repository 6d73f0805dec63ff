// Package analytics aggregates lookup traffic into an in-memory snapshot
// served by the API. Events never leave the process.
package analytics

import (
	"sort"
	"sync"
	"time"

	"github.com/gcbaptista/go-column-index/model"
	"github.com/gcbaptista/go-column-index/services"
)

const maxEventsToKeep = 10000 // Keep last 10k events for performance

// Service implements analytics tracking and reporting
type Service struct {
	mutex        sync.RWMutex
	events       []model.SearchEvent
	indexManager services.IndexManager
}

// NewService creates a new analytics service
func NewService(indexManager services.IndexManager) *Service {
	return &Service{
		events:       make([]model.SearchEvent, 0),
		indexManager: indexManager,
	}
}

// TrackSearchEvent records a new search event
func (s *Service) TrackSearchEvent(event model.SearchEvent) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}
}

// Snapshot returns the aggregate analytics view.
func (s *Service) Snapshot() model.AnalyticsSnapshot {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	snapshot := model.AnalyticsSnapshot{
		TotalSearches:     len(s.events),
		ZeroHitSearches:   s.countZeroHits(),
		AvgResponseTimeMs: s.avgResponseTimeMs(),
		ActiveIndexes:     len(s.indexManager.ListIndexes()),
		PopularTokens:     s.popularTokens(5),
		IndexUsage:        s.indexUsage(),
	}
	return snapshot
}

func (s *Service) countZeroHits() int {
	count := 0
	for _, event := range s.events {
		if event.ResultCount == 0 {
			count++
		}
	}
	return count
}

func (s *Service) avgResponseTimeMs() int64 {
	if len(s.events) == 0 {
		return 0
	}

	var total time.Duration
	for _, event := range s.events {
		total += event.ResponseTime
	}
	return (total / time.Duration(len(s.events))).Milliseconds()
}

// popularTokens returns the top n looked-up tokens, most frequent first.
// Ties break alphabetically so the output is stable.
func (s *Service) popularTokens(n int) []model.PopularToken {
	counts := make(map[string]int)
	for _, event := range s.events {
		if event.Token != "" {
			counts[event.Token]++
		}
	}

	popular := make([]model.PopularToken, 0, len(counts))
	for token, count := range counts {
		popular = append(popular, model.PopularToken{Token: token, SearchCount: count})
	}
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].SearchCount != popular[j].SearchCount {
			return popular[i].SearchCount > popular[j].SearchCount
		}
		return popular[i].Token < popular[j].Token
	})

	if len(popular) > n {
		popular = popular[:n]
	}
	return popular
}

func (s *Service) indexUsage() []model.IndexUsage {
	searchCounts := make(map[string]int)
	zeroHitCounts := make(map[string]int)
	for _, event := range s.events {
		searchCounts[event.IndexName]++
		if event.ResultCount == 0 {
			zeroHitCounts[event.IndexName]++
		}
	}

	var usage []model.IndexUsage
	for _, indexName := range s.indexManager.ListIndexes() {
		distinct := 0
		if accessor, err := s.indexManager.GetIndex(indexName); err == nil {
			distinct = accessor.Size()
		}
		usage = append(usage, model.IndexUsage{
			IndexName:      indexName,
			SearchCount:    searchCounts[indexName],
			ZeroHitCount:   zeroHitCounts[indexName],
			DistinctTokens: distinct,
		})
	}
	return usage
}
