package search

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-column-index/index"
	"github.com/gcbaptista/go-column-index/model"
	"github.com/gcbaptista/go-column-index/services"
	"github.com/gcbaptista/go-column-index/store"
)

// Service answers equality queries against one index, hydrating matched rows
// from the row store. It fulfills the services.Searcher interface.
type Service struct {
	index    *index.EqualityIndex
	rowStore *store.RowStore
}

// NewService creates a new search Service.
func NewService(ix *index.EqualityIndex, rowStore *store.RowStore) (*Service, error) {
	if ix == nil {
		return nil, fmt.Errorf("index cannot be nil")
	}
	if rowStore == nil {
		return nil, fmt.Errorf("row store cannot be nil")
	}
	return &Service{index: ix, rowStore: rowStore}, nil
}

// FindRowIDs returns the row ids matching token, in row insertion order.
// Unseen tokens yield an empty result.
func (s *Service) FindRowIDs(token string) []uint32 {
	s.index.Mu.RLock()
	defer s.index.Mu.RUnlock()
	return s.index.Find(token)
}

// Search runs an equality lookup and hydrates the matching rows.
func (s *Service) Search(query services.SearchQuery) (services.SearchResult, error) {
	startTime := time.Now()

	rowIDs := s.FindRowIDs(query.Token)

	rows := make([]model.Row, 0, len(rowIDs))
	for _, id := range rowIDs {
		row, ok := s.rowStore.ByID(id)
		if !ok {
			// Posting lists only ever reference rows the store handed out, so
			// this indicates a corrupted index.
			log.Printf("Warning: index '%s' references row %d missing from the store", s.index.Name(), id)
			continue
		}
		rows = append(rows, row)
	}

	return services.SearchResult{
		Token:   query.Token,
		RowIDs:  rowIDs,
		Rows:    rows,
		Total:   len(rowIDs),
		Took:    time.Since(startTime).Milliseconds(),
		QueryID: uuid.New().String(),
	}, nil
}
