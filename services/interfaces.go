package services

import (
	"github.com/gcbaptista/go-column-index/config"
	"github.com/gcbaptista/go-column-index/model"
)

// SearchQuery is an equality lookup against one index.
type SearchQuery struct {
	Token string `json:"token"`
}

// SearchResult holds the rows matching an equality lookup. RowIDs preserves
// posting order (row insertion order); Rows carries the hydrated records in
// the same order.
type SearchResult struct {
	Token   string      `json:"token"`
	RowIDs  []uint32    `json:"row_ids"`
	Rows    []model.Row `json:"rows"`
	Total   int         `json:"total"`
	Took    int64       `json:"took"`     // milliseconds
	QueryID string      `json:"query_id"` // unique UUID for this query
}

// Indexer defines operations for adding data to an index
type Indexer interface {
	Add(token string, rowID uint32) error
}

// Searcher defines operations for querying an index
type Searcher interface {
	FindRowIDs(token string) []uint32
	Search(query SearchQuery) (SearchResult, error)
}

// IndexAccessor combines indexing and querying for one index.
type IndexAccessor interface {
	Indexer
	Searcher
	Settings() config.IndexSettings
	Size() int
}

// IndexManager manages the lifecycle of column indexes.
type IndexManager interface {
	CreateIndex(settings config.IndexSettings) error
	GetIndex(name string) (IndexAccessor, error)
	GetIndexSettings(name string) (config.IndexSettings, error)
	ListIndexes() []string
	DeleteIndex(name string) error
}
