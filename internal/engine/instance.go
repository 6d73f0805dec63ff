package engine

import (
	"fmt"

	"github.com/gcbaptista/go-column-index/config"
	"github.com/gcbaptista/go-column-index/index"
	"github.com/gcbaptista/go-column-index/internal/search"
	"github.com/gcbaptista/go-column-index/services"
	"github.com/gcbaptista/go-column-index/store"
)

// IndexInstance holds all components and services for a single column index.
// It implements the services.IndexAccessor interface.
type IndexInstance struct {
	settings *config.IndexSettings
	Index    *index.EqualityIndex
	searcher *search.Service
}

// NewIndexInstance wraps a freshly built index with its search service.
func NewIndexInstance(settings config.IndexSettings, ix *index.EqualityIndex, rowStore *store.RowStore) (*IndexInstance, error) {
	if settings.Name == "" {
		return nil, fmt.Errorf("index name cannot be empty in settings")
	}
	if ix == nil {
		return nil, fmt.Errorf("index cannot be nil for '%s'", settings.Name)
	}

	searchService, err := search.NewService(ix, rowStore)
	if err != nil {
		return nil, fmt.Errorf("failed to create search service: %w", err)
	}

	return &IndexInstance{
		settings: &settings,
		Index:    ix,
		searcher: searchService,
	}, nil
}

// Add indexes one (token, rowID) pair.
// This satisfies a part of the services.IndexAccessor interface.
func (i *IndexInstance) Add(token string, rowID uint32) error {
	i.Index.Mu.Lock()
	defer i.Index.Mu.Unlock()
	return i.Index.Add(token, rowID)
}

// FindRowIDs delegates to the underlying Searcher service.
// This satisfies a part of the services.IndexAccessor interface.
func (i *IndexInstance) FindRowIDs(token string) []uint32 {
	return i.searcher.FindRowIDs(token)
}

// Search delegates to the underlying Searcher service.
// This satisfies a part of the services.IndexAccessor interface.
func (i *IndexInstance) Search(query services.SearchQuery) (services.SearchResult, error) {
	return i.searcher.Search(query)
}

// Settings returns a copy of the configuration settings for this index.
// This satisfies a part of the services.IndexAccessor interface.
func (i *IndexInstance) Settings() config.IndexSettings {
	return *i.settings
}

// Size returns the number of distinct indexed tokens.
// This satisfies a part of the services.IndexAccessor interface.
func (i *IndexInstance) Size() int {
	i.Index.Mu.RLock()
	defer i.Index.Mu.RUnlock()
	return i.Index.Size()
}
