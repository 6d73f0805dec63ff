package indexing

import (
	"fmt"

	"github.com/gcbaptista/go-column-index/config"
	"github.com/gcbaptista/go-column-index/index"
	internalErrors "github.com/gcbaptista/go-column-index/internal/errors"
	"github.com/gcbaptista/go-column-index/internal/huffman"
	"github.com/gcbaptista/go-column-index/internal/rbtree"
	"github.com/gcbaptista/go-column-index/store"
)

// Service builds equality indexes over the rows of one store.
// It fulfills the index-construction half of the engine.
type Service struct {
	rowStore *store.RowStore
}

// NewService creates a new indexing Service.
func NewService(rowStore *store.RowStore) (*Service, error) {
	if rowStore == nil {
		return nil, fmt.Errorf("row store cannot be nil")
	}
	return &Service{rowStore: rowStore}, nil
}

// ColumnFrequencies counts the distinct values of a column across all rows.
// Rows without the column are skipped. It returns a ColumnNotFoundError when
// no row carries the column at all.
func (s *Service) ColumnFrequencies(settings config.IndexSettings) (map[string]int, error) {
	freq := make(map[string]int)
	found := false
	for _, row := range s.rowStore.All() {
		value, ok := row.Field(settings.Column)
		if !ok {
			continue
		}
		found = true
		freq[value]++
	}
	if !found {
		return nil, internalErrors.NewColumnNotFoundError(settings.Column, settings.Name)
	}
	return freq, nil
}

// BuildColumnIndex builds one equality index: frequency pass over the column,
// codec construction, then one Add per (value, rowID) pair in row order so
// posting lists reflect row order. The tracers may be nil.
func (s *Service) BuildColumnIndex(settings config.IndexSettings, mergeTracer huffman.Tracer, treeTracer rbtree.Tracer) (*index.EqualityIndex, error) {
	freq, err := s.ColumnFrequencies(settings)
	if err != nil {
		return nil, err
	}

	codec, err := huffman.NewCodec(freq, mergeTracer)
	if err != nil {
		return nil, fmt.Errorf("failed to build codec for index '%s': %w", settings.Name, err)
	}

	ix := index.New(settings.Name, codec, treeTracer)
	ix.Mu.Lock()
	defer ix.Mu.Unlock()

	for _, row := range s.rowStore.All() {
		value, ok := row.Field(settings.Column)
		if !ok {
			continue
		}
		if err := ix.Add(value, row.ID); err != nil {
			return nil, fmt.Errorf("failed to index row %d in '%s': %w", row.ID, settings.Name, err)
		}
	}
	return ix, nil
}
