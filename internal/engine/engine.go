// Package engine orchestrates the lifecycle of column indexes over one shared
// row store: creation (frequency pass, codec, tree build), lookup, and
// deletion.
package engine

import (
	"fmt"
	"io"
	"log"
	"sort"
	"sync"

	"github.com/gcbaptista/go-column-index/config"
	internalErrors "github.com/gcbaptista/go-column-index/internal/errors"
	"github.com/gcbaptista/go-column-index/internal/huffman"
	"github.com/gcbaptista/go-column-index/internal/indexing"
	"github.com/gcbaptista/go-column-index/internal/rbtree"
	"github.com/gcbaptista/go-column-index/internal/report"
	"github.com/gcbaptista/go-column-index/services"
	"github.com/gcbaptista/go-column-index/store"
)

// Engine manages multiple column indexes over one row store.
// It implements the services.IndexManager interface.
type Engine struct {
	mu       sync.RWMutex
	rowStore *store.RowStore
	indexes  map[string]*IndexInstance

	// diag receives build-time diagnostics (merge steps, tree events,
	// snapshots) for indexes whose settings ask for them. A nil diag disables
	// all tracing regardless of settings.
	diag io.Writer
}

// NewEngine creates a new index orchestrator over the given row store.
// diag may be nil.
func NewEngine(rowStore *store.RowStore, diag io.Writer) (*Engine, error) {
	if rowStore == nil {
		return nil, fmt.Errorf("row store cannot be nil")
	}
	return &Engine{
		rowStore: rowStore,
		indexes:  make(map[string]*IndexInstance),
		diag:     diag,
	}, nil
}

// CreateIndex builds a new index with the given settings: a frequency pass
// over the configured column, codec construction, and one tree insert per row.
func (e *Engine) CreateIndex(settings config.IndexSettings) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	settings.ApplyDefaults()
	if err := settings.Validate(); err != nil {
		return err
	}
	if _, exists := e.indexes[settings.Name]; exists {
		return internalErrors.NewIndexAlreadyExistsError(settings.Name)
	}

	indexer, err := indexing.NewService(e.rowStore)
	if err != nil {
		return fmt.Errorf("failed to create indexer service for '%s': %w", settings.Name, err)
	}

	ix, err := indexer.BuildColumnIndex(settings, e.mergeTracer(settings), e.treeTracer(settings))
	if err != nil {
		return fmt.Errorf("failed to build index '%s': %w", settings.Name, err)
	}

	instance, err := NewIndexInstance(settings, ix, e.rowStore)
	if err != nil {
		return fmt.Errorf("failed to create index instance for '%s': %w", settings.Name, err)
	}

	e.indexes[settings.Name] = instance
	log.Printf("Index '%s' created over column '%s' (%d distinct tokens).", settings.Name, settings.Column, ix.Size())
	return nil
}

// GetIndex retrieves an index by its name.
func (e *Engine) GetIndex(name string) (services.IndexAccessor, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.indexes[name]
	if !exists {
		return nil, internalErrors.NewIndexNotFoundError(name)
	}
	return instance, nil
}

// GetIndexSettings retrieves a copy of the settings for a specific index.
func (e *Engine) GetIndexSettings(name string) (config.IndexSettings, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.indexes[name]
	if !exists {
		return config.IndexSettings{}, internalErrors.NewIndexNotFoundError(name)
	}
	return *instance.settings, nil
}

// ListIndexes returns the names of all existing indexes, sorted.
func (e *Engine) ListIndexes() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.indexes))
	for name := range e.indexes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DeleteIndex removes an index by its name. The row store is untouched.
func (e *Engine) DeleteIndex(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.indexes[name]; !exists {
		return internalErrors.NewIndexNotFoundError(name)
	}
	delete(e.indexes, name)
	log.Printf("Index '%s' deleted.", name)
	return nil
}

// RowStore exposes the shared row store.
func (e *Engine) RowStore() *store.RowStore {
	return e.rowStore
}

func (e *Engine) mergeTracer(settings config.IndexSettings) huffman.Tracer {
	if e.diag == nil || !settings.TraceMerges {
		return nil
	}
	return &report.MergeTracer{W: e.diag}
}

func (e *Engine) treeTracer(settings config.IndexSettings) rbtree.Tracer {
	if e.diag == nil || !(settings.VerboseFixup || settings.SnapshotAfterFixup) {
		return nil
	}
	return &report.TreeTracer{W: e.diag, Snapshots: settings.SnapshotAfterFixup}
}
