// Package store holds the in-memory row store that index posting lists
// resolve against.
package store

import (
	"sync"

	"github.com/gcbaptista/go-column-index/model"
)

// RowStore keeps rows in append order. A row's ID is its append position, so
// posting lists double as direct offsets into Rows. There is no delete: row
// ids handed to the indexes stay valid for the store's lifetime.
type RowStore struct {
	Mu   sync.RWMutex
	Rows []model.Row
}

// NewRowStore creates an empty row store.
func NewRowStore() *RowStore {
	return &RowStore{Rows: make([]model.Row, 0)}
}

// Append adds a row built from fields and returns its assigned id.
func (rs *RowStore) Append(fields map[string]string) model.Row {
	rs.Mu.Lock()
	defer rs.Mu.Unlock()

	row := model.Row{ID: uint32(len(rs.Rows)), Fields: fields}
	rs.Rows = append(rs.Rows, row)
	return row
}

// ByID fetches a row by id.
func (rs *RowStore) ByID(id uint32) (model.Row, bool) {
	rs.Mu.RLock()
	defer rs.Mu.RUnlock()

	if int(id) >= len(rs.Rows) {
		return model.Row{}, false
	}
	return rs.Rows[id], true
}

// Len returns the number of stored rows.
func (rs *RowStore) Len() int {
	rs.Mu.RLock()
	defer rs.Mu.RUnlock()
	return len(rs.Rows)
}

// All returns a snapshot of the rows in append order. Iteration order
// determines posting-list order within a key, so callers building indexes
// iterate this slice front to back.
func (rs *RowStore) All() []model.Row {
	rs.Mu.RLock()
	defer rs.Mu.RUnlock()

	rows := make([]model.Row, len(rs.Rows))
	copy(rows, rs.Rows)
	return rows
}
