package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-column-index/config"
	"github.com/gcbaptista/go-column-index/index"
	"github.com/gcbaptista/go-column-index/internal/indexing"
	"github.com/gcbaptista/go-column-index/services"
	"github.com/gcbaptista/go-column-index/store"
)

func newGuardianService(t *testing.T) (*Service, *store.RowStore) {
	t.Helper()

	rs := store.NewRowStore()
	for _, g := range []string{"mother", "father", "mother", "other"} {
		rs.Append(map[string]string{"guardian": g})
	}

	indexer, err := indexing.NewService(rs)
	require.NoError(t, err)
	ix, err := indexer.BuildColumnIndex(config.IndexSettings{Name: "guardian", Column: "guardian"}, nil, nil)
	require.NoError(t, err)

	svc, err := NewService(ix, rs)
	require.NoError(t, err)
	return svc, rs
}

func TestNewService(t *testing.T) {
	t.Run("nil index", func(t *testing.T) {
		_, err := NewService(nil, store.NewRowStore())
		assert.Error(t, err)
	})

	t.Run("nil row store", func(t *testing.T) {
		ix := index.New("x", nil, nil)
		_, err := NewService(ix, nil)
		assert.Error(t, err)
	})
}

func TestFindRowIDs(t *testing.T) {
	svc, _ := newGuardianService(t)

	assert.Equal(t, []uint32{0, 2}, svc.FindRowIDs("mother"))
	assert.Equal(t, []uint32{1}, svc.FindRowIDs("father"))
	assert.Empty(t, svc.FindRowIDs("unknown"))
}

func TestSearch(t *testing.T) {
	svc, _ := newGuardianService(t)

	result, err := svc.Search(services.SearchQuery{Token: "mother"})
	require.NoError(t, err)

	assert.Equal(t, "mother", result.Token)
	assert.Equal(t, []uint32{0, 2}, result.RowIDs)
	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, uint32(0), result.Rows[0].ID)
	assert.Equal(t, uint32(2), result.Rows[1].ID)
	assert.NotEmpty(t, result.QueryID)
}

func TestSearch_UnseenToken(t *testing.T) {
	svc, _ := newGuardianService(t)

	result, err := svc.Search(services.SearchQuery{Token: "unknown"})
	require.NoError(t, err, "unseen token is a normal query outcome, not an error")
	assert.Equal(t, 0, result.Total)
	assert.Empty(t, result.Rows)
}
