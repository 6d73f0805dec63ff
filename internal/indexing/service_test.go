package indexing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-column-index/config"
	"github.com/gcbaptista/go-column-index/index"
	internalErrors "github.com/gcbaptista/go-column-index/internal/errors"
	"github.com/gcbaptista/go-column-index/store"
)

func newGuardianStore() *store.RowStore {
	rs := store.NewRowStore()
	for _, g := range []string{
		"mother", "mother", "mother", "mother", "mother",
		"father", "father", "father",
		"other", "none",
	} {
		rs.Append(map[string]string{"guardian": g})
	}
	return rs
}

func TestNewService(t *testing.T) {
	_, err := NewService(nil)
	if err == nil {
		t.Error("NewService() with nil row store, wantErr, got nil")
	}

	_, err = NewService(store.NewRowStore())
	if err != nil {
		t.Errorf("NewService() error = %v, wantErr nil", err)
	}
}

func TestColumnFrequencies(t *testing.T) {
	svc, err := NewService(newGuardianStore())
	require.NoError(t, err)

	freq, err := svc.ColumnFrequencies(config.IndexSettings{Name: "guardian", Column: "guardian"})
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"mother": 5, "father": 3, "other": 1, "none": 1}, freq)
}

func TestColumnFrequencies_MissingColumn(t *testing.T) {
	svc, err := NewService(newGuardianStore())
	require.NoError(t, err)

	_, err = svc.ColumnFrequencies(config.IndexSettings{Name: "x", Column: "absences"})
	if !errors.Is(err, internalErrors.ErrColumnNotFound) {
		t.Errorf("ColumnFrequencies() error = %v, want ErrColumnNotFound", err)
	}
}

func TestColumnFrequencies_SkipsRowsWithoutColumn(t *testing.T) {
	rs := store.NewRowStore()
	rs.Append(map[string]string{"guardian": "mother"})
	rs.Append(map[string]string{"name": "bob"}) // no guardian cell
	svc, err := NewService(rs)
	require.NoError(t, err)

	freq, err := svc.ColumnFrequencies(config.IndexSettings{Name: "guardian", Column: "guardian"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"mother": 1}, freq)
}

func TestBuildColumnIndex(t *testing.T) {
	svc, err := NewService(newGuardianStore())
	require.NoError(t, err)

	ix, err := svc.BuildColumnIndex(config.IndexSettings{Name: "guardian", Column: "guardian"}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, ix.Size())
	assert.Equal(t, index.PostingList{0, 1, 2, 3, 4}, ix.Find("mother"))
	assert.Equal(t, index.PostingList{5, 6, 7}, ix.Find("father"))
	assert.Equal(t, index.PostingList{8}, ix.Find("other"))
	assert.Equal(t, index.PostingList{9}, ix.Find("none"))
	assert.Equal(t, index.PostingList{}, ix.Find("unknown"))
}

func TestBuildColumnIndex_SingleDistinctValue(t *testing.T) {
	rs := store.NewRowStore()
	rs.Append(map[string]string{"guardian": "mother"})
	rs.Append(map[string]string{"guardian": "mother"})
	svc, err := NewService(rs)
	require.NoError(t, err)

	ix, err := svc.BuildColumnIndex(config.IndexSettings{Name: "guardian", Column: "guardian"}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, ix.Size())
	assert.Equal(t, index.PostingList{0, 1}, ix.Find("mother"))
}
