package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-column-index/config"
	"github.com/gcbaptista/go-column-index/internal/engine"
	"github.com/gcbaptista/go-column-index/model"
	"github.com/gcbaptista/go-column-index/services"
	"github.com/gcbaptista/go-column-index/store"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *engine.Engine, *store.RowStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rs := store.NewRowStore()
	for _, g := range []string{"mother", "father", "mother", "other"} {
		rs.Append(map[string]string{"guardian": g, "school": "GP"})
	}

	eng, err := engine.NewEngine(rs, nil)
	require.NoError(t, err)

	router := gin.New()
	SetupRoutes(router, eng, rs)
	return router, eng, rs
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheckHandler(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := performRequest(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCreateIndexHandler(t *testing.T) {
	router, eng, _ := setupTestRouter(t)

	w := performRequest(router, http.MethodPost, "/indexes", config.IndexSettings{Name: "guardian", Column: "guardian"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []string{"guardian"}, eng.ListIndexes())
}

func TestCreateIndexHandler_DefaultsNameToColumn(t *testing.T) {
	router, eng, _ := setupTestRouter(t)

	w := performRequest(router, http.MethodPost, "/indexes", map[string]string{"column": "school"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []string{"school"}, eng.ListIndexes())
}

func TestCreateIndexHandler_Conflict(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := performRequest(router, http.MethodPost, "/indexes", config.IndexSettings{Name: "guardian", Column: "guardian"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, http.MethodPost, "/indexes", config.IndexSettings{Name: "guardian", Column: "guardian"})
	assert.Equal(t, http.StatusConflict, w.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, ErrorCodeIndexExists, apiErr.Code)
	assert.NotEmpty(t, apiErr.RequestID)
}

func TestCreateIndexHandler_BadRequests(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	// Missing column
	w := performRequest(router, http.MethodPost, "/indexes", map[string]string{"name": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Column absent from every row
	w = performRequest(router, http.MethodPost, "/indexes", config.IndexSettings{Name: "absences", Column: "absences"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListIndexesHandler(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	performRequest(router, http.MethodPost, "/indexes", config.IndexSettings{Name: "school", Column: "school"})
	performRequest(router, http.MethodPost, "/indexes", config.IndexSettings{Name: "guardian", Column: "guardian"})

	w := performRequest(router, http.MethodGet, "/indexes", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Indexes []string `json:"indexes"`
		Count   int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"guardian", "school"}, resp.Indexes)
	assert.Equal(t, 2, resp.Count)
}

func TestGetIndexHandler(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	performRequest(router, http.MethodPost, "/indexes", config.IndexSettings{Name: "guardian", Column: "guardian"})

	w := performRequest(router, http.MethodGet, "/indexes/guardian", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var settings config.IndexSettings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	assert.Equal(t, "guardian", settings.Column)

	w = performRequest(router, http.MethodGet, "/indexes/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteIndexHandler(t *testing.T) {
	router, eng, _ := setupTestRouter(t)
	performRequest(router, http.MethodPost, "/indexes", config.IndexSettings{Name: "guardian", Column: "guardian"})

	w := performRequest(router, http.MethodDelete, "/indexes/guardian", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, eng.ListIndexes())

	w = performRequest(router, http.MethodDelete, "/indexes/guardian", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetIndexStatsHandler(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	performRequest(router, http.MethodPost, "/indexes", config.IndexSettings{Name: "guardian", Column: "guardian"})

	w := performRequest(router, http.MethodGet, "/indexes/guardian/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		Name           string `json:"name"`
		Column         string `json:"column"`
		DistinctTokens int    `json:"distinct_tokens"`
		RowCount       int    `json:"row_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, "guardian", stats.Column)
	assert.Equal(t, 3, stats.DistinctTokens)
	assert.Equal(t, 4, stats.RowCount)
}

func TestSearchHandler(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	performRequest(router, http.MethodPost, "/indexes", config.IndexSettings{Name: "guardian", Column: "guardian"})

	w := performRequest(router, http.MethodPost, "/indexes/guardian/_search", services.SearchQuery{Token: "mother"})
	assert.Equal(t, http.StatusOK, w.Code)

	var result services.SearchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, []uint32{0, 2}, result.RowIDs)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, "mother", result.Rows[0].Fields["guardian"])
	assert.NotEmpty(t, result.QueryID)
}

func TestSearchHandler_UnseenToken(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	performRequest(router, http.MethodPost, "/indexes", config.IndexSettings{Name: "guardian", Column: "guardian"})

	w := performRequest(router, http.MethodPost, "/indexes/guardian/_search", services.SearchQuery{Token: "stranger"})
	assert.Equal(t, http.StatusOK, w.Code)

	var result services.SearchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 0, result.Total)
}

func TestSearchHandler_BadRequests(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	performRequest(router, http.MethodPost, "/indexes", config.IndexSettings{Name: "guardian", Column: "guardian"})

	w := performRequest(router, http.MethodPost, "/indexes/missing/_search", services.SearchQuery{Token: "mother"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(router, http.MethodPost, "/indexes/guardian/_search", services.SearchQuery{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAnalyticsHandler(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	performRequest(router, http.MethodPost, "/indexes", config.IndexSettings{Name: "guardian", Column: "guardian"})

	performRequest(router, http.MethodPost, "/indexes/guardian/_search", services.SearchQuery{Token: "mother"})
	performRequest(router, http.MethodPost, "/indexes/guardian/_search", services.SearchQuery{Token: "mother"})
	performRequest(router, http.MethodPost, "/indexes/guardian/_search", services.SearchQuery{Token: "stranger"})

	w := performRequest(router, http.MethodGet, "/analytics", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var snapshot model.AnalyticsSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Equal(t, 3, snapshot.TotalSearches)
	assert.Equal(t, 1, snapshot.ZeroHitSearches)
	assert.Equal(t, 1, snapshot.ActiveIndexes)
	require.NotEmpty(t, snapshot.PopularTokens)
	assert.Equal(t, "mother", snapshot.PopularTokens[0].Token)
}

func TestGetRowHandler(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := performRequest(router, http.MethodGet, "/rows/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "father")

	w = performRequest(router, http.MethodGet, "/rows/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(router, http.MethodGet, "/rows/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListRowsHandler(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := performRequest(router, http.MethodGet, "/rows?page=1&page_size=3", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Rows     []json.RawMessage `json:"rows"`
		Total    int               `json:"total"`
		Page     int               `json:"page"`
		PageSize int               `json:"page_size"`
		Pages    int               `json:"pages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Rows, 3)
	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, 2, resp.Pages)

	w = performRequest(router, http.MethodGet, "/rows?page=2&page_size=3", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Rows, 1)
}
