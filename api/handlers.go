// Package api exposes the column index engine over HTTP using gin.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-column-index/config"
	"github.com/gcbaptista/go-column-index/internal/analytics"
	internalErrors "github.com/gcbaptista/go-column-index/internal/errors"
	"github.com/gcbaptista/go-column-index/model"
	"github.com/gcbaptista/go-column-index/services"
	"github.com/gcbaptista/go-column-index/store"
)

const maxRequestBodySize = 1 << 20 // 1 MiB; index settings and queries are tiny

// API holds dependencies for API handlers, primarily the index manager and
// the shared row store.
type API struct {
	engine    services.IndexManager
	rowStore  *store.RowStore
	analytics *analytics.Service
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.IndexManager, rowStore *store.RowStore) *API {
	return &API{
		engine:    engine,
		rowStore:  rowStore,
		analytics: analytics.NewService(engine),
	}
}

// SetupRoutes defines all the API routes for the column index engine.
func SetupRoutes(router *gin.Engine, engine services.IndexManager, rowStore *store.RowStore) {
	apiHandler := NewAPI(engine, rowStore)

	router.Use(RequestIDMiddleware())
	router.Use(RequestSizeLimitMiddleware(maxRequestBodySize))
	router.Use(CORSMiddleware())

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Analytics route
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	// Row access routes
	rowRoutes := router.Group("/rows")
	{
		rowRoutes.GET("", apiHandler.ListRowsHandler)      // List rows with pagination
		rowRoutes.GET("/:rowId", apiHandler.GetRowHandler) // Get specific row
	}

	// Index management routes
	indexRoutes := router.Group("/indexes")
	{
		indexRoutes.POST("", apiHandler.CreateIndexHandler)                   // Create a new index
		indexRoutes.GET("", apiHandler.ListIndexesHandler)                    // List all indexes
		indexRoutes.GET("/:indexName", apiHandler.GetIndexHandler)            // Get specific index details (its settings)
		indexRoutes.DELETE("/:indexName", apiHandler.DeleteIndexHandler)      // Delete an index
		indexRoutes.GET("/:indexName/stats", apiHandler.GetIndexStatsHandler) // Get index statistics

		// Search route per index
		indexRoutes.POST("/:indexName/_search", apiHandler.SearchHandler)
	}
}

// CreateIndexHandler handles the request to create a new index.
// Request Body: config.IndexSettings
func (api *API) CreateIndexHandler(c *gin.Context) {
	var settings config.IndexSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	settings.ApplyDefaults()
	if err := settings.Validate(); err != nil {
		SendValidationError(c, err.Error())
		return
	}

	if err := api.engine.CreateIndex(settings); err != nil {
		switch {
		case errors.Is(err, internalErrors.ErrIndexAlreadyExists):
			SendIndexExistsError(c, settings.Name)
		case errors.Is(err, internalErrors.ErrColumnNotFound):
			SendValidationError(c, err.Error())
		default:
			SendIndexingError(c, "create index", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Index '" + settings.Name + "' created successfully"})
}

// ListIndexesHandler lists all available indexes.
func (api *API) ListIndexesHandler(c *gin.Context) {
	names := api.engine.ListIndexes()
	c.JSON(http.StatusOK, gin.H{"indexes": names, "count": len(names)})
}

// GetIndexHandler retrieves details about a specific index (its settings).
func (api *API) GetIndexHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	settings, err := api.engine.GetIndexSettings(indexName)
	if err != nil {
		SendIndexNotFoundError(c, indexName)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// DeleteIndexHandler handles deleting an index.
func (api *API) DeleteIndexHandler(c *gin.Context) {
	indexName := c.Param("indexName")

	if err := api.engine.DeleteIndex(indexName); err != nil {
		if errors.Is(err, internalErrors.ErrIndexNotFound) {
			SendIndexNotFoundError(c, indexName)
			return
		}
		SendInternalError(c, "delete index", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Index '" + indexName + "' deleted successfully"})
}

// GetIndexStatsHandler returns statistics for a specific index.
func (api *API) GetIndexStatsHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	indexAccessor, err := api.engine.GetIndex(indexName)
	if err != nil {
		SendIndexNotFoundError(c, indexName)
		return
	}

	settings := indexAccessor.Settings()
	stats := gin.H{
		"name":            settings.Name,
		"column":          settings.Column,
		"distinct_tokens": indexAccessor.Size(),
		"row_count":       api.rowStore.Len(),
	}

	c.JSON(http.StatusOK, stats)
}

// SearchHandler handles equality lookups against an index.
// Request Body: services.SearchQuery
func (api *API) SearchHandler(c *gin.Context) {
	startTime := time.Now()
	indexName := c.Param("indexName")

	indexAccessor, err := api.engine.GetIndex(indexName)
	if err != nil {
		SendIndexNotFoundError(c, indexName)
		return
	}

	var query services.SearchQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if query.Token == "" {
		SendValidationError(c, "token is required and cannot be empty")
		return
	}

	results, err := indexAccessor.Search(query)
	if err != nil {
		SendSearchError(c, indexName, err)
		return
	}

	api.analytics.TrackSearchEvent(model.SearchEvent{
		IndexName:    indexName,
		Token:        query.Token,
		ResponseTime: time.Since(startTime),
		ResultCount:  results.Total,
	})

	c.JSON(http.StatusOK, results)
}

// GetAnalyticsHandler returns the aggregate lookup statistics.
func (api *API) GetAnalyticsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.analytics.Snapshot())
}

// RowListRequest defines the structure for row listing requests
type RowListRequest struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
}

// ListRowsHandler lists rows from the store with pagination.
func (api *API) ListRowsHandler(c *gin.Context) {
	var req RowListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "Invalid query parameters: "+err.Error())
		return
	}

	// Set defaults
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100 // Maximum page size
	}

	rows := api.rowStore.All()
	totalCount := len(rows)

	startIndex := (req.Page - 1) * req.PageSize
	if startIndex > totalCount {
		startIndex = totalCount
	}
	endIndex := startIndex + req.PageSize
	if endIndex > totalCount {
		endIndex = totalCount
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":      rows[startIndex:endIndex],
		"total":     totalCount,
		"page":      req.Page,
		"page_size": req.PageSize,
		"pages":     (totalCount + req.PageSize - 1) / req.PageSize,
	})
}

// GetRowHandler retrieves a specific row by its id.
func (api *API) GetRowHandler(c *gin.Context) {
	rowParam := c.Param("rowId")

	id, err := strconv.ParseUint(rowParam, 10, 32)
	if err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "Row id must be a non-negative integer: "+rowParam)
		return
	}

	row, ok := api.rowStore.ByID(uint32(id))
	if !ok {
		SendRowNotFoundError(c, rowParam)
		return
	}

	c.JSON(http.StatusOK, row)
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "go-column-index",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}
