package model

import "time"

// SearchEvent records one equality lookup served by the API.
type SearchEvent struct {
	IndexName    string        `json:"index_name"`
	Token        string        `json:"token"`
	ResponseTime time.Duration `json:"response_time"`
	ResultCount  int           `json:"result_count"`
	Timestamp    time.Time     `json:"timestamp"`
}

// PopularToken is a token ranked by how often it was looked up.
type PopularToken struct {
	Token       string `json:"token"`
	SearchCount int    `json:"search_count"`
}

// IndexUsage aggregates lookup traffic for one index.
type IndexUsage struct {
	IndexName      string `json:"index_name"`
	SearchCount    int    `json:"search_count"`
	ZeroHitCount   int    `json:"zero_hit_count"`
	DistinctTokens int    `json:"distinct_tokens"`
}

// AnalyticsSnapshot is the aggregate view served by the analytics endpoint.
type AnalyticsSnapshot struct {
	TotalSearches     int            `json:"total_searches"`
	ZeroHitSearches   int            `json:"zero_hit_searches"`
	AvgResponseTimeMs int64          `json:"avg_response_time_ms"`
	ActiveIndexes     int            `json:"active_indexes"`
	PopularTokens     []PopularToken `json:"popular_tokens"`
	IndexUsage        []IndexUsage   `json:"index_usage"`
}
