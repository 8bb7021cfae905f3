package api

import (
	"time"

	"github.com/mohamed66886/erp90-search/pkg/core"
)

type SearchResponse struct {
	Query   string              `json:"query"`
	Results []core.SearchResult `json:"results"`
	Count   int                 `json:"count"`
}

type BarcodeResponse struct {
	Barcode string              `json:"barcode"`
	Results []core.SearchResult `json:"results"`
	Count   int                 `json:"count"`
}

type EntityInfo struct {
	Type       string `json:"type"`
	Collection string `json:"collection"`
	Priority   int    `json:"priority"`
	Documents  int    `json:"documents"`
}

type ListEntitiesResponse struct {
	Entities []EntityInfo `json:"entities"`
	Count    int          `json:"count"`
}

type StatsResponse struct {
	Collections    map[string]int `json:"collections"`
	TotalDocuments int            `json:"total_documents"`
	CachedQueries  int            `json:"cached_queries"`
}

type CacheClearResponse struct {
	Status string `json:"status"`
}

type ImportDocument struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Fields    map[string]any `json:"fields"`
}

type ImportRequest struct {
	Collection string           `json:"collection"`
	Documents  []ImportDocument `json:"documents"`
}

type ImportResponse struct {
	Collection string `json:"collection"`
	Accepted   int    `json:"accepted"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
