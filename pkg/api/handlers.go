package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mohamed66886/erp90-search/pkg/core"
	"github.com/mohamed66886/erp90-search/pkg/realtime"
	"github.com/mohamed66886/erp90-search/pkg/search"
	"github.com/mohamed66886/erp90-search/pkg/version"
)

// HandleSearch serves the full search endpoint. Matching never fails: short
// queries fall back to recent items and collection fetch errors only shrink
// the result list, so the only client-visible error is a bad type filter.
func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	opts, err := search.ParseOptions(r.URL.Query())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid type filter", err.Error())
		return
	}

	results := s.service.Search(r.Context(), opts)

	response := SearchResponse{
		Query:   opts.Query,
		Results: results,
		Count:   len(results),
	}
	s.writeJSON(w, http.StatusOK, response)
}

// HandleQuickSearch serves the search-as-you-type endpoint: a lower default
// limit and no recent-items fallback.
func (s *Server) HandleQuickSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	results := s.service.QuickSearch(r.Context(), query, limit)

	response := SearchResponse{
		Query:   query,
		Results: results,
		Count:   len(results),
	}
	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleBarcodeSearch(w http.ResponseWriter, r *http.Request) {
	barcode := strings.TrimSpace(r.URL.Query().Get("code"))
	if barcode == "" {
		s.writeError(w, http.StatusBadRequest, "Missing barcode", "Query parameter 'code' is required")
		return
	}

	results := s.service.SearchByBarcode(r.Context(), barcode)

	response := BarcodeResponse{
		Barcode: barcode,
		Results: results,
		Count:   len(results),
	}
	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleListEntities(w http.ResponseWriter, r *http.Request) {
	searchers := s.registry.All()

	entities := make([]EntityInfo, 0, len(searchers))
	for _, searcher := range searchers {
		count, err := s.store.Count(r.Context(), searcher.Collection())
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, "Failed to count documents", err.Error())
			return
		}
		entities = append(entities, EntityInfo{
			Type:       string(searcher.Type()),
			Collection: searcher.Collection(),
			Priority:   searcher.Type().Priority(),
			Documents:  count,
		})
	}

	response := ListEntitiesResponse{
		Entities: entities,
		Count:    len(entities),
	}
	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to get stats", err.Error())
		return
	}

	total := 0
	for _, count := range stats {
		total += count
	}

	response := StatsResponse{
		Collections:    stats,
		TotalDocuments: total,
		CachedQueries:  s.service.CacheSize(),
	}
	s.writeJSON(w, http.StatusOK, response)
}

// HandleImport ingests documents into a known collection. Records without an
// id get a generated one; records without a timestamp are stamped with the
// ingest time. Accepted documents are fanned out to firehose listeners and
// invalidate the result cache.
func (s *Server) HandleImport(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	var entityType core.EntityType
	known := false
	for _, searcher := range s.registry.All() {
		if searcher.Collection() == req.Collection {
			entityType = searcher.Type()
			known = true
			break
		}
	}
	if !known {
		s.writeError(w, http.StatusBadRequest, "Unknown collection", "Collection '"+req.Collection+"' is not registered")
		return
	}
	if len(req.Documents) == 0 {
		s.writeError(w, http.StatusBadRequest, "Empty import", "At least one document is required")
		return
	}

	now := time.Now().UTC()
	docs := make([]core.Document, 0, len(req.Documents))
	for _, rec := range req.Documents {
		doc := core.Document{
			ID:        rec.ID,
			CreatedAt: rec.CreatedAt,
			Fields:    rec.Fields,
		}
		if doc.ID == "" {
			doc.ID = uuid.New().String()
		}
		if doc.CreatedAt.IsZero() {
			doc.CreatedAt = now
		}
		docs = append(docs, doc)
	}

	if err := s.store.PutBatch(r.Context(), req.Collection, docs); err != nil {
		s.writeError(w, http.StatusInternalServerError, "Import failed", err.Error())
		return
	}

	s.service.ClearCache()

	if s.hub != nil {
		for _, doc := range docs {
			s.hub.Broadcast(realtime.NewDocumentEvent(
				doc.ID, req.Collection, string(entityType), doc.CreatedAt, doc.Fields,
			))
		}
	}

	s.writeJSON(w, http.StatusOK, ImportResponse{
		Collection: req.Collection,
		Accepted:   len(docs),
	})
}

func (s *Server) HandleCacheClear(w http.ResponseWriter, r *http.Request) {
	s.service.ClearCache()
	s.writeJSON(w, http.StatusOK, CacheClearResponse{Status: "cleared"})
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   version.APIVersion(),
	}

	s.writeJSON(w, http.StatusOK, health)
}
