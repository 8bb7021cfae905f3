package api

import (
	"net/http"
)

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// API routes with method-specific routing
	mux.HandleFunc("GET /api/search", s.HandleSearch)
	mux.HandleFunc("GET /api/search/quick", s.HandleQuickSearch)
	mux.HandleFunc("GET /api/search/barcode", s.HandleBarcodeSearch)
	mux.HandleFunc("GET /api/entities", s.HandleListEntities)
	mux.HandleFunc("GET /api/stats", s.HandleStats)
	mux.HandleFunc("POST /api/import/documents", s.HandleImport)
	mux.HandleFunc("POST /api/cache/clear", s.HandleCacheClear)
	mux.HandleFunc("GET /api/firehose/ws", s.HandleFirehoseWS)
	mux.HandleFunc("GET /health", s.HandleHealth)
}
