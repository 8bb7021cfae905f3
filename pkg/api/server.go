package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/mohamed66886/erp90-search/pkg/core"
	"github.com/mohamed66886/erp90-search/pkg/docstore"
	"github.com/mohamed66886/erp90-search/pkg/realtime"
	"github.com/mohamed66886/erp90-search/pkg/search"
)

type Server struct {
	registry *core.Registry
	store    *docstore.Manager
	service  *search.Service
	hub      *realtime.FirehoseHub
}

func NewServer(registry *core.Registry, store *docstore.Manager, service *search.Service) *Server {
	return &Server{
		registry: registry,
		store:    store,
		service:  service,
	}
}

// SetFirehoseHub injects the realtime hub so the websocket endpoint can
// push ingest events. Without a hub the endpoint still serves the initial
// snapshot but sends no live events.
func (s *Server) SetFirehoseHub(hub *realtime.FirehoseHub) {
	s.hub = hub
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, error, message string) {
	response := ErrorResponse{
		Error:   error,
		Message: message,
	}
	s.writeJSON(w, status, response)
}

func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
