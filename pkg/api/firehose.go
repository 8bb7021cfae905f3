package api

import (
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mohamed66886/erp90-search/pkg/realtime"
)

const (
	firehoseSnapshotLimit = 50
	firehosePollInterval  = 5 * time.Second
	heartbeatInterval     = 30 * time.Second
	writeTimeout          = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is CORS-open; the websocket endpoint follows suit.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type initMessage struct {
	Type      string                   `json:"type"`
	Mode      string                   `json:"mode"`
	Documents []realtime.DocumentEvent `json:"documents"`
	Count     int                      `json:"count"`
}

type documentMessage struct {
	Type     string                 `json:"type"`
	Document realtime.DocumentEvent `json:"document"`
}

type batchMessage struct {
	Type      string                   `json:"type"`
	Documents []realtime.DocumentEvent `json:"documents"`
	Count     int                      `json:"count"`
}

type heartbeatMessage struct {
	Type string    `json:"type"`
	TS   time.Time `json:"ts"`
}

// HandleFirehoseWS streams document ingest events over a websocket. The
// connection opens with an "init" snapshot of recent documents (optionally
// filtered by a `since` RFC3339 cursor), then switches to push delivery via
// the realtime hub when one is injected, or to periodic polling otherwise.
func (s *Server) HandleFirehoseWS(w http.ResponseWriter, r *http.Request) {
	var since *time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "Invalid since parameter", "since must be an RFC3339 timestamp")
			return
		}
		since = &parsed
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		return
	}
	defer func() { _ = conn.Close() }()

	mode := "poll"
	if s.hub != nil {
		mode = "push"
	}

	snapshot := s.recentDocumentEvents(r, since, firehoseSnapshotLimit)
	init := initMessage{
		Type:      "init",
		Mode:      mode,
		Documents: snapshot,
		Count:     len(snapshot),
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(init); err != nil {
		return
	}

	// Detect client-side close; the read pump unblocks the select below.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if s.hub != nil {
		s.pushLoop(conn, closed)
		return
	}
	s.pollLoop(conn, closed, r, snapshot)
}

func (s *Server) pushLoop(conn *websocket.Conn, closed <-chan struct{}) {
	id, events := s.hub.Register()
	defer s.hub.Unregister(id)

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-closed:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(documentMessage{Type: "document", Document: event.Document}); err != nil {
				return
			}
		case now := <-heartbeat.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(heartbeatMessage{Type: "heartbeat", TS: now.UTC()}); err != nil {
				return
			}
		}
	}
}

// pollLoop is the fallback when no hub is injected: re-read recent documents
// on an interval and deliver anything newer than the last cursor as a batch.
func (s *Server) pollLoop(conn *websocket.Conn, closed <-chan struct{}, r *http.Request, snapshot []realtime.DocumentEvent) {
	cursor := time.Time{}
	for _, doc := range snapshot {
		if doc.CreatedAt.After(cursor) {
			cursor = doc.CreatedAt
		}
	}

	ticker := time.NewTicker(firehosePollInterval)
	defer ticker.Stop()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-closed:
			return
		case <-ticker.C:
			fresh := s.recentDocumentEvents(r, &cursor, firehoseSnapshotLimit)
			if len(fresh) == 0 {
				continue
			}
			for _, doc := range fresh {
				if doc.CreatedAt.After(cursor) {
					cursor = doc.CreatedAt
				}
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(batchMessage{Type: "document_batch", Documents: fresh, Count: len(fresh)}); err != nil {
				return
			}
		case now := <-heartbeat.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(heartbeatMessage{Type: "heartbeat", TS: now.UTC()}); err != nil {
				return
			}
		}
	}
}

// recentDocumentEvents reads the freshest documents of every registered
// entity kind, strictly newer than since when given, merged newest-first.
func (s *Server) recentDocumentEvents(r *http.Request, since *time.Time, limit int) []realtime.DocumentEvent {
	events := make([]realtime.DocumentEvent, 0, limit)
	for _, searcher := range s.registry.All() {
		docs, err := s.store.GetRecent(r.Context(), searcher.Collection(), "created_at", limit)
		if err != nil {
			// Snapshot is best effort; a missing collection contributes nothing.
			continue
		}
		for _, doc := range docs {
			if since != nil && !doc.CreatedAt.After(*since) {
				continue
			}
			events = append(events, realtime.NewDocumentEvent(
				doc.ID,
				searcher.Collection(),
				string(searcher.Type()),
				doc.CreatedAt,
				doc.Fields,
			))
		}
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	if len(events) > limit {
		events = events[:limit]
	}
	return events
}
