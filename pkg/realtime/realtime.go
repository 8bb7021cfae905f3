package realtime

// Package realtime provides a lightweight in-process publish/subscribe hub
// used to fan out document ingestion events to multiple listeners (e.g.
// WebSocket sessions watching the import firehose).
//
// Design goals:
//   - Best-effort fan-out: slow listeners drop events (never backpressure
//     ingestion).
//   - No persistence or replay semantics (ephemeral stream).
//   - Simple, extensible event envelope (currently only document events).
//
// If durable or replayable semantics are needed later, this package is the
// seam where a broker can be introduced behind a compatible interface.

import (
	"sync"
	"time"
)

// DocumentEvent represents a single ingested document delivered over the hub.
//
// Fields:
//   - ID:         Unique document identifier (scoped to its collection).
//   - Collection: Storage collection name (e.g. "sales_invoices").
//   - EntityType: Entity kind of the collection (e.g. "invoice").
//   - CreatedAt:  Original creation time (UTC recommended).
//   - Fields:     The denormalized searchable fields of the document.
type DocumentEvent struct {
	ID         string         `json:"id"`
	Collection string         `json:"collection"`
	EntityType string         `json:"entity_type"`
	CreatedAt  time.Time      `json:"created_at"`
	Fields     map[string]any `json:"fields,omitempty"`
}

// InternalEvent is the hub's envelope, allowing future introduction of
// additional event kinds (heartbeat, info, etc.) without changing channel
// element types. For now only Type == "document" is produced.
type InternalEvent struct {
	Type     string        `json:"type"`
	Document DocumentEvent `json:"document"`
}

// FirehoseHub is an in-memory fan-out dispatcher. Each registered listener
// receives events via its own buffered channel. If a listener's buffer is full
// when an event arrives, that event is dropped for that listener only, so a
// single slow consumer never degrades ingestion or delivery to the others.
//
// The hub is concurrency-safe.
type FirehoseHub struct {
	mu        sync.RWMutex
	listeners map[uint64]chan InternalEvent
	nextID    uint64
	bufSize   int
}

// NewFirehoseHub constructs a new hub with per-listener buffer size.
// If bufSize <= 0, a default of 32 is used.
func NewFirehoseHub(bufSize int) *FirehoseHub {
	if bufSize <= 0 {
		bufSize = 32
	}
	return &FirehoseHub{
		listeners: make(map[uint64]chan InternalEvent),
		bufSize:   bufSize,
	}
}

// Register adds a new listener and returns (listenerID, receiveOnlyChannel).
// Callers must later Unregister(id) to release resources.
func (h *FirehoseHub) Register() (uint64, <-chan InternalEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	ch := make(chan InternalEvent, h.bufSize)
	h.listeners[id] = ch
	return id, ch
}

// Unregister removes the listener with the given id and closes its channel.
// It is safe to call multiple times; unknown ids are ignored.
func (h *FirehoseHub) Unregister(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.listeners[id]; ok {
		delete(h.listeners, id)
		close(ch)
	}
}

// Broadcast delivers an event to all registered listeners (best effort).
// Accepted input types:
//   - InternalEvent
//   - DocumentEvent (wrapped as InternalEvent{Type:"document"})
//
// Any other type is ignored silently.
func (h *FirehoseHub) Broadcast(event interface{}) {
	var ie InternalEvent
	switch v := event.(type) {
	case InternalEvent:
		ie = v
	case DocumentEvent:
		ie = InternalEvent{Type: "document", Document: v}
	default:
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.listeners {
		select {
		case ch <- ie:
		default:
			// Drop for slow listener.
		}
	}
}

// Size returns the current number of active listeners (approximate).
func (h *FirehoseHub) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}

// NewDocumentEvent constructs a DocumentEvent with a non-nil fields map when
// the provided map is nil (avoids nil map surprises downstream).
func NewDocumentEvent(id, collection, entityType string, createdAt time.Time, fields map[string]any) DocumentEvent {
	if fields == nil {
		fields = make(map[string]any)
	}
	return DocumentEvent{
		ID:         id,
		Collection: collection,
		EntityType: entityType,
		CreatedAt:  createdAt,
		Fields:     fields,
	}
}

// WrapDocument produces an InternalEvent for a given DocumentEvent.
func WrapDocument(de DocumentEvent) InternalEvent {
	return InternalEvent{
		Type:     "document",
		Document: de,
	}
}
