package core

// SearchResult is one ranked match produced by a searcher. Results are
// created fresh per search invocation (or served verbatim from the result
// cache) and never mutated after construction.
//
// Score is only meaningful within the invocation that computed it; it is
// never persisted or compared across different query texts. Recent-items
// fallback results carry no score (zero value, omitted from JSON).
type SearchResult struct {
	// ID is the identifier of the underlying record. It is unique within
	// its entity type but not globally.
	ID string `json:"id"`

	// Type is the entity kind that produced this result.
	Type EntityType `json:"type"`

	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`

	// Icon is the fixed icon name for the entity kind, carried for the UI.
	Icon string `json:"icon"`

	// Route is a navigation target owned by the UI layer. The aggregator
	// only passes it through.
	Route string `json:"route"`

	// Score is the relevance computed at query time.
	Score int `json:"relevance_score,omitempty"`

	// Data is the raw underlying record, passed through unmodified.
	Data map[string]any `json:"data,omitempty"`
}
