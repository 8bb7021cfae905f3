package core

import "context"

// DocumentReader is the read surface of the document store that searchers
// are allowed to use. Three primitives only: fetch a whole collection,
// fetch by field equality, fetch the most recent N. The store's own query
// or full-text features are deliberately not assumed to exist; all match
// filtering happens in memory after a full-collection fetch.
type DocumentReader interface {
	// GetAll fetches every document in a collection.
	GetAll(ctx context.Context, collection string) ([]Document, error)

	// GetByField fetches documents whose named field equals value exactly.
	GetByField(ctx context.Context, collection, field string, value any) ([]Document, error)

	// GetRecent fetches up to limit documents ordered by orderField,
	// newest first.
	GetRecent(ctx context.Context, collection, orderField string, limit int) ([]Document, error)
}

// Searcher is the per-entity-type search routine. Each entity kind ships one
// implementation that knows which raw fields to test, how to compose the
// result title/subtitle/description, and the fixed icon and route for its
// kind.
//
// Implementations self-register during init():
//
//	func init() {
//		core.RegisterSearcher(&Searcher{})
//	}
//
// Search must fetch its whole collection through the reader, include every
// document where any tested field contains the term (case-insensitive
// substring), and attach the summed relevance score. Fetch errors are
// returned to the aggregator, which logs them and treats the kind's
// contribution as empty; a searcher must never panic on malformed field
// values.
type Searcher interface {
	// Type returns the entity kind this searcher serves.
	Type() EntityType

	// Collection returns the document-store collection it reads.
	Collection() string

	// Search returns one scored SearchResult per matching document.
	// term has already been lowercased and trimmed by the aggregator.
	Search(ctx context.Context, reader DocumentReader, term string) ([]SearchResult, error)
}

// RecentConverter is implemented by searchers whose entity kind participates
// in the recent-items fallback (invoices and customers). It converts a raw
// document into an unscored result with the kind's generic "recent" label.
type RecentConverter interface {
	ConvertRecent(doc Document) SearchResult
}
