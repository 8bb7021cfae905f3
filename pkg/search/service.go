// Package search implements the universal search aggregator: one free-text
// query fanned out across every entity collection, scored for relevance,
// merged, ranked and cached.
//
// The aggregator is best-effort. A collection whose fetch fails
// contributes nothing and the failure is logged; callers always get a result
// list, never an error. "Nothing matched" and "everything errored" are
// indistinguishable from the return value alone.
package search

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mohamed66886/erp90-search/pkg/core"
	"github.com/mohamed66886/erp90-search/pkg/log"
	"github.com/mohamed66886/erp90-search/pkg/searchers/item"
)

const (
	// minQueryLen is the shortest trimmed query (in runes) that triggers a
	// real search; anything shorter falls back to recent items.
	minQueryLen = 2

	recentInvoiceLimit  = 5
	recentCustomerLimit = 3

	barcodeScore = 100
)

// Options configures one search invocation.
type Options struct {
	// Query is the free-text search term.
	Query string

	// Types limits the search to the listed entity kinds. Empty means all.
	// Order is irrelevant: it affects neither result ordering nor caching.
	Types []core.EntityType

	// Limit truncates the final merged list. Zero or negative means the
	// service default.
	Limit int
}

// Config carries the aggregator knobs, normally sourced from the TOML
// config.
type Config struct {
	CacheTTL     time.Duration
	DefaultLimit int
	QuickLimit   int
}

// Service is the search aggregator. It owns no durable state: the document
// store owns the entities, the service only holds the in-process result
// cache. Construct one per process (or per session if separate caches are
// wanted) and inject it where the search surface lives.
type Service struct {
	store    core.DocumentReader
	registry *core.Registry
	cache    *resultCache
	logger   *log.Logger

	defaultLimit int
	quickLimit   int
}

func NewService(store core.DocumentReader, registry *core.Registry, cfg Config) *Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 50
	}
	if cfg.QuickLimit <= 0 {
		cfg.QuickLimit = 10
	}
	return &Service{
		store:        store,
		registry:     registry,
		cache:        newResultCache(cfg.CacheTTL),
		logger:       log.ForService("search"),
		defaultLimit: cfg.DefaultLimit,
		quickLimit:   cfg.QuickLimit,
	}
}

// Search runs a full search. Queries shorter than two runes (after trimming)
// return the recent-items fallback instead of a filtered search.
func (s *Service) Search(ctx context.Context, opts Options) []core.SearchResult {
	return s.run(ctx, opts, true)
}

// QuickSearch is the search-as-you-type variant: a smaller default limit and
// no recent-items fallback, so short queries yield an empty list.
func (s *Service) QuickSearch(ctx context.Context, query string, limit int) []core.SearchResult {
	if limit <= 0 {
		limit = s.quickLimit
	}
	return s.run(ctx, Options{Query: query, Limit: limit}, false)
}

func (s *Service) run(ctx context.Context, opts Options, includeRecent bool) []core.SearchResult {
	trimmed := strings.TrimSpace(opts.Query)
	if utf8.RuneCountInString(trimmed) < minQueryLen {
		if includeRecent {
			return s.RecentItems(ctx)
		}
		return []core.SearchResult{}
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}

	searchers := s.resolveSearchers(opts.Types)
	types := make([]core.EntityType, len(searchers))
	for i, sr := range searchers {
		types[i] = sr.Type()
	}

	key := cacheKey(opts.Query, types, limit)
	if cached, ok := s.cache.get(key); ok {
		s.logger.Debugf("cache hit for %q", key)
		return cached
	}

	term := strings.ToLower(trimmed)
	merged := s.searchTypesInParallel(ctx, searchers, term)
	sortResults(merged)

	if len(merged) > limit {
		merged = merged[:limit]
	}

	s.cache.set(key, merged)
	return merged
}

// resolveSearchers maps the requested type filter to registered searchers.
// Unknown or unregistered kinds are logged and skipped; an empty filter
// means every registered kind.
func (s *Service) resolveSearchers(types []core.EntityType) []core.Searcher {
	if len(types) == 0 {
		return s.registry.All()
	}

	seen := make(map[core.EntityType]bool, len(types))
	var searchers []core.Searcher
	for _, t := range types {
		if seen[t] {
			continue
		}
		seen[t] = true
		searcher, err := s.registry.Get(t)
		if err != nil {
			s.logger.Warnf("skipping type filter: %v", err)
			continue
		}
		searchers = append(searchers, searcher)
	}
	return searchers
}

type typeResult struct {
	entityType core.EntityType
	results    []core.SearchResult
	err        error
}

// searchTypesInParallel fans one goroutine out per entity kind and waits for
// all of them to settle. A failed fetch contributes an empty list and a log
// line; it never aborts the other kinds.
func (s *Service) searchTypesInParallel(ctx context.Context, searchers []core.Searcher, term string) []core.SearchResult {
	resultChan := make(chan typeResult, len(searchers))

	for _, searcher := range searchers {
		go func(sr core.Searcher) {
			results, err := sr.Search(ctx, s.store, term)
			resultChan <- typeResult{entityType: sr.Type(), results: results, err: err}
		}(searcher)
	}

	merged := make([]core.SearchResult, 0)
	for i := 0; i < len(searchers); i++ {
		res := <-resultChan
		if res.err != nil {
			s.logger.Warnf("%s search failed: %v", res.entityType, res.err)
			continue
		}
		merged = append(merged, res.results...)
	}
	return merged
}

// RecentItems returns the no-query fallback: the five most recent invoices
// followed by the three most recent customers, unscored. This path bypasses
// the cache and the scorer entirely.
func (s *Service) RecentItems(ctx context.Context) []core.SearchResult {
	results := make([]core.SearchResult, 0, recentInvoiceLimit+recentCustomerLimit)
	results = append(results, s.recentFor(ctx, core.EntityInvoice, recentInvoiceLimit)...)
	results = append(results, s.recentFor(ctx, core.EntityCustomer, recentCustomerLimit)...)
	return results
}

func (s *Service) recentFor(ctx context.Context, t core.EntityType, limit int) []core.SearchResult {
	searcher, err := s.registry.Get(t)
	if err != nil {
		s.logger.Warnf("recent items: %v", err)
		return nil
	}
	converter, ok := searcher.(core.RecentConverter)
	if !ok {
		return nil
	}

	docs, err := s.store.GetRecent(ctx, searcher.Collection(), "created_at", limit)
	if err != nil {
		s.logger.Warnf("recent %s fetch failed: %v", t, err)
		return nil
	}

	results := make([]core.SearchResult, 0, len(docs))
	for _, doc := range docs {
		results = append(results, converter.ConvertRecent(doc))
	}
	return results
}

// SearchByBarcode looks up inventory items whose barcode equals the input
// exactly. No substring semantics: "12345" does not match "123456". Every
// hit carries a fixed score of 100.
func (s *Service) SearchByBarcode(ctx context.Context, barcode string) []core.SearchResult {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return []core.SearchResult{}
	}

	docs, err := s.store.GetByField(ctx, item.Collection, item.BarcodeField, barcode)
	if err != nil {
		s.logger.Warnf("barcode lookup failed: %v", err)
		return []core.SearchResult{}
	}

	results := make([]core.SearchResult, 0, len(docs))
	for _, doc := range docs {
		result := item.BuildResult(doc)
		result.Score = barcodeScore
		results = append(results, result)
	}
	return results
}

// ClearCache evicts every cached result list immediately, regardless of TTL.
func (s *Service) ClearCache() {
	s.cache.clear()
}

// SetCacheTTL updates the TTL for subsequently cached entries; existing
// entries keep their original deadline. Used by config hot reload.
func (s *Service) SetCacheTTL(ttl time.Duration) {
	if ttl > 0 {
		s.cache.setTTL(ttl)
	}
}

// CacheSize returns the number of live cache entries (expired entries not
// yet evicted included). Exposed for the stats endpoint.
func (s *Service) CacheSize() int {
	return s.cache.size()
}

// SweepCache drops expired cache entries. serve calls this on a timer.
func (s *Service) SweepCache() {
	s.cache.sweep()
}

// sortResults applies the three-level ranking: score descending, then the
// fixed entity priority, then Arabic-collated title.
func sortResults(results []core.SearchResult) {
	collator := collate.New(language.Arabic)
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if pa, pb := a.Type.Priority(), b.Type.Priority(); pa != pb {
			return pa < pb
		}
		return collator.CompareString(a.Title, b.Title) < 0
	})
}
