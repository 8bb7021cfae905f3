package search

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/mohamed66886/erp90-search/pkg/core"

	_ "github.com/mohamed66886/erp90-search/pkg/searchers/account"
	_ "github.com/mohamed66886/erp90-search/pkg/searchers/branch"
	_ "github.com/mohamed66886/erp90-search/pkg/searchers/cashbox"
	_ "github.com/mohamed66886/erp90-search/pkg/searchers/customer"
	_ "github.com/mohamed66886/erp90-search/pkg/searchers/delegate"
	_ "github.com/mohamed66886/erp90-search/pkg/searchers/invoice"
	_ "github.com/mohamed66886/erp90-search/pkg/searchers/purchase"
	_ "github.com/mohamed66886/erp90-search/pkg/searchers/salesreturn"
	_ "github.com/mohamed66886/erp90-search/pkg/searchers/supplier"
	_ "github.com/mohamed66886/erp90-search/pkg/searchers/warehouse"
)

// mockStore is an in-memory DocumentReader with per-collection failure
// injection and a fetch counter for cache assertions.
type mockStore struct {
	mu         sync.Mutex
	docs       map[string][]core.Document
	failing    map[string]bool
	fetchCalls int
}

func newMockStore() *mockStore {
	return &mockStore{
		docs:    make(map[string][]core.Document),
		failing: make(map[string]bool),
	}
}

func (m *mockStore) add(collection string, doc core.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[collection] = append(m.docs[collection], doc)
}

func (m *mockStore) fail(collection string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failing[collection] = true
}

func (m *mockStore) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetchCalls
}

func (m *mockStore) GetAll(ctx context.Context, collection string) ([]core.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchCalls++
	if m.failing[collection] {
		return nil, errors.New("collection unavailable")
	}
	return m.docs[collection], nil
}

func (m *mockStore) GetByField(ctx context.Context, collection, field string, value any) ([]core.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchCalls++
	if m.failing[collection] {
		return nil, errors.New("collection unavailable")
	}
	var matches []core.Document
	for _, doc := range m.docs[collection] {
		if doc.Fields[field] == value {
			matches = append(matches, doc)
		}
	}
	return matches, nil
}

func (m *mockStore) GetRecent(ctx context.Context, collection, orderField string, limit int) ([]core.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchCalls++
	if m.failing[collection] {
		return nil, errors.New("collection unavailable")
	}
	docs := append([]core.Document(nil), m.docs[collection]...)
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	if len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

func newTestService(store *mockStore) *Service {
	return NewService(store, core.GetGlobalRegistry(), Config{})
}

func TestSubstringMatchingIncludesAndExcludes(t *testing.T) {
	store := newMockStore()
	store.add("customers", core.Document{
		ID:     "cust-1",
		Fields: map[string]any{"nameAr": "مؤسسة الرياض التجارية"},
	})
	store.add("customers", core.Document{
		ID:     "cust-2",
		Fields: map[string]any{"nameAr": "شركة جدة"},
	})

	service := newTestService(store)
	results := service.Search(context.Background(), Options{Query: "الرياض"})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].ID != "cust-1" {
		t.Errorf("expected cust-1, got %s", results[0].ID)
	}
}

func TestScoreOrdering(t *testing.T) {
	store := newMockStore()
	store.add("customers", core.Document{ID: "exact", Fields: map[string]any{"nameAr": "Ahmed"}})
	store.add("customers", core.Document{ID: "prefix", Fields: map[string]any{"nameAr": "Ahmed Ali"}})
	store.add("customers", core.Document{ID: "contains", Fields: map[string]any{"nameAr": "Mr Ahmed"}})

	service := newTestService(store)
	results := service.Search(context.Background(), Options{
		Query: "Ahmed",
		Types: []core.EntityType{core.EntityCustomer},
	})

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	expected := []string{"exact", "prefix", "contains"}
	for i, id := range expected {
		if results[i].ID != id {
			t.Errorf("position %d: expected %s, got %s (scores: %d %d %d)",
				i, id, results[i].ID, results[0].Score, results[1].Score, results[2].Score)
		}
	}
	if results[0].Score != 100 || results[1].Score != 80 || results[2].Score != 50 {
		t.Errorf("unexpected scores: %d %d %d", results[0].Score, results[1].Score, results[2].Score)
	}
}

func TestMultiFieldOr(t *testing.T) {
	store := newMockStore()
	store.add("customers", core.Document{
		ID:     "cust-1",
		Fields: map[string]any{"nameAr": "خالد", "email": "m@x.com"},
	})

	service := newTestService(store)
	results := service.Search(context.Background(), Options{Query: "m@x"})

	if len(results) != 1 {
		t.Fatalf("expected email-only match to be included, got %d results", len(results))
	}
	if results[0].Score <= 0 {
		t.Errorf("matching field must contribute a score, got %d", results[0].Score)
	}
}

func TestTypePriorityTieBreak(t *testing.T) {
	store := newMockStore()
	// Single-field documents so both results score exactly 100.
	store.add("customers", core.Document{ID: "c", Fields: map[string]any{"nameAr": "التعاون"}})
	store.add("suppliers", core.Document{ID: "s", Fields: map[string]any{"name": "التعاون"}})

	service := newTestService(store)
	results := service.Search(context.Background(), Options{Query: "التعاون"})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Score != results[1].Score {
		t.Fatalf("tie-break test requires equal scores, got %d and %d", results[0].Score, results[1].Score)
	}
	if results[0].Type != core.EntityCustomer || results[1].Type != core.EntitySupplier {
		t.Errorf("expected customer before supplier, got %s then %s", results[0].Type, results[1].Type)
	}
}

func TestTitleTieBreak(t *testing.T) {
	store := newMockStore()
	// Same type, same score (exact phone match), different titles.
	store.add("customers", core.Document{ID: "c1", Fields: map[string]any{"nameAr": "خالد", "phone": "0500"}})
	store.add("customers", core.Document{ID: "c2", Fields: map[string]any{"nameAr": "أحمد", "phone": "0500"}})

	service := newTestService(store)
	results := service.Search(context.Background(), Options{Query: "0500"})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Score != results[1].Score {
		t.Fatalf("tie-break test requires equal scores, got %d and %d", results[0].Score, results[1].Score)
	}
	if results[0].Title != "أحمد" {
		t.Errorf("expected alphabetical title tie-break, got %q first", results[0].Title)
	}
}

func TestCacheIdempotence(t *testing.T) {
	store := newMockStore()
	store.add("customers", core.Document{ID: "c1", Fields: map[string]any{"nameAr": "محمد علي"}})

	service := newTestService(store)
	opts := Options{Query: "محمد", Types: []core.EntityType{core.EntityCustomer, core.EntityInvoice}}

	first := service.Search(context.Background(), opts)
	callsAfterFirst := store.calls()

	second := service.Search(context.Background(), opts)
	if store.calls() != callsAfterFirst {
		t.Errorf("second identical search must not hit the store: %d fetches became %d",
			callsAfterFirst, store.calls())
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("cached result list must be structurally identical")
	}
}

func TestCacheKeyIgnoresTypeOrder(t *testing.T) {
	store := newMockStore()
	store.add("customers", core.Document{ID: "c1", Fields: map[string]any{"nameAr": "محمد"}})

	service := newTestService(store)
	service.Search(context.Background(), Options{
		Query: "محمد",
		Types: []core.EntityType{core.EntityCustomer, core.EntitySupplier},
	})
	calls := store.calls()

	service.Search(context.Background(), Options{
		Query: "محمد",
		Types: []core.EntityType{core.EntitySupplier, core.EntityCustomer},
	})
	if store.calls() != calls {
		t.Error("reordered type filter must hit the same cache entry")
	}
}

func TestCacheExpiry(t *testing.T) {
	store := newMockStore()
	store.add("customers", core.Document{ID: "c1", Fields: map[string]any{"nameAr": "محمد"}})

	service := NewService(store, core.GetGlobalRegistry(), Config{CacheTTL: 30 * time.Millisecond})
	opts := Options{Query: "محمد", Types: []core.EntityType{core.EntityCustomer}}

	service.Search(context.Background(), opts)
	calls := store.calls()

	// Data changes while the entry expires.
	store.add("customers", core.Document{ID: "c2", Fields: map[string]any{"nameAr": "محمود"}})
	time.Sleep(50 * time.Millisecond)

	results := service.Search(context.Background(), opts)
	if store.calls() == calls {
		t.Error("expired entry must trigger a re-fetch")
	}
	if len(results) != 2 {
		t.Errorf("re-fetch must observe updated data, got %d results", len(results))
	}
}

func TestShortQueryReturnsRecentItems(t *testing.T) {
	store := newMockStore()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		store.add("sales_invoices", core.Document{
			ID:        "inv-" + string(rune('a'+i)),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Fields:    map[string]any{"invoiceNumber": "INV-" + string(rune('a'+i))},
		})
	}
	for i := 0; i < 5; i++ {
		store.add("customers", core.Document{
			ID:        "cust-" + string(rune('a'+i)),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Fields:    map[string]any{"nameAr": "عميل"},
		})
	}

	service := newTestService(store)

	for _, query := range []string{"", "a"} {
		results := service.Search(context.Background(), Options{Query: query})

		invoices, customers := 0, 0
		for _, r := range results {
			switch r.Type {
			case core.EntityInvoice:
				invoices++
			case core.EntityCustomer:
				customers++
			default:
				t.Errorf("query %q: unexpected type %s in recent items", query, r.Type)
			}
			if r.Score != 0 {
				t.Errorf("query %q: recent items must not carry a score, got %d", query, r.Score)
			}
		}
		if invoices != 5 || customers != 3 {
			t.Errorf("query %q: expected 5 invoices + 3 customers, got %d + %d", query, invoices, customers)
		}
	}
}

func TestQuickSearchShortQueryIsEmpty(t *testing.T) {
	store := newMockStore()
	store.add("sales_invoices", core.Document{ID: "inv-1", Fields: map[string]any{"invoiceNumber": "X"}})

	service := newTestService(store)
	results := service.QuickSearch(context.Background(), "a", 0)
	if len(results) != 0 {
		t.Errorf("quick search must never return recent items, got %d results", len(results))
	}
	if store.calls() != 0 {
		t.Errorf("short quick search must not hit the store, got %d fetches", store.calls())
	}
}

func TestQuickSearchDefaultLimit(t *testing.T) {
	store := newMockStore()
	for i := 0; i < 30; i++ {
		store.add("customers", core.Document{
			ID:     "cust-" + string(rune('a'+i)),
			Fields: map[string]any{"nameAr": "عميل الرياض"},
		})
	}

	service := newTestService(store)
	results := service.QuickSearch(context.Background(), "الرياض", 0)
	if len(results) != 10 {
		t.Errorf("expected quick search default limit 10, got %d", len(results))
	}
}

func TestBarcodeExactMatch(t *testing.T) {
	store := newMockStore()
	store.add("inventory_items", core.Document{
		ID:     "item-1",
		Fields: map[string]any{"barcode": "12345", "name": "قلم"},
	})
	store.add("inventory_items", core.Document{
		ID:     "item-2",
		Fields: map[string]any{"barcode": "123456", "name": "دفتر"},
	})

	service := newTestService(store)
	results := service.SearchByBarcode(context.Background(), "12345")

	if len(results) != 1 {
		t.Fatalf("expected exactly 1 result, got %d", len(results))
	}
	if results[0].ID != "item-1" {
		t.Errorf("expected item-1, got %s", results[0].ID)
	}
	if results[0].Score != 100 {
		t.Errorf("barcode hits carry a fixed score of 100, got %d", results[0].Score)
	}
}

func TestPerTypeFailureIsolation(t *testing.T) {
	store := newMockStore()
	store.add("customers", core.Document{ID: "c1", Fields: map[string]any{"nameAr": "محمد علي"}})
	store.add("sales_invoices", core.Document{ID: "i1", Fields: map[string]any{"customerName": "محمد"}})
	store.fail("suppliers")

	service := newTestService(store)
	results := service.Search(context.Background(), Options{Query: "محمد"})

	if len(results) != 2 {
		t.Fatalf("failing collection must not affect others, got %d results", len(results))
	}
}

func TestTotalFailureYieldsEmptyList(t *testing.T) {
	store := newMockStore()
	for _, searcher := range core.GetGlobalRegistry().All() {
		store.fail(searcher.Collection())
	}

	service := newTestService(store)
	results := service.Search(context.Background(), Options{Query: "anything"})
	if results == nil || len(results) != 0 {
		t.Errorf("total failure must yield an empty list, got %v", results)
	}
}

func TestLimitTruncatesAfterSort(t *testing.T) {
	store := newMockStore()
	store.add("customers", core.Document{ID: "best", Fields: map[string]any{"nameAr": "متجر"}})
	for i := 0; i < 10; i++ {
		store.add("customers", core.Document{
			ID:     "weak-" + string(rune('a'+i)),
			Fields: map[string]any{"nameAr": "فرع متجر الرياض"},
		})
	}

	service := newTestService(store)
	results := service.Search(context.Background(), Options{Query: "متجر", Limit: 3})

	if len(results) != 3 {
		t.Fatalf("expected limit of 3, got %d", len(results))
	}
	if results[0].ID != "best" {
		t.Errorf("truncation must keep the top-scored results, got %s first", results[0].ID)
	}
}

// The worked scenario: denormalized customer name on an invoice and the
// customer record itself both match the same term.
func TestMixedEntityScenario(t *testing.T) {
	store := newMockStore()
	store.add("customers", core.Document{
		ID:     "cust-1",
		Fields: map[string]any{"nameAr": "محمد علي", "email": "m@x.com"},
	})
	store.add("sales_invoices", core.Document{
		ID:     "inv-1",
		Fields: map[string]any{"invoiceNumber": "INV-2024-01", "customerName": "محمد"},
	})

	service := newTestService(store)
	results := service.Search(context.Background(), Options{Query: "محمد"})

	if len(results) != 2 {
		t.Fatalf("expected both documents, got %d results", len(results))
	}

	byType := make(map[core.EntityType]core.SearchResult)
	for _, r := range results {
		byType[r.Type] = r
	}
	if byType[core.EntityInvoice].Title != "فاتورة INV-2024-01" {
		t.Errorf("unexpected invoice title %q", byType[core.EntityInvoice].Title)
	}
	if byType[core.EntityCustomer].Title != "محمد علي" {
		t.Errorf("unexpected customer title %q", byType[core.EntityCustomer].Title)
	}
	for _, r := range results {
		if r.Score < 50 {
			t.Errorf("%s scored %d, expected at least 50", r.Type, r.Score)
		}
	}
	// Exact match on the invoice's customerName outranks the customer's
	// prefix match.
	if results[0].Type != core.EntityInvoice {
		t.Errorf("expected invoice first, got %s", results[0].Type)
	}
}

func TestClearCache(t *testing.T) {
	store := newMockStore()
	store.add("customers", core.Document{ID: "c1", Fields: map[string]any{"nameAr": "محمد"}})

	service := newTestService(store)
	opts := Options{Query: "محمد", Types: []core.EntityType{core.EntityCustomer}}

	service.Search(context.Background(), opts)
	calls := store.calls()

	service.ClearCache()
	service.Search(context.Background(), opts)
	if store.calls() == calls {
		t.Error("ClearCache must force the next search to re-fetch")
	}
}
