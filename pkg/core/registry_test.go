package core

import (
	"context"
	"testing"
)

type stubSearcher struct {
	entityType EntityType
	collection string
}

func (s *stubSearcher) Type() EntityType   { return s.entityType }
func (s *stubSearcher) Collection() string { return s.collection }
func (s *stubSearcher) Search(ctx context.Context, reader DocumentReader, term string) ([]SearchResult, error) {
	return nil, nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := NewRegistry()

	searcher := &stubSearcher{entityType: EntityCustomer, collection: "customers"}
	if err := registry.Register(searcher); err != nil {
		t.Fatalf("registering searcher: %v", err)
	}

	got, err := registry.Get(EntityCustomer)
	if err != nil {
		t.Fatalf("getting searcher: %v", err)
	}
	if got.Collection() != "customers" {
		t.Errorf("expected collection 'customers', got %q", got.Collection())
	}

	if err := registry.Register(searcher); err == nil {
		t.Error("expected duplicate registration to fail")
	}

	if _, err := registry.Get(EntitySupplier); err == nil {
		t.Error("expected error for unregistered type")
	}
}

func TestRegistryAllReturnsPriorityOrder(t *testing.T) {
	registry := NewRegistry()

	// Register out of order; All must return priority order.
	for _, et := range []EntityType{EntityCashbox, EntityInvoice, EntitySupplier} {
		if err := registry.Register(&stubSearcher{entityType: et, collection: string(et) + "s"}); err != nil {
			t.Fatalf("registering %s: %v", et, err)
		}
	}

	all := registry.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 searchers, got %d", len(all))
	}
	expected := []EntityType{EntityInvoice, EntitySupplier, EntityCashbox}
	for i, s := range all {
		if s.Type() != expected[i] {
			t.Errorf("position %d: expected %s, got %s", i, expected[i], s.Type())
		}
	}
}

func TestEntityTypePriority(t *testing.T) {
	if EntityInvoice.Priority() >= EntityCustomer.Priority() {
		t.Error("invoice must rank before customer")
	}
	if EntityCustomer.Priority() >= EntitySupplier.Priority() {
		t.Error("customer must rank before supplier")
	}
	if EntityCashbox.Priority() != len(AllEntityTypes)-1 {
		t.Error("cashbox must rank last")
	}
	if EntityType("bogus").Priority() != len(AllEntityTypes) {
		t.Error("unknown types must sort after all known types")
	}
}

func TestParseEntityType(t *testing.T) {
	if _, err := ParseEntityType("customer"); err != nil {
		t.Errorf("expected 'customer' to parse: %v", err)
	}
	if _, err := ParseEntityType("spaceship"); err == nil {
		t.Error("expected unknown type to fail")
	}
}
