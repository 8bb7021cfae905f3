package core

import "fmt"

// EntityType identifies one of the fixed business-object kinds that can be
// searched. The set is closed: adding a kind means adding a searcher package
// and a constant here.
type EntityType string

const (
	EntityInvoice   EntityType = "invoice"
	EntityCustomer  EntityType = "customer"
	EntitySupplier  EntityType = "supplier"
	EntityItem      EntityType = "item"
	EntityAccount   EntityType = "account"
	EntityBranch    EntityType = "branch"
	EntityWarehouse EntityType = "warehouse"
	EntityReturn    EntityType = "return"
	EntityPurchase  EntityType = "purchase"
	EntityDelegate  EntityType = "delegate"
	EntityCashbox   EntityType = "cashbox"
)

// AllEntityTypes lists every searchable kind in display priority order.
// The order is load-bearing: it is the second tie-break when ranking merged
// search results, so invoices beat customers on equal score, customers beat
// suppliers, and so on.
var AllEntityTypes = []EntityType{
	EntityInvoice,
	EntityCustomer,
	EntitySupplier,
	EntityItem,
	EntityAccount,
	EntityBranch,
	EntityWarehouse,
	EntityReturn,
	EntityPurchase,
	EntityDelegate,
	EntityCashbox,
}

var typePriority = func() map[EntityType]int {
	m := make(map[EntityType]int, len(AllEntityTypes))
	for i, t := range AllEntityTypes {
		m[t] = i
	}
	return m
}()

// Priority returns the rank of t in the fixed ordering, lower is better.
// Unknown types sort last.
func (t EntityType) Priority() int {
	if p, ok := typePriority[t]; ok {
		return p
	}
	return len(AllEntityTypes)
}

// Valid reports whether t is one of the known entity kinds.
func (t EntityType) Valid() bool {
	_, ok := typePriority[t]
	return ok
}

// ParseEntityType converts a string (e.g. from an HTTP query parameter or CLI
// flag) into an EntityType.
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown entity type %q", s)
	}
	return t, nil
}
