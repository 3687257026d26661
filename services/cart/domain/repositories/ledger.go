package repositories

import (
	"github.com/shopspring/decimal"

	"github.com/ghuser/cartengine/services/cart/domain/models"
)

// Snapshot is an immutable point-in-time view of the ledger, keyed by product
// name. Implementations must hand out defensive copies — a snapshot never
// changes after it is returned.
type Snapshot map[string]models.ItemRecord

// QuantityFor returns the stored quantity for a product, or 0 when absent.
func (s Snapshot) QuantityFor(productName string) int {
	if rec, ok := s[productName]; ok {
		return rec.Quantity
	}
	return 0
}

// TotalItemsCount returns the sum of all quantities in the snapshot.
func (s Snapshot) TotalItemsCount() int {
	total := 0
	for _, rec := range s {
		total += rec.Quantity
	}
	return total
}

// Ledger is the authoritative per-product quantity/price store. It is the only
// mutable shared state in the cart core; AddProduct and RemoveProduct are its
// only writers.
//
// Implementations must serialize the read-modify-write of a product's quantity
// so concurrent adds for the same name never lose updates.
type Ledger interface {
	// AddProduct merges quantity into an existing record (keeping the stored
	// price) or inserts a new record. Fails when price is negative or, for a
	// new record, when quantity is not positive. Returns the snapshot after
	// the mutation.
	AddProduct(name string, quantity int, price decimal.Decimal) (Snapshot, error)

	// RemoveProduct deletes the record for name. Removing an absent product
	// is a no-op, not an error; removed reports whether a record was actually
	// deleted, decided under the same lock as the deletion. Fails when name
	// is blank.
	RemoveProduct(name string) (snap Snapshot, removed bool, err error)

	// Snapshot returns the current state without mutating anything.
	Snapshot() Snapshot
}
