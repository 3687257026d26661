// Package memory provides the in-memory Ledger implementation. The engine
// models a single process-scoped cart, so a mutex-guarded map is the whole
// store; snapshots are defensive copies handed to readers.
package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ghuser/cartengine/services/cart/domain"
	"github.com/ghuser/cartengine/services/cart/domain/models"
	"github.com/ghuser/cartengine/services/cart/domain/repositories"
)

// Ledger is the mutex-guarded product → record store. The lock makes each
// merge-or-insert atomic per call, so concurrent adds for the same product
// serialize their read-modify-write and never lose updates.
type Ledger struct {
	mu    sync.RWMutex
	items map[string]models.ItemRecord
}

// NewLedger returns an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{items: make(map[string]models.ItemRecord)}
}

// AddProduct merges quantity into an existing record or inserts a new one.
// An existing record keeps its originally stored price; the incoming price is
// only used on first insertion. Fails with ErrInvalidCartParams when price is
// negative or quantity is not positive; the ledger is untouched on failure.
func (l *Ledger) AddProduct(name string, quantity int, price decimal.Decimal) (repositories.Snapshot, error) {
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: price must be non-negative", domain.ErrInvalidCartParams)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	existing, ok := l.items[name]
	var (
		rec models.ItemRecord
		err error
	)
	if ok {
		rec, err = existing.AddQuantity(quantity)
	} else {
		rec, err = models.NewItemRecord(price, quantity)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCartParams, err)
	}

	l.items[name] = rec
	return l.snapshotLocked(), nil
}

// RemoveProduct deletes the record for name. Removing an absent product is a
// no-op and returns the unchanged snapshot with removed=false. The existence
// check and the delete happen under one lock, so concurrent removals of the
// same product see removed=true exactly once. Fails when name is blank.
func (l *Ledger) RemoveProduct(name string) (repositories.Snapshot, bool, error) {
	if strings.TrimSpace(name) == "" {
		return nil, false, domain.ErrBlankProductName
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	_, existed := l.items[name]
	delete(l.items, name)
	return l.snapshotLocked(), existed, nil
}

// Snapshot returns a copy of the current ledger state.
func (l *Ledger) Snapshot() repositories.Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshotLocked()
}

// snapshotLocked copies the map; callers must hold at least the read lock.
func (l *Ledger) snapshotLocked() repositories.Snapshot {
	snap := make(repositories.Snapshot, len(l.items))
	for name, rec := range l.items {
		snap[name] = rec
	}
	return snap
}
