package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ItemRecord is the per-product entry of the cart ledger: the unit price
// fixed at first insertion and the accumulated quantity.
// Records are replaced, never mutated in place, so concurrent readers always
// observe a consistent pair.
type ItemRecord struct {
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// NewItemRecord constructs a valid ItemRecord or returns an error when the
// invariants (price >= 0, quantity > 0) are violated.
func NewItemRecord(price decimal.Decimal, quantity int) (ItemRecord, error) {
	if err := validateRecord(price, quantity); err != nil {
		return ItemRecord{}, err
	}
	return ItemRecord{Price: price, Quantity: quantity}, nil
}

// AddQuantity returns a new record with the summed quantity. The stored price
// is retained — a product's price is fixed at first insertion.
func (r ItemRecord) AddQuantity(quantity int) (ItemRecord, error) {
	if err := validateRecord(r.Price, quantity); err != nil {
		return ItemRecord{}, err
	}
	return ItemRecord{Price: r.Price, Quantity: r.Quantity + quantity}, nil
}

func validateRecord(price decimal.Decimal, quantity int) error {
	if price.IsNegative() {
		return fmt.Errorf("price must be non-negative, got %s", price)
	}
	if quantity <= 0 {
		return fmt.Errorf("quantity must be a positive integer, got %d", quantity)
	}
	return nil
}
