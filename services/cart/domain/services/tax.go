// Package services contains stateless domain services for the cart bounded
// context: the tax policy and the totals calculator. They operate purely on
// domain types and decimal arithmetic.
package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ghuser/cartengine/services/cart/domain"
)

// taxScale is the intermediate precision for the rate division and the tax
// product. The subtotal itself is never rounded here; only the final
// externally visible amounts are scaled to 2 digits, by the caller.
const taxScale = 10

// TaxCalculator applies a flat percentage rate to a subtotal.
type TaxCalculator struct {
	ratePercent decimal.Decimal
}

// NewTaxCalculator returns a TaxCalculator for the given percentage rate.
// The rate must be non-negative.
func NewTaxCalculator(ratePercent decimal.Decimal) (*TaxCalculator, error) {
	if ratePercent.IsNegative() {
		return nil, fmt.Errorf("tax rate: %w", domain.ErrNegativeAmount)
	}
	return &TaxCalculator{ratePercent: ratePercent}, nil
}

// Amount computes the tax on subTotal. The rate is divided by 100 at 10-digit
// precision with half-away-from-zero rounding, multiplied by the subtotal, and
// the product rounded to 10 digits. Rounding the rate and product at this fine
// grain while leaving the subtotal untouched keeps the error below the cent
// boundary the caller rounds to.
func (c *TaxCalculator) Amount(subTotal decimal.Decimal) (decimal.Decimal, error) {
	if subTotal.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("subtotal: %w", domain.ErrNegativeAmount)
	}
	rate := c.ratePercent.DivRound(decimal.NewFromInt(100), taxScale)
	return subTotal.Mul(rate).Round(taxScale), nil
}
