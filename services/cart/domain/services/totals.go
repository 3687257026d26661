package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ghuser/cartengine/services/cart/domain/models"
	"github.com/ghuser/cartengine/services/cart/domain/repositories"
)

// moneyScale is the external scale of all visible amounts.
const moneyScale = 2

// CartCalculator derives tax, subtotal, and total from a ledger snapshot.
type CartCalculator struct {
	tax *TaxCalculator
}

// NewCartCalculator returns a CartCalculator using the given tax policy.
func NewCartCalculator(tax *TaxCalculator) *CartCalculator {
	return &CartCalculator{tax: tax}
}

// CalculateTotals sums price × quantity over all records at full decimal
// precision, applies the tax policy, and rounds each output to 2 digits
// half away from zero. Per-item or per-stage rounding is deliberately absent:
// rounding once at the boundary is what keeps the arithmetic exact.
func (c *CartCalculator) CalculateTotals(items repositories.Snapshot) (models.CartTotals, error) {
	subTotal := decimal.Zero
	for _, rec := range items {
		subTotal = subTotal.Add(rec.Price.Mul(decimal.NewFromInt(int64(rec.Quantity))))
	}

	taxAmount, err := c.tax.Amount(subTotal)
	if err != nil {
		return models.CartTotals{}, fmt.Errorf("calculate tax: %w", err)
	}
	total := subTotal.Add(taxAmount)

	return models.CartTotals{
		Tax:      taxAmount.Round(moneyScale),
		SubTotal: subTotal.Round(moneyScale),
		Total:    total.Round(moneyScale),
	}, nil
}
