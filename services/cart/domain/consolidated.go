package domain

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ghuser/cartengine/services/cart/domain/models"
	"github.com/ghuser/cartengine/services/cart/domain/repositories"
)

// ConsolidatedCart is the outcome envelope returned by the cart orchestrator:
// either a success carrying the ledger snapshot and its totals, or a failure
// carrying a classified error. The two branches are mutually exclusive.
type ConsolidatedCart struct {
	Errors *CartError            `json:"errors,omitempty"`
	Items  repositories.Snapshot `json:"shoppingCart,omitempty"`
	Totals *models.CartTotals    `json:"totals,omitempty"`
}

// Succeeded reports whether the envelope carries the success branch.
func (c *ConsolidatedCart) Succeeded() bool {
	return c.Errors == nil
}

// HTTPStatus returns the status code for the envelope: the classified error's
// code on failure, 200 on success.
func (c *ConsolidatedCart) HTTPStatus() int {
	if c.Errors != nil {
		return c.Errors.StatusCode
	}
	return http.StatusOK
}

// ContainsProduct reports whether the product is present in the cart.
func (c *ConsolidatedCart) ContainsProduct(productName string) bool {
	_, ok := c.Items[productName]
	return ok
}

// QuantityFor returns the cart quantity for a product, or 0 when absent.
func (c *ConsolidatedCart) QuantityFor(productName string) int {
	return c.Items.QuantityFor(productName)
}

// PriceFor returns the stored unit price for a product and whether it is present.
func (c *ConsolidatedCart) PriceFor(productName string) (decimal.Decimal, bool) {
	rec, ok := c.Items[productName]
	return rec.Price, ok
}

// CategorisedItemCount returns the number of distinct products in the cart.
func (c *ConsolidatedCart) CategorisedItemCount() int {
	return len(c.Items)
}

// TotalItemsCount returns the sum of all product quantities in the cart.
func (c *ConsolidatedCart) TotalItemsCount() int {
	return c.Items.TotalItemsCount()
}
