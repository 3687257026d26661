// Package views shapes cart outcomes for transport. Views are flat,
// JSON-ready projections; they never expose domain types directly.
package views

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ghuser/cartengine/services/cart/domain"
)

// CartItemView is a single ledger line in the response body.
type CartItemView struct {
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// CartTotalsView carries the cart arithmetic. HasAmount distinguishes a cart
// that genuinely totals zero from a failed request whose totals were never
// computed. Amounts are rendered with exactly 2 fractional digits; decimal's
// own marshalling trims trailing zeros and would break that scale.
type CartTotalsView struct {
	Tax       string `json:"tax"`
	SubTotal  string `json:"subTotal"`
	Total     string `json:"total"`
	HasAmount bool   `json:"hasAmount"`
}

// CartErrorView flattens the classified error for clients that key off
// hasErrors rather than the HTTP status.
type CartErrorView struct {
	HasErrors    bool              `json:"hasErrors"`
	ErrorType    string            `json:"errorType,omitempty"`
	ErrorMessage string            `json:"errorMessage,omitempty"`
	Violations   map[string]string `json:"violations,omitempty"`
	StatusCode   int               `json:"statusCode,omitempty"`
}

// CartQuantityView reports both counting views of the ledger: distinct
// products and total units.
type CartQuantityView struct {
	CategoryItemCount int `json:"categoryItemCount"`
	TotalItemsCount   int `json:"totalItemsCount"`
}

// CartSummaryView is the response body for every cart operation, success or
// failure.
type CartSummaryView struct {
	Errors     CartErrorView    `json:"errors"`
	Items      []CartItemView   `json:"items"`
	Quantities CartQuantityView `json:"quantities"`
	Totals     CartTotalsView   `json:"totals"`
}

// From projects a consolidated outcome into its transport shape. Items are
// sorted by product name so response bodies are stable. A failed outcome gets
// an empty item list and zeroed totals.
func From(outcome *domain.ConsolidatedCart) CartSummaryView {
	view := CartSummaryView{Items: []CartItemView{}}

	if !outcome.Succeeded() {
		view.Errors = CartErrorView{
			HasErrors:    true,
			ErrorType:    string(outcome.Errors.ErrorType),
			ErrorMessage: outcome.Errors.Message,
			Violations:   outcome.Errors.Violations,
			StatusCode:   outcome.Errors.StatusCode,
		}
		view.Totals = CartTotalsView{
			Tax:      decimal.Zero.StringFixed(2),
			SubTotal: decimal.Zero.StringFixed(2),
			Total:    decimal.Zero.StringFixed(2),
		}
		return view
	}

	for name, record := range outcome.Items {
		view.Items = append(view.Items, CartItemView{
			ProductName: name,
			Quantity:    record.Quantity,
			Price:       record.Price,
		})
	}
	sort.Slice(view.Items, func(i, j int) bool {
		return view.Items[i].ProductName < view.Items[j].ProductName
	})

	view.Quantities = CartQuantityView{
		CategoryItemCount: outcome.CategorisedItemCount(),
		TotalItemsCount:   outcome.TotalItemsCount(),
	}
	view.Totals = CartTotalsView{
		Tax:       outcome.Totals.Tax.StringFixed(2),
		SubTotal:  outcome.Totals.SubTotal.StringFixed(2),
		Total:     outcome.Totals.Total.StringFixed(2),
		HasAmount: true,
	}
	return view
}
