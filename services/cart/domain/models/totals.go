package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CartTotals holds the derived amounts for a ledger snapshot, each scaled to
// exactly 2 fractional digits with half-away-from-zero rounding.
// Totals are never stored independently of the snapshot that produced them.
type CartTotals struct {
	Tax      decimal.Decimal `json:"tax"`
	SubTotal decimal.Decimal `json:"subTotal"`
	Total    decimal.Decimal `json:"total"`
}

// MarshalJSON renders every amount with exactly 2 fractional digits.
// decimal's default marshalling trims trailing zeros, which would put
// 16.90 on the wire as "16.9" and 0.00 as "0".
func (t CartTotals) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Tax      string `json:"tax"`
		SubTotal string `json:"subTotal"`
		Total    string `json:"total"`
	}{
		Tax:      t.Tax.StringFixed(2),
		SubTotal: t.SubTotal.StringFixed(2),
		Total:    t.Total.StringFixed(2),
	})
}
