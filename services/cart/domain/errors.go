package domain

import "errors"

// ErrorKind classifies a cart failure into one of the stable, client-safe
// categories surfaced in the read model.
type ErrorKind string

const (
	// ValidationError covers malformed client input and ledger-level
	// rejections such as a negative price.
	ValidationError ErrorKind = "VALIDATION_ERROR"

	// PriceServiceError indicates the upstream price source returned a price
	// that failed sanity constraints.
	PriceServiceError ErrorKind = "PRICE_SERVICE_ERROR"

	// NotFoundError indicates the upstream price source reports the product
	// does not exist.
	NotFoundError ErrorKind = "NOT_FOUND_ERROR"

	// InternalError covers transport faults and anything else unclassified.
	InternalError ErrorKind = "INTERNAL_ERROR"
)

// Sentinel errors for the cart domain. Use errors.Is() to check these.
var (
	// ErrInvalidCartParams indicates an item record would violate its
	// invariants (negative price or non-positive quantity).
	ErrInvalidCartParams = errors.New("invalid cart item parameters")

	// ErrBlankProductName indicates a removal was requested without a product name.
	ErrBlankProductName = errors.New("product name must not be blank")

	// ErrNegativeAmount indicates a tax or totals calculation received a
	// negative input.
	ErrNegativeAmount = errors.New("amount must not be negative")
)

// CartError is the structured, client-safe failure attached to a cart outcome.
// Violations is populated only for VALIDATION_ERROR and PRICE_SERVICE_ERROR.
type CartError struct {
	StatusCode int               `json:"statusCode"`
	ErrorType  ErrorKind         `json:"errorType"`
	Violations map[string]string `json:"violations,omitempty"`
	Message    string            `json:"message"`
}
