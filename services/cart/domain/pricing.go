package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceSource is the external collaborator resolving a product name to a unit
// price. Failures are reported as *PriceNotFoundError, *PriceRequestError, or
// an error wrapping ErrPriceUnavailable for transport-level faults.
type PriceSource interface {
	GetPrice(ctx context.Context, productName string) (decimal.Decimal, error)
}

// ErrPriceUnavailable is wrapped by transport-level price lookup faults:
// connection errors, timeouts, malformed bodies, unexpected status codes.
var ErrPriceUnavailable = errors.New("price service unavailable")

// PriceNotFoundError reports that the price source has no entry for the product.
type PriceNotFoundError struct {
	Product string
	Status  int
}

func (e *PriceNotFoundError) Error() string {
	return fmt.Sprintf("product %s was not found, status %d", e.Product, e.Status)
}

// PriceRequestError reports that the price source rejected the lookup request.
type PriceRequestError struct {
	Product string
	Status  int
}

func (e *PriceRequestError) Error() string {
	return fmt.Sprintf("price request for %s rejected, status %d", e.Product, e.Status)
}
