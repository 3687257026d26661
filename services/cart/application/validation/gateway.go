// Package validation is the gateway between raw input and the cart core.
// Client input and the upstream price pass through the same declarative
// constraint mechanism; only the classification of a failure differs.
package validation

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	pkgvalidator "github.com/ghuser/cartengine/pkg/validator"
	"github.com/ghuser/cartengine/services/cart/domain"
	"github.com/ghuser/cartengine/services/cart/domain/models"
)

// maxPriceFractionDigits bounds how many decimal places a trustworthy
// monetary value may carry.
const maxPriceFractionDigits = 4

// priceWrapper routes the upstream price through struct-level validation.
type priceWrapper struct {
	Price decimal.Decimal `json:"price" validate:"gt=0"`
}

// Failure carries the field violations of a rejected constraint check along
// with the error kind the violations classify as.
type Failure struct {
	Kind       domain.ErrorKind
	Violations map[string]string
	Message    string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %d field violation(s)", f.Message, len(f.Violations))
}

// Gateway validates input shapes and converts caught failures into
// classified cart errors.
type Gateway struct{}

// NewGateway returns a Gateway.
func NewGateway() *Gateway {
	return &Gateway{}
}

// CheckProduct validates the add-to-cart input shape. A violation is returned
// as a *Failure classified VALIDATION_ERROR.
func (g *Gateway) CheckProduct(in models.ProductIn) error {
	return g.checkInput(&in)
}

// CheckRemoval validates the remove-from-cart input shape.
func (g *Gateway) CheckRemoval(in models.ProductRm) error {
	return g.checkInput(&in)
}

func (g *Gateway) checkInput(in any) error {
	err := pkgvalidator.Validate(in)
	if err == nil {
		return nil
	}
	return &Failure{
		Kind:       domain.ValidationError,
		Violations: pkgvalidator.FormatValidationErrors(err),
		Message:    "Cart input failed validation",
	}
}

// CheckPrice validates the price returned by the upstream source. The same
// constraint mechanism as client input is used, but a violation classifies as
// PRICE_SERVICE_ERROR: a bad price means the upstream returned something we
// cannot trust, not that the caller sent bad input.
func (g *Gateway) CheckPrice(price decimal.Decimal) error {
	violations := map[string]string{}
	if err := pkgvalidator.Validate(&priceWrapper{Price: price}); err != nil {
		violations = pkgvalidator.FormatValidationErrors(err)
	}
	if price.Exponent() < -maxPriceFractionDigits {
		violations["price"] = fmt.Sprintf("Must be a monetary value with at most %d decimal places", maxPriceFractionDigits)
	}
	if len(violations) == 0 {
		return nil
	}
	return &Failure{
		Kind:       domain.PriceServiceError,
		Violations: violations,
		Message:    "Upstream price failed validation",
	}
}

// BuildError converts a caught failure into a classified cart error,
// extracting any field violations it carries. Callers must never pass nil;
// doing so is an internal fault, not a classified outcome.
func (g *Gateway) BuildError(err error) (*domain.CartError, error) {
	if err == nil {
		return nil, errors.New("validation: BuildError called with nil error")
	}

	var failure *Failure
	if errors.As(err, &failure) {
		return &domain.CartError{
			StatusCode: http.StatusBadRequest,
			ErrorType:  failure.Kind,
			Violations: failure.Violations,
			Message:    failure.Message,
		}, nil
	}

	return &domain.CartError{
		StatusCode: http.StatusBadRequest,
		ErrorType:  domain.ValidationError,
		Message:    err.Error(),
	}, nil
}
