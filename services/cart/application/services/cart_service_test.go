package services

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/shopspring/decimal"

	"github.com/ghuser/cartengine/pkg/config"
	pkgevents "github.com/ghuser/cartengine/pkg/events"
	"github.com/ghuser/cartengine/pkg/logger"
	"github.com/ghuser/cartengine/services/cart/application/validation"
	"github.com/ghuser/cartengine/services/cart/domain"
	cartevents "github.com/ghuser/cartengine/services/cart/domain/events"
	"github.com/ghuser/cartengine/services/cart/domain/models"
	domainsvcs "github.com/ghuser/cartengine/services/cart/domain/services"
	"github.com/ghuser/cartengine/services/cart/infrastructure/memory"
)

// stubSource is a PriceSource with a fixed answer per product name.
type stubSource struct {
	prices map[string]decimal.Decimal
	err    error
}

func (s *stubSource) GetPrice(_ context.Context, productName string) (decimal.Decimal, error) {
	if s.err != nil {
		return decimal.Decimal{}, s.err
	}
	price, ok := s.prices[productName]
	if !ok {
		return decimal.Decimal{}, &domain.PriceNotFoundError{Product: productName, Status: http.StatusNotFound}
	}
	return price, nil
}

func newTestService(t *testing.T, source domain.PriceSource) *CartService {
	t.Helper()
	tax, err := domainsvcs.NewTaxCalculator(decimal.RequireFromString("12.5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log := logger.New(&config.Config{LogLevel: "error"})
	return NewCartService(
		validation.NewGateway(),
		source,
		memory.NewLedger(),
		domainsvcs.NewCartCalculator(tax),
		nil,
		log,
		nil,
	)
}

func prices(kv map[string]string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(kv))
	for k, v := range kv {
		out[k] = decimal.RequireFromString(v)
	}
	return out
}

func TestAddToCart(t *testing.T) {
	ctx := context.Background()

	t.Run("adds a product and computes totals", func(t *testing.T) {
		svc := newTestService(t, &stubSource{prices: prices(map[string]string{"cornflakes": "2.52"})})

		outcome := svc.AddToCart(ctx, models.ProductIn{Name: "cornflakes", Quantity: 3})
		if !outcome.Succeeded() {
			t.Fatalf("expected success, got %+v", outcome.Errors)
		}
		if outcome.HTTPStatus() != http.StatusOK {
			t.Fatalf("expected 200, got %d", outcome.HTTPStatus())
		}
		if got := outcome.QuantityFor("cornflakes"); got != 3 {
			t.Fatalf("expected quantity 3, got %d", got)
		}
		if got := outcome.Totals.SubTotal.StringFixed(2); got != "7.56" {
			t.Fatalf("expected subtotal 7.56, got %s", got)
		}
		if got := outcome.Totals.Tax.StringFixed(2); got != "0.95" {
			t.Fatalf("expected tax 0.95, got %s", got)
		}
		if got := outcome.Totals.Total.StringFixed(2); got != "8.51" {
			t.Fatalf("expected total 8.51, got %s", got)
		}
	})

	t.Run("re-adding merges quantity and keeps the first price", func(t *testing.T) {
		source := &stubSource{prices: prices(map[string]string{"cornflakes": "2.52"})}
		svc := newTestService(t, source)

		if outcome := svc.AddToCart(ctx, models.ProductIn{Name: "cornflakes", Quantity: 1}); !outcome.Succeeded() {
			t.Fatalf("expected success, got %+v", outcome.Errors)
		}

		// Price changes upstream between the two adds.
		source.prices["cornflakes"] = decimal.RequireFromString("9.99")

		outcome := svc.AddToCart(ctx, models.ProductIn{Name: "cornflakes", Quantity: 2})
		if !outcome.Succeeded() {
			t.Fatalf("expected success, got %+v", outcome.Errors)
		}
		if got := outcome.QuantityFor("cornflakes"); got != 3 {
			t.Fatalf("expected quantity 3, got %d", got)
		}
		price, _ := outcome.PriceFor("cornflakes")
		if want := decimal.RequireFromString("2.52"); !price.Equal(want) {
			t.Fatalf("expected stored price %s, got %s", want, price)
		}
	})

	t.Run("invalid input classifies as VALIDATION_ERROR and skips the lookup", func(t *testing.T) {
		svc := newTestService(t, &stubSource{err: fmt.Errorf("lookup must not happen")})

		outcome := svc.AddToCart(ctx, models.ProductIn{Name: "ab", Quantity: 0})
		if outcome.Succeeded() {
			t.Fatal("expected failure")
		}
		if outcome.Errors.ErrorType != domain.ValidationError {
			t.Fatalf("expected VALIDATION_ERROR, got %s", outcome.Errors.ErrorType)
		}
		if outcome.HTTPStatus() != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", outcome.HTTPStatus())
		}
		if len(outcome.Errors.Violations) == 0 {
			t.Fatal("expected field violations")
		}
	})

	t.Run("unknown product classifies as NOT_FOUND_ERROR", func(t *testing.T) {
		svc := newTestService(t, &stubSource{prices: prices(nil)})

		outcome := svc.AddToCart(ctx, models.ProductIn{Name: "cheerios", Quantity: 1})
		if outcome.Succeeded() {
			t.Fatal("expected failure")
		}
		if outcome.Errors.ErrorType != domain.NotFoundError {
			t.Fatalf("expected NOT_FOUND_ERROR, got %s", outcome.Errors.ErrorType)
		}
		if outcome.HTTPStatus() != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", outcome.HTTPStatus())
		}
		if want := "Product cheerios not found"; outcome.Errors.Message != want {
			t.Fatalf("expected message %q, got %q", want, outcome.Errors.Message)
		}
	})

	t.Run("upstream rejection classifies as INTERNAL_ERROR", func(t *testing.T) {
		svc := newTestService(t, &stubSource{
			err: &domain.PriceRequestError{Product: "cornflakes", Status: http.StatusBadRequest},
		})

		outcome := svc.AddToCart(ctx, models.ProductIn{Name: "cornflakes", Quantity: 1})
		if outcome.Errors == nil || outcome.Errors.ErrorType != domain.InternalError {
			t.Fatalf("expected INTERNAL_ERROR, got %+v", outcome.Errors)
		}
		if outcome.HTTPStatus() != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", outcome.HTTPStatus())
		}
		if want := "Internal Server Error"; outcome.Errors.Message != want {
			t.Fatalf("expected message %q, got %q", want, outcome.Errors.Message)
		}
	})

	t.Run("transport fault classifies as INTERNAL_ERROR", func(t *testing.T) {
		svc := newTestService(t, &stubSource{
			err: fmt.Errorf("lookup: %w", domain.ErrPriceUnavailable),
		})

		outcome := svc.AddToCart(ctx, models.ProductIn{Name: "cornflakes", Quantity: 1})
		if outcome.Errors == nil || outcome.Errors.ErrorType != domain.InternalError {
			t.Fatalf("expected INTERNAL_ERROR, got %+v", outcome.Errors)
		}
	})

	t.Run("non-positive upstream price classifies as PRICE_SERVICE_ERROR", func(t *testing.T) {
		svc := newTestService(t, &stubSource{prices: prices(map[string]string{"cornflakes": "0"})})

		outcome := svc.AddToCart(ctx, models.ProductIn{Name: "cornflakes", Quantity: 1})
		if outcome.Errors == nil || outcome.Errors.ErrorType != domain.PriceServiceError {
			t.Fatalf("expected PRICE_SERVICE_ERROR, got %+v", outcome.Errors)
		}
		if outcome.HTTPStatus() != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", outcome.HTTPStatus())
		}
	})

	t.Run("failed add leaves the cart untouched", func(t *testing.T) {
		source := &stubSource{prices: prices(map[string]string{"cornflakes": "2.52"})}
		svc := newTestService(t, source)

		if outcome := svc.AddToCart(ctx, models.ProductIn{Name: "cornflakes", Quantity: 1}); !outcome.Succeeded() {
			t.Fatalf("expected success, got %+v", outcome.Errors)
		}
		if outcome := svc.AddToCart(ctx, models.ProductIn{Name: "cheerios", Quantity: 1}); outcome.Succeeded() {
			t.Fatal("expected failure")
		}

		summary := svc.Summary(ctx)
		if got := summary.CategorisedItemCount(); got != 1 {
			t.Fatalf("expected 1 product, got %d", got)
		}
	})
}

func TestRemoveFromCart(t *testing.T) {
	ctx := context.Background()

	t.Run("removes an existing product and recomputes totals", func(t *testing.T) {
		svc := newTestService(t, &stubSource{prices: prices(map[string]string{
			"cornflakes": "2.52",
			"weetabix":   "9.98",
		})})
		svc.AddToCart(ctx, models.ProductIn{Name: "cornflakes", Quantity: 2})
		svc.AddToCart(ctx, models.ProductIn{Name: "weetabix", Quantity: 1})

		outcome := svc.RemoveFromCart(ctx, models.ProductRm{Name: "weetabix"})
		if !outcome.Succeeded() {
			t.Fatalf("expected success, got %+v", outcome.Errors)
		}
		if outcome.ContainsProduct("weetabix") {
			t.Fatal("expected weetabix to be removed")
		}
		if got := outcome.Totals.SubTotal.StringFixed(2); got != "5.04" {
			t.Fatalf("expected subtotal 5.04, got %s", got)
		}
	})

	t.Run("removing an absent product succeeds with the unchanged cart", func(t *testing.T) {
		svc := newTestService(t, &stubSource{prices: prices(map[string]string{"cornflakes": "2.52"})})
		svc.AddToCart(ctx, models.ProductIn{Name: "cornflakes", Quantity: 2})

		outcome := svc.RemoveFromCart(ctx, models.ProductRm{Name: "cheerios"})
		if !outcome.Succeeded() {
			t.Fatalf("expected success, got %+v", outcome.Errors)
		}
		if got := outcome.QuantityFor("cornflakes"); got != 2 {
			t.Fatalf("expected quantity 2, got %d", got)
		}
	})

	t.Run("blank name classifies as VALIDATION_ERROR", func(t *testing.T) {
		svc := newTestService(t, &stubSource{prices: prices(nil)})

		outcome := svc.RemoveFromCart(ctx, models.ProductRm{Name: ""})
		if outcome.Errors == nil || outcome.Errors.ErrorType != domain.ValidationError {
			t.Fatalf("expected VALIDATION_ERROR, got %+v", outcome.Errors)
		}
	})
}

// The item-removed event is keyed off the ledger's own removal result, so a
// remove of an absent product never publishes and only the call that actually
// deleted the record does.
func TestRemoveFromCartPublishesOncePerDeletion(t *testing.T) {
	ctx := context.Background()

	tax, err := domainsvcs.NewTaxCalculator(decimal.RequireFromString("12.5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log := logger.New(&config.Config{LogLevel: "error"})
	bus := pkgevents.NewEventBus(log)
	defer bus.Close()

	received := make(chan struct{}, 4)
	if _, err := bus.Subscribe(ctx, cartevents.TopicItemRemoved, func(context.Context, *message.Message) error {
		received <- struct{}{}
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc := NewCartService(
		validation.NewGateway(),
		&stubSource{prices: prices(map[string]string{"cornflakes": "2.52"})},
		memory.NewLedger(),
		domainsvcs.NewCartCalculator(tax),
		bus,
		log,
		nil,
	)

	if outcome := svc.AddToCart(ctx, models.ProductIn{Name: "cornflakes", Quantity: 1}); !outcome.Succeeded() {
		t.Fatalf("expected success, got %+v", outcome.Errors)
	}
	if outcome := svc.RemoveFromCart(ctx, models.ProductRm{Name: "cheerios"}); !outcome.Succeeded() {
		t.Fatalf("expected success, got %+v", outcome.Errors)
	}
	if outcome := svc.RemoveFromCart(ctx, models.ProductRm{Name: "cornflakes"}); !outcome.Succeeded() {
		t.Fatalf("expected success, got %+v", outcome.Errors)
	}

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("expected an item-removed event")
	}
	select {
	case <-received:
		t.Fatal("expected exactly one item-removed event")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, &stubSource{prices: prices(map[string]string{"cornflakes": "2.52"})})

	t.Run("empty cart has zero totals", func(t *testing.T) {
		outcome := svc.Summary(ctx)
		if !outcome.Succeeded() {
			t.Fatalf("expected success, got %+v", outcome.Errors)
		}
		if got := outcome.Totals.Total.StringFixed(2); got != "0.00" {
			t.Fatalf("expected total 0.00, got %s", got)
		}
	})

	t.Run("reflects the current ledger", func(t *testing.T) {
		svc.AddToCart(ctx, models.ProductIn{Name: "cornflakes", Quantity: 3})

		outcome := svc.Summary(ctx)
		if got := outcome.TotalItemsCount(); got != 3 {
			t.Fatalf("expected 3 units, got %d", got)
		}
		if got := outcome.Totals.Total.StringFixed(2); got != "8.51" {
			t.Fatalf("expected total 8.51, got %s", got)
		}
	})
}
