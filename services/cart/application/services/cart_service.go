package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgevents "github.com/ghuser/cartengine/pkg/events"
	"github.com/ghuser/cartengine/pkg/logger"
	"github.com/ghuser/cartengine/services/cart/application/validation"
	"github.com/ghuser/cartengine/services/cart/domain"
	cartevents "github.com/ghuser/cartengine/services/cart/domain/events"
	"github.com/ghuser/cartengine/services/cart/domain/models"
	"github.com/ghuser/cartengine/services/cart/domain/repositories"
	domainsvcs "github.com/ghuser/cartengine/services/cart/domain/services"
)

// CartService orchestrates the add/remove pipeline: input validation, price
// lookup, price validation, ledger mutation, totals. Every failure is
// converted into a classified error on the outcome envelope; nothing escapes
// to the caller as a raw fault, and the ledger is only mutated after both
// input and price have validated.
type CartService struct {
	gateway *validation.Gateway
	prices  domain.PriceSource
	ledger  repositories.Ledger
	calc    *domainsvcs.CartCalculator
	bus     *pkgevents.EventBus
	log     logger.Logger
	metrics *Metrics
}

// NewCartService wires the orchestrator. bus and metrics may be nil, which
// disables event publishing and instrumentation respectively.
func NewCartService(
	gateway *validation.Gateway,
	prices domain.PriceSource,
	ledger repositories.Ledger,
	calc *domainsvcs.CartCalculator,
	bus *pkgevents.EventBus,
	log logger.Logger,
	metrics *Metrics,
) *CartService {
	return &CartService{
		gateway: gateway,
		prices:  prices,
		ledger:  ledger,
		calc:    calc,
		bus:     bus,
		log:     log,
		metrics: metrics,
	}
}

// AddToCart validates the input, resolves the unit price upstream, validates
// the price, merges the product into the ledger, and returns the new snapshot
// with its totals. Any stage failure short-circuits to the error branch with
// the ledger untouched. Lookups are never retried.
func (s *CartService) AddToCart(ctx context.Context, in models.ProductIn) *domain.ConsolidatedCart {
	if err := s.gateway.CheckProduct(in); err != nil {
		return s.failValidation(ctx, err)
	}

	price, err := s.prices.GetPrice(ctx, in.Name)
	if err != nil {
		return s.failLookup(ctx, in.Name, err)
	}

	if err := s.gateway.CheckPrice(price); err != nil {
		return s.failValidation(ctx, err)
	}

	snapshot, err := s.ledger.AddProduct(in.Name, in.Quantity, price)
	if err != nil {
		return s.failValidation(ctx, err)
	}

	totals, err := s.calc.CalculateTotals(snapshot)
	if err != nil {
		return s.failInternal(ctx, err)
	}

	s.publishItemAdded(ctx, in, price)
	s.metrics.RecordAdd(ctx, in.Quantity)
	return &domain.ConsolidatedCart{Items: snapshot, Totals: &totals}
}

// RemoveFromCart validates the product-name shape and removes the product.
// Removing an absent product is not an error; the unchanged snapshot and its
// totals are returned. The item-removed event fires only when a record was
// actually deleted, keyed off the ledger's own removal result so concurrent
// removals of the same product publish at most once.
func (s *CartService) RemoveFromCart(ctx context.Context, in models.ProductRm) *domain.ConsolidatedCart {
	if err := s.gateway.CheckRemoval(in); err != nil {
		return s.failValidation(ctx, err)
	}

	snapshot, removed, err := s.ledger.RemoveProduct(in.Name)
	if err != nil {
		return s.failValidation(ctx, err)
	}

	totals, err := s.calc.CalculateTotals(snapshot)
	if err != nil {
		return s.failInternal(ctx, err)
	}

	if removed {
		s.publishItemRemoved(ctx, in.Name)
		s.metrics.RecordRemove(ctx)
	}
	return &domain.ConsolidatedCart{Items: snapshot, Totals: &totals}
}

// Summary returns the current ledger snapshot with its totals.
func (s *CartService) Summary(ctx context.Context) *domain.ConsolidatedCart {
	snapshot := s.ledger.Snapshot()
	totals, err := s.calc.CalculateTotals(snapshot)
	if err != nil {
		return s.failInternal(ctx, err)
	}
	return &domain.ConsolidatedCart{Items: snapshot, Totals: &totals}
}

// failValidation converts a constraint or ledger rejection into the error
// branch of the envelope.
func (s *CartService) failValidation(ctx context.Context, err error) *domain.ConsolidatedCart {
	cartErr, buildErr := s.gateway.BuildError(err)
	if buildErr != nil {
		return s.failInternal(ctx, buildErr)
	}
	s.log.WarnContext(ctx, "cart request rejected",
		"kind", cartErr.ErrorType, "violations", cartErr.Violations, "error", err)
	s.metrics.RecordFailure(ctx, cartErr.ErrorType)
	return &domain.ConsolidatedCart{Errors: cartErr}
}

// failLookup classifies a price lookup failure. Only an upstream "not found"
// keeps its own identity (and status); any other fault from the lookup is an
// unclassified internal fault.
func (s *CartService) failLookup(ctx context.Context, productName string, err error) *domain.ConsolidatedCart {
	var notFound *domain.PriceNotFoundError
	if errors.As(err, &notFound) {
		s.log.WarnContext(ctx, "product not found", "product", productName)
		cartErr := &domain.CartError{
			StatusCode: notFound.Status,
			ErrorType:  domain.NotFoundError,
			Message:    "Product " + productName + " not found",
		}
		s.metrics.RecordFailure(ctx, cartErr.ErrorType)
		return &domain.ConsolidatedCart{Errors: cartErr}
	}
	return s.failInternal(ctx, err)
}

func (s *CartService) failInternal(ctx context.Context, err error) *domain.ConsolidatedCart {
	s.log.ErrorContext(ctx, "cart request failed", "error", err)
	s.metrics.RecordFailure(ctx, domain.InternalError)
	return &domain.ConsolidatedCart{Errors: &domain.CartError{
		StatusCode: http.StatusInternalServerError,
		ErrorType:  domain.InternalError,
		Message:    "Internal Server Error",
	}}
}

// publishItemAdded emits a cart.item_added event. Publishing is best-effort:
// the mutation has already committed, so a publish failure is logged, not
// surfaced to the client.
func (s *CartService) publishItemAdded(ctx context.Context, in models.ProductIn, price decimal.Decimal) {
	if s.bus == nil {
		return
	}
	evt := cartevents.ItemAddedEvent{
		EventID:     uuid.New(),
		Version:     1,
		ProductName: in.Name,
		Quantity:    in.Quantity,
		Price:       price,
		OccurredAt:  time.Now().UTC(),
	}
	s.publish(ctx, cartevents.TopicItemAdded, evt)
}

func (s *CartService) publishItemRemoved(ctx context.Context, productName string) {
	if s.bus == nil {
		return
	}
	evt := cartevents.ItemRemovedEvent{
		EventID:     uuid.New(),
		Version:     1,
		ProductName: productName,
		OccurredAt:  time.Now().UTC(),
	}
	s.publish(ctx, cartevents.TopicItemRemoved, evt)
}

func (s *CartService) publish(ctx context.Context, topic string, evt any) {
	payload, err := json.Marshal(evt)
	if err != nil {
		s.log.ErrorContext(ctx, "marshal cart event", "topic", topic, "error", err)
		return
	}
	msg := message.NewMessage(uuid.NewString(), payload)
	if err := s.bus.Publish(ctx, topic, msg); err != nil {
		s.log.ErrorContext(ctx, "publish cart event", "topic", topic, "error", err)
	}
}
