package services

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ghuser/cartengine/services/cart/domain"
)

// Metrics holds the OTel instruments for the cart pipeline. All methods are
// nil-safe so tests can run without instrumentation.
type Metrics struct {
	unitsAdded   metric.Int64Counter
	itemsRemoved metric.Int64Counter
	failures     metric.Int64Counter
}

// NewMetrics registers the cart counters on the global meter provider.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter("github.com/ghuser/cartengine/services/cart")

	unitsAdded, err := meter.Int64Counter("cart.units.added",
		metric.WithDescription("Units merged into the cart ledger"))
	if err != nil {
		return nil, fmt.Errorf("cart metrics: %w", err)
	}
	itemsRemoved, err := meter.Int64Counter("cart.items.removed",
		metric.WithDescription("Products removed from the cart ledger"))
	if err != nil {
		return nil, fmt.Errorf("cart metrics: %w", err)
	}
	failures, err := meter.Int64Counter("cart.requests.failed",
		metric.WithDescription("Cart requests that ended in a classified error"))
	if err != nil {
		return nil, fmt.Errorf("cart metrics: %w", err)
	}

	return &Metrics{unitsAdded: unitsAdded, itemsRemoved: itemsRemoved, failures: failures}, nil
}

// RecordAdd counts units merged into the ledger.
func (m *Metrics) RecordAdd(ctx context.Context, quantity int) {
	if m == nil {
		return
	}
	m.unitsAdded.Add(ctx, int64(quantity))
}

// RecordRemove counts a product removal.
func (m *Metrics) RecordRemove(ctx context.Context) {
	if m == nil {
		return
	}
	m.itemsRemoved.Add(ctx, 1)
}

// RecordFailure counts a classified failure, labelled by kind.
func (m *Metrics) RecordFailure(ctx context.Context, kind domain.ErrorKind) {
	if m == nil {
		return
	}
	m.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", string(kind))))
}
