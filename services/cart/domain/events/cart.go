package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Watermill topics published after successful ledger mutations.
const (
	TopicItemAdded   = "cart.item_added"
	TopicItemRemoved = "cart.item_removed"
)

// ItemAddedEvent is published after a product has been merged into the ledger.
type ItemAddedEvent struct {
	EventID     uuid.UUID       `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int             `json:"version"`  // Schema version; increment on breaking changes
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"` // quantity added by this request, not the running total
	Price       decimal.Decimal `json:"price"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// ItemRemovedEvent is published after a removal request has been applied to
// the ledger.
type ItemRemovedEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	Version     int       `json:"version"`
	ProductName string    `json:"product_name"`
	OccurredAt  time.Time `json:"occurred_at"`
}
