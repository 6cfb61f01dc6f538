package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the sweet bounded context.
const (
	// TopicSweetCreated is published when a Sweet is created.
	TopicSweetCreated = "sweet.created"

	// TopicStockChanged is published after every successful purchase or restock.
	TopicStockChanged = "sweet.stock_changed"
)

// Stock change reasons carried in StockChangedEvent.Reason.
const (
	ReasonPurchase = "purchase"
	ReasonRestock  = "restock"
)

// SweetCreatedEvent is published after a new Sweet is persisted.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicSweetCreated).
type SweetCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	SweetID    uuid.UUID `json:"sweet_id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Price      float64   `json:"price"`
	Quantity   int       `json:"quantity"`
	OccurredAt time.Time `json:"occurred_at"`
}

// StockChangedEvent is published after a purchase or restock commits.
// Quantity is the post-mutation quantity on hand, not the delta.
type StockChangedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	SweetID    uuid.UUID `json:"sweet_id"`
	Quantity   int       `json:"quantity"`
	Delta      int       `json:"delta"` // negative for purchases, positive for restocks
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}
