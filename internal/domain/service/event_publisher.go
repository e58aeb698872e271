package service

import (
	"context"
)

// OrderPlacedEvent is published after an order has been finalized, for
// downstream consumers such as kitchen displays or fulfillment dashboards.
type OrderPlacedEvent struct {
	RequestID    string  `json:"request_id,omitempty"` // For distributed tracing
	OrderID      string  `json:"order_id"`
	OrderNumber  string  `json:"order_number"`
	Delivery     string  `json:"delivery"`
	ItemCount    int     `json:"item_count"`
	Subtotal     float64 `json:"subtotal"`
	DeliveryCost float64 `json:"delivery_cost"`
	Total        float64 `json:"total"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderPlaced publishes an order-placed event for async processing
	PublishOrderPlaced(ctx context.Context, event *OrderPlacedEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
