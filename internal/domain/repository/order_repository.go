package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"
)

// ErrOrderNotFound is returned when no order matches the lookup.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository persists finalized orders: an append-only history list plus
// a separate "most recent order" slot for quick retrieval.
type OrderRepository interface {
	// AppendOrder adds the order to the history list.
	AppendOrder(ctx context.Context, order *entity.Order) error

	// SaveLastOrder overwrites the most-recent-order slot.
	SaveLastOrder(ctx context.Context, order *entity.Order) error

	// FindLastOrder returns the most recent order, or ErrOrderNotFound.
	FindLastOrder(ctx context.Context) (*entity.Order, error)

	// FindOrderByNumber scans the history for the given order number,
	// returning ErrOrderNotFound when absent.
	FindOrderByNumber(ctx context.Context, number string) (*entity.Order, error)

	// ListOrders returns the full history in submission order.
	ListOrders(ctx context.Context) ([]*entity.Order, error)
}
