package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// CartSummary is the rendered cart state handed to listeners and callers.
type CartSummary struct {
	Lines      []entity.CartLine `json:"lines"`
	TotalItems int               `json:"total_items"`
	TotalPrice float64           `json:"total_price"`
}

// CartListener receives the cart summary after every mutation.
type CartListener func(summary CartSummary)

// CartUsecase manages the session's shopping cart. Every mutating operation
// synchronously persists the full line list and notifies subscribed listeners;
// having no listeners is not an error.
type CartUsecase interface {
	// AddItem merges quantity into an existing line for the item or appends
	// a new one. Returns ErrItemNotFound for an unknown item identifier.
	AddItem(ctx context.Context, itemID int, quantity int) error

	// RemoveItem deletes the line for the item; a no-op when absent.
	RemoveItem(ctx context.Context, itemID int) error

	// UpdateQuantity sets the line's quantity to exactly the given value.
	// Non-positive values remove the line. A no-op when no line matches.
	UpdateQuantity(ctx context.Context, itemID int, quantity int) error

	// Clear empties the cart.
	Clear(ctx context.Context) error

	// Summary returns the current lines and totals.
	Summary(ctx context.Context) CartSummary

	// Snapshot copies the current lines into immutable order lines for
	// checkout hand-off.
	Snapshot(ctx context.Context) []entity.OrderLine

	// Subscribe registers a listener; the returned function unregisters it.
	Subscribe(listener CartListener) (unsubscribe func())
}
