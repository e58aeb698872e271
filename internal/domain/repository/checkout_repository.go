package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"
)

// ErrSessionNotFound is returned when no checkout session is in progress.
var ErrSessionNotFound = errors.New("checkout session not found")

// CheckoutSessionRepository persists the in-progress checkout state: the cart
// snapshot taken when checkout began and the session's order number.
type CheckoutSessionRepository interface {
	// SaveSession overwrites the persisted session.
	SaveSession(ctx context.Context, session *entity.CheckoutSession) error

	// LoadSession returns the current session, or ErrSessionNotFound.
	LoadSession(ctx context.Context) (*entity.CheckoutSession, error)

	// Clear removes the session after an order is finalized.
	Clear(ctx context.Context) error
}
