// Package repository defines the interfaces for the persistence layer.
//
// The storefront persists its state the way the browser original did: one
// logical table per fixed key, each holding a single JSON document that is
// overwritten wholesale on every write (last write wins).
package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

// CartRepository persists the full cart line list under a fixed key.
type CartRepository interface {
	// SaveLines overwrites the persisted line list with the given one.
	SaveLines(ctx context.Context, lines []entity.StoredCartLine) error

	// LoadLines returns the persisted line list, or an empty slice when
	// nothing has been persisted yet.
	LoadLines(ctx context.Context) ([]entity.StoredCartLine, error)

	// Clear removes the persisted line list.
	Clear(ctx context.Context) error
}
