// Package usecase defines the application's use case interfaces.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// CatalogUsecase is the process-wide catalog store: an in-memory item list
// loaded from an external source and replaced wholesale by imports.
type CatalogUsecase interface {
	// Reload replaces the item list from the JSON catalog source and
	// returns the number of loaded items. On failure the previous list is
	// kept untouched.
	Reload(ctx context.Context) (int, error)

	// GetByID returns the item with the given identifier, or ErrItemNotFound.
	GetByID(ctx context.Context, id int) (*entity.CatalogItem, error)

	// GetAll returns the current item list in load order.
	GetAll(ctx context.Context) []*entity.CatalogItem

	// GetByCategory filters items by exact category match.
	GetByCategory(ctx context.Context, category string) []*entity.CatalogItem

	// NextGeneration reserves a replacement generation token. Tokens are
	// monotonically increasing; a replace carrying a token older than the
	// last applied one is rejected, so a slow import cannot overwrite a
	// newer result.
	NextGeneration() uint64

	// ReplaceAll rebuilds the item list from raw records under the given
	// generation token and persists the imported-catalog snapshot.
	ReplaceAll(ctx context.Context, generation uint64, records []entity.CatalogRecord) error
}
