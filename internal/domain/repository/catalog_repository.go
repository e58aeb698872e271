package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"
)

// ErrSnapshotNotFound is returned when no imported catalog snapshot exists.
var ErrSnapshotNotFound = errors.New("catalog snapshot not found")

// CatalogSnapshotRepository persists the most recent imported catalog so a
// restart can rehydrate the store without re-fetching the spreadsheet.
type CatalogSnapshotRepository interface {
	// SaveSnapshot overwrites the persisted snapshot with the given records.
	SaveSnapshot(ctx context.Context, records []entity.CatalogRecord) error

	// LoadSnapshot returns the persisted records, or ErrSnapshotNotFound.
	LoadSnapshot(ctx context.Context) ([]entity.CatalogRecord, error)
}
