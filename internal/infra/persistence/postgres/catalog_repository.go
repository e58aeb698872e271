package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// catalogSnapshotRepository implements the repository.CatalogSnapshotRepository interface.
type catalogSnapshotRepository struct {
	db *gorm.DB
}

// NewCatalogSnapshotRepository is the constructor for catalogSnapshotRepository.
func NewCatalogSnapshotRepository(db *gorm.DB) repository.CatalogSnapshotRepository {
	return &catalogSnapshotRepository{
		db: db,
	}
}

// SaveSnapshot overwrites the persisted snapshot with the given records.
func (repo *catalogSnapshotRepository) SaveSnapshot(ctx context.Context, records []entity.CatalogRecord) error {
	if err := saveDocument(ctx, repo.db, model.KeyCatalogSnapshot, records); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save catalog snapshot")
	}

	return nil
}

// LoadSnapshot returns the persisted records, or ErrSnapshotNotFound.
func (repo *catalogSnapshotRepository) LoadSnapshot(ctx context.Context) ([]entity.CatalogRecord, error) {
	var records []entity.CatalogRecord

	err := loadDocument(ctx, repo.db, model.KeyCatalogSnapshot, &records)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSnapshotNotFound
		}
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to load catalog snapshot")
	}

	return records, nil
}
