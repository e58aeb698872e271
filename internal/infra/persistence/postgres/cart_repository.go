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

// cartRepository implements the repository.CartRepository interface.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{
		db: db,
	}
}

// SaveLines overwrites the persisted line list with the given one.
func (repo *cartRepository) SaveLines(ctx context.Context, lines []entity.StoredCartLine) error {
	if err := saveDocument(ctx, repo.db, model.KeyCart, lines); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save cart")
	}

	return nil
}

// LoadLines returns the persisted line list, or an empty slice when nothing
// has been persisted yet.
func (repo *cartRepository) LoadLines(ctx context.Context) ([]entity.StoredCartLine, error) {
	var lines []entity.StoredCartLine

	err := loadDocument(ctx, repo.db, model.KeyCart, &lines)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []entity.StoredCartLine{}, nil
		}
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to load cart")
	}

	return lines, nil
}

// Clear removes the persisted line list.
func (repo *cartRepository) Clear(ctx context.Context) error {
	if err := deleteDocument(ctx, repo.db, model.KeyCart); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear cart")
	}

	return nil
}
