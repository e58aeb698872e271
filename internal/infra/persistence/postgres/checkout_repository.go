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

// checkoutSessionRepository implements the repository.CheckoutSessionRepository interface.
type checkoutSessionRepository struct {
	db *gorm.DB
}

// NewCheckoutSessionRepository is the constructor for checkoutSessionRepository.
func NewCheckoutSessionRepository(db *gorm.DB) repository.CheckoutSessionRepository {
	return &checkoutSessionRepository{
		db: db,
	}
}

// SaveSession overwrites the persisted session.
func (repo *checkoutSessionRepository) SaveSession(ctx context.Context, session *entity.CheckoutSession) error {
	if err := saveDocument(ctx, repo.db, model.KeyCheckoutSession, session); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save checkout session")
	}

	return nil
}

// LoadSession returns the current session, or ErrSessionNotFound.
func (repo *checkoutSessionRepository) LoadSession(ctx context.Context) (*entity.CheckoutSession, error) {
	var session entity.CheckoutSession

	err := loadDocument(ctx, repo.db, model.KeyCheckoutSession, &session)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to load checkout session")
	}

	return &session, nil
}

// Clear removes the session after an order is finalized.
func (repo *checkoutSessionRepository) Clear(ctx context.Context) error {
	if err := deleteDocument(ctx, repo.db, model.KeyCheckoutSession); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear checkout session")
	}

	return nil
}
