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

// orderRepository implements the repository.OrderRepository interface.
//
// Orders live in two documents: an append-only history list and a separate
// slot holding the most recent order, so the common "show my last order"
// lookup does not scan the history.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// AppendOrder adds the order to the history list.
func (repo *orderRepository) AppendOrder(ctx context.Context, order *entity.Order) error {
	var history []*entity.Order

	err := loadDocument(ctx, repo.db, model.KeyOrderHistory, &history)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return domainerrors.NewDatabaseExecuteError(err, "failed to load order history")
	}

	history = append(history, order)
	if err := saveDocument(ctx, repo.db, model.KeyOrderHistory, history); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save order history")
	}

	return nil
}

// SaveLastOrder overwrites the most-recent-order slot.
func (repo *orderRepository) SaveLastOrder(ctx context.Context, order *entity.Order) error {
	if err := saveDocument(ctx, repo.db, model.KeyLastOrder, order); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save last order")
	}

	return nil
}

// FindLastOrder returns the most recent order, or ErrOrderNotFound.
func (repo *orderRepository) FindLastOrder(ctx context.Context) (*entity.Order, error) {
	var order entity.Order

	err := loadDocument(ctx, repo.db, model.KeyLastOrder, &order)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to load last order")
	}

	return &order, nil
}

// FindOrderByNumber scans the history for the given order number.
func (repo *orderRepository) FindOrderByNumber(ctx context.Context, number string) (*entity.Order, error) {
	history, err := repo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	for _, order := range history {
		if order.Number == number {
			return order, nil
		}
	}

	return nil, repository.ErrOrderNotFound
}

// ListOrders returns the full history in submission order.
func (repo *orderRepository) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	var history []*entity.Order

	err := loadDocument(ctx, repo.db, model.KeyOrderHistory, &history)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []*entity.Order{}, nil
		}
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to load order history")
	}

	return history, nil
}
