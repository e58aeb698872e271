package impl

import (
	"context"
	"log/slog"
	"sync"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cartService keeps the live cart in memory and mirrors every mutation to the
// cart repository. Listeners are notified after the mutation is applied, with
// the lock released, so a listener may call back into the service.
type cartService struct {
	mu    sync.Mutex
	lines []entity.CartLine

	listeners      map[int]usecase.CartListener
	nextListenerID int

	catalog  usecase.CatalogUsecase
	cartRepo repository.CartRepository
	logger   *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	Lc       fx.Lifecycle
	Catalog  usecase.CatalogUsecase
	CartRepo repository.CartRepository
	Logger   *slog.Logger
}

// NewCartService creates a new cart service instance.
//
// On startup it rehydrates the persisted line list, dropping lines whose item
// no longer exists in the catalog.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	svc := &cartService{
		listeners: make(map[int]usecase.CartListener),
		catalog:   params.Catalog,
		cartRepo:  params.CartRepo,
		logger:    params.Logger,
	}

	params.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			svc.rehydrate(ctx)

			return nil
		},
	})

	return svc
}

// rehydrate restores the cart from its persisted form. Lines referencing
// items that vanished from the catalog are dropped silently, matching how a
// stale cart behaves after the menu changes.
func (s *cartService) rehydrate(ctx context.Context) {
	stored, err := s.cartRepo.LoadLines(ctx)
	if err != nil {
		s.logger.Warn("Failed to load persisted cart, starting empty",
			slog.Any("error", err),
		)

		return
	}

	var lines []entity.CartLine
	dropped := 0
	for _, sl := range stored {
		item, err := s.catalog.GetByID(ctx, sl.ItemID)
		if err != nil {
			dropped++

			continue
		}
		lines = append(lines, entity.CartLine{Item: item, Quantity: sl.Quantity})
	}

	s.mu.Lock()
	s.lines = lines
	s.mu.Unlock()

	if dropped > 0 {
		s.logger.Info("Dropped cart lines for missing items",
			slog.Int("dropped", dropped),
		)
	}
}

// AddItem merges quantity into an existing line for the item or appends a new
// one.
func (s *cartService) AddItem(ctx context.Context, itemID int, quantity int) error {
	if quantity <= 0 {
		return nil
	}

	item, err := s.catalog.GetByID(ctx, itemID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	merged := false
	for i := range s.lines {
		if s.lines[i].Item.ID == itemID {
			s.lines[i].Quantity += quantity
			merged = true

			break
		}
	}
	if !merged {
		s.lines = append(s.lines, entity.CartLine{Item: item, Quantity: quantity})
	}
	stored := s.storedLinesLocked()
	summary := s.summaryLocked()
	s.mu.Unlock()

	s.notify(summary)

	return s.persist(ctx, stored)
}

// RemoveItem deletes the line for the item. Persists and notifies even when
// the item is absent.
func (s *cartService) RemoveItem(ctx context.Context, itemID int) error {
	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].Item.ID == itemID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)

			break
		}
	}
	stored := s.storedLinesLocked()
	summary := s.summaryLocked()
	s.mu.Unlock()

	s.notify(summary)

	return s.persist(ctx, stored)
}

// UpdateQuantity sets the line's quantity to exactly the given value.
// Non-positive values remove the line. Persists and notifies even when the
// quantity already matches.
func (s *cartService) UpdateQuantity(ctx context.Context, itemID int, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, itemID)
	}

	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].Item.ID == itemID {
			s.lines[i].Quantity = quantity

			break
		}
	}
	stored := s.storedLinesLocked()
	summary := s.summaryLocked()
	s.mu.Unlock()

	s.notify(summary)

	return s.persist(ctx, stored)
}

// Clear empties the cart.
func (s *cartService) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.lines = nil
	summary := s.summaryLocked()
	s.mu.Unlock()

	s.notify(summary)

	if err := s.cartRepo.Clear(ctx); err != nil {
		return errors.Wrap(err, "failed to clear persisted cart")
	}

	return nil
}

// Summary returns the current lines and totals.
func (s *cartService) Summary(_ context.Context) usecase.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.summaryLocked()
}

// Snapshot copies the current lines into immutable order lines.
func (s *cartService) Snapshot(_ context.Context) []entity.OrderLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.OrderLine, 0, len(s.lines))
	for _, line := range s.lines {
		out = append(out, entity.OrderLine{
			ItemID:   line.Item.ID,
			Name:     line.Item.Name,
			Price:    line.Item.Price,
			Quantity: line.Quantity,
		})
	}

	return out
}

// Subscribe registers a listener; the returned function unregisters it.
func (s *cartService) Subscribe(listener usecase.CartListener) func() {
	s.mu.Lock()
	id := s.nextListenerID
	s.nextListenerID++
	s.listeners[id] = listener
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// summaryLocked renders the current state. Callers must hold mu.
func (s *cartService) summaryLocked() usecase.CartSummary {
	summary := usecase.CartSummary{
		Lines: make([]entity.CartLine, len(s.lines)),
	}
	copy(summary.Lines, s.lines)
	for _, line := range s.lines {
		summary.TotalItems += line.Quantity
		summary.TotalPrice += line.Total()
	}

	return summary
}

// storedLinesLocked converts the live lines to their persisted form. Callers
// must hold mu.
func (s *cartService) storedLinesLocked() []entity.StoredCartLine {
	stored := make([]entity.StoredCartLine, 0, len(s.lines))
	for _, line := range s.lines {
		stored = append(stored, entity.StoredCartLine{
			ItemID:   line.Item.ID,
			Quantity: line.Quantity,
		})
	}

	return stored
}

// notify fans the summary out to listeners outside the lock.
func (s *cartService) notify(summary usecase.CartSummary) {
	s.mu.Lock()
	listeners := make([]usecase.CartListener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(summary)
	}
}

// persist mirrors the line list to the repository. The in-memory mutation is
// already applied; a persistence failure is surfaced but does not undo it.
func (s *cartService) persist(ctx context.Context, stored []entity.StoredCartLine) error {
	if err := s.cartRepo.SaveLines(ctx, stored); err != nil {
		return errors.Wrap(err, "failed to persist cart")
	}

	return nil
}
