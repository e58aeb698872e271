// Package impl contains the concrete implementations of the use case interfaces.
package impl

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService holds the in-memory catalog. The item list is replaced
// wholesale by Reload and ReplaceAll; readers always see either the old list
// or the new one, never a partial state.
type catalogService struct {
	mu    sync.RWMutex
	items []*entity.CatalogItem
	byID  map[int]*entity.CatalogItem

	// appliedGen is the generation of the last applied replacement; nextGen
	// hands out tokens. A replacement older than appliedGen is rejected so a
	// slow import cannot overwrite a newer result.
	appliedGen uint64
	nextGen    atomic.Uint64

	source       service.CatalogSource
	snapshotRepo repository.CatalogSnapshotRepository
	logger       *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	Lc           fx.Lifecycle
	Source       service.CatalogSource
	SnapshotRepo repository.CatalogSnapshotRepository
	Logger       *slog.Logger
}

// NewCatalogService creates a new catalog service instance.
//
// On startup it rehydrates from the persisted import snapshot when one
// exists, otherwise from the JSON catalog source. A failed startup load is
// logged and leaves the catalog empty; it never aborts the application.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	svc := &catalogService{
		byID:         make(map[int]*entity.CatalogItem),
		source:       params.Source,
		snapshotRepo: params.SnapshotRepo,
		logger:       params.Logger,
	}

	params.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			svc.rehydrate(ctx)

			return nil
		},
	})

	return svc
}

// rehydrate fills the catalog on startup: the persisted import snapshot wins
// over the base catalog document, because an import is always newer.
func (s *catalogService) rehydrate(ctx context.Context) {
	records, err := s.snapshotRepo.LoadSnapshot(ctx)
	if err == nil {
		s.apply(s.NextGeneration(), records)
		s.logger.Info("Catalog rehydrated from import snapshot",
			slog.Int("items", len(records)),
		)

		return
	}
	if !errors.Is(err, repository.ErrSnapshotNotFound) {
		s.logger.Warn("Failed to load catalog snapshot",
			slog.Any("error", err),
		)
	}

	count, err := s.Reload(ctx)
	if err != nil {
		s.logger.Warn("Startup catalog load failed, starting empty",
			slog.Any("error", err),
		)

		return
	}

	s.logger.Info("Catalog loaded from source", slog.Int("items", count))
}

// Reload replaces the item list from the JSON catalog source. On failure the
// previous list is kept untouched.
func (s *catalogService) Reload(ctx context.Context) (int, error) {
	generation := s.NextGeneration()

	records, err := s.source.FetchRecords(ctx)
	if err != nil {
		return 0, domainerrors.ErrCatalogLoadFailed.WrapMessage(err.Error())
	}

	if err := s.apply(generation, records); err != nil {
		return 0, err
	}

	return len(records), nil
}

// GetByID returns the item with the given identifier, or ErrItemNotFound.
func (s *catalogService) GetByID(_ context.Context, id int) (*entity.CatalogItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.byID[id]
	if !ok {
		return nil, domainerrors.ErrItemNotFound
	}

	return item, nil
}

// GetAll returns the current item list in load order.
func (s *catalogService) GetAll(_ context.Context) []*entity.CatalogItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.CatalogItem, len(s.items))
	copy(out, s.items)

	return out
}

// GetByCategory filters items by exact category match.
func (s *catalogService) GetByCategory(_ context.Context, category string) []*entity.CatalogItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*entity.CatalogItem
	for _, item := range s.items {
		if item.Category == category {
			out = append(out, item)
		}
	}

	return out
}

// NextGeneration reserves a replacement generation token.
func (s *catalogService) NextGeneration() uint64 {
	return s.nextGen.Add(1)
}

// ReplaceAll rebuilds the item list from raw records under the given
// generation token and persists the imported-catalog snapshot.
func (s *catalogService) ReplaceAll(ctx context.Context, generation uint64, records []entity.CatalogRecord) error {
	if err := s.apply(generation, records); err != nil {
		return err
	}

	// The in-memory replacement already happened; a failed snapshot write
	// only costs rehydration after a restart, so it is logged, not fatal.
	if err := s.snapshotRepo.SaveSnapshot(ctx, records); err != nil {
		s.logger.Warn("Failed to persist catalog snapshot",
			slog.Any("error", err),
		)
	}

	return nil
}

// apply swaps in a new item list built from records, rejecting stale
// generations.
func (s *catalogService) apply(generation uint64, records []entity.CatalogRecord) error {
	items := make([]*entity.CatalogItem, 0, len(records))
	byID := make(map[int]*entity.CatalogItem, len(records))
	for _, rec := range records {
		item := entity.NewCatalogItem(rec)
		items = append(items, item)
		byID[item.ID] = item
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if generation <= s.appliedGen {
		return domainerrors.ErrImportSuperseded
	}

	s.appliedGen = generation
	s.items = items
	s.byID = byID

	return nil
}
