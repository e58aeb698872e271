package impl

import (
	"context"
	"log/slog"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestCatalogService(t *testing.T, source service.CatalogSource, snapshots repository.CatalogSnapshotRepository) usecase.CatalogUsecase {
	t.Helper()

	lc := fxtest.NewLifecycle(t)
	svc := NewCatalogService(CatalogServiceParams{
		Lc:           lc,
		Source:       source,
		SnapshotRepo: snapshots,
		Logger:       discardLogger(),
	})
	lc.RequireStart()

	return svc
}

func testRecords() []entity.CatalogRecord {
	return []entity.CatalogRecord{
		{ID: 1, Name: "Classic pancake", Price: 150, Category: "Sweet", Image: "fas fa-pancakes"},
		{ID: 2, Name: "Ham and cheese", Price: 220, Category: "Savory", Image: "ham.jpg"},
		{ID: 3, Name: "Berry mix", Price: 240, Category: "Sweet"},
	}
}

func TestCatalogService_RehydratesFromSource(t *testing.T) {
	source := &stubCatalogSource{records: testRecords()}
	svc := newTestCatalogService(t, source, &memSnapshotRepo{})

	items := svc.GetAll(context.Background())
	require.Len(t, items, 3)
	assert.Equal(t, "Classic pancake", items[0].Name)
}

func TestCatalogService_SnapshotWinsOverSource(t *testing.T) {
	snapshots := &memSnapshotRepo{}
	require.NoError(t, snapshots.SaveSnapshot(context.Background(), []entity.CatalogRecord{
		{ID: 7, Name: "Imported pancake", Price: 180},
	}))

	source := &stubCatalogSource{records: testRecords()}
	svc := newTestCatalogService(t, source, snapshots)

	items := svc.GetAll(context.Background())
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].ID)
}

func TestCatalogService_StartsEmptyWhenSourceFails(t *testing.T) {
	source := &stubCatalogSource{err: assert.AnError}
	svc := newTestCatalogService(t, source, &memSnapshotRepo{})

	assert.Empty(t, svc.GetAll(context.Background()))
}

func TestCatalogService_ReloadFailureKeepsPreviousList(t *testing.T) {
	source := &stubCatalogSource{records: testRecords()}
	svc := newTestCatalogService(t, source, &memSnapshotRepo{})

	source.err = assert.AnError
	_, err := svc.Reload(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrCatalogLoadFailed)

	assert.Len(t, svc.GetAll(context.Background()), 3)
}

func TestCatalogService_GetByID(t *testing.T) {
	svc := newTestCatalogService(t, &stubCatalogSource{records: testRecords()}, &memSnapshotRepo{})

	item, err := svc.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Ham and cheese", item.Name)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, domainerrors.ErrItemNotFound)
}

func TestCatalogService_GetByCategory(t *testing.T) {
	svc := newTestCatalogService(t, &stubCatalogSource{records: testRecords()}, &memSnapshotRepo{})

	sweet := svc.GetByCategory(context.Background(), "Sweet")
	require.Len(t, sweet, 2)
	assert.Empty(t, svc.GetByCategory(context.Background(), "Drinks"))
}

func TestCatalogService_ReplaceAllPersistsSnapshot(t *testing.T) {
	snapshots := &memSnapshotRepo{}
	svc := newTestCatalogService(t, &stubCatalogSource{records: testRecords()}, snapshots)

	replacement := []entity.CatalogRecord{{ID: 10, Name: "New menu item", Price: 300}}
	err := svc.ReplaceAll(context.Background(), svc.NextGeneration(), replacement)
	require.NoError(t, err)

	items := svc.GetAll(context.Background())
	require.Len(t, items, 1)
	assert.Equal(t, 10, items[0].ID)

	persisted, err := snapshots.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, replacement, persisted)
}

func TestCatalogService_StaleGenerationRejected(t *testing.T) {
	svc := newTestCatalogService(t, &stubCatalogSource{records: testRecords()}, &memSnapshotRepo{})

	// Two overlapping imports reserve tokens in order; the later one lands
	// first.
	older := svc.NextGeneration()
	newer := svc.NextGeneration()

	require.NoError(t, svc.ReplaceAll(context.Background(), newer, []entity.CatalogRecord{
		{ID: 20, Name: "Fresh import", Price: 100},
	}))

	err := svc.ReplaceAll(context.Background(), older, []entity.CatalogRecord{
		{ID: 30, Name: "Slow import", Price: 100},
	})
	assert.ErrorIs(t, err, domainerrors.ErrImportSuperseded)

	items := svc.GetAll(context.Background())
	require.Len(t, items, 1)
	assert.Equal(t, 20, items[0].ID)
}
