package impl

import (
	"context"
	"sync"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"
)

// memCartRepo is an in-memory CartRepository.
type memCartRepo struct {
	mu      sync.Mutex
	lines   []entity.StoredCartLine
	present bool

	saveErr error
	loadErr error
}

func (r *memCartRepo) SaveLines(_ context.Context, lines []entity.StoredCartLine) error {
	if r.saveErr != nil {
		return r.saveErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append([]entity.StoredCartLine(nil), lines...)
	r.present = true

	return nil
}

func (r *memCartRepo) LoadLines(_ context.Context) ([]entity.StoredCartLine, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.present {
		return []entity.StoredCartLine{}, nil
	}

	return append([]entity.StoredCartLine(nil), r.lines...), nil
}

func (r *memCartRepo) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = nil
	r.present = false

	return nil
}

// memSnapshotRepo is an in-memory CatalogSnapshotRepository.
type memSnapshotRepo struct {
	mu      sync.Mutex
	records []entity.CatalogRecord
	present bool

	saveErr error
}

func (r *memSnapshotRepo) SaveSnapshot(_ context.Context, records []entity.CatalogRecord) error {
	if r.saveErr != nil {
		return r.saveErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append([]entity.CatalogRecord(nil), records...)
	r.present = true

	return nil
}

func (r *memSnapshotRepo) LoadSnapshot(_ context.Context) ([]entity.CatalogRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.present {
		return nil, repository.ErrSnapshotNotFound
	}

	return append([]entity.CatalogRecord(nil), r.records...), nil
}

// memOrderRepo is an in-memory OrderRepository.
type memOrderRepo struct {
	mu      sync.Mutex
	history []*entity.Order
	last    *entity.Order
}

func (r *memOrderRepo) AppendOrder(_ context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, order)

	return nil
}

func (r *memOrderRepo) SaveLastOrder(_ context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = order

	return nil
}

func (r *memOrderRepo) FindLastOrder(_ context.Context) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		return nil, repository.ErrOrderNotFound
	}

	return r.last, nil
}

func (r *memOrderRepo) FindOrderByNumber(_ context.Context, number string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.history {
		if order.Number == number {
			return order, nil
		}
	}

	return nil, repository.ErrOrderNotFound
}

func (r *memOrderRepo) ListOrders(_ context.Context) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]*entity.Order(nil), r.history...), nil
}

// memSessionRepo is an in-memory CheckoutSessionRepository.
type memSessionRepo struct {
	mu      sync.Mutex
	session *entity.CheckoutSession
}

func (r *memSessionRepo) SaveSession(_ context.Context, session *entity.CheckoutSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = session

	return nil
}

func (r *memSessionRepo) LoadSession(_ context.Context) (*entity.CheckoutSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil {
		return nil, repository.ErrSessionNotFound
	}

	return r.session, nil
}

func (r *memSessionRepo) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = nil

	return nil
}

// memRepos bundles the in-memory repositories behind a fake transaction
// manager. Execute hands the callback a factory over the same stores, so
// tests observe the writes directly.
type memRepos struct {
	cart     *memCartRepo
	orders   *memOrderRepo
	sessions *memSessionRepo
}

func newMemRepos() *memRepos {
	return &memRepos{
		cart:     &memCartRepo{},
		orders:   &memOrderRepo{},
		sessions: &memSessionRepo{},
	}
}

func (m *memRepos) Execute(_ context.Context, fn func(factory repository.RepositoryFactory) error) error {
	return fn(m)
}

func (m *memRepos) NewCartRepository() repository.CartRepository { return m.cart }

func (m *memRepos) NewOrderRepository() repository.OrderRepository { return m.orders }

func (m *memRepos) NewCheckoutSessionRepository() repository.CheckoutSessionRepository {
	return m.sessions
}

// stubCatalogSource serves a fixed record list or a fixed error.
type stubCatalogSource struct {
	records []entity.CatalogRecord
	err     error
}

func (s *stubCatalogSource) FetchRecords(_ context.Context) ([]entity.CatalogRecord, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.records, nil
}

// stubFetcher serves fixed CSV text and records the requested sheet URL.
type stubFetcher struct {
	csv     string
	err     error
	lastURL string
}

func (s *stubFetcher) FetchCSV(_ context.Context, sheetURL string) (string, error) {
	s.lastURL = sheetURL
	if s.err != nil {
		return "", s.err
	}

	return s.csv, nil
}

// stubParser returns fixed records or a fixed error, standing in for the CSV
// parser.
type stubParser struct {
	records []entity.CatalogRecord
	err     error
}

func (s *stubParser) ParseCatalog(string) ([]entity.CatalogRecord, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.records, nil
}

// stubPublisher collects published events.
type stubPublisher struct {
	mu     sync.Mutex
	events []*service.OrderPlacedEvent
	err    error
}

func (p *stubPublisher) PublishOrderPlaced(_ context.Context, event *service.OrderPlacedEvent) error {
	if p.err != nil {
		return p.err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

func (p *stubPublisher) Close() error { return nil }

// stubQRService returns fixed PNG bytes and a scripted parse result.
type stubQRService struct {
	png         []byte
	parseNumber string
	parseErr    error
}

func (s *stubQRService) GenerateOrderQR(string) ([]byte, error) {
	return s.png, nil
}

func (s *stubQRService) ParseOrderQR(string) (string, error) {
	return s.parseNumber, s.parseErr
}

// fakeCatalog is a minimal CatalogUsecase over a fixed item set, for tests
// that only need item lookup.
type fakeCatalog struct {
	items map[int]*entity.CatalogItem
}

func newFakeCatalog(records ...entity.CatalogRecord) *fakeCatalog {
	items := make(map[int]*entity.CatalogItem, len(records))
	for _, rec := range records {
		item := entity.NewCatalogItem(rec)
		items[item.ID] = item
	}

	return &fakeCatalog{items: items}
}

func (c *fakeCatalog) Reload(context.Context) (int, error) { return len(c.items), nil }

func (c *fakeCatalog) GetByID(_ context.Context, id int) (*entity.CatalogItem, error) {
	item, ok := c.items[id]
	if !ok {
		return nil, domainerrors.ErrItemNotFound
	}

	return item, nil
}

func (c *fakeCatalog) GetAll(context.Context) []*entity.CatalogItem {
	out := make([]*entity.CatalogItem, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, item)
	}

	return out
}

func (c *fakeCatalog) GetByCategory(context.Context, string) []*entity.CatalogItem { return nil }

func (c *fakeCatalog) NextGeneration() uint64 { return 1 }

func (c *fakeCatalog) ReplaceAll(context.Context, uint64, []entity.CatalogRecord) error {
	return nil
}

var _ usecase.CatalogUsecase = (*fakeCatalog)(nil)
