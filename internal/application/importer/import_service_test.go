package importer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/infrastructure/worker"
)

// =============================================================================
// Mocks
// =============================================================================

// MockShopRepository is a mock implementation of ShopRepository
type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Shop), args.Error(1)
}

func (m *MockShopRepository) FindByName(ctx context.Context, name string) (*catalog.Shop, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Shop), args.Error(1)
}

func (m *MockShopRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*catalog.Shop, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Shop), args.Error(1)
}

func (m *MockShopRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Shop, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Shop), args.Error(1)
}

func (m *MockShopRepository) Save(ctx context.Context, shop *catalog.Shop) error {
	args := m.Called(ctx, shop)
	return args.Error(0)
}

// MockImportStore is a mock implementation of FeedImportStore
type MockImportStore struct {
	mock.Mock
}

func (m *MockImportStore) ImportFeed(ctx context.Context, shop *catalog.Shop, doc *catalog.FeedDocument) (*catalog.ImportStats, error) {
	args := m.Called(ctx, shop, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ImportStats), args.Error(1)
}

// MockLocker is a mock implementation of ImportLocker
type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) TryLock(ctx context.Context, shopName string) (string, error) {
	args := m.Called(ctx, shopName)
	return args.String(0), args.Error(1)
}

func (m *MockLocker) Unlock(ctx context.Context, shopName, token string) error {
	args := m.Called(ctx, shopName, token)
	return args.Error(0)
}

// MockFetcher is a mock implementation of FeedFetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) (*catalog.FeedDocument, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.FeedDocument), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// MockSender is a mock implementation of NotificationSender
type MockSender struct {
	mock.Mock
	mu   sync.Mutex
	sent []string
}

func (m *MockSender) Send(ctx context.Context, to []string, subject, body string) error {
	m.mu.Lock()
	m.sent = append(m.sent, subject)
	m.mu.Unlock()
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

func (m *MockSender) subjects() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

// =============================================================================
// Fixtures
// =============================================================================

func sampleDoc() *catalog.FeedDocument {
	return &catalog.FeedDocument{
		Shop:       "Svyaznoy",
		Categories: []catalog.FeedCategory{{ID: 224, Name: "Smartphones"}},
		Goods: []catalog.FeedGood{
			{ID: 4216292, Category: 224, Name: "Smartphone", Price: 110000, PriceRRC: 116990, Quantity: 14},
		},
	}
}

type serviceMocks struct {
	shopRepo  *MockShopRepository
	store     *MockImportStore
	locker    *MockLocker
	fetcher   *MockFetcher
	publisher *MockEventPublisher
}

func newTestImportService() (*ImportService, *serviceMocks) {
	m := &serviceMocks{
		shopRepo:  new(MockShopRepository),
		store:     new(MockImportStore),
		locker:    new(MockLocker),
		fetcher:   new(MockFetcher),
		publisher: new(MockEventPublisher),
	}
	service := NewImportService(m.shopRepo, m.store, m.locker, m.fetcher, m.publisher, zap.NewNop())
	return service, m
}

// =============================================================================
// Tests
// =============================================================================

func TestImportService_ImportFromURL(t *testing.T) {
	t.Run("imports into the partner's existing shop", func(t *testing.T) {
		service, m := newTestImportService()

		userID := uuid.New()
		shop, err := catalog.NewShop("Svyaznoy", userID)
		require.NoError(t, err)
		shop.ClearDomainEvents()

		m.fetcher.On("Fetch", mock.Anything, "https://example.com/feed.yaml").Return(sampleDoc(), nil)
		m.shopRepo.On("FindByName", mock.Anything, "Svyaznoy").Return(shop, nil)
		m.locker.On("TryLock", mock.Anything, "Svyaznoy").Return("lease-1", nil)
		m.locker.On("Unlock", mock.Anything, "Svyaznoy", "lease-1").Return(nil)
		m.store.On("ImportFeed", mock.Anything, shop, mock.Anything).
			Return(&catalog.ImportStats{Categories: 1, Goods: 1}, nil)
		m.shopRepo.On("Save", mock.Anything, shop).Return(nil)
		m.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		result, err := service.ImportFromURL(context.Background(), userID, "https://example.com/feed.yaml")

		require.NoError(t, err)
		assert.Equal(t, "Svyaznoy", result.Shop)
		assert.Equal(t, 1, result.Categories)
		assert.Equal(t, 1, result.Goods)
		require.NotNil(t, shop.URL)
		assert.Equal(t, "https://example.com/feed.yaml", *shop.URL)
		m.locker.AssertExpectations(t)
	})

	t.Run("registers the shop on first import", func(t *testing.T) {
		service, m := newTestImportService()

		userID := uuid.New()
		m.fetcher.On("Fetch", mock.Anything, "https://example.com/feed.yaml").Return(sampleDoc(), nil)
		m.shopRepo.On("FindByName", mock.Anything, "Svyaznoy").Return(nil, shared.ErrNotFound)
		m.shopRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Shop")).Return(nil)
		m.locker.On("TryLock", mock.Anything, "Svyaznoy").Return("lease-1", nil)
		m.locker.On("Unlock", mock.Anything, "Svyaznoy", "lease-1").Return(nil)
		m.store.On("ImportFeed", mock.Anything, mock.Anything, mock.Anything).
			Return(&catalog.ImportStats{Categories: 1, Goods: 1}, nil)
		m.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		result, err := service.ImportFromURL(context.Background(), userID, "https://example.com/feed.yaml")

		require.NoError(t, err)
		assert.Equal(t, "Svyaznoy", result.Shop)
	})

	t.Run("rejects a shop owned by another partner", func(t *testing.T) {
		service, m := newTestImportService()

		shop, err := catalog.NewShop("Svyaznoy", uuid.New())
		require.NoError(t, err)

		m.fetcher.On("Fetch", mock.Anything, mock.Anything).Return(sampleDoc(), nil)
		m.shopRepo.On("FindByName", mock.Anything, "Svyaznoy").Return(shop, nil)

		result, err := service.ImportFromURL(context.Background(), uuid.New(), "https://example.com/feed.yaml")

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SHOP_CONFLICT", domainErr.Code)
		m.locker.AssertNotCalled(t, "TryLock", mock.Anything, mock.Anything)
	})

	t.Run("reports a running import", func(t *testing.T) {
		service, m := newTestImportService()

		userID := uuid.New()
		shop, err := catalog.NewShop("Svyaznoy", userID)
		require.NoError(t, err)

		m.fetcher.On("Fetch", mock.Anything, mock.Anything).Return(sampleDoc(), nil)
		m.shopRepo.On("FindByName", mock.Anything, "Svyaznoy").Return(shop, nil)
		m.locker.On("TryLock", mock.Anything, "Svyaznoy").Return("", nil)

		result, err := service.ImportFromURL(context.Background(), userID, "https://example.com/feed.yaml")

		assert.Nil(t, result)
		assert.Equal(t, shared.ErrImportInProgress, err)
		m.store.AssertNotCalled(t, "ImportFeed", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("releases the lock when the import fails", func(t *testing.T) {
		service, m := newTestImportService()

		userID := uuid.New()
		shop, err := catalog.NewShop("Svyaznoy", userID)
		require.NoError(t, err)

		m.fetcher.On("Fetch", mock.Anything, mock.Anything).Return(sampleDoc(), nil)
		m.shopRepo.On("FindByName", mock.Anything, "Svyaznoy").Return(shop, nil)
		m.locker.On("TryLock", mock.Anything, "Svyaznoy").Return("lease-1", nil)
		m.locker.On("Unlock", mock.Anything, "Svyaznoy", "lease-1").Return(nil)
		m.store.On("ImportFeed", mock.Anything, shop, mock.Anything).
			Return(nil, assertAnError)

		result, err := service.ImportFromURL(context.Background(), userID, "https://example.com/feed.yaml")

		assert.Nil(t, result)
		assert.Error(t, err)
		m.locker.AssertCalled(t, "Unlock", mock.Anything, "Svyaznoy", "lease-1")
	})
}

var assertAnError = shared.NewDomainError("IMPORT_FAILED", "boom")

func TestImportService_ImportFromBytes(t *testing.T) {
	t.Run("rejects an invalid document before touching the shop", func(t *testing.T) {
		service, m := newTestImportService()

		// negative price fails whole-document validation
		bad := []byte("shop: Svyaznoy\ncategories:\n  - id: 1\n    name: Phones\ngoods:\n  - id: 1\n    category: 1\n    name: Phone\n    price: -5\n    price_rrc: 10\n    quantity: 1\n")

		result, err := service.ImportFromBytes(context.Background(), uuid.New(), bad)

		assert.Nil(t, result)
		var validationErr *catalog.FeedValidationError
		require.ErrorAs(t, err, &validationErr)
		m.shopRepo.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
	})

	t.Run("imports an uploaded document", func(t *testing.T) {
		service, m := newTestImportService()

		userID := uuid.New()
		shop, err := catalog.NewShop("Svyaznoy", userID)
		require.NoError(t, err)
		shop.ClearDomainEvents()

		m.shopRepo.On("FindByName", mock.Anything, "Svyaznoy").Return(shop, nil)
		m.locker.On("TryLock", mock.Anything, "Svyaznoy").Return("lease-1", nil)
		m.locker.On("Unlock", mock.Anything, "Svyaznoy", "lease-1").Return(nil)
		m.store.On("ImportFeed", mock.Anything, shop, mock.Anything).
			Return(&catalog.ImportStats{Categories: 1, Goods: 1}, nil)
		m.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		data := []byte("shop: Svyaznoy\ncategories:\n  - id: 1\n    name: Phones\ngoods:\n  - id: 1\n    category: 1\n    name: Phone\n    price: 100\n    price_rrc: 120\n    quantity: 1\n")
		result, err := service.ImportFromBytes(context.Background(), userID, data)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Goods)
		assert.Nil(t, shop.URL)
	})
}

func TestImportQueue(t *testing.T) {
	t.Run("runs the import and mails the result", func(t *testing.T) {
		service, m := newTestImportService()

		userID := uuid.New()
		shop, err := catalog.NewShop("Svyaznoy", userID)
		require.NoError(t, err)
		shop.ClearDomainEvents()

		m.fetcher.On("Fetch", mock.Anything, mock.Anything).Return(sampleDoc(), nil)
		m.shopRepo.On("FindByName", mock.Anything, "Svyaznoy").Return(shop, nil)
		m.shopRepo.On("Save", mock.Anything, shop).Return(nil)
		m.locker.On("TryLock", mock.Anything, "Svyaznoy").Return("lease-1", nil)
		m.locker.On("Unlock", mock.Anything, "Svyaznoy", "lease-1").Return(nil)
		m.store.On("ImportFeed", mock.Anything, shop, mock.Anything).
			Return(&catalog.ImportStats{Categories: 1, Goods: 1}, nil)
		m.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		sender := new(MockSender)
		done := make(chan struct{})
		sender.On("Send", mock.Anything, []string{"partner@example.com"}, "Price list import completed", mock.Anything).
			Run(func(args mock.Arguments) { close(done) }).
			Return(nil)

		pool := worker.NewPool(1, 4, zap.NewNop())
		require.NoError(t, pool.Start(context.Background()))
		defer pool.Stop(context.Background())

		queue := NewImportQueue(service, pool, sender, zap.NewNop())
		require.NoError(t, queue.EnqueueURL(userID, "partner@example.com", "https://example.com/feed.yaml"))

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("import result email never sent")
		}
		assert.Equal(t, []string{"Price list import completed"}, sender.subjects())
	})

	t.Run("mails the failure", func(t *testing.T) {
		service, m := newTestImportService()

		m.fetcher.On("Fetch", mock.Anything, mock.Anything).Return(nil, assertAnError)

		sender := new(MockSender)
		done := make(chan struct{})
		sender.On("Send", mock.Anything, []string{"partner@example.com"}, "Price list import failed", mock.Anything).
			Run(func(args mock.Arguments) { close(done) }).
			Return(nil)

		pool := worker.NewPool(1, 4, zap.NewNop())
		require.NoError(t, pool.Start(context.Background()))
		defer pool.Stop(context.Background())

		queue := NewImportQueue(service, pool, sender, zap.NewNop())
		require.NoError(t, queue.EnqueueURL(uuid.New(), "partner@example.com", "https://example.com/bad.yaml"))

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("failure email never sent")
		}
	})
}
