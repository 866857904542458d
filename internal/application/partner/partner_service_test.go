package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/order"
	"github.com/markethub/backend/internal/domain/shared"
)

// =============================================================================
// Mocks
// =============================================================================

// MockShopRepository is a mock implementation of catalog.ShopRepository
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Shop), args.Error(1)
}

func (m *MockShopRepository) Save(ctx context.Context, shop *catalog.Shop) error {
	args := m.Called(ctx, shop)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindBasket(ctx context.Context, userID uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindPlacedByUser(ctx context.Context, userID uuid.UUID) ([]order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindForPartner(ctx context.Context, partnerUserID uuid.UUID) ([]order.Order, error) {
	args := m.Called(ctx, partnerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) MarkPlaced(ctx context.Context, userID, orderID, contactID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, orderID, contactID)
	return args.Bool(0), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// =============================================================================
// Fixtures
// =============================================================================

func newTestPartnerService() (*PartnerService, *MockShopRepository, *MockOrderRepository, *MockEventPublisher) {
	shopRepo := new(MockShopRepository)
	orderRepo := new(MockOrderRepository)
	publisher := new(MockEventPublisher)
	service := NewPartnerService(shopRepo, orderRepo, publisher, zap.NewNop())
	return service, shopRepo, orderRepo, publisher
}

func testShop(t *testing.T, userID uuid.UUID) *catalog.Shop {
	t.Helper()
	shop, err := catalog.NewShop("Svyaznoy", userID)
	require.NoError(t, err)
	shop.ClearDomainEvents()
	return shop
}

func testOffer(t *testing.T, shopID uuid.UUID, price int64) *catalog.ProductInfo {
	t.Helper()
	info, err := catalog.NewProductInfo(uuid.New(), shopID, 1, "model", 10,
		decimal.NewFromInt(price), decimal.NewFromInt(price))
	require.NoError(t, err)
	return info
}

// =============================================================================
// Tests
// =============================================================================

func TestPartnerService_GetState(t *testing.T) {
	t.Run("returns the shop visibility", func(t *testing.T) {
		service, shopRepo, _, _ := newTestPartnerService()

		userID := uuid.New()
		shop := testShop(t, userID)
		shopRepo.On("FindByUserID", mock.Anything, userID).Return(shop, nil)

		state, err := service.GetState(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, shop.ID, state.ID)
		assert.True(t, state.State)
	})

	t.Run("reads as not found for a partner without a shop", func(t *testing.T) {
		service, shopRepo, _, _ := newTestPartnerService()

		userID := uuid.New()
		shopRepo.On("FindByUserID", mock.Anything, userID).Return(nil, shared.ErrNotFound)

		_, err := service.GetState(context.Background(), userID)

		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestPartnerService_SetState(t *testing.T) {
	t.Run("turns the shop off and publishes the change", func(t *testing.T) {
		service, shopRepo, _, publisher := newTestPartnerService()

		userID := uuid.New()
		shop := testShop(t, userID)
		shopRepo.On("FindByUserID", mock.Anything, userID).Return(shop, nil)
		shopRepo.On("Save", mock.Anything, shop).Return(nil)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		state, err := service.SetState(context.Background(), userID, SetStateRequest{State: "off"})

		require.NoError(t, err)
		assert.False(t, state.State)
		assert.False(t, shop.State)
		publisher.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			if len(events) != 1 {
				return false
			}
			_, ok := events[0].(*catalog.ShopStateChangedEvent)
			return ok
		}))
	})

	t.Run("setting the current state publishes nothing", func(t *testing.T) {
		service, shopRepo, _, publisher := newTestPartnerService()

		userID := uuid.New()
		shop := testShop(t, userID)
		shopRepo.On("FindByUserID", mock.Anything, userID).Return(shop, nil)
		shopRepo.On("Save", mock.Anything, shop).Return(nil)

		state, err := service.SetState(context.Background(), userID, SetStateRequest{State: "on"})

		require.NoError(t, err)
		assert.True(t, state.State)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("rejects an unknown switch value", func(t *testing.T) {
		service, shopRepo, _, _ := newTestPartnerService()

		_, err := service.SetState(context.Background(), uuid.New(), SetStateRequest{State: "maybe"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
		shopRepo.AssertNotCalled(t, "FindByUserID", mock.Anything, mock.Anything)
	})
}

func TestPartnerService_ListOrders(t *testing.T) {
	t.Run("keeps only the partner's lines and subtotals them", func(t *testing.T) {
		service, shopRepo, orderRepo, _ := newTestPartnerService()

		userID := uuid.New()
		shop := testShop(t, userID)
		mine := testOffer(t, shop.ID, 110000)
		foreign := testOffer(t, uuid.New(), 5000)

		customerID := uuid.New()
		o := order.NewBasket(customerID)
		require.NoError(t, o.AddItem(mine.ID, 2))
		require.NoError(t, o.AddItem(foreign.ID, 1))
		o.Items[0].ProductInfo = mine
		o.Items[1].ProductInfo = foreign
		o.Status = order.StatusNew
		contact, err := order.NewContact(customerID, "Moscow", "Tverskaya", "1", "", "+79991234567")
		require.NoError(t, err)
		o.Contact = contact

		shopRepo.On("FindByUserID", mock.Anything, userID).Return(shop, nil)
		orderRepo.On("FindForPartner", mock.Anything, userID).Return([]order.Order{*o}, nil)

		orders, err := service.ListOrders(context.Background(), userID)

		require.NoError(t, err)
		require.Len(t, orders, 1)
		require.Len(t, orders[0].Items, 1)
		assert.Equal(t, mine.ID, orders[0].Items[0].ProductInfoID)
		assert.Equal(t, "220000", orders[0].Total.String())
		require.NotNil(t, orders[0].Contact)
		assert.Equal(t, "Moscow", orders[0].Contact.City)
	})

	t.Run("a partner without a shop has no orders", func(t *testing.T) {
		service, shopRepo, orderRepo, _ := newTestPartnerService()

		userID := uuid.New()
		shopRepo.On("FindByUserID", mock.Anything, userID).Return(nil, shared.ErrNotFound)

		orders, err := service.ListOrders(context.Background(), userID)

		require.NoError(t, err)
		assert.Empty(t, orders)
		orderRepo.AssertNotCalled(t, "FindForPartner", mock.Anything, mock.Anything)
	})
}
