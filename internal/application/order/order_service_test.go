package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/order"
	"github.com/markethub/backend/internal/domain/shared"
)

func newTestOrderService() (*OrderService, *MockOrderRepository, *MockContactRepository, *MockEventPublisher) {
	orderRepo := new(MockOrderRepository)
	contactRepo := new(MockContactRepository)
	publisher := new(MockEventPublisher)
	service := NewOrderService(orderRepo, contactRepo, publisher, zap.NewNop())
	return service, orderRepo, contactRepo, publisher
}

func testContact(t *testing.T, userID uuid.UUID) *order.Contact {
	t.Helper()
	contact, err := order.NewContact(userID, "Moscow", "Tverskaya", "1", "10", "+79991234567")
	require.NoError(t, err)
	return contact
}

func placedOrder(t *testing.T, userID uuid.UUID) *order.Order {
	t.Helper()
	o := order.NewBasket(userID)
	info := testInfo(t, 110000)
	require.NoError(t, o.AddItem(info.ID, 2))
	o.Items[0].ProductInfo = info
	o.Status = order.StatusNew
	return o
}

func TestOrderService_Place(t *testing.T) {
	t.Run("places a non-empty basket and publishes the event", func(t *testing.T) {
		service, orderRepo, contactRepo, publisher := newTestOrderService()

		userID := uuid.New()
		contact := testContact(t, userID)
		o := placedOrder(t, userID)

		contactRepo.On("FindByIDForUser", mock.Anything, userID, contact.ID).Return(contact, nil)
		orderRepo.On("MarkPlaced", mock.Anything, userID, o.ID, contact.ID).Return(true, nil)
		orderRepo.On("FindByIDForUser", mock.Anything, userID, o.ID).Return(o, nil)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		resp, err := service.Place(context.Background(), userID, PlaceOrderRequest{
			ID:      o.ID.String(),
			Contact: contact.ID.String(),
		})

		require.NoError(t, err)
		assert.Equal(t, "new", resp.Status)
		assert.Equal(t, "220000", resp.Total.String())
		publisher.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			if len(events) != 1 {
				return false
			}
			evt, ok := events[0].(*order.OrderPlacedEvent)
			return ok && evt.OrderID == o.ID
		}))
	})

	t.Run("rejects a contact that is not the user's", func(t *testing.T) {
		service, orderRepo, contactRepo, _ := newTestOrderService()

		userID := uuid.New()
		contactID := uuid.New()
		contactRepo.On("FindByIDForUser", mock.Anything, userID, contactID).Return(nil, shared.ErrNotFound)

		_, err := service.Place(context.Background(), userID, PlaceOrderRequest{
			ID:      uuid.New().String(),
			Contact: contactID.String(),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CONTACT", domainErr.Code)
		orderRepo.AssertNotCalled(t, "MarkPlaced", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects malformed ids without touching the store", func(t *testing.T) {
		service, orderRepo, contactRepo, _ := newTestOrderService()

		_, err := service.Place(context.Background(), uuid.New(), PlaceOrderRequest{
			ID:      "not-a-uuid",
			Contact: uuid.New().String(),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
		contactRepo.AssertNotCalled(t, "FindByIDForUser", mock.Anything, mock.Anything, mock.Anything)
		orderRepo.AssertNotCalled(t, "MarkPlaced", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("explains an already placed order", func(t *testing.T) {
		service, orderRepo, contactRepo, publisher := newTestOrderService()

		userID := uuid.New()
		contact := testContact(t, userID)
		o := placedOrder(t, userID)

		contactRepo.On("FindByIDForUser", mock.Anything, userID, contact.ID).Return(contact, nil)
		orderRepo.On("MarkPlaced", mock.Anything, userID, o.ID, contact.ID).Return(false, nil)
		orderRepo.On("FindByIDForUser", mock.Anything, userID, o.ID).Return(o, nil)

		_, err := service.Place(context.Background(), userID, PlaceOrderRequest{
			ID:      o.ID.String(),
			Contact: contact.ID.String(),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS_TRANSITION", domainErr.Code)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("explains an empty basket", func(t *testing.T) {
		service, orderRepo, contactRepo, _ := newTestOrderService()

		userID := uuid.New()
		contact := testContact(t, userID)
		basket := order.NewBasket(userID)

		contactRepo.On("FindByIDForUser", mock.Anything, userID, contact.ID).Return(contact, nil)
		orderRepo.On("MarkPlaced", mock.Anything, userID, basket.ID, contact.ID).Return(false, nil)
		orderRepo.On("FindByIDForUser", mock.Anything, userID, basket.ID).Return(basket, nil)

		_, err := service.Place(context.Background(), userID, PlaceOrderRequest{
			ID:      basket.ID.String(),
			Contact: contact.ID.String(),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMPTY_BASKET", domainErr.Code)
	})
}

func TestOrderService_ListOrders(t *testing.T) {
	t.Run("maps placed orders with totals", func(t *testing.T) {
		service, orderRepo, _, _ := newTestOrderService()

		userID := uuid.New()
		o := placedOrder(t, userID)
		orderRepo.On("FindPlacedByUser", mock.Anything, userID).Return([]order.Order{*o}, nil)

		orders, err := service.ListOrders(context.Background(), userID)

		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "220000", orders[0].Total.String())
	})

	t.Run("returns an empty list for a new user", func(t *testing.T) {
		service, orderRepo, _, _ := newTestOrderService()

		userID := uuid.New()
		orderRepo.On("FindPlacedByUser", mock.Anything, userID).Return([]order.Order{}, nil)

		orders, err := service.ListOrders(context.Background(), userID)

		require.NoError(t, err)
		assert.Empty(t, orders)
	})
}

func TestOrderService_GetOrder(t *testing.T) {
	t.Run("returns a placed order", func(t *testing.T) {
		service, orderRepo, _, _ := newTestOrderService()

		userID := uuid.New()
		o := placedOrder(t, userID)
		orderRepo.On("FindByIDForUser", mock.Anything, userID, o.ID).Return(o, nil)

		resp, err := service.GetOrder(context.Background(), userID, o.ID)

		require.NoError(t, err)
		assert.Equal(t, o.ID, resp.ID)
	})

	t.Run("hides the basket", func(t *testing.T) {
		service, orderRepo, _, _ := newTestOrderService()

		userID := uuid.New()
		basket := order.NewBasket(userID)
		orderRepo.On("FindByIDForUser", mock.Anything, userID, basket.ID).Return(basket, nil)

		_, err := service.GetOrder(context.Background(), userID, basket.ID)

		assert.Equal(t, shared.ErrNotFound, err)
	})
}
