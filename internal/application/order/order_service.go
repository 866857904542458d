package order

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/order"
	"github.com/markethub/backend/internal/domain/shared"
)

// OrderService handles checkout and the buyer's order history
type OrderService struct {
	orderRepo   order.Repository
	contactRepo order.ContactRepository
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo order.Repository,
	contactRepo order.ContactRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		contactRepo: contactRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// Place converts the user's basket into a placed order bound to one of
// their delivery contacts. The transition is a guarded update: it succeeds
// only while the order is still a non-empty basket of this user.
func (s *OrderService) Place(ctx context.Context, userID uuid.UUID, req PlaceOrderRequest) (*OrderResponse, error) {
	orderID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "id must be a valid order id")
	}
	contactID, err := uuid.Parse(req.Contact)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "contact must be a valid contact id")
	}

	if _, err := s.contactRepo.FindByIDForUser(ctx, userID, contactID); err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("INVALID_CONTACT", "Contact does not exist")
		}
		return nil, err
	}

	placed, err := s.orderRepo.MarkPlaced(ctx, userID, orderID, contactID)
	if err != nil {
		return nil, err
	}
	if !placed {
		return nil, s.explainPlaceFailure(ctx, userID, orderID)
	}

	placedOrder, err := s.orderRepo.FindByIDForUser(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.String("order_id", placedOrder.ID.String()),
		zap.String("user_id", userID.String()))

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, order.NewOrderPlacedEvent(placedOrder))
	}

	response := ToOrderResponse(placedOrder)
	return &response, nil
}

// explainPlaceFailure reads the order back to turn a failed guarded update
// into a precise error
func (s *OrderService) explainPlaceFailure(ctx context.Context, userID, orderID uuid.UUID) error {
	o, err := s.orderRepo.FindByIDForUser(ctx, userID, orderID)
	if err != nil {
		return err
	}
	if o.Status != order.StatusBasket {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "Order has already been placed")
	}
	return shared.NewDomainError("EMPTY_BASKET", "Cannot place an order with no items")
}

// ListOrders returns the user's placed orders, newest first
func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindPlacedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	return responses, nil
}

// GetOrder returns one placed order of the user. The basket is not an
// order yet and reads as not found here.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByIDForUser(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status == order.StatusBasket {
		return nil, shared.ErrNotFound
	}

	response := ToOrderResponse(o)
	return &response, nil
}
