package partner

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/order"
	"github.com/markethub/backend/internal/domain/shared"
)

// PartnerService is the shop owner's surface: visibility toggling and
// the partner's view of incoming orders
type PartnerService struct {
	shopRepo  catalog.ShopRepository
	orderRepo order.Repository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewPartnerService creates a new PartnerService
func NewPartnerService(
	shopRepo catalog.ShopRepository,
	orderRepo order.Repository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *PartnerService {
	return &PartnerService{
		shopRepo:  shopRepo,
		orderRepo: orderRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// GetState returns the visibility of the partner's shop. A partner who
// has never imported a feed has no shop yet and reads as not found.
func (s *PartnerService) GetState(ctx context.Context, userID uuid.UUID) (*StateResponse, error) {
	shop, err := s.shopRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := ToStateResponse(shop)
	return &response, nil
}

// SetState toggles the visibility of the partner's own shop
func (s *PartnerService) SetState(ctx context.Context, userID uuid.UUID, req SetStateRequest) (*StateResponse, error) {
	state, err := parseState(req.State)
	if err != nil {
		return nil, err
	}

	shop, err := s.shopRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	shop.SetState(state)
	if err := s.shopRepo.Save(ctx, shop); err != nil {
		return nil, err
	}

	s.logger.Info("Shop state changed",
		zap.String("shop_id", shop.ID.String()),
		zap.Bool("state", shop.State))

	s.publishDomainEvents(ctx, shop)

	response := ToStateResponse(shop)
	return &response, nil
}

// ListOrders returns placed orders containing the partner's goods, each
// reduced to the partner's own lines and their subtotal
func (s *PartnerService) ListOrders(ctx context.Context, userID uuid.UUID) ([]OrderResponse, error) {
	shop, err := s.shopRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == shared.ErrNotFound {
			return []OrderResponse{}, nil
		}
		return nil, err
	}

	orders, err := s.orderRepo.FindForPartner(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i], shop.ID))
	}
	return responses, nil
}

func (s *PartnerService) publishDomainEvents(ctx context.Context, shop *catalog.Shop) {
	events := shop.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish domain events",
			zap.String("shop_id", shop.ID.String()),
			zap.Error(err))
	}
	shop.ClearDomainEvents()
}

// parseState accepts the on/off switch values the API has always taken
func parseState(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	default:
		return false, shared.NewDomainError("INVALID_INPUT", "state must be on or off")
	}
}
