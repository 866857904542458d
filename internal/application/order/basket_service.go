package order

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/order"
	"github.com/markethub/backend/internal/domain/shared"
)

// BasketService handles the per-user basket
type BasketService struct {
	orderRepo order.Repository
	infoRepo  catalog.ProductInfoRepository
	logger    *zap.Logger
}

// NewBasketService creates a new BasketService
func NewBasketService(orderRepo order.Repository, infoRepo catalog.ProductInfoRepository, logger *zap.Logger) *BasketService {
	return &BasketService{
		orderRepo: orderRepo,
		infoRepo:  infoRepo,
		logger:    logger,
	}
}

// GetBasket returns the user's basket. A user who never added anything
// gets an empty basket view; nothing is persisted by a read.
func (s *BasketService) GetBasket(ctx context.Context, userID uuid.UUID) (*OrderResponse, error) {
	basket, err := s.orderRepo.FindBasket(ctx, userID)
	if err != nil {
		if err == shared.ErrNotFound {
			empty := ToOrderResponse(order.NewBasket(userID))
			return &empty, nil
		}
		return nil, err
	}

	response := ToOrderResponse(basket)
	return &response, nil
}

// AddItems adds offers to the basket with per-item partial success: valid
// lines are upserted (a repeated offer replaces its quantity), invalid
// ones are reported back by index.
func (s *BasketService) AddItems(ctx context.Context, userID uuid.UUID, req AddItemsRequest) (*AddItemsResponse, error) {
	basket, err := s.orderRepo.FindBasket(ctx, userID)
	if err != nil {
		if err != shared.ErrNotFound {
			return nil, err
		}
		basket = order.NewBasket(userID)
	}

	response := &AddItemsResponse{}
	for i, item := range req.Items {
		infoID, err := uuid.Parse(item.ProductInfoID)
		if err != nil {
			response.Errors = append(response.Errors, ItemError{Index: i, Error: "product_info must be a valid id"})
			continue
		}
		info, err := s.infoRepo.FindByID(ctx, infoID)
		if err != nil {
			if err == shared.ErrNotFound {
				response.Errors = append(response.Errors, ItemError{Index: i, Error: "offer does not exist"})
				continue
			}
			return nil, err
		}
		if info.Archived {
			response.Errors = append(response.Errors, ItemError{Index: i, Error: "offer is no longer available"})
			continue
		}
		if err := basket.AddItem(infoID, item.Quantity); err != nil {
			response.Errors = append(response.Errors, ItemError{Index: i, Error: err.Error()})
			continue
		}
		response.Created++
	}

	if response.Created > 0 {
		if err := s.orderRepo.Save(ctx, basket); err != nil {
			return nil, err
		}
	}
	return response, nil
}

// UpdateQuantities replaces quantities of existing basket lines and
// reports how many lines changed. Lines that are not in the basket are
// skipped.
func (s *BasketService) UpdateQuantities(ctx context.Context, userID uuid.UUID, req UpdateItemsRequest) (*UpdateItemsResponse, error) {
	basket, err := s.orderRepo.FindBasket(ctx, userID)
	if err != nil {
		if err == shared.ErrNotFound {
			return &UpdateItemsResponse{}, nil
		}
		return nil, err
	}

	response := &UpdateItemsResponse{}
	for _, item := range req.Items {
		itemID, err := uuid.Parse(item.ID)
		if err != nil {
			continue
		}
		if err := basket.UpdateItemQuantity(itemID, item.Quantity); err != nil {
			continue
		}
		response.Updated++
	}

	if response.Updated > 0 {
		if err := s.orderRepo.Save(ctx, basket); err != nil {
			return nil, err
		}
	}
	return response, nil
}

// RemoveItems deletes basket lines named by a comma-separated id string.
// Malformed tokens are skipped silently; the deleted count is returned.
func (s *BasketService) RemoveItems(ctx context.Context, userID uuid.UUID, req RemoveItemsRequest) (*RemoveItemsResponse, error) {
	basket, err := s.orderRepo.FindBasket(ctx, userID)
	if err != nil {
		if err == shared.ErrNotFound {
			return &RemoveItemsResponse{}, nil
		}
		return nil, err
	}

	ids := parseIDList(req.Items)
	if len(ids) == 0 {
		return &RemoveItemsResponse{}, nil
	}

	removed, err := basket.RemoveItems(ids)
	if err != nil {
		return nil, err
	}
	if removed > 0 {
		if err := s.orderRepo.Save(ctx, basket); err != nil {
			return nil, err
		}
	}
	return &RemoveItemsResponse{Deleted: removed}, nil
}

// parseIDList splits a comma-separated id string, dropping malformed tokens
func parseIDList(raw string) []uuid.UUID {
	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
