package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/domain/order"
	"github.com/markethub/backend/internal/domain/shared"
)

// OrderPlacedHandler fans a placed order out by email: the customer gets
// a confirmation, every partner with an active shop in the order gets a
// summary of their own lines. Delivery is best-effort; a lost email never
// invalidates the order.
type OrderPlacedHandler struct {
	orderRepo order.Repository
	userRepo  identity.UserRepository
	sender    shared.NotificationSender
	logger    *zap.Logger
}

// NewOrderPlacedHandler creates a new OrderPlacedHandler
func NewOrderPlacedHandler(
	orderRepo order.Repository,
	userRepo identity.UserRepository,
	sender shared.NotificationSender,
	logger *zap.Logger,
) *OrderPlacedHandler {
	return &OrderPlacedHandler{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		sender:    sender,
		logger:    logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderPlacedHandler) EventTypes() []string {
	return []string{order.EventTypeOrderPlaced}
}

// Handle mails the customer and the affected partners
func (h *OrderPlacedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	placed, ok := event.(*order.OrderPlacedEvent)
	if !ok {
		return nil
	}

	o, err := h.orderRepo.FindByID(ctx, placed.OrderID)
	if err != nil {
		return err
	}

	h.notifyCustomer(ctx, o)
	h.notifyPartners(ctx, o)
	return nil
}

func (h *OrderPlacedHandler) notifyCustomer(ctx context.Context, o *order.Order) {
	customer, err := h.userRepo.FindByID(ctx, o.UserID)
	if err != nil {
		h.logger.Error("Failed to load customer for order email",
			zap.String("order_id", o.ID.String()),
			zap.Error(err))
		return
	}

	body := fmt.Sprintf("Your order %s has been placed. Total: %s.", o.ID, o.Total())
	if err := h.sender.Send(ctx, []string{customer.Email}, "Order status update", body); err != nil {
		h.logger.Error("Failed to send order confirmation",
			zap.String("order_id", o.ID.String()),
			zap.Error(err))
	}
}

// partnerShare is one shop's slice of an order
type partnerShare struct {
	shopName string
	ownerID  uuid.UUID
	lines    []string
	subtotal decimal.Decimal
}

func (h *OrderPlacedHandler) notifyPartners(ctx context.Context, o *order.Order) {
	shares := make(map[uuid.UUID]*partnerShare)
	for i := range o.Items {
		item := &o.Items[i]
		info := item.ProductInfo
		if info == nil || info.Shop == nil || !info.Shop.State || info.Shop.UserID == nil {
			continue
		}

		share, ok := shares[info.ShopID]
		if !ok {
			share = &partnerShare{
				shopName: info.Shop.Name,
				ownerID:  *info.Shop.UserID,
				subtotal: decimal.Zero,
			}
			shares[info.ShopID] = share
		}

		sum := info.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		share.lines = append(share.lines, fmt.Sprintf("%s x%d = %s", info.Model, item.Quantity, sum))
		share.subtotal = share.subtotal.Add(sum)
	}

	for shopID, share := range shares {
		owner, err := h.userRepo.FindByID(ctx, share.ownerID)
		if err != nil {
			h.logger.Error("Failed to load partner for order email",
				zap.String("order_id", o.ID.String()),
				zap.String("shop_id", shopID.String()),
				zap.Error(err))
			continue
		}

		subject := fmt.Sprintf("New order for %s", share.shopName)
		body := fmt.Sprintf("Order %s contains your goods:\n%s\nSubtotal: %s.",
			o.ID, strings.Join(share.lines, "\n"), share.subtotal)
		if err := h.sender.Send(ctx, []string{owner.Email}, subject, body); err != nil {
			h.logger.Error("Failed to send partner order summary",
				zap.String("order_id", o.ID.String()),
				zap.String("shop_id", shopID.String()),
				zap.Error(err))
		}
	}
}
