package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apporder "github.com/markethub/backend/internal/application/order"
	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/order"
)

// StateResponse reports the partner shop's visibility
type StateResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	State bool      `json:"state"`
}

// SetStateRequest toggles the partner shop's visibility
type SetStateRequest struct {
	State string `json:"state" binding:"required"`
}

// OrderResponse is an order as the partner sees it: only the partner's
// own lines and their subtotal, with the customer contact attached
type OrderResponse struct {
	ID        uuid.UUID                    `json:"id"`
	Status    string                       `json:"status"`
	CreatedAt time.Time                    `json:"created_at"`
	Contact   *apporder.ContactResponse    `json:"contact,omitempty"`
	Items     []apporder.OrderItemResponse `json:"items"`
	Total     decimal.Decimal              `json:"total"`
}

// ToStateResponse converts a shop to its partner-facing state view
func ToStateResponse(shop *catalog.Shop) StateResponse {
	return StateResponse{
		ID:    shop.ID,
		Name:  shop.Name,
		State: shop.State,
	}
}

// ToOrderResponse projects an order onto one shop: lines of other shops
// are dropped and the total covers only what remains
func ToOrderResponse(o *order.Order, shopID uuid.UUID) OrderResponse {
	response := OrderResponse{
		ID:        o.ID,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		Items:     make([]apporder.OrderItemResponse, 0, len(o.Items)),
		Total:     decimal.Zero,
	}
	if o.Contact != nil {
		contact := apporder.ToContactResponse(o.Contact)
		response.Contact = &contact
	}

	for i := range o.Items {
		item := &o.Items[i]
		if item.ProductInfo == nil || item.ProductInfo.ShopID != shopID {
			continue
		}
		line := apporder.ToOrderItemResponse(item)
		response.Items = append(response.Items, line)
		response.Total = response.Total.Add(line.Sum)
	}
	return response
}
