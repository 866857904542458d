package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markethub/backend/internal/domain/order"
)

// AddItemRequest is one basket line to create or replace. Fields are not
// bound-validated: a bad line is reported by index with the rest of the
// batch still applied.
type AddItemRequest struct {
	ProductInfoID string `json:"product_info"`
	Quantity      int    `json:"quantity"`
}

// AddItemsRequest adds offers to the basket
type AddItemsRequest struct {
	Items []AddItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateItemRequest changes the quantity of one basket line. Like adds,
// a bad line is skipped without failing the batch.
type UpdateItemRequest struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// UpdateItemsRequest changes quantities of basket lines
type UpdateItemsRequest struct {
	Items []UpdateItemRequest `json:"items" binding:"required,min=1,dive"`
}

// RemoveItemsRequest deletes basket lines by a comma-separated id list
type RemoveItemsRequest struct {
	Items string `json:"items" binding:"required"`
}

// PlaceOrderRequest converts the basket into a placed order
type PlaceOrderRequest struct {
	ID      string `json:"id" binding:"required"`
	Contact string `json:"contact" binding:"required"`
}

// ItemError reports why one requested basket line was rejected
type ItemError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// AddItemsResponse reports partial success of a basket add
type AddItemsResponse struct {
	Created int         `json:"created"`
	Errors  []ItemError `json:"errors,omitempty"`
}

// UpdateItemsResponse reports how many lines were changed
type UpdateItemsResponse struct {
	Updated int `json:"updated"`
}

// RemoveItemsResponse reports how many lines were deleted
type RemoveItemsResponse struct {
	Deleted int `json:"deleted"`
}

// OrderItemResponse is one order line with its live offer details
type OrderItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	ProductInfoID uuid.UUID       `json:"product_info"`
	Product       string          `json:"product"`
	Shop          string          `json:"shop"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Sum           decimal.Decimal `json:"sum"`
}

// ContactResponse represents a delivery contact
type ContactResponse struct {
	ID        uuid.UUID `json:"id"`
	City      string    `json:"city"`
	Street    string    `json:"street"`
	House     string    `json:"house,omitempty"`
	Apartment string    `json:"apartment,omitempty"`
	Phone     string    `json:"phone"`
}

// CreateContactRequest creates a delivery contact
type CreateContactRequest struct {
	City      string `json:"city" binding:"required,max=50"`
	Street    string `json:"street" binding:"required,max=100"`
	House     string `json:"house" binding:"max=15"`
	Apartment string `json:"apartment" binding:"max=15"`
	Phone     string `json:"phone" binding:"required,max=20"`
}

// UpdateContactRequest updates a delivery contact
type UpdateContactRequest struct {
	ID        string `json:"id" binding:"required"`
	City      string `json:"city" binding:"required,max=50"`
	Street    string `json:"street" binding:"required,max=100"`
	House     string `json:"house" binding:"max=15"`
	Apartment string `json:"apartment" binding:"max=15"`
	Phone     string `json:"phone" binding:"required,max=20"`
}

// DeleteContactsRequest deletes contacts by a comma-separated id list
type DeleteContactsRequest struct {
	Items string `json:"items" binding:"required"`
}

// DeleteContactsResponse reports how many contacts were deleted
type DeleteContactsResponse struct {
	Deleted int `json:"deleted"`
}

// OrderResponse is an order with aggregated total
type OrderResponse struct {
	ID        uuid.UUID           `json:"id"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	Contact   *ContactResponse    `json:"contact,omitempty"`
	Items     []OrderItemResponse `json:"items"`
	Total     decimal.Decimal     `json:"total"`
}

// ToContactResponse converts a contact to its response representation
func ToContactResponse(contact *order.Contact) ContactResponse {
	return ContactResponse{
		ID:        contact.ID,
		City:      contact.City,
		Street:    contact.Street,
		House:     contact.House,
		Apartment: contact.Apartment,
		Phone:     contact.Phone,
	}
}

// ToOrderItemResponse converts an order line with its preloaded offer
func ToOrderItemResponse(item *order.Item) OrderItemResponse {
	response := OrderItemResponse{
		ID:            item.ID,
		ProductInfoID: item.ProductInfoID,
		Quantity:      item.Quantity,
	}
	if item.ProductInfo != nil {
		response.Price = item.ProductInfo.Price
		response.Sum = item.ProductInfo.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		if item.ProductInfo.Product != nil {
			response.Product = item.ProductInfo.Product.Name
		}
		if item.ProductInfo.Shop != nil {
			response.Shop = item.ProductInfo.Shop.Name
		}
	}
	return response
}

// ToOrderResponse converts an order with its items and computed total
func ToOrderResponse(o *order.Order) OrderResponse {
	response := OrderResponse{
		ID:        o.ID,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		Items:     make([]OrderItemResponse, 0, len(o.Items)),
		Total:     o.Total(),
	}
	if o.Contact != nil {
		contact := ToContactResponse(o.Contact)
		response.Contact = &contact
	}
	for i := range o.Items {
		response.Items = append(response.Items, ToOrderItemResponse(&o.Items[i]))
	}
	return response
}
