package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/shared"
)

// Status represents the lifecycle state of an order
type Status string

const (
	StatusBasket    Status = "basket"
	StatusNew       Status = "new"
	StatusConfirmed Status = "confirmed"
	StatusAssembled Status = "assembled"
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusCanceled  Status = "canceled"
)

// IsValid checks if the status is a known value
func (s Status) IsValid() bool {
	switch s {
	case StatusBasket, StatusNew, StatusConfirmed, StatusAssembled,
		StatusSent, StatusDelivered, StatusCanceled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	transitions := map[Status][]Status{
		StatusBasket:    {StatusNew},
		StatusNew:       {StatusConfirmed, StatusCanceled},
		StatusConfirmed: {StatusAssembled, StatusCanceled},
		StatusAssembled: {StatusSent, StatusCanceled},
		StatusSent:      {StatusDelivered},
		StatusDelivered: {},
		StatusCanceled:  {},
	}

	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Order is a customer's order. Exactly one order per user stays in the
// basket state and acts as the cart; placing it moves it to new.
type Order struct {
	shared.BaseAggregateRoot
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status    Status     `gorm:"type:varchar(20);not null;default:'basket';index"`
	ContactID *uuid.UUID `gorm:"type:uuid"`
	Items     []Item     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	Contact *Contact `gorm:"foreignKey:ContactID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// Item is one order line referencing a shop's offer
type Item struct {
	shared.BaseEntity
	OrderID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_order_product_info,priority:1"`
	ProductInfoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_order_product_info,priority:2"`
	Quantity      int       `gorm:"not null"`

	ProductInfo *catalog.ProductInfo `gorm:"foreignKey:ProductInfoID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "order_items"
}

// NewBasket creates a new empty basket for the user
func NewBasket(userID uuid.UUID) *Order {
	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Status:            StatusBasket,
	}
}

// AddItem adds an offer to the basket. Adding an offer that is already in
// the basket replaces its quantity.
func (o *Order) AddItem(productInfoID uuid.UUID, quantity int) error {
	if o.Status != StatusBasket {
		return shared.NewDomainError("ORDER_NOT_BASKET", "Items can only be added to a basket")
	}
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	for i := range o.Items {
		if o.Items[i].ProductInfoID == productInfoID {
			o.Items[i].Quantity = quantity
			o.Items[i].UpdatedAt = time.Now()
			o.touch()
			return nil
		}
	}

	o.Items = append(o.Items, Item{
		BaseEntity:    shared.NewBaseEntity(),
		OrderID:       o.ID,
		ProductInfoID: productInfoID,
		Quantity:      quantity,
	})
	o.touch()
	return nil
}

// UpdateItemQuantity changes the quantity of an existing basket line
func (o *Order) UpdateItemQuantity(itemID uuid.UUID, quantity int) error {
	if o.Status != StatusBasket {
		return shared.NewDomainError("ORDER_NOT_BASKET", "Items can only be changed in a basket")
	}
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	for i := range o.Items {
		if o.Items[i].ID == itemID {
			o.Items[i].Quantity = quantity
			o.Items[i].UpdatedAt = time.Now()
			o.touch()
			return nil
		}
	}
	return shared.ErrNotFound
}

// RemoveItems deletes the given basket lines. Unknown ids are ignored;
// the number of removed lines is returned.
func (o *Order) RemoveItems(itemIDs []uuid.UUID) (int, error) {
	if o.Status != StatusBasket {
		return 0, shared.NewDomainError("ORDER_NOT_BASKET", "Items can only be removed from a basket")
	}

	wanted := make(map[uuid.UUID]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}

	kept := o.Items[:0]
	removed := 0
	for _, item := range o.Items {
		if wanted[item.ID] {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	o.Items = kept
	if removed > 0 {
		o.touch()
	}
	return removed, nil
}

// Place converts the basket into a new order bound to a delivery contact.
// An empty basket cannot be placed.
func (o *Order) Place(contactID uuid.UUID) error {
	if !o.Status.CanTransitionTo(StatusNew) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "Only a basket can be placed")
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_BASKET", "Cannot place an order with no items")
	}

	o.Status = StatusNew
	o.ContactID = &contactID
	o.touch()

	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return nil
}

// Total computes the order total from the live offer prices of its items.
// Items whose offer is not loaded contribute nothing.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		if item.ProductInfo == nil {
			continue
		}
		total = total.Add(item.ProductInfo.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}
