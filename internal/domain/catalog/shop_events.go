package catalog

import (
	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeShop = "Shop"

// Event type constants
const (
	EventTypeShopCreated      = "ShopCreated"
	EventTypeShopStateChanged = "ShopStateChanged"
	EventTypeCatalogImported  = "CatalogImported"
)

// ShopCreatedEvent is published when a new shop is registered
type ShopCreatedEvent struct {
	shared.BaseDomainEvent
	ShopID uuid.UUID  `json:"shop_id"`
	Name   string     `json:"name"`
	UserID *uuid.UUID `json:"user_id,omitempty"`
}

// NewShopCreatedEvent creates a new ShopCreatedEvent
func NewShopCreatedEvent(shop *Shop) *ShopCreatedEvent {
	return &ShopCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShopCreated, AggregateTypeShop, shop.ID),
		ShopID:          shop.ID,
		Name:            shop.Name,
		UserID:          shop.UserID,
	}
}

// ShopStateChangedEvent is published when a shop's visibility is toggled
type ShopStateChangedEvent struct {
	shared.BaseDomainEvent
	ShopID uuid.UUID `json:"shop_id"`
	Name   string    `json:"name"`
	State  bool      `json:"state"`
}

// NewShopStateChangedEvent creates a new ShopStateChangedEvent
func NewShopStateChangedEvent(shop *Shop) *ShopStateChangedEvent {
	return &ShopStateChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShopStateChanged, AggregateTypeShop, shop.ID),
		ShopID:          shop.ID,
		Name:            shop.Name,
		State:           shop.State,
	}
}

// CatalogImportedEvent is published after a feed import commits
type CatalogImportedEvent struct {
	shared.BaseDomainEvent
	ShopID     uuid.UUID `json:"shop_id"`
	ShopName   string    `json:"shop_name"`
	Categories int       `json:"categories"`
	Goods      int       `json:"goods"`
}

// NewCatalogImportedEvent creates a new CatalogImportedEvent
func NewCatalogImportedEvent(shop *Shop, categories, goods int) *CatalogImportedEvent {
	return &CatalogImportedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCatalogImported, AggregateTypeShop, shop.ID),
		ShopID:          shop.ID,
		ShopName:        shop.Name,
		Categories:      categories,
		Goods:           goods,
	}
}
