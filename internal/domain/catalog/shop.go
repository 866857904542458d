package catalog

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

// Shop represents a partner shop publishing a price-list feed.
// It is the aggregate root for the shop's catalog slice.
type Shop struct {
	shared.BaseAggregateRoot
	Name   string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	URL    *string    `gorm:"type:varchar(500)"`
	UserID *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	// State gates buyer-facing visibility and order fan-out.
	// It never blocks feed imports.
	State bool `gorm:"not null;default:true"`

	Categories []Category `gorm:"many2many:shop_categories"`
}

// TableName returns the table name for GORM
func (Shop) TableName() string {
	return "shops"
}

// NewShop creates a new shop owned by the given partner user
func NewShop(name string, userID uuid.UUID) (*Shop, error) {
	name = strings.TrimSpace(name)
	if err := validateShopName(name); err != nil {
		return nil, err
	}

	shop := &Shop{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		UserID:            &userID,
		State:             true,
	}

	shop.AddDomainEvent(NewShopCreatedEvent(shop))

	return shop, nil
}

// IsOwnedBy reports whether the shop belongs to the given user
func (s *Shop) IsOwnedBy(userID uuid.UUID) bool {
	return s.UserID != nil && *s.UserID == userID
}

// SetState toggles buyer-facing visibility
func (s *Shop) SetState(state bool) {
	if s.State == state {
		return
	}

	s.State = state
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewShopStateChangedEvent(s))
}

// SetURL sets the shop's feed URL
func (s *Shop) SetURL(raw string) error {
	parsed, err := url.ParseRequestURI(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return shared.NewDomainError("INVALID_URL", "Feed URL must be a valid http(s) URL")
	}

	s.URL = &raw
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

func validateShopName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_SHOP_NAME", "Shop name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_SHOP_NAME", "Shop name cannot exceed 100 characters")
	}
	return nil
}
