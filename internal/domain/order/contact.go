package order

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

// MaxContactsPerUser bounds the delivery address book
const MaxContactsPerUser = 5

// Contact is a delivery address with a phone number
type Contact struct {
	shared.BaseEntity
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	City      string    `gorm:"type:varchar(50);not null"`
	Street    string    `gorm:"type:varchar(100);not null"`
	House     string    `gorm:"type:varchar(15)"`
	Apartment string    `gorm:"type:varchar(15)"`
	Phone     string    `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (Contact) TableName() string {
	return "contacts"
}

// NewContact creates a new delivery contact for the user
func NewContact(userID uuid.UUID, city, street, house, apartment, phone string) (*Contact, error) {
	contact := &Contact{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		City:       strings.TrimSpace(city),
		Street:     strings.TrimSpace(street),
		House:      strings.TrimSpace(house),
		Apartment:  strings.TrimSpace(apartment),
		Phone:      strings.TrimSpace(phone),
	}
	if err := contact.validate(); err != nil {
		return nil, err
	}
	return contact, nil
}

// Update replaces the contact's fields
func (c *Contact) Update(city, street, house, apartment, phone string) error {
	updated := *c
	updated.City = strings.TrimSpace(city)
	updated.Street = strings.TrimSpace(street)
	updated.House = strings.TrimSpace(house)
	updated.Apartment = strings.TrimSpace(apartment)
	updated.Phone = strings.TrimSpace(phone)
	if err := updated.validate(); err != nil {
		return err
	}

	updated.UpdatedAt = time.Now()
	*c = updated
	return nil
}

func (c *Contact) validate() error {
	if c.City == "" {
		return shared.NewDomainError("INVALID_CONTACT", "City is required")
	}
	if c.Street == "" {
		return shared.NewDomainError("INVALID_CONTACT", "Street is required")
	}
	if c.Phone == "" {
		return shared.NewDomainError("INVALID_CONTACT", "Phone is required")
	}
	return nil
}
