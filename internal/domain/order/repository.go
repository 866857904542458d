package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for order persistence
type Repository interface {
	// FindByID finds an order by its ID with items and offers attached
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForUser finds the user's order by ID with items and offers
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Order, error)

	// FindBasket finds the user's basket with items and offers.
	// Returns shared.ErrNotFound when the user has never put anything in it.
	FindBasket(ctx context.Context, userID uuid.UUID) (*Order, error)

	// FindPlacedByUser finds the user's non-basket orders, newest first,
	// with items and offers for total computation
	FindPlacedByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)

	// FindForPartner finds non-basket orders containing at least one item
	// from the partner's shop, newest first, distinct per order, with the
	// delivery contact attached
	FindForPartner(ctx context.Context, partnerUserID uuid.UUID) ([]Order, error)

	// Save persists the order aggregate including its items; items removed
	// from the aggregate are deleted
	Save(ctx context.Context, o *Order) error

	// MarkPlaced atomically transitions the user's basket to new and binds
	// the contact. The guarded update only succeeds when the order exists,
	// belongs to the user and is still a basket; the return value reports
	// whether a row was changed.
	MarkPlaced(ctx context.Context, userID, orderID, contactID uuid.UUID) (bool, error)
}

// ContactRepository defines the interface for contact persistence
type ContactRepository interface {
	// FindByIDForUser finds the user's contact by ID
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Contact, error)

	// FindByUser finds all contacts of the user
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Contact, error)

	// CountByUser counts the user's contacts
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// Save creates or updates a contact
	Save(ctx context.Context, contact *Contact) error

	// DeleteForUser deletes the user's contacts by ID and reports how many
	// rows were removed; IDs the user does not own are ignored
	DeleteForUser(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error)
}
