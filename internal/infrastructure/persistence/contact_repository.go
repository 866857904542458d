package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/markethub/backend/internal/domain/order"
	"github.com/markethub/backend/internal/domain/shared"
)

// GormContactRepository implements order.ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// FindByIDForUser finds the user's contact by ID
func (r *GormContactRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*order.Contact, error) {
	var c order.Contact
	if err := r.db.WithContext(ctx).
		First(&c, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByUser lists the user's contacts, oldest first
func (r *GormContactRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]order.Contact, error) {
	var contacts []order.Contact
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// CountByUser counts the user's contacts
func (r *GormContactRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&order.Contact{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists the contact
func (r *GormContactRepository) Save(ctx context.Context, c *order.Contact) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// DeleteForUser deletes the user's contacts by ID and reports how many
// rows were removed. Unknown IDs are ignored.
func (r *GormContactRepository) DeleteForUser(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&order.Contact{})
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

// Ensure GormContactRepository implements ContactRepository
var _ order.ContactRepository = (*GormContactRepository)(nil)
