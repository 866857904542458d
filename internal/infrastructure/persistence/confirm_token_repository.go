package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/domain/shared"
)

// GormConfirmTokenRepository implements identity.ConfirmTokenRepository using GORM
type GormConfirmTokenRepository struct {
	db *gorm.DB
}

// NewGormConfirmTokenRepository creates a new GormConfirmTokenRepository
func NewGormConfirmTokenRepository(db *gorm.DB) *GormConfirmTokenRepository {
	return &GormConfirmTokenRepository{db: db}
}

// FindByUserAndKey finds a confirmation token by user and key
func (r *GormConfirmTokenRepository) FindByUserAndKey(ctx context.Context, userID uuid.UUID, key string) (*identity.ConfirmToken, error) {
	var t identity.ConfirmToken
	if err := r.db.WithContext(ctx).
		First(&t, "user_id = ? AND key = ?", userID, key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Save persists the token
func (r *GormConfirmTokenRepository) Save(ctx context.Context, t *identity.ConfirmToken) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// DeleteByUser removes all tokens issued to the user
func (r *GormConfirmTokenRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&identity.ConfirmToken{}).Error
}

// Ensure GormConfirmTokenRepository implements ConfirmTokenRepository
var _ identity.ConfirmTokenRepository = (*GormConfirmTokenRepository)(nil)
