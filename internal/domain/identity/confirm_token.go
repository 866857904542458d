package identity

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

// ConfirmToken is a single-use email confirmation key
type ConfirmToken struct {
	shared.BaseEntity
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	Key    string    `gorm:"type:varchar(64);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (ConfirmToken) TableName() string {
	return "confirm_tokens"
}

// NewConfirmToken generates a fresh token for the user
func NewConfirmToken(userID uuid.UUID) (*ConfirmToken, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, shared.NewDomainError("TOKEN_GENERATION_ERROR", "Failed to generate confirmation token")
	}

	return &ConfirmToken{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Key:        hex.EncodeToString(buf),
	}, nil
}
