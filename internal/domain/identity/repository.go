package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email (stored lower-cased)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail checks whether the email is taken
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error
}

// ConfirmTokenRepository defines the interface for confirmation tokens
type ConfirmTokenRepository interface {
	// FindByUserAndKey finds a token by owner and key
	FindByUserAndKey(ctx context.Context, userID uuid.UUID, key string) (*ConfirmToken, error)

	// Save creates a token
	Save(ctx context.Context, token *ConfirmToken) error

	// DeleteByUser removes all tokens of the user
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
