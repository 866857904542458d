package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/infrastructure/auth"
)

// RegisterRequest represents a request to create an account
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	Type      string `json:"type" binding:"omitempty,oneof=buyer shop"`
	FirstName string `json:"first_name" binding:"max=100"`
	LastName  string `json:"last_name" binding:"max=100"`
	Company   string `json:"company" binding:"max=100"`
	Position  string `json:"position" binding:"max=100"`
}

// ConfirmRequest represents an account confirmation request
type ConfirmRequest struct {
	Email string `json:"email" binding:"required,email"`
	Token string `json:"token" binding:"required"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateAccountRequest represents a profile update. Nil fields are left
// untouched; a non-nil password is re-hashed.
type UpdateAccountRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
	Company   *string `json:"company" binding:"omitempty,max=100"`
	Position  *string `json:"position" binding:"omitempty,max=100"`
	Password  *string `json:"password" binding:"omitempty,min=8,max=72"`
}

// UserResponse represents an account in API responses
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Company   string    `json:"company"`
	Position  string    `json:"position"`
	Type      string    `json:"type"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse carries the account and its token pair
type LoginResponse struct {
	User  UserResponse    `json:"user"`
	Token *auth.TokenPair `json:"token"`
}

// ToUserResponse converts a user to its response representation
func ToUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Company:   user.Company,
		Position:  user.Position,
		Type:      string(user.Type),
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
	}
}
