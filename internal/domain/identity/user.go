package identity

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/markethub/backend/internal/domain/shared"
)

// UserType distinguishes buyers from shop partners
type UserType string

const (
	UserTypeBuyer UserType = "buyer"
	UserTypeShop  UserType = "shop"
)

// IsValid checks if the user type is a known value
func (t UserType) IsValid() bool {
	return t == UserTypeBuyer || t == UserTypeShop
}

// Password cost for bcrypt
const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User represents an account in the system.
// Accounts start inactive and are activated by email confirmation.
type User struct {
	shared.BaseAggregateRoot
	Email        string   `gorm:"type:varchar(254);not null;uniqueIndex"`
	PasswordHash string   `gorm:"type:varchar(100);not null"`
	FirstName    string   `gorm:"type:varchar(100)"`
	LastName     string   `gorm:"type:varchar(100)"`
	Company      string   `gorm:"type:varchar(100)"`
	Position     string   `gorm:"type:varchar(100)"`
	Type         UserType `gorm:"type:varchar(10);not null;default:'buyer'"`
	Active       bool     `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new inactive user
func NewUser(email, password string, userType UserType) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if !userType.IsValid() {
		return nil, shared.NewDomainError("INVALID_USER_TYPE", "User type must be buyer or shop")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      passwordHash,
		Type:              userType,
		Active:            false,
	}

	user.AddDomainEvent(NewUserRegisteredEvent(user))

	return user, nil
}

// Activate marks the account as confirmed
func (u *User) Activate() {
	if u.Active {
		return
	}
	u.Active = true
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SetPassword replaces the password hash
func (u *User) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// UpdateProfile replaces the profile fields
func (u *User) UpdateProfile(firstName, lastName, company, position string) {
	u.FirstName = strings.TrimSpace(firstName)
	u.LastName = strings.TrimSpace(lastName)
	u.Company = strings.TrimSpace(company)
	u.Position = strings.TrimSpace(position)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// IsPartner reports whether the account may manage a shop
func (u *User) IsPartner() bool {
	return u.Type == UserTypeShop
}

// CanLogin reports whether the account may authenticate
func (u *User) CanLogin() bool {
	return u.Active
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email is required")
	}
	if len(email) > 254 || !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
