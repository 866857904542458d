package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/infrastructure/auth"
)

// AuthService handles account registration, confirmation and login
type AuthService struct {
	userRepo   identity.UserRepository
	tokenRepo  identity.ConfirmTokenRepository
	jwtService *auth.JWTService
	publisher  shared.EventPublisher
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo identity.UserRepository,
	tokenRepo identity.ConfirmTokenRepository,
	jwtService *auth.JWTService,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		publisher:  publisher,
		logger:     logger,
	}
}

// Register creates an inactive account. The confirmation email goes out
// through the registration event handler.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	userType := identity.UserTypeBuyer
	if req.Type != "" {
		userType = identity.UserType(req.Type)
	}

	user, err := identity.NewUser(req.Email, req.Password, userType)
	if err != nil {
		return nil, err
	}
	user.UpdateProfile(req.FirstName, req.LastName, req.Company, req.Position)

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Account registered",
		zap.String("user_id", user.ID.String()),
		zap.String("type", string(user.Type)))

	s.publishDomainEvents(ctx, user)

	response := ToUserResponse(user)
	return &response, nil
}

// Confirm activates an account with the emailed token
func (s *AuthService) Confirm(ctx context.Context, req ConfirmRequest) error {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if err == shared.ErrNotFound {
			return shared.NewDomainError("INVALID_TOKEN", "Wrong email or confirmation token")
		}
		return err
	}

	if _, err := s.tokenRepo.FindByUserAndKey(ctx, user.ID, req.Token); err != nil {
		if err == shared.ErrNotFound {
			return shared.NewDomainError("INVALID_TOKEN", "Wrong email or confirmation token")
		}
		return err
	}

	user.Activate()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	if err := s.tokenRepo.DeleteByUser(ctx, user.ID); err != nil {
		s.logger.Error("Failed to delete confirmation tokens", zap.Error(err))
	}

	s.logger.Info("Account confirmed", zap.String("user_id", user.ID.String()))
	return nil
}

// Login authenticates an active account and returns a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is not confirmed yet")
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Email:    user.Email,
		UserType: string(user.Type),
	})
	if err != nil {
		return nil, err
	}

	return &LoginResponse{User: ToUserResponse(user), Token: pair}, nil
}

// Refresh issues a fresh token pair from a valid refresh token
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*auth.TokenPair, error) {
	pair, err := s.jwtService.RefreshTokenPair(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid or expired refresh token")
	}
	return pair, nil
}

// GetAccount returns the account profile
func (s *AuthService) GetAccount(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// UpdateAccount updates profile fields and optionally the password
func (s *AuthService) UpdateAccount(ctx context.Context, userID uuid.UUID, req UpdateAccountRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	firstName := user.FirstName
	if req.FirstName != nil {
		firstName = *req.FirstName
	}
	lastName := user.LastName
	if req.LastName != nil {
		lastName = *req.LastName
	}
	company := user.Company
	if req.Company != nil {
		company = *req.Company
	}
	position := user.Position
	if req.Position != nil {
		position = *req.Position
	}
	user.UpdateProfile(firstName, lastName, company, position)

	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// publishDomainEvents publishes pending events from the user aggregate
func (s *AuthService) publishDomainEvents(ctx context.Context, user *identity.User) {
	if s.publisher == nil {
		return
	}
	events := user.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.publisher.Publish(ctx, events...)
	user.ClearDomainEvents()
}
