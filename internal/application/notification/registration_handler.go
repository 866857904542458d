package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/domain/shared"
)

// RegistrationHandler reacts to user registration: it mints the email
// confirmation token and mails the key to the new account
type RegistrationHandler struct {
	tokenRepo identity.ConfirmTokenRepository
	sender    shared.NotificationSender
	logger    *zap.Logger
}

// NewRegistrationHandler creates a new RegistrationHandler
func NewRegistrationHandler(
	tokenRepo identity.ConfirmTokenRepository,
	sender shared.NotificationSender,
	logger *zap.Logger,
) *RegistrationHandler {
	return &RegistrationHandler{
		tokenRepo: tokenRepo,
		sender:    sender,
		logger:    logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *RegistrationHandler) EventTypes() []string {
	return []string{identity.EventTypeUserRegistered}
}

// Handle mints and mails the confirmation token. The account stays
// inactive until the key comes back through the confirm endpoint.
func (h *RegistrationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	registered, ok := event.(*identity.UserRegisteredEvent)
	if !ok {
		return nil
	}

	token, err := identity.NewConfirmToken(registered.UserID)
	if err != nil {
		return err
	}
	if err := h.tokenRepo.Save(ctx, token); err != nil {
		return err
	}

	subject := fmt.Sprintf("Email confirmation token for %s", registered.Email)
	if err := h.sender.Send(ctx, []string{registered.Email}, subject, token.Key); err != nil {
		h.logger.Error("Failed to send confirmation email",
			zap.String("user_id", registered.UserID.String()),
			zap.Error(err))
		return err
	}

	h.logger.Info("Confirmation email sent",
		zap.String("user_id", registered.UserID.String()))
	return nil
}
