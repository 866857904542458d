package order

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/order"
	"github.com/markethub/backend/internal/domain/shared"
)

// ContactService manages a user's delivery contacts
type ContactService struct {
	contactRepo order.ContactRepository
	logger      *zap.Logger
}

// NewContactService creates a new ContactService
func NewContactService(contactRepo order.ContactRepository, logger *zap.Logger) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		logger:      logger,
	}
}

// List returns the user's contacts
func (s *ContactService) List(ctx context.Context, userID uuid.UUID) ([]ContactResponse, error) {
	contacts, err := s.contactRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		responses = append(responses, ToContactResponse(&contacts[i]))
	}
	return responses, nil
}

// Create adds a delivery contact, bounded per user
func (s *ContactService) Create(ctx context.Context, userID uuid.UUID, req CreateContactRequest) (*ContactResponse, error) {
	count, err := s.contactRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= order.MaxContactsPerUser {
		return nil, shared.NewDomainError("CONTACT_LIMIT", "A user can have at most 5 contacts")
	}

	contact, err := order.NewContact(userID, req.City, req.Street, req.House, req.Apartment, req.Phone)
	if err != nil {
		return nil, err
	}
	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}

	response := ToContactResponse(contact)
	return &response, nil
}

// Update replaces the fields of one of the user's contacts
func (s *ContactService) Update(ctx context.Context, userID uuid.UUID, req UpdateContactRequest) (*ContactResponse, error) {
	contactID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "id must be a valid contact id")
	}

	contact, err := s.contactRepo.FindByIDForUser(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}
	if err := contact.Update(req.City, req.Street, req.House, req.Apartment, req.Phone); err != nil {
		return nil, err
	}
	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}

	response := ToContactResponse(contact)
	return &response, nil
}

// Delete removes contacts named by a comma-separated id string and reports
// the deleted count. Malformed tokens are skipped silently.
func (s *ContactService) Delete(ctx context.Context, userID uuid.UUID, req DeleteContactsRequest) (*DeleteContactsResponse, error) {
	ids := parseIDList(req.Items)
	if len(ids) == 0 {
		return &DeleteContactsResponse{}, nil
	}

	deleted, err := s.contactRepo.DeleteForUser(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	return &DeleteContactsResponse{Deleted: deleted}, nil
}
