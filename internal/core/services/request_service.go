package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/adapters/persistence/repositories"
	"bloodlink/internal/core/domain"

	"gorm.io/gorm"
)

// Request service errors
var (
	ErrRequestNotFound      = errors.New("blood request not found")
	ErrInvalidRequestStatus = errors.New("invalid request status")
	ErrInvalidUrgency       = errors.New("invalid urgency level")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1 unit")
	ErrReasonTooLong        = errors.New("reason cannot exceed 500 characters")
)

// RequestService handles blood request business logic
type RequestService struct {
	requestRepo repositories.RequestRepository
}

// NewRequestService creates a new blood request service
func NewRequestService(requestRepo repositories.RequestRepository) *RequestService {
	return &RequestService{requestRepo: requestRepo}
}

// CreateRequestInput represents create request input
type CreateRequestInput struct {
	BloodType domain.BloodType `json:"blood_type"`
	Quantity  int              `json:"quantity"`
	Urgency   domain.Urgency   `json:"urgency,omitempty"`
	Reason    string           `json:"reason,omitempty"`
}

// Create files a new blood request. Only recipients create requests;
// urgency defaults to Medium when omitted.
func (s *RequestService) Create(ctx context.Context, caller *models.User, input *CreateRequestInput) (*models.Request, error) {
	if !domain.RoleAllowed(caller.Role, []domain.Role{domain.RoleRecipient}) {
		return nil, domain.ErrForbidden
	}

	if !input.BloodType.Valid() {
		return nil, domain.ErrInvalidBloodType
	}
	if input.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	urgency := input.Urgency
	if urgency == "" {
		urgency = domain.UrgencyMedium
	}
	if !urgency.Valid() {
		return nil, ErrInvalidUrgency
	}

	reason := strings.TrimSpace(input.Reason)
	// Limit counts characters, not bytes
	if utf8.RuneCountInString(reason) > domain.MaxReasonLength {
		return nil, ErrReasonTooLong
	}

	request := &models.Request{
		RecipientID: caller.ID,
		BloodType:   input.BloodType,
		Quantity:    input.Quantity,
		Urgency:     urgency,
		Reason:      reason,
		Status:      domain.RequestPending,
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

// ListMine lists the caller's requests, newest first
func (s *RequestService) ListMine(ctx context.Context, caller *models.User) ([]*models.Request, error) {
	if !domain.RoleAllowed(caller.Role, []domain.Role{domain.RoleRecipient}) {
		return nil, domain.ErrForbidden
	}
	return s.requestRepo.ListByRecipient(ctx, caller.ID)
}

// ListAll lists every request with recipient identity joined (staff/admin only)
func (s *RequestService) ListAll(ctx context.Context, caller *models.User) ([]*models.Request, error) {
	if !domain.RoleAllowed(caller.Role, staffRoles) {
		return nil, domain.ErrForbidden
	}
	return s.requestRepo.ListAll(ctx)
}

// UpdateStatusInput represents update request status input
type UpdateStatusInput struct {
	Status domain.RequestStatus `json:"status"`
	Notes  string               `json:"notes,omitempty"`
}

// UpdateStatus moves a request to a new status (staff/admin only).
// Invariant: status == Fulfilled iff fulfilled_date != nil. The full next
// state is built before the single write, so the pair can never diverge.
func (s *RequestService) UpdateStatus(ctx context.Context, caller *models.User, id uint, input *UpdateStatusInput) (*models.Request, error) {
	if !domain.RoleAllowed(caller.Role, staffRoles) {
		return nil, domain.ErrForbidden
	}

	if !input.Status.Valid() {
		return nil, ErrInvalidRequestStatus
	}

	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	request.Status = input.Status
	if input.Status == domain.RequestFulfilled {
		now := time.Now()
		request.FulfilledDate = &now
	} else {
		request.FulfilledDate = nil
	}
	if input.Notes != "" {
		request.Notes = input.Notes
	}

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	log.Printf("Request %d status set to %s by user %d", request.ID, input.Status, caller.ID)

	return request, nil
}
