package services

import (
	"context"
	"errors"
	"log"
	"time"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/adapters/persistence/repositories"
	"bloodlink/internal/core/domain"

	"gorm.io/gorm"
)

// Donation service errors
var (
	ErrDonationNotFound      = errors.New("donation not found")
	ErrInvalidDonationStatus = errors.New("invalid donation status")
	ErrScheduledDateRequired = errors.New("scheduled date is required")
)

// staffRoles is the set allowed to manage donations and requests
var staffRoles = []domain.Role{domain.RoleHospitalStaff, domain.RoleAdmin}

// DonationService handles donation appointment business logic
type DonationService struct {
	donationRepo repositories.DonationRepository
}

// NewDonationService creates a new donation service
func NewDonationService(donationRepo repositories.DonationRepository) *DonationService {
	return &DonationService{donationRepo: donationRepo}
}

// CreateDonationInput represents create donation input
type CreateDonationInput struct {
	ScheduledDate time.Time        `json:"scheduled_date"`
	BloodType     domain.BloodType `json:"blood_type"`
}

// Create schedules a new donation appointment. Only donors create donations;
// every appointment starts out Pending.
func (s *DonationService) Create(ctx context.Context, caller *models.User, input *CreateDonationInput) (*models.Donation, error) {
	if !domain.RoleAllowed(caller.Role, []domain.Role{domain.RoleDonor}) {
		return nil, domain.ErrForbidden
	}

	if input.ScheduledDate.IsZero() {
		return nil, ErrScheduledDateRequired
	}
	if !input.BloodType.Valid() {
		return nil, domain.ErrInvalidBloodType
	}

	donation := &models.Donation{
		DonorID:       caller.ID,
		ScheduledDate: input.ScheduledDate,
		BloodType:     input.BloodType,
		Status:        domain.DonationPending,
	}

	if err := s.donationRepo.Create(ctx, donation); err != nil {
		return nil, err
	}

	return donation, nil
}

// ListMine lists the caller's donations, newest scheduled first
func (s *DonationService) ListMine(ctx context.Context, caller *models.User) ([]*models.Donation, error) {
	if !domain.RoleAllowed(caller.Role, []domain.Role{domain.RoleDonor}) {
		return nil, domain.ErrForbidden
	}
	return s.donationRepo.ListByDonor(ctx, caller.ID)
}

// ListAll lists every donation with donor identity joined (staff/admin only)
func (s *DonationService) ListAll(ctx context.Context, caller *models.User) ([]*models.Donation, error) {
	if !domain.RoleAllowed(caller.Role, staffRoles) {
		return nil, domain.ErrForbidden
	}
	return s.donationRepo.ListAll(ctx)
}

// UpdateStatus moves a donation to a new status (staff/admin only).
// Any status may move to any other; there is no transition table.
// Entering Completed stamps the completed date, every other target clears it.
func (s *DonationService) UpdateStatus(ctx context.Context, caller *models.User, id uint, newStatus domain.DonationStatus) (*models.Donation, error) {
	if !domain.RoleAllowed(caller.Role, staffRoles) {
		return nil, domain.ErrForbidden
	}

	if !newStatus.Valid() {
		return nil, ErrInvalidDonationStatus
	}

	donation, err := s.donationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, err
	}

	// Build the full next state before the single write
	donation.Status = newStatus
	if newStatus == domain.DonationCompleted {
		now := time.Now()
		donation.CompletedDate = &now
	} else {
		donation.CompletedDate = nil
	}

	if err := s.donationRepo.Update(ctx, donation); err != nil {
		return nil, err
	}

	log.Printf("Donation %d status set to %s by user %d", donation.ID, newStatus, caller.ID)

	return donation, nil
}
