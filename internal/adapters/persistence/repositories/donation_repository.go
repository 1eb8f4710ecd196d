package repositories

import (
	"context"
	"time"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/core/domain"

	"gorm.io/gorm"
)

// donationRepository implements DonationRepository interface
type donationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a new donation repository
func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

// Create creates a new donation
func (r *donationRepository) Create(ctx context.Context, donation *models.Donation) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

// GetByID gets a donation by ID
func (r *donationRepository) GetByID(ctx context.Context, id uint) (*models.Donation, error) {
	var donation models.Donation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&donation).Error
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

// ListByDonor lists a donor's donations, newest scheduled first
func (r *donationRepository) ListByDonor(ctx context.Context, donorID uint) ([]*models.Donation, error) {
	var donations []*models.Donation
	err := r.db.WithContext(ctx).
		Where("donor_id = ?", donorID).
		Order("scheduled_date DESC").
		Find(&donations).Error
	return donations, err
}

// ListAll lists all donations with donor identity joined, newest scheduled first
func (r *donationRepository) ListAll(ctx context.Context) ([]*models.Donation, error) {
	var donations []*models.Donation
	err := r.db.WithContext(ctx).
		Preload("Donor").
		Order("scheduled_date DESC").
		Find(&donations).Error
	return donations, err
}

// Update persists the full donation record in a single write
func (r *donationRepository) Update(ctx context.Context, donation *models.Donation) error {
	return r.db.WithContext(ctx).Save(donation).Error
}

// ListStalePending lists donations still Pending whose scheduled date is before cutoff
func (r *donationRepository) ListStalePending(ctx context.Context, cutoff time.Time) ([]*models.Donation, error) {
	var donations []*models.Donation
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_date < ?", domain.DonationPending, cutoff).
		Find(&donations).Error
	return donations, err
}
