package repositories

import (
	"context"

	"bloodlink/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// requestRepository implements RequestRepository interface
type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new blood request repository
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

// Create creates a new blood request
func (r *requestRepository) Create(ctx context.Context, request *models.Request) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// GetByID gets a blood request by ID
func (r *requestRepository) GetByID(ctx context.Context, id uint) (*models.Request, error) {
	var request models.Request
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ListByRecipient lists a recipient's requests, newest first
func (r *requestRepository) ListByRecipient(ctx context.Context, recipientID uint) ([]*models.Request, error) {
	var requests []*models.Request
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// ListAll lists all requests with recipient identity joined, newest first
func (r *requestRepository) ListAll(ctx context.Context) ([]*models.Request, error) {
	var requests []*models.Request
	err := r.db.WithContext(ctx).
		Preload("Recipient").
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// Update persists the full request record in a single write
func (r *requestRepository) Update(ctx context.Context, request *models.Request) error {
	return r.db.WithContext(ctx).Save(request).Error
}
