package repositories

import (
	"context"
	"time"

	"bloodlink/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// DonationRepository defines donation repository interface
type DonationRepository interface {
	Create(ctx context.Context, donation *models.Donation) error
	GetByID(ctx context.Context, id uint) (*models.Donation, error)
	ListByDonor(ctx context.Context, donorID uint) ([]*models.Donation, error)
	ListAll(ctx context.Context) ([]*models.Donation, error)
	Update(ctx context.Context, donation *models.Donation) error
	ListStalePending(ctx context.Context, cutoff time.Time) ([]*models.Donation, error)
}

// RequestRepository defines blood request repository interface
type RequestRepository interface {
	Create(ctx context.Context, request *models.Request) error
	GetByID(ctx context.Context, id uint) (*models.Request, error)
	ListByRecipient(ctx context.Context, recipientID uint) ([]*models.Request, error)
	ListAll(ctx context.Context) ([]*models.Request, error)
	Update(ctx context.Context, request *models.Request) error
}
