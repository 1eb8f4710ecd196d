package config

import (
	"log"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/core/domain"
	"bloodlink/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("Warning: admin seeder skipped: %v", err)
	}

	log.Println("Database seeding completed")
	return nil
}

// seedAdminUser seeds a default admin account for development.
// In production, create the admin through a secure process.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     "Administrator",
		Email:    "admin@bloodlink.local",
		Password: hashedPassword,
		Role:     domain.RoleAdmin,
		IsActive: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("Admin user created: %s", admin.Email)
	return nil
}
