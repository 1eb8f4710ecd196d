package models

import (
	"time"

	"bloodlink/internal/core/domain"
	"bloodlink/internal/pkg/password"

	"gorm.io/gorm"
)

// ============================================================
// Users
// ============================================================

// User represents users table
type User struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	Name         string           `gorm:"size:100;not null" json:"name"`
	Email        string           `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password     string           `gorm:"size:255;not null" json:"-"`
	Role         domain.Role      `gorm:"size:20;not null" json:"role"`
	Phone        string           `gorm:"size:30" json:"phone,omitempty"`
	BloodType    domain.BloodType `gorm:"size:3" json:"blood_type,omitempty"`
	HospitalName string           `gorm:"size:200" json:"hospital_name,omitempty"`
	Address      string           `gorm:"size:255" json:"address,omitempty"`
	IsActive     bool             `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// BeforeSave enforces the stored-hash invariant at the persistence
// boundary. Service paths hash before persisting; an unchanged hash
// passes through untouched, a plaintext value that slipped through is
// hashed here.
func (u *User) BeforeSave(_ *gorm.DB) error {
	if u.Password == "" || password.IsHashed(u.Password) {
		return nil
	}
	hashed, err := password.Hash(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return nil
}

// UserResponse DTO
type UserResponse struct {
	ID           uint             `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Role         domain.Role      `json:"role"`
	Phone        string           `json:"phone,omitempty"`
	BloodType    domain.BloodType `json:"blood_type,omitempty"`
	HospitalName string           `json:"hospital_name,omitempty"`
	Address      string           `json:"address,omitempty"`
	IsActive     bool             `json:"is_active"`
	CreatedAt    time.Time        `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		Phone:        u.Phone,
		BloodType:    u.BloodType,
		HospitalName: u.HospitalName,
		Address:      u.Address,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}

// UserSummary is the identity joined into staff-facing listings
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ============================================================
// Donations
// ============================================================

// Donation represents donations table
type Donation struct {
	ID            uint                  `gorm:"primaryKey" json:"id"`
	DonorID       uint                  `gorm:"index;not null" json:"donor_id"`
	ScheduledDate time.Time             `gorm:"not null;index" json:"scheduled_date"`
	BloodType     domain.BloodType      `gorm:"size:3;not null" json:"blood_type"`
	Status        domain.DonationStatus `gorm:"size:20;not null;default:'Pending'" json:"status"`
	CompletedDate *time.Time            `json:"completed_date"`
	CreatedAt     time.Time             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time             `gorm:"autoUpdateTime" json:"updated_at"`

	Donor *User `gorm:"foreignKey:DonorID" json:"-"`
}

func (Donation) TableName() string {
	return "donations"
}

// DonationResponse DTO
type DonationResponse struct {
	ID            uint                  `json:"id"`
	DonorID       uint                  `json:"donor_id"`
	Donor         *UserSummary          `json:"donor,omitempty"`
	ScheduledDate time.Time             `json:"scheduled_date"`
	BloodType     domain.BloodType      `json:"blood_type"`
	Status        domain.DonationStatus `json:"status"`
	CompletedDate *time.Time            `json:"completed_date"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

func (d *Donation) ToResponse() *DonationResponse {
	resp := &DonationResponse{
		ID:            d.ID,
		DonorID:       d.DonorID,
		ScheduledDate: d.ScheduledDate,
		BloodType:     d.BloodType,
		Status:        d.Status,
		CompletedDate: d.CompletedDate,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}

	if d.Donor != nil {
		resp.Donor = &UserSummary{
			ID:    d.Donor.ID,
			Name:  d.Donor.Name,
			Email: d.Donor.Email,
		}
	}

	return resp
}

// ============================================================
// Requests
// ============================================================

// Request represents blood_requests table
type Request struct {
	ID            uint                 `gorm:"primaryKey" json:"id"`
	RecipientID   uint                 `gorm:"index;not null" json:"recipient_id"`
	BloodType     domain.BloodType     `gorm:"size:3;not null" json:"blood_type"`
	Quantity      int                  `gorm:"not null" json:"quantity"`
	Urgency       domain.Urgency       `gorm:"size:20;not null;default:'Medium'" json:"urgency"`
	Reason        string               `gorm:"size:500" json:"reason,omitempty"`
	Status        domain.RequestStatus `gorm:"size:20;not null;default:'Pending'" json:"status"`
	Notes         string               `gorm:"type:text" json:"notes,omitempty"`
	FulfilledDate *time.Time           `json:"fulfilled_date"`
	CreatedAt     time.Time            `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time            `gorm:"autoUpdateTime" json:"updated_at"`

	Recipient *User `gorm:"foreignKey:RecipientID" json:"-"`
}

func (Request) TableName() string {
	return "blood_requests"
}

// RequestResponse DTO
type RequestResponse struct {
	ID            uint                 `json:"id"`
	RecipientID   uint                 `json:"recipient_id"`
	Recipient     *UserSummary         `json:"recipient,omitempty"`
	BloodType     domain.BloodType     `json:"blood_type"`
	Quantity      int                  `json:"quantity"`
	Urgency       domain.Urgency       `json:"urgency"`
	Reason        string               `json:"reason,omitempty"`
	Status        domain.RequestStatus `json:"status"`
	Notes         string               `json:"notes,omitempty"`
	FulfilledDate *time.Time           `json:"fulfilled_date"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

func (r *Request) ToResponse() *RequestResponse {
	resp := &RequestResponse{
		ID:            r.ID,
		RecipientID:   r.RecipientID,
		BloodType:     r.BloodType,
		Quantity:      r.Quantity,
		Urgency:       r.Urgency,
		Reason:        r.Reason,
		Status:        r.Status,
		Notes:         r.Notes,
		FulfilledDate: r.FulfilledDate,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}

	if r.Recipient != nil {
		resp.Recipient = &UserSummary{
			ID:    r.Recipient.ID,
			Name:  r.Recipient.Name,
			Email: r.Recipient.Email,
		}
	}

	return resp
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Donation{},
		&Request{},
	)
}
