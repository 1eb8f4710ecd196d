package services

import (
	"context"
	"time"

	"bloodlink/internal/core/domain"

	"gorm.io/gorm"
)

// DashboardService handles dashboard aggregation
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	// User statistics
	TotalUsers      int64 `json:"total_users"`
	TotalDonors     int64 `json:"total_donors"`
	TotalRecipients int64 `json:"total_recipients"`
	TotalStaff      int64 `json:"total_staff"`
	TotalAdmins     int64 `json:"total_admins"`

	// Donation statistics
	TotalDonations     int64 `json:"total_donations"`
	PendingDonations   int64 `json:"pending_donations"`
	CompletedDonations int64 `json:"completed_donations"`
	CancelledDonations int64 `json:"cancelled_donations"`

	// Request statistics
	TotalRequests     int64 `json:"total_requests"`
	PendingRequests   int64 `json:"pending_requests"`
	FulfilledRequests int64 `json:"fulfilled_requests"`
	CriticalRequests  int64 `json:"critical_requests"`

	RegistrationsThisMonth int64 `json:"registrations_this_month"`
}

// StaffDashboardData represents hospital staff dashboard data
type StaffDashboardData struct {
	PendingDonations  int64            `json:"pending_donations"`
	DonationsThisWeek int64            `json:"donations_this_week"`
	PendingRequests   int64            `json:"pending_requests"`
	RequestsByUrgency map[string]int64 `json:"requests_by_urgency"`
	DonationsByBlood  map[string]int64 `json:"donations_by_blood_type"`
}

// GetAdminDashboard returns admin dashboard data
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{}

	// User counts by role
	s.db.WithContext(ctx).Table("users").Where("deleted_at IS NULL").Count(&data.TotalUsers)
	s.db.WithContext(ctx).Table("users").Where("role = ? AND deleted_at IS NULL", domain.RoleDonor).Count(&data.TotalDonors)
	s.db.WithContext(ctx).Table("users").Where("role = ? AND deleted_at IS NULL", domain.RoleRecipient).Count(&data.TotalRecipients)
	s.db.WithContext(ctx).Table("users").Where("role = ? AND deleted_at IS NULL", domain.RoleHospitalStaff).Count(&data.TotalStaff)
	s.db.WithContext(ctx).Table("users").Where("role = ? AND deleted_at IS NULL", domain.RoleAdmin).Count(&data.TotalAdmins)

	// Donation counts by status
	s.db.WithContext(ctx).Table("donations").Count(&data.TotalDonations)
	s.db.WithContext(ctx).Table("donations").Where("status = ?", domain.DonationPending).Count(&data.PendingDonations)
	s.db.WithContext(ctx).Table("donations").Where("status = ?", domain.DonationCompleted).Count(&data.CompletedDonations)
	s.db.WithContext(ctx).Table("donations").Where("status = ?", domain.DonationCancelled).Count(&data.CancelledDonations)

	// Request counts
	s.db.WithContext(ctx).Table("blood_requests").Count(&data.TotalRequests)
	s.db.WithContext(ctx).Table("blood_requests").Where("status = ?", domain.RequestPending).Count(&data.PendingRequests)
	s.db.WithContext(ctx).Table("blood_requests").Where("status = ?", domain.RequestFulfilled).Count(&data.FulfilledRequests)
	s.db.WithContext(ctx).Table("blood_requests").
		Where("urgency = ? AND status = ?", domain.UrgencyCritical, domain.RequestPending).
		Count(&data.CriticalRequests)

	// Monthly registrations
	monthStart := time.Now().AddDate(0, 0, -time.Now().Day()+1).Truncate(24 * time.Hour)
	s.db.WithContext(ctx).Table("users").
		Where("created_at >= ? AND deleted_at IS NULL", monthStart).
		Count(&data.RegistrationsThisMonth)

	return data, nil
}

// GetStaffDashboard returns hospital staff dashboard data
func (s *DashboardService) GetStaffDashboard(ctx context.Context) (*StaffDashboardData, error) {
	data := &StaffDashboardData{
		RequestsByUrgency: make(map[string]int64),
		DonationsByBlood:  make(map[string]int64),
	}

	s.db.WithContext(ctx).Table("donations").Where("status = ?", domain.DonationPending).Count(&data.PendingDonations)

	weekStart := time.Now().AddDate(0, 0, -7)
	s.db.WithContext(ctx).Table("donations").
		Where("scheduled_date >= ?", weekStart).
		Count(&data.DonationsThisWeek)

	s.db.WithContext(ctx).Table("blood_requests").Where("status = ?", domain.RequestPending).Count(&data.PendingRequests)

	type countRow struct {
		Key   string
		Count int64
	}

	var urgencyRows []countRow
	s.db.WithContext(ctx).Table("blood_requests").
		Select("urgency AS `key`, COUNT(*) AS count").
		Where("status = ?", domain.RequestPending).
		Group("urgency").
		Scan(&urgencyRows)
	for _, row := range urgencyRows {
		data.RequestsByUrgency[row.Key] = row.Count
	}

	var bloodRows []countRow
	s.db.WithContext(ctx).Table("donations").
		Select("blood_type AS `key`, COUNT(*) AS count").
		Where("status = ?", domain.DonationCompleted).
		Group("blood_type").
		Scan(&bloodRows)
	for _, row := range bloodRows {
		data.DonationsByBlood[row.Key] = row.Count
	}

	return data, nil
}
