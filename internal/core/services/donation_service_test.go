package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/core/domain"
)

func donorUser(id uint) *models.User {
	return &models.User{ID: id, Name: "Donor", Email: "donor@example.com", Role: domain.RoleDonor, IsActive: true}
}

func staffUser(id uint) *models.User {
	return &models.User{ID: id, Name: "Staff", Email: "staff@example.com", Role: domain.RoleHospitalStaff, IsActive: true}
}

func TestDonationCreate_Success(t *testing.T) {
	repo := newMockDonationRepo()
	svc := NewDonationService(repo)

	donation, err := svc.Create(context.Background(), donorUser(1), &CreateDonationInput{
		ScheduledDate: time.Now().Add(48 * time.Hour),
		BloodType:     domain.BloodAPos,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(1), donation.DonorID)
	assert.Equal(t, domain.DonationPending, donation.Status)
	assert.Nil(t, donation.CompletedDate)
}

func TestDonationCreate_NonDonorForbidden(t *testing.T) {
	repo := newMockDonationRepo()
	svc := NewDonationService(repo)

	for _, role := range []domain.Role{domain.RoleRecipient, domain.RoleHospitalStaff, domain.RoleAdmin} {
		caller := &models.User{ID: 2, Role: role}
		_, err := svc.Create(context.Background(), caller, &CreateDonationInput{
			ScheduledDate: time.Now().Add(48 * time.Hour),
			BloodType:     domain.BloodAPos,
		})
		assert.ErrorIs(t, err, domain.ErrForbidden, "role %s must not create donations", role)
	}
}

func TestDonationCreate_MissingDate(t *testing.T) {
	svc := NewDonationService(newMockDonationRepo())

	_, err := svc.Create(context.Background(), donorUser(1), &CreateDonationInput{
		BloodType: domain.BloodAPos,
	})

	assert.ErrorIs(t, err, ErrScheduledDateRequired)
}

func TestDonationCreate_InvalidBloodType(t *testing.T) {
	svc := NewDonationService(newMockDonationRepo())

	_, err := svc.Create(context.Background(), donorUser(1), &CreateDonationInput{
		ScheduledDate: time.Now().Add(48 * time.Hour),
		BloodType:     domain.BloodType("X+"),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidBloodType)
}

func TestDonationListMine_OnlyOwnRows(t *testing.T) {
	repo := newMockDonationRepo()
	svc := NewDonationService(repo)

	for donorID := uint(1); donorID <= 2; donorID++ {
		_ = repo.Create(context.Background(), &models.Donation{
			DonorID:       donorID,
			ScheduledDate: time.Now(),
			BloodType:     domain.BloodOPos,
			Status:        domain.DonationPending,
		})
	}

	donations, err := svc.ListMine(context.Background(), donorUser(1))

	require.NoError(t, err)
	require.Len(t, donations, 1)
	assert.Equal(t, uint(1), donations[0].DonorID)
}

func TestDonationListAll_RoleGate(t *testing.T) {
	repo := newMockDonationRepo()
	svc := NewDonationService(repo)

	_, err := svc.ListAll(context.Background(), donorUser(1))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.ListAll(context.Background(), staffUser(2))
	assert.NoError(t, err)
}

func TestDonationUpdateStatus_CompletedStampsDate(t *testing.T) {
	repo := newMockDonationRepo()
	svc := NewDonationService(repo)

	donation := &models.Donation{
		DonorID:       1,
		ScheduledDate: time.Now(),
		BloodType:     domain.BloodBNeg,
		Status:        domain.DonationPending,
	}
	_ = repo.Create(context.Background(), donation)

	updated, err := svc.UpdateStatus(context.Background(), staffUser(2), donation.ID, domain.DonationCompleted)

	require.NoError(t, err)
	assert.Equal(t, domain.DonationCompleted, updated.Status)
	require.NotNil(t, updated.CompletedDate)
	assert.WithinDuration(t, time.Now(), *updated.CompletedDate, time.Minute)
}

func TestDonationUpdateStatus_LeavingCompletedClearsDate(t *testing.T) {
	repo := newMockDonationRepo()
	svc := NewDonationService(repo)

	now := time.Now()
	donation := &models.Donation{
		DonorID:       1,
		ScheduledDate: now,
		BloodType:     domain.BloodBNeg,
		Status:        domain.DonationCompleted,
		CompletedDate: &now,
	}
	_ = repo.Create(context.Background(), donation)

	updated, err := svc.UpdateStatus(context.Background(), staffUser(2), donation.ID, domain.DonationCancelled)

	require.NoError(t, err)
	assert.Equal(t, domain.DonationCancelled, updated.Status)
	assert.Nil(t, updated.CompletedDate)
}

func TestDonationUpdateStatus_InvalidStatus(t *testing.T) {
	repo := newMockDonationRepo()
	svc := NewDonationService(repo)

	donation := &models.Donation{DonorID: 1, ScheduledDate: time.Now(), BloodType: domain.BloodOPos, Status: domain.DonationPending}
	_ = repo.Create(context.Background(), donation)

	_, err := svc.UpdateStatus(context.Background(), staffUser(2), donation.ID, domain.DonationStatus("Archived"))

	assert.ErrorIs(t, err, ErrInvalidDonationStatus)
}

func TestDonationUpdateStatus_NotFound(t *testing.T) {
	svc := NewDonationService(newMockDonationRepo())

	_, err := svc.UpdateStatus(context.Background(), staffUser(2), 99, domain.DonationCompleted)

	assert.ErrorIs(t, err, ErrDonationNotFound)
}

func TestDonationUpdateStatus_DonorForbidden(t *testing.T) {
	repo := newMockDonationRepo()
	svc := NewDonationService(repo)

	donation := &models.Donation{DonorID: 1, ScheduledDate: time.Now(), BloodType: domain.BloodOPos, Status: domain.DonationPending}
	_ = repo.Create(context.Background(), donation)

	// Even the owning donor cannot change the status
	_, err := svc.UpdateStatus(context.Background(), donorUser(1), donation.ID, domain.DonationCompleted)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}
