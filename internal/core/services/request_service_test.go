package services

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/core/domain"
)

func recipientUser(id uint) *models.User {
	return &models.User{ID: id, Name: "Recipient", Email: "recipient@example.com", Role: domain.RoleRecipient, IsActive: true}
}

func TestRequestCreate_Success(t *testing.T) {
	repo := newMockRequestRepo()
	svc := NewRequestService(repo)

	request, err := svc.Create(context.Background(), recipientUser(1), &CreateRequestInput{
		BloodType: domain.BloodABNeg,
		Quantity:  2,
		Urgency:   domain.UrgencyHigh,
		Reason:    "surgery scheduled",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(1), request.RecipientID)
	assert.Equal(t, domain.RequestPending, request.Status)
	assert.Equal(t, domain.UrgencyHigh, request.Urgency)
	assert.Nil(t, request.FulfilledDate)
}

func TestRequestCreate_UrgencyDefaultsToMedium(t *testing.T) {
	repo := newMockRequestRepo()
	svc := NewRequestService(repo)

	request, err := svc.Create(context.Background(), recipientUser(1), &CreateRequestInput{
		BloodType: domain.BloodOPos,
		Quantity:  1,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.UrgencyMedium, request.Urgency)
}

func TestRequestCreate_NonRecipientForbidden(t *testing.T) {
	svc := NewRequestService(newMockRequestRepo())

	for _, role := range []domain.Role{domain.RoleDonor, domain.RoleHospitalStaff, domain.RoleAdmin} {
		caller := &models.User{ID: 2, Role: role}
		_, err := svc.Create(context.Background(), caller, &CreateRequestInput{
			BloodType: domain.BloodOPos,
			Quantity:  1,
		})
		assert.ErrorIs(t, err, domain.ErrForbidden, "role %s must not file requests", role)
	}
}

func TestRequestCreate_InvalidQuantity(t *testing.T) {
	svc := NewRequestService(newMockRequestRepo())

	_, err := svc.Create(context.Background(), recipientUser(1), &CreateRequestInput{
		BloodType: domain.BloodOPos,
		Quantity:  0,
	})

	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestRequestCreate_InvalidUrgency(t *testing.T) {
	svc := NewRequestService(newMockRequestRepo())

	_, err := svc.Create(context.Background(), recipientUser(1), &CreateRequestInput{
		BloodType: domain.BloodOPos,
		Quantity:  1,
		Urgency:   domain.Urgency("Extreme"),
	})

	assert.ErrorIs(t, err, ErrInvalidUrgency)
}

func TestRequestCreate_ReasonTooLong(t *testing.T) {
	svc := NewRequestService(newMockRequestRepo())

	_, err := svc.Create(context.Background(), recipientUser(1), &CreateRequestInput{
		BloodType: domain.BloodOPos,
		Quantity:  1,
		Reason:    strings.Repeat("x", domain.MaxReasonLength+1),
	})

	assert.ErrorIs(t, err, ErrReasonTooLong)
}

func TestRequestCreate_ReasonLimitCountsCharacters(t *testing.T) {
	svc := NewRequestService(newMockRequestRepo())

	// 400 Thai characters are 1200 bytes; still within the 500-character limit.
	request, err := svc.Create(context.Background(), recipientUser(1), &CreateRequestInput{
		BloodType: domain.BloodOPos,
		Quantity:  1,
		Reason:    strings.Repeat("ก", 400),
	})

	require.NoError(t, err)
	assert.Equal(t, 400, utf8.RuneCountInString(request.Reason))

	_, err = svc.Create(context.Background(), recipientUser(1), &CreateRequestInput{
		BloodType: domain.BloodOPos,
		Quantity:  1,
		Reason:    strings.Repeat("ก", domain.MaxReasonLength+1),
	})

	assert.ErrorIs(t, err, ErrReasonTooLong)
}

func TestRequestListMine_OnlyOwnRows(t *testing.T) {
	repo := newMockRequestRepo()
	svc := NewRequestService(repo)

	for recipientID := uint(1); recipientID <= 2; recipientID++ {
		_ = repo.Create(context.Background(), &models.Request{
			RecipientID: recipientID,
			BloodType:   domain.BloodOPos,
			Quantity:    1,
			Urgency:     domain.UrgencyMedium,
			Status:      domain.RequestPending,
		})
	}

	requests, err := svc.ListMine(context.Background(), recipientUser(1))

	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, uint(1), requests[0].RecipientID)
}

func TestRequestListAll_RoleGate(t *testing.T) {
	svc := NewRequestService(newMockRequestRepo())

	_, err := svc.ListAll(context.Background(), recipientUser(1))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.ListAll(context.Background(), staffUser(2))
	assert.NoError(t, err)
}

func TestRequestUpdateStatus_FulfilledStampsDate(t *testing.T) {
	repo := newMockRequestRepo()
	svc := NewRequestService(repo)

	request := &models.Request{
		RecipientID: 1,
		BloodType:   domain.BloodOPos,
		Quantity:    1,
		Urgency:     domain.UrgencyMedium,
		Status:      domain.RequestApproved,
	}
	_ = repo.Create(context.Background(), request)

	updated, err := svc.UpdateStatus(context.Background(), staffUser(2), request.ID, &UpdateStatusInput{
		Status: domain.RequestFulfilled,
		Notes:  "2 units issued",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RequestFulfilled, updated.Status)
	require.NotNil(t, updated.FulfilledDate)
	assert.WithinDuration(t, time.Now(), *updated.FulfilledDate, time.Minute)
	assert.Equal(t, "2 units issued", updated.Notes)
}

func TestRequestUpdateStatus_LeavingFulfilledClearsDate(t *testing.T) {
	repo := newMockRequestRepo()
	svc := NewRequestService(repo)

	now := time.Now()
	request := &models.Request{
		RecipientID:   1,
		BloodType:     domain.BloodOPos,
		Quantity:      1,
		Urgency:       domain.UrgencyMedium,
		Status:        domain.RequestFulfilled,
		FulfilledDate: &now,
	}
	_ = repo.Create(context.Background(), request)

	updated, err := svc.UpdateStatus(context.Background(), staffUser(2), request.ID, &UpdateStatusInput{
		Status: domain.RequestRejected,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RequestRejected, updated.Status)
	assert.Nil(t, updated.FulfilledDate)
}

func TestRequestUpdateStatus_EmptyNotesPreserved(t *testing.T) {
	repo := newMockRequestRepo()
	svc := NewRequestService(repo)

	request := &models.Request{
		RecipientID: 1,
		BloodType:   domain.BloodOPos,
		Quantity:    1,
		Urgency:     domain.UrgencyMedium,
		Status:      domain.RequestPending,
		Notes:       "prior note",
	}
	_ = repo.Create(context.Background(), request)

	updated, err := svc.UpdateStatus(context.Background(), staffUser(2), request.ID, &UpdateStatusInput{
		Status: domain.RequestApproved,
	})

	require.NoError(t, err)
	assert.Equal(t, "prior note", updated.Notes)
}

func TestRequestUpdateStatus_InvalidStatus(t *testing.T) {
	repo := newMockRequestRepo()
	svc := NewRequestService(repo)

	request := &models.Request{RecipientID: 1, BloodType: domain.BloodOPos, Quantity: 1, Status: domain.RequestPending}
	_ = repo.Create(context.Background(), request)

	_, err := svc.UpdateStatus(context.Background(), staffUser(2), request.ID, &UpdateStatusInput{
		Status: domain.RequestStatus("Done"),
	})

	assert.ErrorIs(t, err, ErrInvalidRequestStatus)
}

func TestRequestUpdateStatus_NotFound(t *testing.T) {
	svc := NewRequestService(newMockRequestRepo())

	_, err := svc.UpdateStatus(context.Background(), staffUser(2), 99, &UpdateStatusInput{
		Status: domain.RequestApproved,
	})

	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestRequestUpdateStatus_RecipientForbidden(t *testing.T) {
	repo := newMockRequestRepo()
	svc := NewRequestService(repo)

	request := &models.Request{RecipientID: 1, BloodType: domain.BloodOPos, Quantity: 1, Status: domain.RequestPending}
	_ = repo.Create(context.Background(), request)

	// The owning recipient cannot self-approve
	_, err := svc.UpdateStatus(context.Background(), recipientUser(1), request.ID, &UpdateStatusInput{
		Status: domain.RequestApproved,
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}
