package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	for _, role := range []Role{RoleDonor, RoleRecipient, RoleHospitalStaff, RoleAdmin} {
		assert.True(t, role.Valid(), "role %s", role)
	}
	assert.False(t, Role("").Valid())
	assert.False(t, Role("Donor").Valid(), "roles are case sensitive")
	assert.False(t, Role("superuser").Valid())
}

func TestRoleAllowed(t *testing.T) {
	staff := []Role{RoleHospitalStaff, RoleAdmin}

	assert.True(t, RoleAllowed(RoleAdmin, staff))
	assert.True(t, RoleAllowed(RoleHospitalStaff, staff))
	assert.False(t, RoleAllowed(RoleDonor, staff))
	assert.False(t, RoleAllowed(RoleDonor, nil))
}

func TestBloodTypeValid(t *testing.T) {
	for _, bt := range []BloodType{BloodAPos, BloodANeg, BloodBPos, BloodBNeg, BloodABPos, BloodABNeg, BloodOPos, BloodONeg} {
		assert.True(t, bt.Valid(), "blood type %s", bt)
	}
	assert.False(t, BloodType("C+").Valid())
	assert.False(t, BloodType("o+").Valid(), "blood types are case sensitive")
	assert.False(t, BloodType("").Valid())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, DonationPending.Valid())
	assert.True(t, DonationCompleted.Valid())
	assert.True(t, DonationCancelled.Valid())
	assert.False(t, DonationStatus("Fulfilled").Valid(), "request-only status is not a donation status")

	assert.True(t, RequestFulfilled.Valid())
	assert.True(t, RequestRejected.Valid())
	assert.False(t, RequestStatus("Completed").Valid(), "donation-only status is not a request status")

	assert.True(t, UrgencyCritical.Valid())
	assert.False(t, Urgency("urgent").Valid())
}
