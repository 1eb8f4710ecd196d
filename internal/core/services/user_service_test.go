package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodlink/internal/core/domain"
	"bloodlink/internal/pkg/pagination"
	"bloodlink/internal/pkg/password"
)

func TestListUsers_Pagination(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewUserService(userRepo)

	for i := 0; i < 15; i++ {
		seedUser(userRepo, string(rune('a'+i))+"@example.com", "password123", domain.RoleDonor)
	}

	out, err := svc.ListUsers(context.Background(), &pagination.Params{Page: 2, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, int64(15), out.Meta.Total)
	assert.Len(t, out.Users, 5)
	assert.Equal(t, 2, out.Meta.TotalPages)
	assert.False(t, out.Meta.HasNext)
	assert.True(t, out.Meta.HasPrev)
}

func TestUpdateUserByAdmin_OwnRoleGuard(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewUserService(userRepo)
	admin := seedUser(userRepo, "admin@example.com", "password123", domain.RoleAdmin)

	newRole := domain.RoleDonor
	_, err := svc.UpdateUserByAdmin(context.Background(), admin.ID, admin.ID, &UpdateUserByAdminInput{
		Role: &newRole,
	})

	assert.ErrorIs(t, err, ErrCannotChangeOwnRole)
}

func TestUpdateUserByAdmin_DuplicateEmail(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewUserService(userRepo)
	admin := seedUser(userRepo, "admin@example.com", "password123", domain.RoleAdmin)
	target := seedUser(userRepo, "target@example.com", "password123", domain.RoleDonor)

	taken := "admin@example.com"
	_, err := svc.UpdateUserByAdmin(context.Background(), target.ID, admin.ID, &UpdateUserByAdminInput{
		Email: &taken,
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestDeleteUser_SelfGuard(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewUserService(userRepo)
	admin := seedUser(userRepo, "admin@example.com", "password123", domain.RoleAdmin)

	err := svc.DeleteUser(context.Background(), admin.ID, admin.ID)

	assert.ErrorIs(t, err, ErrCannotDeleteSelf)
}

func TestDeleteUser_NotFound(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewUserService(userRepo)
	admin := seedUser(userRepo, "admin@example.com", "password123", domain.RoleAdmin)

	err := svc.DeleteUser(context.Background(), 99, admin.ID)

	assert.ErrorIs(t, err, ErrUserNotFoundSvc)
}

func TestUpdateProfile_DoesNotTouchPasswordOrRole(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewUserService(userRepo)
	user := seedUser(userRepo, "donor@example.com", "password123", domain.RoleDonor)
	originalHash := user.Password

	name := "Renamed Donor"
	phone := "555-0100"
	_, err := svc.UpdateProfile(context.Background(), user.ID, &UpdateProfileInput{
		Name:  &name,
		Phone: &phone,
	})

	require.NoError(t, err)
	stored, _ := userRepo.GetByID(context.Background(), user.ID)
	assert.Equal(t, "Renamed Donor", stored.Name)
	// Untouched fields keep their values; the hash is stable across
	// profile updates so issued sessions stay valid.
	assert.Equal(t, originalHash, stored.Password)
	assert.Equal(t, domain.RoleDonor, stored.Role)
}

func TestUpdateProfile_InvalidBloodType(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewUserService(userRepo)
	user := seedUser(userRepo, "donor@example.com", "password123", domain.RoleDonor)

	bad := domain.BloodType("Z-")
	_, err := svc.UpdateProfile(context.Background(), user.ID, &UpdateProfileInput{
		BloodType: &bad,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidBloodType)
}

func TestChangePassword_Success(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewUserService(userRepo)
	user := seedUser(userRepo, "donor@example.com", "password123", domain.RoleDonor)

	err := svc.ChangePassword(context.Background(), user.ID, &ChangePasswordInput{
		OldPassword: "password123",
		NewPassword: "newpassword456",
	})

	require.NoError(t, err)
	stored, _ := userRepo.GetByID(context.Background(), user.ID)
	assert.True(t, password.Verify("newpassword456", stored.Password))
	assert.False(t, password.Verify("password123", stored.Password))
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewUserService(userRepo)
	user := seedUser(userRepo, "donor@example.com", "password123", domain.RoleDonor)

	err := svc.ChangePassword(context.Background(), user.ID, &ChangePasswordInput{
		OldPassword: "not-the-password",
		NewPassword: "newpassword456",
	})

	assert.ErrorIs(t, err, ErrOldPasswordWrong)
}

func TestChangePassword_WeakNewPassword(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewUserService(userRepo)
	user := seedUser(userRepo, "donor@example.com", "password123", domain.RoleDonor)

	err := svc.ChangePassword(context.Background(), user.ID, &ChangePasswordInput{
		OldPassword: "password123",
		NewPassword: "short",
	})

	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestSetUserRole(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewUserService(userRepo)
	admin := seedUser(userRepo, "admin@example.com", "password123", domain.RoleAdmin)
	target := seedUser(userRepo, "donor@example.com", "password123", domain.RoleDonor)

	err := svc.SetUserRole(context.Background(), target.ID, admin.ID, domain.RoleHospitalStaff)

	require.NoError(t, err)
	stored, _ := userRepo.GetByID(context.Background(), target.ID)
	assert.Equal(t, domain.RoleHospitalStaff, stored.Role)
}

func TestSetUserRole_OwnRoleGuard(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewUserService(userRepo)
	admin := seedUser(userRepo, "admin@example.com", "password123", domain.RoleAdmin)

	err := svc.SetUserRole(context.Background(), admin.ID, admin.ID, domain.RoleDonor)

	assert.ErrorIs(t, err, ErrCannotChangeOwnRole)
}

func TestSetUserRole_InvalidRole(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewUserService(userRepo)
	admin := seedUser(userRepo, "admin@example.com", "password123", domain.RoleAdmin)
	target := seedUser(userRepo, "donor@example.com", "password123", domain.RoleDonor)

	err := svc.SetUserRole(context.Background(), target.ID, admin.ID, domain.Role("root"))

	assert.ErrorIs(t, err, ErrInvalidRole)
}
