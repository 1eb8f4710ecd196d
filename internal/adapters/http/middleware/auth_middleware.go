package middleware

import (
	"strings"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/adapters/persistence/repositories"
	"bloodlink/internal/config"
	"bloodlink/internal/core/domain"
	"bloodlink/internal/pkg/jwt"
	"bloodlink/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Protect creates authentication middleware. It extracts the bearer token,
// validates it, resolves the user record and attaches the identity to the
// request. Any token failure is reported the same way.
func Protect(cfg *config.Config, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Bearer token from Authorization header
		var accessToken string
		authHeader := c.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Not authorized, no token provided")
		}

		// 2. Validate token
		claims, err := jwt.Validate(accessToken, cfg.JWT.Secret)
		if err != nil {
			return response.Unauthorized(c, "Not authorized, token failed")
		}

		// 3. Resolve user (may have been deleted or deactivated after
		// token issuance)
		user, err := userRepo.GetByID(c.Context(), claims.UserID)
		if err != nil {
			return response.Unauthorized(c, "Not authorized, user not found")
		}
		if !user.IsActive {
			return response.Unauthorized(c, "Not authorized, user not found")
		}

		// 4. Attach identity for this request only
		c.Locals("user", user)
		c.Locals("userID", user.ID)
		c.Locals("role", user.Role)

		return c.Next()
	}
}

// RequireRoles creates role-based authorization middleware. Protect must run
// first.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(*models.User)
		if !ok {
			return response.Unauthorized(c, "Not authorized")
		}

		if !domain.RoleAllowed(user.Role, allowed) {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}

		return c.Next()
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RequireRoles(domain.RoleAdmin)
}

// StaffOrAdmin middleware allows hospital_staff or admin roles
func StaffOrAdmin() fiber.Handler {
	return RequireRoles(domain.RoleHospitalStaff, domain.RoleAdmin)
}

// CurrentUser returns the identity attached by Protect
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals("user").(*models.User)
	return user, ok
}
