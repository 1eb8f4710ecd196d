package handlers

import (
	"errors"
	"strconv"
	"time"

	"bloodlink/internal/adapters/http/middleware"
	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/core/domain"
	"bloodlink/internal/core/services"
	"bloodlink/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DonationHandler handles donation endpoints
type DonationHandler struct {
	donationService *services.DonationService
}

// NewDonationHandler creates a new donation handler
func NewDonationHandler(donationService *services.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

// CreateDonationRequest represents create donation request body
type CreateDonationRequest struct {
	ScheduledDate string `json:"scheduled_date"`
	BloodType     string `json:"blood_type"`
}

// Create schedules a new donation
// @Summary Create donation
// @Description Schedule a new donation appointment (Donor only)
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateDonationRequest true "Donation data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /donations [post]
func (h *DonationHandler) Create(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authorized")
	}

	var req CreateDonationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.ScheduledDate == "" {
		return response.BadRequest(c, "Scheduled date is required")
	}
	if req.BloodType == "" {
		return response.BadRequest(c, "Blood type is required")
	}

	scheduledDate, err := parseDate(req.ScheduledDate)
	if err != nil {
		return response.BadRequest(c, "Invalid scheduled date")
	}

	input := &services.CreateDonationInput{
		ScheduledDate: scheduledDate,
		BloodType:     domain.BloodType(req.BloodType),
	}

	donation, err := h.donationService.Create(c.Context(), user, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Only donors can schedule donations")
		case errors.Is(err, domain.ErrInvalidBloodType):
			return response.BadRequest(c, "Invalid blood type")
		case errors.Is(err, services.ErrScheduledDateRequired):
			return response.BadRequest(c, "Scheduled date is required")
		default:
			return response.InternalServerError(c, "Failed to create donation")
		}
	}

	return response.Created(c, "Donation scheduled successfully", fiber.Map{
		"donation": donation.ToResponse(),
	})
}

// ListMine lists the caller's donations
// @Summary List my donations
// @Description List the authenticated donor's donations
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /donations/my [get]
func (h *DonationHandler) ListMine(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authorized")
	}

	donations, err := h.donationService.ListMine(c.Context(), user)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return response.Forbidden(c, "Only donors have a donation history")
		}
		return response.InternalServerError(c, "Failed to list donations")
	}

	return response.Success(c, "Donations retrieved successfully", fiber.Map{
		"donations": toDonationResponses(donations),
	})
}

// ListAll lists all donations (staff/admin)
// @Summary List all donations
// @Description List all donations with donor identity (Staff/Admin only)
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /donations [get]
func (h *DonationHandler) ListAll(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authorized")
	}

	donations, err := h.donationService.ListAll(c.Context(), user)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
		return response.InternalServerError(c, "Failed to list donations")
	}

	return response.Success(c, "Donations retrieved successfully", fiber.Map{
		"donations": toDonationResponses(donations),
	})
}

// UpdateDonationStatusRequest represents update donation status request body
type UpdateDonationStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus updates a donation's status (staff/admin)
// @Summary Update donation status
// @Description Move a donation to a new status (Staff/Admin only)
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donation ID"
// @Param body body UpdateDonationStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donations/{id} [put]
func (h *DonationHandler) UpdateStatus(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid donation ID")
	}

	var req UpdateDonationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	donation, err := h.donationService.UpdateStatus(c.Context(), user, uint(id), domain.DonationStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You don't have permission to access this resource")
		case errors.Is(err, services.ErrInvalidDonationStatus):
			return response.BadRequest(c, "Invalid status")
		case errors.Is(err, services.ErrDonationNotFound):
			return response.NotFound(c, "Donation not found")
		default:
			return response.InternalServerError(c, "Failed to update donation")
		}
	}

	return response.Success(c, "Donation updated successfully", fiber.Map{
		"donation": donation.ToResponse(),
	})
}

// parseDate accepts both date-only and RFC3339 timestamps
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func toDonationResponses(donations []*models.Donation) []*models.DonationResponse {
	responses := make([]*models.DonationResponse, len(donations))
	for i, d := range donations {
		responses[i] = d.ToResponse()
	}
	return responses
}
