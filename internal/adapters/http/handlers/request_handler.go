package handlers

import (
	"errors"
	"strconv"

	"bloodlink/internal/adapters/http/middleware"
	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/core/domain"
	"bloodlink/internal/core/services"
	"bloodlink/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RequestHandler handles blood request endpoints
type RequestHandler struct {
	requestService *services.RequestService
}

// NewRequestHandler creates a new blood request handler
func NewRequestHandler(requestService *services.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// CreateBloodRequest represents create request body
type CreateBloodRequest struct {
	BloodType string `json:"blood_type"`
	Quantity  int    `json:"quantity"`
	Urgency   string `json:"urgency,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// Create files a new blood request
// @Summary Create blood request
// @Description File a new blood request (Recipient only)
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateBloodRequest true "Request data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /requests [post]
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authorized")
	}

	var req CreateBloodRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.BloodType == "" {
		return response.BadRequest(c, "Blood type is required")
	}
	if req.Quantity == 0 {
		return response.BadRequest(c, "Quantity is required")
	}

	input := &services.CreateRequestInput{
		BloodType: domain.BloodType(req.BloodType),
		Quantity:  req.Quantity,
		Urgency:   domain.Urgency(req.Urgency),
		Reason:    req.Reason,
	}

	request, err := h.requestService.Create(c.Context(), user, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Only recipients can file blood requests")
		case errors.Is(err, domain.ErrInvalidBloodType):
			return response.BadRequest(c, "Invalid blood type")
		case errors.Is(err, services.ErrInvalidQuantity):
			return response.BadRequest(c, "Quantity must be at least 1 unit")
		case errors.Is(err, services.ErrInvalidUrgency):
			return response.BadRequest(c, "Invalid urgency level")
		case errors.Is(err, services.ErrReasonTooLong):
			return response.BadRequest(c, "Reason cannot exceed 500 characters")
		default:
			return response.InternalServerError(c, "Failed to create request")
		}
	}

	return response.Created(c, "Blood request created successfully", fiber.Map{
		"request": request.ToResponse(),
	})
}

// ListMine lists the caller's requests
// @Summary List my requests
// @Description List the authenticated recipient's blood requests
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /requests/my [get]
func (h *RequestHandler) ListMine(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authorized")
	}

	requests, err := h.requestService.ListMine(c.Context(), user)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return response.Forbidden(c, "Only recipients have a request history")
		}
		return response.InternalServerError(c, "Failed to list requests")
	}

	return response.Success(c, "Requests retrieved successfully", fiber.Map{
		"requests": toRequestResponses(requests),
	})
}

// ListAll lists all requests (staff/admin)
// @Summary List all requests
// @Description List all blood requests with recipient identity (Staff/Admin only)
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /requests [get]
func (h *RequestHandler) ListAll(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authorized")
	}

	requests, err := h.requestService.ListAll(c.Context(), user)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
		return response.InternalServerError(c, "Failed to list requests")
	}

	return response.Success(c, "Requests retrieved successfully", fiber.Map{
		"requests": toRequestResponses(requests),
	})
}

// UpdateRequestStatusRequest represents update request status body
type UpdateRequestStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// UpdateStatus updates a request's status (staff/admin)
// @Summary Update request status
// @Description Move a blood request to a new status (Staff/Admin only)
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param body body UpdateRequestStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /requests/{id} [put]
func (h *RequestHandler) UpdateStatus(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	var req UpdateRequestStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateStatusInput{
		Status: domain.RequestStatus(req.Status),
		Notes:  req.Notes,
	}

	request, err := h.requestService.UpdateStatus(c.Context(), user, uint(id), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You don't have permission to access this resource")
		case errors.Is(err, services.ErrInvalidRequestStatus):
			return response.BadRequest(c, "Invalid status")
		case errors.Is(err, services.ErrRequestNotFound):
			return response.NotFound(c, "Blood request not found")
		default:
			return response.InternalServerError(c, "Failed to update request")
		}
	}

	return response.Success(c, "Request updated successfully", fiber.Map{
		"request": request.ToResponse(),
	})
}

func toRequestResponses(requests []*models.Request) []*models.RequestResponse {
	responses := make([]*models.RequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = r.ToResponse()
	}
	return responses
}
