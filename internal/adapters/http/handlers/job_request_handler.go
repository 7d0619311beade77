package handlers

import (
	"eventhire/internal/adapters/http/middleware"
	"eventhire/internal/core/services"
	"eventhire/internal/pkg/pagination"
	"eventhire/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// JobRequestHandler handles job request submission and review
type JobRequestHandler struct {
	requestService *services.JobRequestService
	logger         *zap.Logger
}

// NewJobRequestHandler creates a new job request handler
func NewJobRequestHandler(requestService *services.JobRequestService, logger *zap.Logger) *JobRequestHandler {
	return &JobRequestHandler{
		requestService: requestService,
		logger:         orNop(logger),
	}
}

// Submit handles a company's job request
// @Summary Submit job request
// @Description Submit a job for admin review (Company only)
// @Tags Job Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SubmitJobRequestInput true "Job request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /job-requests [post]
func (h *JobRequestHandler) Submit(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.SubmitJobRequestInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	request, err := h.requestService.Submit(c.UserContext(), actor.ProfileID, &req)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to submit job request")
	}

	return response.Created(c, "Job request submitted successfully", request)
}

// ListMine lists the calling company's requests
// @Summary My job requests
// @Description List the company's own job requests (Company only)
// @Tags Job Requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /job-requests/my [get]
func (h *JobRequestHandler) ListMine(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	requests, err := h.requestService.ListMine(c.UserContext(), actor.ProfileID)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to list job requests")
	}

	return response.Success(c, "Job requests retrieved successfully", requests)
}

// List lists requests for review
// @Summary List job requests
// @Description List job requests, optionally by status (Admin only)
// @Tags Job Requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, approved or rejected"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /job-requests [get]
func (h *JobRequestHandler) List(c *fiber.Ctx) error {
	result, err := h.requestService.List(c.UserContext(), c.Query("status"), pagination.GetParams(c))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to list job requests")
	}

	return response.Success(c, "Job requests retrieved successfully", result)
}

// GetByID returns one request
// @Summary Get job request
// @Description Get a job request by ID (Admin only)
// @Tags Job Requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job request ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /job-requests/{id} [get]
func (h *JobRequestHandler) GetByID(c *fiber.Ctx) error {
	request, err := h.requestService.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to get job request")
	}

	return response.Success(c, "Job request retrieved successfully", request)
}

// Approve publishes a job from a pending request
// @Summary Approve job request
// @Description Create the job and mark the request approved (Admin only)
// @Tags Job Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job request ID"
// @Param body body services.ApproveInput false "Final job values"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /job-requests/{id}/approve [post]
func (h *JobRequestHandler) Approve(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.ApproveInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	job, err := h.requestService.Approve(c.UserContext(), actor, c.Params("id"), &req)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to approve job request")
	}

	return response.OK(c, fiber.Map{"job": job})
}

// Reject rejects a pending request and notifies the company
// @Summary Reject job request
// @Description Mark the request rejected and email the company (Admin only)
// @Tags Job Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job request ID"
// @Param body body services.RejectInput true "Rejection reason"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /job-requests/{id}/reject [post]
func (h *JobRequestHandler) Reject(c *fiber.Ctx) error {
	var req services.RejectInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.requestService.Reject(c.UserContext(), c.Params("id"), &req); err != nil {
		return writeError(c, h.logger, err, "Failed to reject job request")
	}

	return response.OK(c, nil)
}
