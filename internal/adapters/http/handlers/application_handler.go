package handlers

import (
	"eventhire/internal/adapters/http/middleware"
	"eventhire/internal/core/services"
	"eventhire/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ApplicationHandler handles job applications
type ApplicationHandler struct {
	applicationService *services.ApplicationService
	logger             *zap.Logger
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(applicationService *services.ApplicationService, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
		logger:             orNop(logger),
	}
}

// Apply handles a seeker applying to a job
// @Summary Apply to job
// @Description Apply to an open job; banned seekers are refused (Seeker only)
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /jobs/{id}/apply [post]
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	application, err := h.applicationService.Apply(c.UserContext(), actor.ProfileID, c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to apply for job")
	}

	return response.Created(c, "Application submitted successfully", application)
}

// ListMine lists the calling seeker's applications
// @Summary My applications
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /applications/my [get]
func (h *ApplicationHandler) ListMine(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	applications, err := h.applicationService.ListMine(c.UserContext(), actor.ProfileID)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to list applications")
	}

	return response.Success(c, "Applications retrieved successfully", applications)
}

// ListForJob lists applications to one of the company's jobs
// @Summary Applications for job
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /jobs/{id}/applications [get]
func (h *ApplicationHandler) ListForJob(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	applications, err := h.applicationService.ListForJob(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to list applications")
	}

	return response.Success(c, "Applications retrieved successfully", applications)
}
