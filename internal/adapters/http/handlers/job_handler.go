package handlers

import (
	"eventhire/internal/adapters/http/middleware"
	"eventhire/internal/core/services"
	"eventhire/internal/pkg/pagination"
	"eventhire/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// JobHandler handles published jobs
type JobHandler struct {
	jobService *services.JobService
	logger     *zap.Logger
}

// NewJobHandler creates a new job handler
func NewJobHandler(jobService *services.JobService, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		jobService: jobService,
		logger:     orNop(logger),
	}
}

// ListOpen lists jobs open for applications
// @Summary List open jobs
// @Description Jobs that are neither completed nor archived
// @Tags Jobs
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /jobs [get]
func (h *JobHandler) ListOpen(c *fiber.Ctx) error {
	result, err := h.jobService.ListOpen(c.UserContext(), pagination.GetParams(c))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to list jobs")
	}

	return response.Success(c, "Jobs retrieved successfully", result)
}

// GetByID returns one job
// @Summary Get job
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /jobs/{id} [get]
func (h *JobHandler) GetByID(c *fiber.Ctx) error {
	job, err := h.jobService.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to get job")
	}

	return response.Success(c, "Job retrieved successfully", job)
}

// ListMine lists the calling company's jobs
// @Summary My jobs
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /jobs/my [get]
func (h *JobHandler) ListMine(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	jobs, err := h.jobService.ListByCompany(c.UserContext(), actor.ProfileID)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to list jobs")
	}

	return response.Success(c, "Jobs retrieved successfully", jobs)
}

// Archive hides a job from seekers
// @Summary Archive job
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /jobs/{id}/archive [put]
func (h *JobHandler) Archive(c *fiber.Ctx) error {
	job, err := h.jobService.Archive(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to archive job")
	}

	return response.Success(c, "Job archived successfully", job)
}

// Complete marks a job completed
// @Summary Complete job
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /jobs/{id}/complete [put]
func (h *JobHandler) Complete(c *fiber.Ctx) error {
	job, err := h.jobService.MarkCompleted(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to complete job")
	}

	return response.Success(c, "Job marked as completed", job)
}
