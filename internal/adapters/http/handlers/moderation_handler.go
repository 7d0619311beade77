package handlers

import (
	"eventhire/internal/adapters/http/middleware"
	"eventhire/internal/core/services"
	"eventhire/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ModerationHandler handles red flags, bans and seeker statistics
type ModerationHandler struct {
	moderationService *services.ModerationService
	logger            *zap.Logger
}

// NewModerationHandler creates a new moderation handler
func NewModerationHandler(moderationService *services.ModerationService, logger *zap.Logger) *ModerationHandler {
	return &ModerationHandler{
		moderationService: moderationService,
		logger:            orNop(logger),
	}
}

// RecordRedFlag handles a complaint against a seeker
// @Summary Red-flag a seeker
// @Description Record a red flag; reaching the threshold bans the seeker (Company/Admin)
// @Tags Moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RedFlagInput true "Red flag"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /red-flags [post]
func (h *ModerationHandler) RecordRedFlag(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.RedFlagInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	flag, err := h.moderationService.RecordRedFlag(c.UserContext(), actor, &req)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to record red flag")
	}

	return response.OK(c, fiber.Map{"redFlag": flag})
}

// GetSeekerStats returns a seeker's ratings, red flags and ban state
// @Summary Seeker statistics
// @Description Ratings, average, red flags and ban state of a seeker (Company/Admin)
// @Tags Moderation
// @Produce json
// @Security BearerAuth
// @Param id path string true "Seeker ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.Response
// @Router /seekers/{id}/stats [get]
func (h *ModerationHandler) GetSeekerStats(c *fiber.Ctx) error {
	stats, err := h.moderationService.GetSeekerStats(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to get seeker stats")
	}

	return response.OK(c, fiber.Map{"stats": stats})
}

// GetBanStatus reports whether a seeker is banned right now
// @Summary Seeker ban status
// @Description Whether the seeker is currently banned and until when (Admin only)
// @Tags Moderation
// @Produce json
// @Security BearerAuth
// @Param id path string true "Seeker ID"
// @Success 200 {object} map[string]interface{}
// @Router /seekers/{id}/ban [get]
func (h *ModerationHandler) GetBanStatus(c *fiber.Ctx) error {
	banned, until, err := h.moderationService.IsBanned(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to check ban status")
	}

	return response.OK(c, fiber.Map{
		"banned":      banned,
		"bannedUntil": until,
	})
}

// ListBans lists seekers whose ban is still in force
// @Summary Active bans
// @Description List currently banned seekers (Admin only)
// @Tags Moderation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /bans [get]
func (h *ModerationHandler) ListBans(c *fiber.Ctx) error {
	bans, err := h.moderationService.ListBannedSeekers(c.UserContext())
	if err != nil {
		return writeError(c, h.logger, err, "Failed to list bans")
	}

	return response.Success(c, "Bans retrieved successfully", bans)
}
