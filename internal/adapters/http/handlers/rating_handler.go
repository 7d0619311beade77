package handlers

import (
	"eventhire/internal/adapters/http/middleware"
	"eventhire/internal/core/services"
	"eventhire/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RatingHandler handles seeker ratings
type RatingHandler struct {
	ratingService *services.RatingService
	logger        *zap.Logger
}

// NewRatingHandler creates a new rating handler
func NewRatingHandler(ratingService *services.RatingService, logger *zap.Logger) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
		logger:        orNop(logger),
	}
}

// Rate handles a company rating a seeker for a job
// @Summary Rate seeker
// @Description One rating per job, seeker and company (Company only)
// @Tags Ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RateInput true "Rating"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /ratings [post]
func (h *RatingHandler) Rate(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.RateInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	rating, err := h.ratingService.Rate(c.UserContext(), actor.ProfileID, &req)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to rate seeker")
	}

	return response.Created(c, "Rating saved successfully", rating)
}
