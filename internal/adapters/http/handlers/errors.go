package handlers

import (
	"errors"

	"eventhire/internal/core/domain"
	"eventhire/internal/core/services"
	"eventhire/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var notFoundErrors = []error{
	domain.ErrNotFound,
	domain.ErrSeekerNotFound,
	domain.ErrCompanyNotFound,
	domain.ErrJobRequestNotFound,
	domain.ErrJobNotFound,
	services.ErrUserNotFound,
}

// writeError maps a service error onto an HTTP response. Anything it does
// not recognise is logged and answered with fallback.
func writeError(c *fiber.Ctx, logger *zap.Logger, err error, fallback string) error {
	var banned *domain.BannedError
	switch {
	case errors.As(err, &banned):
		return response.Forbidden(c, banned.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrRequestAlreadyProcessed):
		return response.Conflict(c, err.Error())
	case domain.IsConflict(err), errors.Is(err, domain.ErrJobClosed):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You don't have permission to access this resource")
	}

	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return response.NotFound(c, target.Error())
		}
	}

	logger.Error(fallback,
		zap.Error(err),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
	)
	return response.InternalServerError(c, fallback)
}

func orNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
