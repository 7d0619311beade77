package middleware

import (
	"errors"
	"strings"

	"eventhire/internal/core/domain"
	"eventhire/internal/pkg/jwt"
	"eventhire/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const actorKey = "actor"

// AuthMiddleware requires a valid access token and stores the caller as
// a domain.Actor in the request locals
func AuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := tokenFrom(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		role, ok := domain.ParseRole(claims.Role)
		if !ok {
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals(actorKey, domain.Actor{
			UserID:    claims.UserID,
			Email:     claims.Email,
			Role:      role,
			ProfileID: claims.ProfileID,
		})

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFrom(c)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if actor.Role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only ADMIN role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// SeekerOnly middleware allows only SEEKER role
func SeekerOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleSeeker)
}

// CompanyOnly middleware allows only COMPANY role
func CompanyOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleCompany)
}

// CompanyOrAdmin middleware allows COMPANY or ADMIN roles
func CompanyOrAdmin() fiber.Handler {
	return RoleMiddleware(domain.RoleCompany, domain.RoleAdmin)
}

// ActorFrom returns the caller stored by AuthMiddleware
func ActorFrom(c *fiber.Ctx) (domain.Actor, bool) {
	actor, ok := c.Locals(actorKey).(domain.Actor)
	return actor, ok
}

// tokenFrom reads the access token from the cookie, then the
// Authorization header
func tokenFrom(c *fiber.Ctx) string {
	if token := c.Cookies("access_token"); token != "" {
		return token
	}
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
