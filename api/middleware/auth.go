package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sunthewhat/olymp-cert-api/type/response"
	"github.com/sunthewhat/olymp-cert-api/type/shared"
)

// RequireAdmin rejects tokens without the admin role. It must run after Jwt.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := GetClaimsFromContext(c)
		if !ok || claims.Role == nil || *claims.Role != shared.RoleAdmin {
			slog.Warn("RequireAdmin: admin role missing",
				"path", c.Path(),
				"method", c.Method(),
				"ip", c.IP())
			return response.SendForbidden(c, "Admin access required")
		}

		c.Locals("admin_id", claims.Subject)
		return c.Next()
	}
}

// GetClaimsFromContext returns the verified token claims of the request
func GetClaimsFromContext(c *fiber.Ctx) (*shared.AdminClaims, bool) {
	token, ok := c.Locals(authContextKey).(*jwt.Token)
	if !ok || token == nil {
		return nil, false
	}
	claims, ok := token.Claims.(*shared.AdminClaims)
	return claims, ok
}

// GetAdminFromContext returns the admin subject set by RequireAdmin
func GetAdminFromContext(c *fiber.Ctx) (string, bool) {
	if adminID := c.Locals("admin_id"); adminID != nil {
		if id, ok := adminID.(string); ok {
			return id, true
		}
	}
	return "", false
}
