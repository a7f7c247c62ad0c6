package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/sunthewhat/olymp-cert-api/type/response"
	"github.com/sunthewhat/olymp-cert-api/type/shared"
)

const authContextKey = "auth"

func Jwt(secret string) fiber.Handler {
	conf := jwtware.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "header:Authorization",
		AuthScheme:  "Bearer",
		ContextKey:  authContextKey,
		Claims:      new(shared.AdminClaims),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Warn("JWT validation failure",
				"path", c.Path(),
				"method", c.Method(),
				"ip", c.IP(),
				"error", err)
			return response.SendUnauthorized(c, "JWT validation failure")
		},
	}
	return jwtware.New(conf)
}
