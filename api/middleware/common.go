package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func Recover() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
	})
}

func Cors(origins []*string) fiber.Handler {
	allowed := make([]string, 0, len(origins))
	for _, origin := range origins {
		if origin != nil && *origin != "" {
			allowed = append(allowed, *origin)
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:  strings.Join(allowed, ","),
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: "Content-Disposition",
	})
}
