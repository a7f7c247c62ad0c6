package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/olymp-cert-api/type/response"
)

func HandleNotFound(c *fiber.Ctx) error {
	return response.SendNotFound(c, fmt.Sprintf("%s %s not found", c.Method(), c.Path()))
}
