package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/olymp-cert-api/internal/certerr"
	"github.com/sunthewhat/olymp-cert-api/type/response"
)

func HandleError(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(
			response.Error(fiberErr.Message),
		)
	}

	status := StatusFor(err)
	if status == fiber.StatusInternalServerError {
		slog.Error("Request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}

	return c.Status(status).JSON(
		response.Error(err.Error()),
	)
}

// StatusFor maps the certificate error taxonomy onto HTTP statuses
func StatusFor(err error) int {
	switch {
	case errors.Is(err, certerr.ErrInvalidTemplate),
		errors.Is(err, certerr.ErrInvalidFont),
		errors.Is(err, certerr.ErrInvalidSettings):
		return fiber.StatusBadRequest
	case errors.Is(err, certerr.ErrNotFound),
		errors.Is(err, certerr.ErrParticipantNotFound),
		errors.Is(err, certerr.ErrCertificateNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
