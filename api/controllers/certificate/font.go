package certificate_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/olymp-cert-api/type/response"
)

func (ctrl *CertificateController) UploadFont(c *fiber.Ctx) error {
	fontBytes, err := readFormFile(c, "file")
	if err != nil {
		slog.Warn("Certificate UploadFont missing file", "error", err)
		return response.SendFailed(c, "file is required")
	}

	info, err := ctrl.store.SetFont(c.UserContext(), fontBytes)
	if err != nil {
		slog.Warn("Certificate UploadFont rejected", "error", err, "size", len(fontBytes))
		return err
	}

	return response.SendSuccess(c, "Font uploaded", info)
}

func (ctrl *CertificateController) DeleteFont(c *fiber.Ctx) error {
	info, err := ctrl.store.ClearFont(c.UserContext())
	if err != nil {
		return err
	}

	return response.SendSuccess(c, "Font removed", info)
}
