package certificate_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/olymp-cert-api/internal/certtemplate"
	"github.com/sunthewhat/olymp-cert-api/type/response"
)

func (ctrl *CertificateController) UploadTemplate(c *fiber.Ctx) error {
	pdfBytes, err := readFormFile(c, "file")
	if err != nil {
		slog.Warn("Certificate UploadTemplate missing file", "error", err)
		return response.SendFailed(c, "file is required")
	}

	settings, err := settingsFromForm(c)
	if err != nil {
		return err
	}

	info, err := ctrl.store.SetTemplate(c.UserContext(), pdfBytes, settings)
	if err != nil {
		slog.Warn("Certificate UploadTemplate rejected", "error", err, "size", len(pdfBytes))
		return err
	}

	slog.Info("Certificate template uploaded", "template_id", info.ID, "width", info.Width, "height", info.Height)
	return response.SendSuccess(c, "Template uploaded", info)
}

func (ctrl *CertificateController) GetTemplate(c *fiber.Ctx) error {
	info, err := ctrl.store.GetSettings(c.UserContext())
	if err != nil {
		return err
	}

	return response.SendSuccess(c, "Template fetched", info)
}

func (ctrl *CertificateController) GetTemplateFile(c *fiber.Ctx) error {
	pdfBytes, err := ctrl.store.GetTemplateBytes(c.UserContext())
	if err != nil {
		return err
	}

	return response.SendPDF(c, "template.pdf", pdfBytes, true)
}

func (ctrl *CertificateController) UpdateTemplate(c *fiber.Ctx) error {
	var settings certtemplate.PartialSettings
	if err := c.BodyParser(&settings); err != nil {
		slog.Warn("Certificate UpdateTemplate invalid body", "error", err)
		return response.SendFailed(c, "Invalid request body")
	}
	if settings.IsEmpty() {
		return response.SendFailed(c, "At least one of textX, textY, fontSize, fontColor is required")
	}

	info, err := ctrl.store.UpdateSettings(c.UserContext(), settings)
	if err != nil {
		return err
	}

	slog.Info("Certificate template settings updated", "template_id", info.ID)
	return response.SendSuccess(c, "Template updated", info)
}

// UpdatePosition stores a text anchor picked in the admin preview
func (ctrl *CertificateController) UpdatePosition(c *fiber.Ctx) error {
	var position certtemplate.Position
	if err := c.BodyParser(&position); err != nil {
		slog.Warn("Certificate UpdatePosition invalid body", "error", err)
		return response.SendFailed(c, "Invalid request body")
	}

	info, err := ctrl.store.UpdatePosition(c.UserContext(), position)
	if err != nil {
		return err
	}

	return response.SendSuccess(c, "Template position updated", info)
}
