package certificate_controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/olymp-cert-api/type/response"
)

// Preview renders the active template with the placeholder name
func (ctrl *CertificateController) Preview(c *fiber.Ctx) error {
	snapshot, err := ctrl.store.Snapshot(c.UserContext())
	if err != nil {
		return err
	}

	pdfBytes, err := ctrl.engine.Preview(snapshot.TemplateBytes, snapshot.FontBytes, snapshot.Info.RenderSettings())
	if err != nil {
		return err
	}

	return response.SendPDF(c, "preview.pdf", pdfBytes, true)
}

// Generate renders one participant's certificate without issuing it
func (ctrl *CertificateController) Generate(c *fiber.Ctx) error {
	participantId, err := participantIdParam(c)
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	pdfBytes, err := ctrl.coordinator.Generate(c.UserContext(), participantId)
	if err != nil {
		return err
	}

	return response.SendPDF(c, fmt.Sprintf("certificate-%d.pdf", participantId), pdfBytes, true)
}
