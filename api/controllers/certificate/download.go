package certificate_controller

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"github.com/sunthewhat/olymp-cert-api/common/util"
	"github.com/sunthewhat/olymp-cert-api/type/response"
)

const qrSize = 256

// Download serves a participant's issued certificate to an admin
func (ctrl *CertificateController) Download(c *fiber.Ctx) error {
	participantId, err := participantIdParam(c)
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	pdfBytes, err := ctrl.coordinator.Artifact(c.UserContext(), participantId)
	if err != nil {
		return err
	}

	return response.SendPDF(c, fmt.Sprintf("certificate-%d.pdf", participantId), pdfBytes, false)
}

// DownloadByToken serves a certificate through its public download token
func (ctrl *CertificateController) DownloadByToken(c *fiber.Ctx) error {
	token := c.Params("token")
	if _, err := uuid.Parse(token); err != nil {
		return response.SendNotFound(c, "certificate not found")
	}

	cert, pdfBytes, err := ctrl.coordinator.ArtifactByToken(c.UserContext(), token)
	if err != nil {
		return err
	}

	slog.Info("Certificate downloaded", "participant_id", cert.ParticipantID, "ip", c.IP())
	return response.SendPDF(c, fmt.Sprintf("certificate-%d.pdf", cert.ParticipantID), pdfBytes, false)
}

// QRCode returns a PNG linking to the participant's public download URL
func (ctrl *CertificateController) QRCode(c *fiber.Ctx) error {
	participantId, err := participantIdParam(c)
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	cert, err := ctrl.coordinator.Issued(c.UserContext(), participantId)
	if err != nil {
		return err
	}

	link := util.JoinURL(ctrl.backendURL, DownloadPath(cert.DownloadToken))
	png, err := qrcode.Encode(link, qrcode.Medium, qrSize)
	if err != nil {
		slog.Error("Certificate QRCode encode failed", "error", err, "participant_id", participantId)
		return response.SendInternalError(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

// DownloadPath is the public route of a certificate
func DownloadPath(token string) string {
	return "api/certificate/download/" + token
}
