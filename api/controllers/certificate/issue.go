package certificate_controller

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/olymp-cert-api/common/util"
	"github.com/sunthewhat/olymp-cert-api/type/payload"
	"github.com/sunthewhat/olymp-cert-api/type/response"
)

// Issue issues certificates for the posted JSON array of participant ids
func (ctrl *CertificateController) Issue(c *fiber.Ctx) error {
	var ids []int64
	if err := c.BodyParser(&ids); err != nil {
		slog.Warn("Certificate Issue invalid body", "error", err)
		return response.SendFailed(c, "Body must be a JSON array of participant ids")
	}

	body := payload.IssuePayload{ParticipantIds: ids}
	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, strings.Join(util.GetValidationErrors(err), ", "))
	}

	// the batch outlives a dropped client connection
	summary := ctrl.coordinator.IssueCertificates(context.WithoutCancel(c.UserContext()), body.ParticipantIds)

	return response.SendSuccess(c, "Certificates issued", summary)
}

// IssueAttended issues certificates for every participant marked attended
func (ctrl *CertificateController) IssueAttended(c *fiber.Ctx) error {
	summary, err := ctrl.coordinator.IssueAttended(context.WithoutCancel(c.UserContext()))
	if err != nil {
		slog.Error("Certificate IssueAttended failed", "error", err)
		return response.SendInternalError(c, err)
	}

	return response.SendSuccess(c, "Certificates issued", summary)
}

// Notify emails every issued certificate that has not been delivered yet
func (ctrl *CertificateController) Notify(c *fiber.Ctx) error {
	summary, err := ctrl.dispatcher.Dispatch(context.WithoutCancel(c.UserContext()))
	if err != nil {
		slog.Error("Certificate Notify failed", "error", err)
		return response.SendInternalError(c, err)
	}

	return response.SendSuccess(c, "Notifications dispatched", summary)
}
