package certificate_controller

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	participantmodel "github.com/sunthewhat/olymp-cert-api/api/model/participantModel"
	"github.com/sunthewhat/olymp-cert-api/type/payload"
	"github.com/sunthewhat/olymp-cert-api/type/response"
)

// ListParticipants returns the issuance selection table
func (ctrl *CertificateController) ListParticipants(c *fiber.Ctx) error {
	filter := participantmodel.Filter{Search: c.Query("search")}
	if raw := c.Query("attended"); raw != "" {
		attended, err := strconv.ParseBool(raw)
		if err != nil {
			return response.SendFailed(c, "attended must be true or false")
		}
		filter.Attended = &attended
	}

	participants, err := ctrl.directory.ListParticipants(c.UserContext(), filter)
	if err != nil {
		slog.Error("Certificate ListParticipants directory error", "error", err)
		return response.SendInternalError(c, err)
	}

	ids := make([]int64, 0, len(participants))
	for _, p := range participants {
		ids = append(ids, p.ID)
	}
	issued, err := ctrl.issuedRepo.GetIssuedParticipantIds(c.UserContext(), ids)
	if err != nil {
		return response.SendInternalError(c, err)
	}

	rows := make([]payload.ParticipantRow, 0, len(participants))
	for _, p := range participants {
		rows = append(rows, payload.ParticipantRow{
			Id:             p.ID,
			Name:           p.DisplayName(),
			School:         p.School,
			Region:         p.Region,
			Email:          p.Email,
			Attended:       p.Attended,
			HasCertificate: issued[p.ID],
		})
	}

	return response.SendSuccess(c, "Participants fetched", rows)
}
