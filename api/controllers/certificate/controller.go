package certificate_controller

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	issuedmodel "github.com/sunthewhat/olymp-cert-api/api/model/issuedModel"
	participantmodel "github.com/sunthewhat/olymp-cert-api/api/model/participantModel"
	"github.com/sunthewhat/olymp-cert-api/internal/certerr"
	"github.com/sunthewhat/olymp-cert-api/internal/certtemplate"
	"github.com/sunthewhat/olymp-cert-api/internal/issuance"
	"github.com/sunthewhat/olymp-cert-api/internal/notifier"
	"github.com/sunthewhat/olymp-cert-api/internal/renderer"
)

// CertificateController handles template, issuance and download requests
type CertificateController struct {
	store       *certtemplate.Store
	engine      *renderer.Engine
	coordinator *issuance.Coordinator
	dispatcher  *notifier.Dispatcher
	directory   participantmodel.IParticipantDirectory
	issuedRepo  issuedmodel.IIssuedRepository
	backendURL  string
}

// NewCertificateController creates a new certificate controller with injected dependencies
func NewCertificateController(
	store *certtemplate.Store,
	engine *renderer.Engine,
	coordinator *issuance.Coordinator,
	dispatcher *notifier.Dispatcher,
	directory participantmodel.IParticipantDirectory,
	issuedRepo issuedmodel.IIssuedRepository,
	backendURL string,
) *CertificateController {
	return &CertificateController{
		store:       store,
		engine:      engine,
		coordinator: coordinator,
		dispatcher:  dispatcher,
		directory:   directory,
		issuedRepo:  issuedRepo,
		backendURL:  backendURL,
	}
}

func readFormFile(c *fiber.Ctx, field string) ([]byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

func participantIdParam(c *fiber.Ctx) (int64, error) {
	participantId, err := strconv.ParseInt(c.Params("participantId"), 10, 64)
	if err != nil || participantId <= 0 {
		return 0, fmt.Errorf("participant id must be a positive integer")
	}
	return participantId, nil
}

// settingsFromForm reads optional layout fields sent with a multipart upload
func settingsFromForm(c *fiber.Ctx) (certtemplate.PartialSettings, error) {
	var settings certtemplate.PartialSettings

	for _, field := range []struct {
		name string
		dst  **float64
	}{
		{"textX", &settings.TextX},
		{"textY", &settings.TextY},
	} {
		raw := c.FormValue(field.name)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return settings, fmt.Errorf("%w: %s must be a number", certerr.ErrInvalidSettings, field.name)
		}
		*field.dst = &value
	}

	if raw := c.FormValue("fontSize"); raw != "" {
		fontSize, err := strconv.Atoi(raw)
		if err != nil {
			return settings, fmt.Errorf("%w: fontSize must be an integer", certerr.ErrInvalidSettings)
		}
		settings.FontSize = &fontSize
	}

	if raw := c.FormValue("fontColor"); raw != "" {
		settings.FontColor = &raw
	}

	return settings, nil
}
