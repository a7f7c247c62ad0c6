package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	certificate_controller "github.com/sunthewhat/olymp-cert-api/api/controllers/certificate"
)

// Dependencies are the wired handlers and settings the routes need
type Dependencies struct {
	Certificate *certificate_controller.CertificateController
	JWTSecret   string
	Metrics     prometheus.Gatherer
}

func Init(router fiber.Router, deps Dependencies) {
	api := router.Group("api")

	if deps.Metrics != nil {
		api.Get("metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{})))
	}

	SetupCertificateRoutes(api, deps)
}
