package api

import (
	"context"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	certificate_controller "github.com/sunthewhat/olymp-cert-api/api/controllers/certificate"
	"github.com/sunthewhat/olymp-cert-api/api/handler"
	"github.com/sunthewhat/olymp-cert-api/api/middleware"
	issuedmodel "github.com/sunthewhat/olymp-cert-api/api/model/issuedModel"
	notificationmodel "github.com/sunthewhat/olymp-cert-api/api/model/notificationModel"
	participantmodel "github.com/sunthewhat/olymp-cert-api/api/model/participantModel"
	templatemodel "github.com/sunthewhat/olymp-cert-api/api/model/templateModel"
	"github.com/sunthewhat/olymp-cert-api/api/routes"
	"github.com/sunthewhat/olymp-cert-api/common"
	"github.com/sunthewhat/olymp-cert-api/common/util"
	"github.com/sunthewhat/olymp-cert-api/internal/certtemplate"
	"github.com/sunthewhat/olymp-cert-api/internal/issuance"
	"github.com/sunthewhat/olymp-cert-api/internal/notifier"
	"github.com/sunthewhat/olymp-cert-api/internal/renderer"
)

// uploads carry whole PDF templates and font files
const bodyLimit = 32 * 1024 * 1024

// NewApp builds the fiber app around already wired dependencies
func NewApp(deps routes.Dependencies, cors []*string) *fiber.App {
	cfg := fiber.Config{
		AppName:       "olymp certificate api",
		ErrorHandler:  handler.HandleError,
		Prefork:       false,
		StrictRouting: true,
		Network:       fiber.NetworkTCP,
		BodyLimit:     bodyLimit,
	}
	app := fiber.New(cfg)

	app.Use(logger.New())
	app.Use(middleware.Recover())
	app.Use(middleware.Cors(cors))

	routes.Init(app, deps)

	app.Use(handler.HandleNotFound)

	return app
}

func InitFiber() {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	resourceStorage := util.NewMinIOStorage(common.MinIOClient, *common.Config.BucketResource)
	certificateStorage := util.NewMinIOStorage(common.MinIOClient, *common.Config.BucketCertificate)

	templateRepo := templatemodel.NewTemplateRepository(common.Gorm)
	issuedRepo := issuedmodel.NewIssuedRepository(common.Gorm)
	notificationRepo := notificationmodel.NewNotificationRepository(common.Gorm)
	directory := participantmodel.NewParticipantDirectory(common.Mongo)

	signer, err := renderer.NewCertificateSigner(signerConfig())
	if err != nil {
		slog.Error("Failed to initialize certificate signer", "error", err)
		os.Exit(1)
	}

	issuanceMetrics := new(issuance.Metrics)
	issuanceMetrics.Register(registry)
	notifierMetrics := new(notifier.Metrics)
	notifierMetrics.Register(registry)

	engine := renderer.NewEngine()
	store := certtemplate.NewStore(templateRepo, resourceStorage)

	workers := issuance.DefaultWorkers
	if common.Config.IssueWorkers != nil {
		workers = *common.Config.IssueWorkers
	}
	coordinator := issuance.NewCoordinator(store, directory, issuedRepo, certificateStorage, engine,
		issuance.WithWorkers(workers),
		issuance.WithSigner(signer),
		issuance.WithMetrics(issuanceMetrics),
	)

	dispatcher := notifier.NewDispatcher(issuedRepo, notificationRepo, directory, certificateStorage, mailer(),
		notifier.WithMetrics(notifierMetrics),
	)

	if interval := common.Config.NotifyInterval; interval != nil && *interval > 0 {
		notifier.StartRetryJob(context.Background(), dispatcher, *interval)
	}

	ctrl := certificate_controller.NewCertificateController(store, engine, coordinator, dispatcher, directory, issuedRepo, *common.Config.BackendURL)

	app := NewApp(routes.Dependencies{
		Certificate: ctrl,
		JWTSecret:   *common.Config.JWTSecret,
		Metrics:     registry,
	}, common.Config.Cors)

	slog.Info("Starting server", "port", *common.Config.Port, "issue_workers", workers, "signing", signer.IsEnabled())
	err = app.Listen(*common.Config.Port)

	if err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}

func signerConfig() renderer.SignerConfig {
	cfg := renderer.SignerConfig{}
	if common.Config.SigningEnabled != nil {
		cfg.Enabled = *common.Config.SigningEnabled
	}
	if common.Config.SigningCertPath != nil {
		cfg.CertPath = *common.Config.SigningCertPath
	}
	if common.Config.SigningKeyPath != nil {
		cfg.KeyPath = *common.Config.SigningKeyPath
	}
	return cfg
}

func mailer() notifier.Mailer {
	if common.Dialer == nil {
		return notifier.ConsoleMailer{}
	}

	from := common.Dialer.Username
	if common.Config.MailFrom != nil && *common.Config.MailFrom != "" {
		from = *common.Config.MailFrom
	}
	return notifier.NewSMTPMailer(common.Dialer, from)
}
