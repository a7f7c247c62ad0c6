package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/olymp-cert-api/api/middleware"
)

func SetupCertificateRoutes(router fiber.Router, deps Dependencies) {
	ctrl := deps.Certificate
	certificateGroup := router.Group("certificate")

	// public routes come before the admin guard so they match without a token
	certificateGroup.Get("download/:token", ctrl.DownloadByToken)

	certificateGroup.Use(middleware.Jwt(deps.JWTSecret), middleware.RequireAdmin())

	certificateGroup.Get("template", ctrl.GetTemplate)
	certificateGroup.Get("template/file", ctrl.GetTemplateFile)
	certificateGroup.Post("template", ctrl.UploadTemplate)
	certificateGroup.Put("template", ctrl.UpdateTemplate)
	certificateGroup.Put("template/position", ctrl.UpdatePosition)
	certificateGroup.Post("template/font", ctrl.UploadFont)
	certificateGroup.Delete("template/font", ctrl.DeleteFont)
	certificateGroup.Get("preview", ctrl.Preview)
	certificateGroup.Get("generate/:participantId", ctrl.Generate)
	certificateGroup.Post("issue", ctrl.Issue)
	certificateGroup.Post("issue/attended", ctrl.IssueAttended)
	certificateGroup.Post("notify", ctrl.Notify)
	certificateGroup.Get("participants", ctrl.ListParticipants)
	certificateGroup.Get(":participantId/download", ctrl.Download)
	certificateGroup.Get(":participantId/qr", ctrl.QRCode)
}
