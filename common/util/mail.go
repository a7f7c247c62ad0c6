package util

import (
	"log/slog"

	"github.com/sunthewhat/olymp-cert-api/common"
	"gopkg.in/gomail.v2"
)

const defaultMailPort = 587

// InitDialer prepares the SMTP dialer. It leaves common.Dialer nil when no
// mail host is configured.
func InitDialer() {
	if common.Config.MailHost == nil || *common.Config.MailHost == "" {
		slog.Warn("Mail host not configured, notifications will be logged only")
		return
	}

	port := defaultMailPort
	if common.Config.MailPort != nil {
		port = *common.Config.MailPort
	}

	var user, pass string
	if common.Config.MailUser != nil {
		user = *common.Config.MailUser
	}
	if common.Config.MailPass != nil {
		pass = *common.Config.MailPass
	}

	dailer := gomail.NewDialer(*common.Config.MailHost, port, user, pass)
	common.Dialer = dailer
}
