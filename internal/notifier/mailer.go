package notifier

import (
	"context"
	"io"
	"log/slog"

	"gopkg.in/gomail.v2"
)

// Message is one certificate email with the PDF attached from memory.
type Message struct {
	To             string
	Subject        string
	HTMLBody       string
	AttachmentName string
	Attachment     []byte
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer sends through a gomail dialer, one connection per message.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

var _ Mailer = (*SMTPMailer)(nil)

func NewSMTPMailer(dialer *gomail.Dialer, from string) *SMTPMailer {
	return &SMTPMailer{dialer: dialer, from: from}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return m.dialer.DialAndSend(buildMessage(m.from, msg))
}

func buildMessage(from string, msg Message) *gomail.Message {
	mailer := gomail.NewMessage()
	mailer.SetHeader("From", from)
	mailer.SetHeader("To", msg.To)
	mailer.SetHeader("Subject", msg.Subject)
	mailer.SetBody("text/html", msg.HTMLBody)

	if len(msg.Attachment) > 0 {
		attachment := msg.Attachment
		mailer.Attach(msg.AttachmentName,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(attachment)
				return err
			}),
			gomail.SetHeader(map[string][]string{
				"Content-Type": {"application/pdf"},
			}),
		)
	}

	return mailer
}

// ConsoleMailer only logs messages. Used when no SMTP host is configured.
type ConsoleMailer struct{}

var _ Mailer = ConsoleMailer{}

func (ConsoleMailer) Send(ctx context.Context, msg Message) error {
	slog.Info("Mail (console)",
		"to", msg.To,
		"subject", msg.Subject,
		"attachment", msg.AttachmentName,
		"attachment_size", len(msg.Attachment))
	return nil
}
