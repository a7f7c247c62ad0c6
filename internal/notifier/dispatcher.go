// Package notifier emails issued certificates to participants who have not
// received theirs yet.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"sync"

	issuedmodel "github.com/sunthewhat/olymp-cert-api/api/model/issuedModel"
	notificationmodel "github.com/sunthewhat/olymp-cert-api/api/model/notificationModel"
	participantmodel "github.com/sunthewhat/olymp-cert-api/api/model/participantModel"
	"github.com/sunthewhat/olymp-cert-api/common/util"
	"github.com/sunthewhat/olymp-cert-api/type/shared/model"
)

const (
	mailSubject    = "Your championship participation certificate"
	attachmentName = "Certificate.pdf"
)

var errNoEmail = errors.New("participant has no email address")

type Failure struct {
	ParticipantID int64  `json:"participantId"`
	Reason        string `json:"reason"`
}

type DispatchSummary struct {
	Attempted int       `json:"attempted"`
	Sent      int       `json:"sent"`
	Failures  []Failure `json:"failures"`
}

type Dispatcher struct {
	issued        issuedmodel.IIssuedRepository
	notifications notificationmodel.INotificationRepository
	directory     participantmodel.IParticipantDirectory
	storage       util.ObjectStorage
	mailer        Mailer
	metrics       *Metrics

	// participants whose mail went out but whose sent mark failed to persist
	mu         sync.Mutex
	unrecorded map[int64]string
}

type Option func(*Dispatcher)

func WithMetrics(metrics *Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = metrics
	}
}

func NewDispatcher(
	issued issuedmodel.IIssuedRepository,
	notifications notificationmodel.INotificationRepository,
	directory participantmodel.IParticipantDirectory,
	storage util.ObjectStorage,
	mailer Mailer,
	opts ...Option,
) *Dispatcher {
	d := &Dispatcher{
		issued:        issued,
		notifications: notifications,
		directory:     directory,
		storage:       storage,
		mailer:        mailer,
		unrecorded:    map[int64]string{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch mails every issued certificate whose participant has no sent
// notification yet. Messages go out one at a time; a failure is recorded
// and the participant is retried on the next call.
func (d *Dispatcher) Dispatch(ctx context.Context) (DispatchSummary, error) {
	summary := DispatchSummary{Failures: []Failure{}}

	pending, err := d.issued.ListPendingNotification(ctx)
	if err != nil {
		return summary, err
	}

	for _, cert := range pending {
		summary.Attempted++

		if err := d.notifyOne(ctx, cert); err != nil {
			d.metrics.incFailed()
			summary.Failures = append(summary.Failures, Failure{ParticipantID: cert.ParticipantID, Reason: err.Error()})
			continue
		}

		d.metrics.incSent()
		summary.Sent++
	}

	slog.Info("Notification dispatch finished",
		"attempted", summary.Attempted,
		"sent", summary.Sent,
		"failed", len(summary.Failures))

	return summary, nil
}

func (d *Dispatcher) notifyOne(ctx context.Context, cert *model.IssuedCertificate) error {
	participant, err := d.directory.GetParticipant(ctx, cert.ParticipantID)
	if err != nil {
		return d.fail(ctx, cert.ParticipantID, "", err)
	}

	email := strings.TrimSpace(participant.Email)
	if email == "" {
		return d.fail(ctx, cert.ParticipantID, "", errNoEmail)
	}

	if delivered, ok := d.deliveredTo(cert.ParticipantID); ok && delivered == email {
		return d.markSent(ctx, cert.ParticipantID, email)
	}

	artifact, err := d.storage.Retrieve(ctx, cert.ArtifactPath)
	if err != nil {
		return d.fail(ctx, cert.ParticipantID, email, fmt.Errorf("load certificate: %w", err))
	}

	sendErr := d.mailer.Send(ctx, Message{
		To:             email,
		Subject:        mailSubject,
		HTMLBody:       messageBody(participant.DisplayName()),
		AttachmentName: attachmentName,
		Attachment:     artifact,
	})
	if sendErr != nil {
		return d.fail(ctx, cert.ParticipantID, email, fmt.Errorf("send mail: %w", sendErr))
	}

	slog.Info("Certificate email sent", "participant_id", cert.ParticipantID, "recipient", email)
	return d.markSent(ctx, cert.ParticipantID, email)
}

// markSent persists a delivered mail. Until it succeeds the participant is
// remembered so later runs retry the mark instead of mailing again.
func (d *Dispatcher) markSent(ctx context.Context, participantId int64, email string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.notifications.MarkSent(ctx, participantId, email); err != nil {
		d.unrecorded[participantId] = email
		slog.Error("Certificate email sent but not recorded",
			"participant_id", participantId,
			"recipient", email,
			"error", err)
		return fmt.Errorf("mail sent but not recorded: %w", err)
	}

	delete(d.unrecorded, participantId)
	return nil
}

func (d *Dispatcher) deliveredTo(participantId int64) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	email, ok := d.unrecorded[participantId]
	return email, ok
}

// fail records a failed attempt and returns cause.
func (d *Dispatcher) fail(ctx context.Context, participantId int64, email string, cause error) error {
	if err := d.notifications.MarkFailed(ctx, participantId, email, cause.Error()); err != nil {
		slog.Error("Notification failure not recorded", "participant_id", participantId, "error", err)
	}
	slog.Warn("Certificate email failed", "participant_id", participantId, "error", cause)
	return cause
}

func messageBody(name string) string {
	return fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Thank you for taking part in the regional student programming championship.</p>
		<p>Your participation certificate is attached to this email.</p>
		<p>Best regards,<br>Championship Organizing Committee</p>
	`, html.EscapeString(name))
}
