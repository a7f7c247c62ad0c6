package notificationmodel

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sunthewhat/olymp-cert-api/type/shared/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NotificationRepository handles certificate_notifications operations
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository with dependency injection
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) GetByParticipant(ctx context.Context, participantId int64) (*model.CertificateNotification, error) {
	record := new(model.CertificateNotification)
	queryErr := r.db.WithContext(ctx).Where("participant_id = ?", participantId).First(record).Error

	if queryErr != nil {
		if errors.Is(queryErr, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Notification GetByParticipant", "error", queryErr, "participant_id", participantId)
		return nil, queryErr
	}

	return record, nil
}

// MarkSent records a delivered notification
func (r *NotificationRepository) MarkSent(ctx context.Context, participantId int64, email string) error {
	now := time.Now()
	return r.record(ctx, &model.CertificateNotification{
		ParticipantID: participantId,
		Status:        model.NotificationStatusSent,
		Email:         email,
		SentAt:        &now,
	})
}

// MarkFailed records a failed attempt; the participant stays eligible for the next dispatch
func (r *NotificationRepository) MarkFailed(ctx context.Context, participantId int64, email string, reason string) error {
	return r.record(ctx, &model.CertificateNotification{
		ParticipantID: participantId,
		Status:        model.NotificationStatusFailed,
		Email:         email,
		LastError:     reason,
	})
}

func (r *NotificationRepository) record(ctx context.Context, record *model.CertificateNotification) error {
	record.Attempts = 1

	upsertErr := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "participant_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"status":     record.Status,
			"email":      record.Email,
			"last_error": record.LastError,
			"sent_at":    record.SentAt,
			"attempts":   gorm.Expr(model.TableNameCertificateNotification + ".attempts + 1"),
			"updated_at": time.Now(),
		}),
	}).Create(record).Error

	if upsertErr != nil {
		slog.Error("Notification record", "error", upsertErr, "participant_id", record.ParticipantID, "status", record.Status)
		return upsertErr
	}

	return nil
}
