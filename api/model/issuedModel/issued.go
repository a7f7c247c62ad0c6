package issuedmodel

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sunthewhat/olymp-cert-api/type/shared/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IssuedRepository handles issued_certificates operations
type IssuedRepository struct {
	db *gorm.DB
}

// NewIssuedRepository creates a new issued certificate repository with dependency injection
func NewIssuedRepository(db *gorm.DB) *IssuedRepository {
	return &IssuedRepository{db: db}
}

// Upsert creates or overwrites the participant's certificate row and returns
// the artifact path it replaced ("" for a first issuance). The existing row
// is locked so concurrent reissues each see the path they supersede.
func (r *IssuedRepository) Upsert(ctx context.Context, cert *model.IssuedCertificate) (string, error) {
	var previousPath string
	if cert.IssuedAt.IsZero() {
		cert.IssuedAt = time.Now()
	}

	txErr := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing := new(model.IssuedCertificate)
		findErr := lockByParticipant(tx, cert.ParticipantID, existing)

		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			if cert.DownloadToken == "" {
				cert.DownloadToken = uuid.NewString()
			}
			created := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "participant_id"}},
				DoNothing: true,
			}).Create(cert)
			if created.Error != nil {
				return created.Error
			}
			if created.RowsAffected == 1 {
				return nil
			}
			// another issuance inserted the row first
			findErr = lockByParticipant(tx, cert.ParticipantID, existing)
		}
		if findErr != nil {
			return findErr
		}

		previousPath = existing.ArtifactPath
		cert.ID = existing.ID
		cert.DownloadToken = existing.DownloadToken
		cert.CreatedAt = existing.CreatedAt

		return tx.Model(existing).Updates(map[string]any{
			"artifact_path": cert.ArtifactPath,
			"template_id":   cert.TemplateID,
			"signed":        cert.Signed,
			"issued_at":     cert.IssuedAt,
		}).Error
	})

	if txErr != nil {
		slog.Error("IssuedCertificate Upsert", "error", txErr, "participant_id", cert.ParticipantID)
		return "", txErr
	}

	if previousPath == cert.ArtifactPath {
		previousPath = ""
	}

	return previousPath, nil
}

func lockByParticipant(tx *gorm.DB, participantId int64, dst *model.IssuedCertificate) error {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("participant_id = ?", participantId).
		First(dst).Error
}

// GetByParticipant returns the live certificate of a participant, or nil
func (r *IssuedRepository) GetByParticipant(ctx context.Context, participantId int64) (*model.IssuedCertificate, error) {
	cert := new(model.IssuedCertificate)
	queryErr := r.db.WithContext(ctx).Where("participant_id = ?", participantId).First(cert).Error

	if queryErr != nil {
		if errors.Is(queryErr, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("IssuedCertificate GetByParticipant", "error", queryErr, "participant_id", participantId)
		return nil, queryErr
	}

	return cert, nil
}

// GetByDownloadToken returns the certificate behind a public download token, or nil
func (r *IssuedRepository) GetByDownloadToken(ctx context.Context, token string) (*model.IssuedCertificate, error) {
	cert := new(model.IssuedCertificate)
	queryErr := r.db.WithContext(ctx).Where("download_token = ?", token).First(cert).Error

	if queryErr != nil {
		if errors.Is(queryErr, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("IssuedCertificate GetByDownloadToken", "error", queryErr)
		return nil, queryErr
	}

	return cert, nil
}

// GetIssuedParticipantIds returns the subset of ids that already hold a certificate
func (r *IssuedRepository) GetIssuedParticipantIds(ctx context.Context, participantIds []int64) (map[int64]bool, error) {
	issued := make(map[int64]bool)
	if len(participantIds) == 0 {
		return issued, nil
	}

	var found []int64
	queryErr := r.db.WithContext(ctx).
		Model(&model.IssuedCertificate{}).
		Where("participant_id IN ?", participantIds).
		Pluck("participant_id", &found).Error
	if queryErr != nil {
		slog.Error("IssuedCertificate GetIssuedParticipantIds", "error", queryErr)
		return nil, queryErr
	}

	for _, id := range found {
		issued[id] = true
	}
	return issued, nil
}

// ListPendingNotification returns certificates whose participant has no
// successful notification record yet, ordered by participant id
func (r *IssuedRepository) ListPendingNotification(ctx context.Context) ([]*model.IssuedCertificate, error) {
	var certs []*model.IssuedCertificate
	queryErr := r.db.WithContext(ctx).
		Model(&model.IssuedCertificate{}).
		Select(model.TableNameIssuedCertificate+".*").
		Joins("LEFT JOIN "+model.TableNameCertificateNotification+" n ON n.participant_id = "+model.TableNameIssuedCertificate+".participant_id AND n.status = ?", model.NotificationStatusSent).
		Where("n.id IS NULL").
		Order(model.TableNameIssuedCertificate + ".participant_id").
		Find(&certs).Error

	if queryErr != nil {
		slog.Error("IssuedCertificate ListPendingNotification", "error", queryErr)
		return nil, queryErr
	}

	return certs, nil
}
