package templatemodel

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sunthewhat/olymp-cert-api/type/shared/model"
	"gorm.io/gorm"
)

// TemplateRepository handles certificate_templates operations
type TemplateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new template repository with dependency injection
func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// GetActive returns the current template, or nil when nothing was uploaded yet
func (r *TemplateRepository) GetActive(ctx context.Context) (*model.CertificateTemplate, error) {
	tpl := new(model.CertificateTemplate)
	queryErr := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id DESC").
		First(tpl).Error

	if queryErr != nil {
		if errors.Is(queryErr, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Template GetActive", "error", queryErr)
		return nil, queryErr
	}

	return tpl, nil
}

// GetById returns any template row, including superseded ones
func (r *TemplateRepository) GetById(ctx context.Context, id uint) (*model.CertificateTemplate, error) {
	tpl := new(model.CertificateTemplate)
	queryErr := r.db.WithContext(ctx).Where("id = ?", id).First(tpl).Error

	if queryErr != nil {
		if errors.Is(queryErr, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Template GetById", "error", queryErr, "template_id", id)
		return nil, queryErr
	}

	return tpl, nil
}

// Activate inserts tpl as the active template and soft-deactivates the
// previous one in the same transaction
func (r *TemplateRepository) Activate(ctx context.Context, tpl *model.CertificateTemplate) error {
	tpl.ID = 0
	tpl.IsActive = true

	txErr := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deactivated := tx.Model(&model.CertificateTemplate{}).
			Where("is_active = ?", true).
			Update("is_active", false)
		if deactivated.Error != nil {
			return deactivated.Error
		}

		if createErr := tx.Create(tpl).Error; createErr != nil {
			return createErr
		}

		slog.Info("Template activated", "template_id", tpl.ID, "deactivated", deactivated.RowsAffected)
		return nil
	})

	if txErr != nil {
		slog.Error("Template Activate", "error", txErr)
		return txErr
	}

	return nil
}

// UpdateSettings applies column updates to one template row and returns the
// fresh row
func (r *TemplateRepository) UpdateSettings(ctx context.Context, id uint, updates map[string]any) (*model.CertificateTemplate, error) {
	if len(updates) > 0 {
		updateErr := r.db.WithContext(ctx).
			Model(&model.CertificateTemplate{}).
			Where("id = ?", id).
			Updates(updates).Error
		if updateErr != nil {
			slog.Error("Template UpdateSettings", "error", updateErr, "template_id", id)
			return nil, updateErr
		}
	}

	updated, fetchErr := r.GetById(ctx, id)
	if fetchErr != nil {
		return nil, fetchErr
	}
	if updated == nil {
		return nil, gorm.ErrRecordNotFound
	}

	return updated, nil
}

// SetFontPath stores or clears (nil) the custom font of a template
func (r *TemplateRepository) SetFontPath(ctx context.Context, id uint, fontPath *string) error {
	updateErr := r.db.WithContext(ctx).
		Model(&model.CertificateTemplate{}).
		Where("id = ?", id).
		Update("font_path", fontPath).Error
	if updateErr != nil {
		slog.Error("Template SetFontPath", "error", updateErr, "template_id", id)
		return updateErr
	}
	return nil
}
