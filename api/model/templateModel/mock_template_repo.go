package templatemodel

import (
	"context"

	"github.com/sunthewhat/olymp-cert-api/type/shared/model"
)

// ITemplateRepository defines the interface for template repository operations
type ITemplateRepository interface {
	GetActive(ctx context.Context) (*model.CertificateTemplate, error)
	GetById(ctx context.Context, id uint) (*model.CertificateTemplate, error)
	Activate(ctx context.Context, tpl *model.CertificateTemplate) error
	UpdateSettings(ctx context.Context, id uint, updates map[string]any) (*model.CertificateTemplate, error)
	SetFontPath(ctx context.Context, id uint, fontPath *string) error
}

// Ensure TemplateRepository implements ITemplateRepository
var _ ITemplateRepository = (*TemplateRepository)(nil)

// MockTemplateRepository is a mock implementation for testing
type MockTemplateRepository struct {
	GetActiveFunc      func(ctx context.Context) (*model.CertificateTemplate, error)
	GetByIdFunc        func(ctx context.Context, id uint) (*model.CertificateTemplate, error)
	ActivateFunc       func(ctx context.Context, tpl *model.CertificateTemplate) error
	UpdateSettingsFunc func(ctx context.Context, id uint, updates map[string]any) (*model.CertificateTemplate, error)
	SetFontPathFunc    func(ctx context.Context, id uint, fontPath *string) error
}

// Ensure MockTemplateRepository implements ITemplateRepository
var _ ITemplateRepository = (*MockTemplateRepository)(nil)

// NewMockTemplateRepository creates a new mock repository
func NewMockTemplateRepository() *MockTemplateRepository {
	return &MockTemplateRepository{}
}

func (m *MockTemplateRepository) GetActive(ctx context.Context) (*model.CertificateTemplate, error) {
	if m.GetActiveFunc != nil {
		return m.GetActiveFunc(ctx)
	}
	return nil, nil
}

func (m *MockTemplateRepository) GetById(ctx context.Context, id uint) (*model.CertificateTemplate, error) {
	if m.GetByIdFunc != nil {
		return m.GetByIdFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTemplateRepository) Activate(ctx context.Context, tpl *model.CertificateTemplate) error {
	if m.ActivateFunc != nil {
		return m.ActivateFunc(ctx, tpl)
	}
	return nil
}

func (m *MockTemplateRepository) UpdateSettings(ctx context.Context, id uint, updates map[string]any) (*model.CertificateTemplate, error) {
	if m.UpdateSettingsFunc != nil {
		return m.UpdateSettingsFunc(ctx, id, updates)
	}
	return nil, nil
}

func (m *MockTemplateRepository) SetFontPath(ctx context.Context, id uint, fontPath *string) error {
	if m.SetFontPathFunc != nil {
		return m.SetFontPathFunc(ctx, id, fontPath)
	}
	return nil
}
