package issuedmodel

import (
	"context"

	"github.com/sunthewhat/olymp-cert-api/type/shared/model"
)

// IIssuedRepository defines the interface for issued certificate repository operations
type IIssuedRepository interface {
	Upsert(ctx context.Context, cert *model.IssuedCertificate) (string, error)
	GetByParticipant(ctx context.Context, participantId int64) (*model.IssuedCertificate, error)
	GetByDownloadToken(ctx context.Context, token string) (*model.IssuedCertificate, error)
	GetIssuedParticipantIds(ctx context.Context, participantIds []int64) (map[int64]bool, error)
	ListPendingNotification(ctx context.Context) ([]*model.IssuedCertificate, error)
}

// Ensure IssuedRepository implements IIssuedRepository
var _ IIssuedRepository = (*IssuedRepository)(nil)

// MockIssuedRepository is a mock implementation for testing
type MockIssuedRepository struct {
	UpsertFunc                  func(ctx context.Context, cert *model.IssuedCertificate) (string, error)
	GetByParticipantFunc        func(ctx context.Context, participantId int64) (*model.IssuedCertificate, error)
	GetByDownloadTokenFunc      func(ctx context.Context, token string) (*model.IssuedCertificate, error)
	GetIssuedParticipantIdsFunc func(ctx context.Context, participantIds []int64) (map[int64]bool, error)
	ListPendingNotificationFunc func(ctx context.Context) ([]*model.IssuedCertificate, error)
}

// Ensure MockIssuedRepository implements IIssuedRepository
var _ IIssuedRepository = (*MockIssuedRepository)(nil)

// NewMockIssuedRepository creates a new mock repository
func NewMockIssuedRepository() *MockIssuedRepository {
	return &MockIssuedRepository{}
}

func (m *MockIssuedRepository) Upsert(ctx context.Context, cert *model.IssuedCertificate) (string, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, cert)
	}
	return "", nil
}

func (m *MockIssuedRepository) GetByParticipant(ctx context.Context, participantId int64) (*model.IssuedCertificate, error) {
	if m.GetByParticipantFunc != nil {
		return m.GetByParticipantFunc(ctx, participantId)
	}
	return nil, nil
}

func (m *MockIssuedRepository) GetByDownloadToken(ctx context.Context, token string) (*model.IssuedCertificate, error) {
	if m.GetByDownloadTokenFunc != nil {
		return m.GetByDownloadTokenFunc(ctx, token)
	}
	return nil, nil
}

func (m *MockIssuedRepository) GetIssuedParticipantIds(ctx context.Context, participantIds []int64) (map[int64]bool, error) {
	if m.GetIssuedParticipantIdsFunc != nil {
		return m.GetIssuedParticipantIdsFunc(ctx, participantIds)
	}
	return map[int64]bool{}, nil
}

func (m *MockIssuedRepository) ListPendingNotification(ctx context.Context) ([]*model.IssuedCertificate, error) {
	if m.ListPendingNotificationFunc != nil {
		return m.ListPendingNotificationFunc(ctx)
	}
	return nil, nil
}
