package notificationmodel

import (
	"context"

	"github.com/sunthewhat/olymp-cert-api/type/shared/model"
)

// INotificationRepository defines the interface for notification repository operations
type INotificationRepository interface {
	GetByParticipant(ctx context.Context, participantId int64) (*model.CertificateNotification, error)
	MarkSent(ctx context.Context, participantId int64, email string) error
	MarkFailed(ctx context.Context, participantId int64, email string, reason string) error
}

// Ensure NotificationRepository implements INotificationRepository
var _ INotificationRepository = (*NotificationRepository)(nil)

// MockNotificationRepository is a mock implementation for testing
type MockNotificationRepository struct {
	GetByParticipantFunc func(ctx context.Context, participantId int64) (*model.CertificateNotification, error)
	MarkSentFunc         func(ctx context.Context, participantId int64, email string) error
	MarkFailedFunc       func(ctx context.Context, participantId int64, email string, reason string) error
}

// Ensure MockNotificationRepository implements INotificationRepository
var _ INotificationRepository = (*MockNotificationRepository)(nil)

// NewMockNotificationRepository creates a new mock repository
func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{}
}

func (m *MockNotificationRepository) GetByParticipant(ctx context.Context, participantId int64) (*model.CertificateNotification, error) {
	if m.GetByParticipantFunc != nil {
		return m.GetByParticipantFunc(ctx, participantId)
	}
	return nil, nil
}

func (m *MockNotificationRepository) MarkSent(ctx context.Context, participantId int64, email string) error {
	if m.MarkSentFunc != nil {
		return m.MarkSentFunc(ctx, participantId, email)
	}
	return nil
}

func (m *MockNotificationRepository) MarkFailed(ctx context.Context, participantId int64, email string, reason string) error {
	if m.MarkFailedFunc != nil {
		return m.MarkFailedFunc(ctx, participantId, email, reason)
	}
	return nil
}
