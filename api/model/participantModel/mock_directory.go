package participantmodel

import (
	"context"

	"github.com/sunthewhat/olymp-cert-api/internal/certerr"
	"github.com/sunthewhat/olymp-cert-api/type/shared/model"
)

// IParticipantDirectory defines the participant lookups the certificate core needs
type IParticipantDirectory interface {
	GetParticipant(ctx context.Context, participantId int64) (*model.Participant, error)
	GetDisplayName(ctx context.Context, participantId int64) (string, error)
	ListParticipants(ctx context.Context, filter Filter) ([]*model.Participant, error)
}

// Ensure ParticipantDirectory implements IParticipantDirectory
var _ IParticipantDirectory = (*ParticipantDirectory)(nil)

// MockParticipantDirectory is a mock implementation for testing
type MockParticipantDirectory struct {
	GetParticipantFunc   func(ctx context.Context, participantId int64) (*model.Participant, error)
	GetDisplayNameFunc   func(ctx context.Context, participantId int64) (string, error)
	ListParticipantsFunc func(ctx context.Context, filter Filter) ([]*model.Participant, error)
}

// Ensure MockParticipantDirectory implements IParticipantDirectory
var _ IParticipantDirectory = (*MockParticipantDirectory)(nil)

// NewMockParticipantDirectory creates a new mock directory
func NewMockParticipantDirectory() *MockParticipantDirectory {
	return &MockParticipantDirectory{}
}

func (m *MockParticipantDirectory) GetParticipant(ctx context.Context, participantId int64) (*model.Participant, error) {
	if m.GetParticipantFunc != nil {
		return m.GetParticipantFunc(ctx, participantId)
	}
	return nil, certerr.ErrParticipantNotFound
}

func (m *MockParticipantDirectory) GetDisplayName(ctx context.Context, participantId int64) (string, error) {
	if m.GetDisplayNameFunc != nil {
		return m.GetDisplayNameFunc(ctx, participantId)
	}
	participant, err := m.GetParticipant(ctx, participantId)
	if err != nil {
		return "", err
	}
	return participant.DisplayName(), nil
}

func (m *MockParticipantDirectory) ListParticipants(ctx context.Context, filter Filter) ([]*model.Participant, error) {
	if m.ListParticipantsFunc != nil {
		return m.ListParticipantsFunc(ctx, filter)
	}
	return []*model.Participant{}, nil
}
