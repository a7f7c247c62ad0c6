package notificationmodel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunthewhat/olymp-cert-api/test/helpers"
	"github.com/sunthewhat/olymp-cert-api/type/shared/model"
)

// TestNotificationRepository_Record tests that attempts accumulate on one row
func TestNotificationRepository_Record(t *testing.T) {
	db := helpers.SetupSQLiteDatabase(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.MarkFailed(ctx, 5, "p@example.com", "connection refused"))
	record, err := repo.GetByParticipant(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, model.NotificationStatusFailed, record.Status)
	assert.Equal(t, 1, record.Attempts)
	assert.Equal(t, "connection refused", record.LastError)
	assert.Nil(t, record.SentAt)

	require.NoError(t, repo.MarkSent(ctx, 5, "p@example.com"))
	record, err = repo.GetByParticipant(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, model.NotificationStatusSent, record.Status)
	assert.Equal(t, 2, record.Attempts)
	assert.Empty(t, record.LastError)
	assert.NotNil(t, record.SentAt)

	helpers.AssertRecordCount(t, db, &model.CertificateNotification{}, 1, "participant_id = ?", 5)
}

// TestNotificationRepository_GetByParticipant_NotFound tests the nil, nil contract
func TestNotificationRepository_GetByParticipant_NotFound(t *testing.T) {
	repo := NewNotificationRepository(helpers.SetupSQLiteDatabase(t))

	record, err := repo.GetByParticipant(context.Background(), 1)

	require.NoError(t, err)
	assert.Nil(t, record)
}
