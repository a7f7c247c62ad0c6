package issuedmodel

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	notificationmodel "github.com/sunthewhat/olymp-cert-api/api/model/notificationModel"
	"github.com/sunthewhat/olymp-cert-api/test/helpers"
	"github.com/sunthewhat/olymp-cert-api/type/shared/model"
)

// TestIssuedRepository_Upsert tests that reissuing overwrites the single row
func TestIssuedRepository_Upsert(t *testing.T) {
	db := helpers.SetupSQLiteDatabase(t)
	repo := NewIssuedRepository(db)
	ctx := context.Background()

	previous, err := repo.Upsert(ctx, &model.IssuedCertificate{ParticipantID: 7, ArtifactPath: "certificates/7/a.pdf", TemplateID: 1})
	require.NoError(t, err)
	assert.Empty(t, previous)

	previous, err = repo.Upsert(ctx, &model.IssuedCertificate{ParticipantID: 7, ArtifactPath: "certificates/7/b.pdf", TemplateID: 2, Signed: true})
	require.NoError(t, err)
	assert.Equal(t, "certificates/7/a.pdf", previous)

	helpers.AssertRecordCount(t, db, &model.IssuedCertificate{}, 1, "participant_id = ?", 7)

	cert, err := repo.GetByParticipant(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, cert)
	assert.Equal(t, "certificates/7/b.pdf", cert.ArtifactPath)
	assert.Equal(t, uint(2), cert.TemplateID)
	assert.True(t, cert.Signed)
	assert.False(t, cert.IssuedAt.IsZero())

	previous, err = repo.Upsert(ctx, &model.IssuedCertificate{ParticipantID: 7, ArtifactPath: "certificates/7/b.pdf", TemplateID: 2})
	require.NoError(t, err)
	assert.Empty(t, previous, "same path is not reported as superseded")
}

// TestIssuedRepository_ConcurrentUpsert tests that racing reissues each supersede a distinct path
func TestIssuedRepository_ConcurrentUpsert(t *testing.T) {
	repo := NewIssuedRepository(helpers.SetupSQLiteDatabase(t))
	ctx := context.Background()

	const writers = 6
	var wg sync.WaitGroup
	previous := make([]string, writers)
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			previous[i], errs[i] = repo.Upsert(ctx, &model.IssuedCertificate{
				ParticipantID: 7,
				ArtifactPath:  fmt.Sprintf("certificates/7/%d.pdf", i),
				TemplateID:    1,
			})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	cert, err := repo.GetByParticipant(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, cert)

	// the live path plus every superseded path covers each write once
	seen := map[string]int{cert.ArtifactPath: 1}
	for _, path := range previous {
		seen[path]++
	}
	assert.Equal(t, 1, seen[""])
	for i := 0; i < writers; i++ {
		assert.Equal(t, 1, seen[fmt.Sprintf("certificates/7/%d.pdf", i)])
	}
}

// TestIssuedRepository_DownloadToken tests that the public token is opaque and survives reissue
func TestIssuedRepository_DownloadToken(t *testing.T) {
	repo := NewIssuedRepository(helpers.SetupSQLiteDatabase(t))
	ctx := context.Background()

	first := &model.IssuedCertificate{ParticipantID: 7, ArtifactPath: "certificates/7/a.pdf", TemplateID: 1}
	_, err := repo.Upsert(ctx, first)
	require.NoError(t, err)
	_, err = uuid.Parse(first.DownloadToken)
	require.NoError(t, err, "token is a random uuid")

	second := &model.IssuedCertificate{ParticipantID: 7, ArtifactPath: "certificates/7/b.pdf", TemplateID: 1}
	_, err = repo.Upsert(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, first.DownloadToken, second.DownloadToken)

	other := &model.IssuedCertificate{ParticipantID: 8, ArtifactPath: "certificates/8/a.pdf", TemplateID: 1}
	_, err = repo.Upsert(ctx, other)
	require.NoError(t, err)
	assert.NotEqual(t, first.DownloadToken, other.DownloadToken)

	cert, err := repo.GetByDownloadToken(ctx, first.DownloadToken)
	require.NoError(t, err)
	require.NotNil(t, cert)
	assert.Equal(t, int64(7), cert.ParticipantID)
	assert.Equal(t, "certificates/7/b.pdf", cert.ArtifactPath)

	missing, err := repo.GetByDownloadToken(ctx, "7")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// TestIssuedRepository_GetByParticipant_NotFound tests the nil, nil contract
func TestIssuedRepository_GetByParticipant_NotFound(t *testing.T) {
	repo := NewIssuedRepository(helpers.SetupSQLiteDatabase(t))

	cert, err := repo.GetByParticipant(context.Background(), 404)

	require.NoError(t, err)
	assert.Nil(t, cert)
}

// TestIssuedRepository_GetIssuedParticipantIds tests the selection table lookup
func TestIssuedRepository_GetIssuedParticipantIds(t *testing.T) {
	repo := NewIssuedRepository(helpers.SetupSQLiteDatabase(t))
	ctx := context.Background()

	for _, id := range []int64{1, 3} {
		_, err := repo.Upsert(ctx, &model.IssuedCertificate{ParticipantID: id, ArtifactPath: "p", TemplateID: 1})
		require.NoError(t, err)
	}

	issued, err := repo.GetIssuedParticipantIds(ctx, []int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{1: true, 3: true}, issued)

	empty, err := repo.GetIssuedParticipantIds(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

// TestIssuedRepository_ListPendingNotification tests that only sent records exclude a participant
func TestIssuedRepository_ListPendingNotification(t *testing.T) {
	db := helpers.SetupSQLiteDatabase(t)
	repo := NewIssuedRepository(db)
	notifications := notificationmodel.NewNotificationRepository(db)
	ctx := context.Background()

	for _, id := range []int64{3, 1, 2} {
		_, err := repo.Upsert(ctx, &model.IssuedCertificate{ParticipantID: id, ArtifactPath: "p", TemplateID: 1})
		require.NoError(t, err)
	}
	require.NoError(t, notifications.MarkSent(ctx, 1, "a@example.com"))
	require.NoError(t, notifications.MarkFailed(ctx, 2, "b@example.com", "timeout"))

	pending, err := repo.ListPendingNotification(ctx)

	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, int64(2), pending[0].ParticipantID)
	assert.Equal(t, int64(3), pending[1].ParticipantID)
}
