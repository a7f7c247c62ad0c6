//go:build integration

package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	issuedmodel "github.com/sunthewhat/olymp-cert-api/api/model/issuedModel"
	notificationmodel "github.com/sunthewhat/olymp-cert-api/api/model/notificationModel"
	templatemodel "github.com/sunthewhat/olymp-cert-api/api/model/templateModel"
	"github.com/sunthewhat/olymp-cert-api/test/helpers"
	"github.com/sunthewhat/olymp-cert-api/type/shared/model"
)

func templateRow(path string) *model.CertificateTemplate {
	return &model.CertificateTemplate{
		TemplatePath: path,
		PageWidth:    842,
		PageHeight:   595,
		FontSize:     model.DefaultFontSize,
		FontColor:    model.DefaultFontColor,
	}
}

// TestTemplate_ActivateKeepsOneActive tests that re-uploads supersede the previous row
func TestTemplate_ActivateKeepsOneActive(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	repo := templatemodel.NewTemplateRepository(container.DB)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Activate(ctx, templateRow(fmt.Sprintf("templates/%d.pdf", i))))
	}

	helpers.AssertRecordCount(t, container.DB, &model.CertificateTemplate{}, 3, "1 = 1")
	helpers.AssertRecordCount(t, container.DB, &model.CertificateTemplate{}, 1, "is_active = ?", true)

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "templates/2.pdf", active.TemplatePath)

	updated, err := repo.UpdateSettings(ctx, active.ID, map[string]any{"text_x": 120.5, "font_color": "#FF0000"})
	require.NoError(t, err)
	assert.Equal(t, 120.5, updated.TextX)
	assert.Equal(t, "#FF0000", updated.FontColor)

	helpers.CleanupTestData(t, container.DB)
	active, err = repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)
}

// TestIssued_ConcurrentUpsertSingleRow tests that racing reissues leave one row per participant
func TestIssued_ConcurrentUpsertSingleRow(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	repo := issuedmodel.NewIssuedRepository(container.DB)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 8)
	previous := make([]string, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			previous[i], errs[i] = repo.Upsert(ctx, &model.IssuedCertificate{
				ParticipantID: 42,
				ArtifactPath:  fmt.Sprintf("certificates/42/%d.pdf", i),
				TemplateID:    1,
			})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	helpers.AssertRecordCount(t, container.DB, &model.IssuedCertificate{}, 1, "participant_id = ?", 42)

	cert, err := repo.GetByParticipant(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, cert)
	assert.Regexp(t, `^certificates/42/\d\.pdf$`, cert.ArtifactPath)

	// every path but the live one is reported superseded exactly once
	superseded := map[string]int{cert.ArtifactPath: 1}
	for _, path := range previous {
		superseded[path]++
	}
	assert.Equal(t, 1, superseded[""], "exactly one first issuance")
	for i := range previous {
		assert.Equal(t, 1, superseded[fmt.Sprintf("certificates/42/%d.pdf", i)])
	}
}

// TestNotification_PendingAfterFailure tests the join between issued and notification rows
func TestNotification_PendingAfterFailure(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	issued := issuedmodel.NewIssuedRepository(container.DB)
	notifications := notificationmodel.NewNotificationRepository(container.DB)
	ctx := context.Background()

	for _, id := range []int64{5, 2, 9} {
		_, err := issued.Upsert(ctx, &model.IssuedCertificate{ParticipantID: id, ArtifactPath: "p", TemplateID: 1})
		require.NoError(t, err)
	}

	require.NoError(t, notifications.MarkSent(ctx, 2, "a@example.com"))
	require.NoError(t, notifications.MarkFailed(ctx, 9, "b@example.com", "mailbox unavailable"))
	require.NoError(t, notifications.MarkFailed(ctx, 9, "b@example.com", "mailbox unavailable"))

	pending, err := issued.ListPendingNotification(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, int64(5), pending[0].ParticipantID)
	assert.Equal(t, int64(9), pending[1].ParticipantID)

	record, err := notifications.GetByParticipant(ctx, 9)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, model.NotificationStatusFailed, record.Status)
	assert.Equal(t, 2, record.Attempts)
}
