package issuance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	issuedmodel "github.com/sunthewhat/olymp-cert-api/api/model/issuedModel"
	participantmodel "github.com/sunthewhat/olymp-cert-api/api/model/participantModel"
	templatemodel "github.com/sunthewhat/olymp-cert-api/api/model/templateModel"
	"github.com/sunthewhat/olymp-cert-api/internal/certerr"
	"github.com/sunthewhat/olymp-cert-api/internal/certtemplate"
	"github.com/sunthewhat/olymp-cert-api/internal/renderer"
	"github.com/sunthewhat/olymp-cert-api/test/helpers"
	"github.com/sunthewhat/olymp-cert-api/type/shared/model"
	"gorm.io/gorm"
)

type fixture struct {
	db          *gorm.DB
	storage     *helpers.MemoryStorage
	store       *certtemplate.Store
	directory   *participantmodel.MockParticipantDirectory
	issued      *issuedmodel.IssuedRepository
	coordinator *Coordinator
}

var roster = map[int64]*model.Participant{
	1: {ID: 1, LastName: "Ivanov", FirstName: "Ivan", Attended: true},
	2: {ID: 2, LastName: "Petrova", FirstName: "Anna", Attended: true},
	3: {ID: 3, LastName: "Sidorov", FirstName: "Petr", Attended: false},
}

func newFixture(t *testing.T, withTemplate bool, opts ...Option) *fixture {
	t.Helper()

	db := helpers.SetupSQLiteDatabase(t)
	storage := helpers.NewMemoryStorage()
	store := certtemplate.NewStore(templatemodel.NewTemplateRepository(db), storage)
	if withTemplate {
		textX, textY := 100.0, 300.0
		_, err := store.SetTemplate(context.Background(), helpers.TemplatePDF(t, 600, 800), certtemplate.PartialSettings{TextX: &textX, TextY: &textY})
		require.NoError(t, err)
	}

	directory := participantmodel.NewMockParticipantDirectory()
	directory.GetParticipantFunc = func(ctx context.Context, participantId int64) (*model.Participant, error) {
		if p, ok := roster[participantId]; ok {
			return p, nil
		}
		return nil, fmt.Errorf("%w: %d", certerr.ErrParticipantNotFound, participantId)
	}
	directory.ListParticipantsFunc = func(ctx context.Context, filter participantmodel.Filter) ([]*model.Participant, error) {
		var out []*model.Participant
		for _, id := range []int64{1, 2, 3} {
			p := roster[id]
			if filter.Attended == nil || *filter.Attended == p.Attended {
				out = append(out, p)
			}
		}
		return out, nil
	}

	issued := issuedmodel.NewIssuedRepository(db)
	coordinator := NewCoordinator(store, directory, issued, storage, renderer.NewEngine(renderer.WithCompression(false)), opts...)

	return &fixture{
		db:          db,
		storage:     storage,
		store:       store,
		directory:   directory,
		issued:      issued,
		coordinator: coordinator,
	}
}

func (f *fixture) certificatePaths() []string {
	var paths []string
	for _, p := range f.storage.Paths() {
		if strings.HasPrefix(p, "certificates/") {
			paths = append(paths, p)
		}
	}
	return paths
}

func TestIssueCertificates_PartialFailure(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	summary := f.coordinator.IssueCertificates(ctx, []int64{1, 99, 2})

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Success)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, int64(99), summary.Failures[0].ParticipantID)
	assert.Contains(t, summary.Failures[0].Reason, certerr.ErrParticipantNotFound.Error())

	for _, id := range []int64{1, 2} {
		cert, err := f.issued.GetByParticipant(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, cert)
		assert.True(t, strings.HasPrefix(cert.ArtifactPath, fmt.Sprintf("certificates/%d/", id)))
		assert.False(t, cert.Signed)
	}
	missing, err := f.issued.GetByParticipant(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)

	artifact, err := f.coordinator.Artifact(ctx, 2)
	require.NoError(t, err)
	assert.Contains(t, string(artifact), helpers.TextOp(100, 300, "Petrova Anna"))
}

func TestIssueCertificates_Idempotent(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	summary := f.coordinator.IssueCertificates(ctx, []int64{1, 1, 2, 1})
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Success)
	assert.Empty(t, summary.Failures)

	first, err := f.issued.GetByParticipant(ctx, 1)
	require.NoError(t, err)

	summary = f.coordinator.IssueCertificates(ctx, []int64{1})
	assert.Equal(t, 1, summary.Success)

	second, err := f.issued.GetByParticipant(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.NotEqual(t, first.ArtifactPath, second.ArtifactPath)
	assert.False(t, second.IssuedAt.Before(first.IssuedAt), "reissue never moves issuedAt backwards")
	assert.Equal(t, first.DownloadToken, second.DownloadToken, "printed links survive reissue")

	helpers.AssertRecordCount(t, f.db, &model.IssuedCertificate{}, 1, "participant_id = ?", 1)
	assert.False(t, f.storage.Has(first.ArtifactPath), "superseded artifact is removed")
	assert.True(t, f.storage.Has(second.ArtifactPath))
	assert.Len(t, f.certificatePaths(), 2)
}

func TestIssueCertificates_NoTemplate(t *testing.T) {
	f := newFixture(t, false)

	summary := f.coordinator.IssueCertificates(context.Background(), []int64{1, 2})

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 0, summary.Success)
	require.Len(t, summary.Failures, 2)
	for _, failure := range summary.Failures {
		assert.Equal(t, certerr.ErrNotFound.Error(), failure.Reason)
	}
	assert.Empty(t, f.certificatePaths())
}

func TestIssueCertificates_Empty(t *testing.T) {
	f := newFixture(t, true)

	summary := f.coordinator.IssueCertificates(context.Background(), nil)

	assert.Equal(t, Summary{Total: 0, Success: 0, Failures: []Failure{}}, summary)
}

func TestIssueCertificates_StorageFailure(t *testing.T) {
	f := newFixture(t, true)
	f.storage.FailStore["certificates"] = helpers.ErrInjected

	summary := f.coordinator.IssueCertificates(context.Background(), []int64{1, 2})

	assert.Equal(t, 0, summary.Success)
	require.Len(t, summary.Failures, 2)
	assert.Contains(t, summary.Failures[0].Reason, helpers.ErrInjected.Error())
	helpers.AssertRecordCount(t, f.db, &model.IssuedCertificate{}, 0, "1 = 1")
}

func TestIssueCertificates_RecordFailureRemovesArtifact(t *testing.T) {
	db := helpers.SetupSQLiteDatabase(t)
	storage := helpers.NewMemoryStorage()
	store := certtemplate.NewStore(templatemodel.NewTemplateRepository(db), storage)
	_, err := store.SetTemplate(context.Background(), helpers.TemplatePDF(t, 600, 800), certtemplate.PartialSettings{})
	require.NoError(t, err)

	issued := issuedmodel.NewMockIssuedRepository()
	issued.UpsertFunc = func(ctx context.Context, cert *model.IssuedCertificate) (string, error) {
		return "", errors.New("constraint violated")
	}
	directory := participantmodel.NewMockParticipantDirectory()
	directory.GetDisplayNameFunc = func(ctx context.Context, participantId int64) (string, error) {
		return "Ivanov Ivan", nil
	}

	coordinator := NewCoordinator(store, directory, issued, storage, renderer.NewEngine())
	summary := coordinator.IssueCertificates(context.Background(), []int64{5})

	require.Len(t, summary.Failures, 1)
	assert.Contains(t, summary.Failures[0].Reason, "constraint violated")
	for _, p := range storage.Paths() {
		assert.False(t, strings.HasPrefix(p, "certificates/"), "artifact %s should have been removed", p)
	}
}

func TestIssueCertificates_BoundedWorkers(t *testing.T) {
	var inFlight, peak atomic.Int32
	f := newFixture(t, true, WithWorkers(2))
	f.directory.GetDisplayNameFunc = func(ctx context.Context, participantId int64) (string, error) {
		current := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			seen := peak.Load()
			if current <= seen || peak.CompareAndSwap(seen, current) {
				break
			}
		}
		return fmt.Sprintf("Participant %d", participantId), nil
	}

	ids := make([]int64, 12)
	for i := range ids {
		ids[i] = int64(100 + i)
	}
	summary := f.coordinator.IssueCertificates(context.Background(), ids)

	assert.Equal(t, 12, summary.Success)
	assert.LessOrEqual(t, peak.Load(), int32(2))
	assert.Len(t, f.certificatePaths(), 12)
}

func TestIssueAttended(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	summary, err := f.coordinator.IssueAttended(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Success)

	notAttended, err := f.issued.GetByParticipant(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, notAttended)
}

func TestIssueAttended_DirectoryError(t *testing.T) {
	f := newFixture(t, true)
	f.directory.ListParticipantsFunc = func(ctx context.Context, filter participantmodel.Filter) ([]*model.Participant, error) {
		return nil, errors.New("mongo unavailable")
	}

	_, err := f.coordinator.IssueAttended(context.Background())

	assert.EqualError(t, err, "mongo unavailable")
}

func TestGenerate_DoesNotStore(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	out, err := f.coordinator.Generate(ctx, 1)

	require.NoError(t, err)
	assert.Contains(t, string(out), helpers.TextOp(100, 300, "Ivanov Ivan"))
	assert.Empty(t, f.certificatePaths())

	_, err = f.coordinator.Generate(ctx, 42)
	assert.ErrorIs(t, err, certerr.ErrParticipantNotFound)
}

func TestArtifact_NotIssued(t *testing.T) {
	f := newFixture(t, true)

	_, err := f.coordinator.Artifact(context.Background(), 1)

	assert.ErrorIs(t, err, certerr.ErrCertificateNotFound)
}

func TestArtifactByToken(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	f.coordinator.IssueCertificates(ctx, []int64{1})
	cert, err := f.coordinator.Issued(ctx, 1)
	require.NoError(t, err)

	found, artifact, err := f.coordinator.ArtifactByToken(ctx, cert.DownloadToken)
	require.NoError(t, err)
	assert.Equal(t, int64(1), found.ParticipantID)
	assert.True(t, strings.HasPrefix(string(artifact), "%PDF"))

	_, _, err = f.coordinator.ArtifactByToken(ctx, "1")
	assert.ErrorIs(t, err, certerr.ErrCertificateNotFound)

	_, err = f.coordinator.Issued(ctx, 2)
	assert.ErrorIs(t, err, certerr.ErrCertificateNotFound)
}

func TestIssueCertificates_Metrics(t *testing.T) {
	metrics := &Metrics{}
	registry := prometheus.NewRegistry()
	metrics.Register(registry)
	metrics.Register(registry)

	f := newFixture(t, true, WithMetrics(metrics))
	f.coordinator.IssueCertificates(context.Background(), []int64{1, 2, 404})

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.issuedCounter))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.failedCounter))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.renderHistogram))
}

type stubSigner struct{}

func (stubSigner) SignPDF(pdfBytes []byte, participantID int64) ([]byte, bool) {
	return append(pdfBytes, []byte("%signed")...), true
}

func TestIssueCertificates_Signed(t *testing.T) {
	f := newFixture(t, true, WithSigner(stubSigner{}))
	ctx := context.Background()

	summary := f.coordinator.IssueCertificates(ctx, []int64{1})
	require.Equal(t, 1, summary.Success)

	cert, err := f.issued.GetByParticipant(ctx, 1)
	require.NoError(t, err)
	assert.True(t, cert.Signed)

	artifact, err := f.coordinator.Artifact(ctx, 1)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(artifact), "%signed"))
}
