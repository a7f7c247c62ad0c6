// Package issuance renders, stores and records certificates for batches of
// participants.
package issuance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	issuedmodel "github.com/sunthewhat/olymp-cert-api/api/model/issuedModel"
	participantmodel "github.com/sunthewhat/olymp-cert-api/api/model/participantModel"
	"github.com/sunthewhat/olymp-cert-api/common/util"
	"github.com/sunthewhat/olymp-cert-api/internal/certerr"
	"github.com/sunthewhat/olymp-cert-api/internal/certtemplate"
	"github.com/sunthewhat/olymp-cert-api/internal/renderer"
	"github.com/sunthewhat/olymp-cert-api/type/shared/model"
	"golang.org/x/sync/errgroup"
)

const DefaultWorkers = 4

const contentTypePDF = "application/pdf"

// TemplateSource provides the template a batch renders with.
type TemplateSource interface {
	Snapshot(ctx context.Context) (*certtemplate.Snapshot, error)
}

// Signer optionally signs a final artifact.
type Signer interface {
	SignPDF(pdfBytes []byte, participantID int64) ([]byte, bool)
}

type Failure struct {
	ParticipantID int64  `json:"participantId"`
	Reason        string `json:"reason"`
}

// Summary is the outcome of one batch. Total counts distinct participants.
type Summary struct {
	Total    int       `json:"total"`
	Success  int       `json:"success"`
	Failures []Failure `json:"failures"`
}

type Coordinator struct {
	templates TemplateSource
	directory participantmodel.IParticipantDirectory
	issued    issuedmodel.IIssuedRepository
	storage   util.ObjectStorage
	engine    *renderer.Engine
	signer    Signer
	workers   int
	metrics   *Metrics
}

type Option func(*Coordinator)

// WithWorkers bounds how many participants render at once.
func WithWorkers(workers int) Option {
	return func(c *Coordinator) {
		if workers > 0 {
			c.workers = workers
		}
	}
}

func WithSigner(signer Signer) Option {
	return func(c *Coordinator) {
		if signer != nil {
			c.signer = signer
		}
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(c *Coordinator) {
		c.metrics = metrics
	}
}

func NewCoordinator(
	templates TemplateSource,
	directory participantmodel.IParticipantDirectory,
	issued issuedmodel.IIssuedRepository,
	storage util.ObjectStorage,
	engine *renderer.Engine,
	opts ...Option,
) *Coordinator {
	c := &Coordinator{
		templates: templates,
		directory: directory,
		issued:    issued,
		storage:   storage,
		engine:    engine,
		signer:    renderer.NewDisabledSigner(),
		workers:   DefaultWorkers,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IssueCertificates issues or reissues a certificate for every distinct id.
// Item failures are reported in the summary and never stop the batch.
func (c *Coordinator) IssueCertificates(ctx context.Context, participantIds []int64) Summary {
	ids := distinct(participantIds)
	summary := Summary{Total: len(ids), Failures: []Failure{}}
	if len(ids) == 0 {
		return summary
	}

	started := time.Now()
	snapshot, snapshotErr := c.templates.Snapshot(ctx)

	results := make([]error, len(ids))
	if snapshotErr != nil {
		slog.Error("Issuance template unavailable", "error", snapshotErr, "participants", len(ids))
		for i := range results {
			results[i] = snapshotErr
		}
	} else {
		var g errgroup.Group
		g.SetLimit(c.workers)
		for i, id := range ids {
			g.Go(func() error {
				results[i] = c.issueOne(ctx, snapshot, id)
				return nil
			})
		}
		_ = g.Wait()
	}

	for i, err := range results {
		if err != nil {
			c.metrics.incFailed()
			summary.Failures = append(summary.Failures, Failure{ParticipantID: ids[i], Reason: err.Error()})
			continue
		}
		c.metrics.incIssued()
		summary.Success++
	}

	slog.Info("Issuance batch finished",
		"total", summary.Total,
		"success", summary.Success,
		"failed", len(summary.Failures),
		"duration", time.Since(started))

	return summary
}

// IssueAttended issues certificates for every participant marked attended.
func (c *Coordinator) IssueAttended(ctx context.Context) (Summary, error) {
	attended := true
	participants, err := c.directory.ListParticipants(ctx, participantmodel.Filter{Attended: &attended})
	if err != nil {
		return Summary{}, err
	}

	ids := make([]int64, 0, len(participants))
	for _, p := range participants {
		ids = append(ids, p.ID)
	}

	return c.IssueCertificates(ctx, ids), nil
}

// Generate renders a participant's certificate without storing anything.
func (c *Coordinator) Generate(ctx context.Context, participantId int64) ([]byte, error) {
	snapshot, err := c.templates.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	name, err := c.directory.GetDisplayName(ctx, participantId)
	if err != nil {
		return nil, err
	}

	return c.render(snapshot, name)
}

// Issued returns the participant's live certificate record.
func (c *Coordinator) Issued(ctx context.Context, participantId int64) (*model.IssuedCertificate, error) {
	cert, err := c.issued.GetByParticipant(ctx, participantId)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, fmt.Errorf("%w: %d", certerr.ErrCertificateNotFound, participantId)
	}
	return cert, nil
}

// Artifact returns the participant's live certificate.
func (c *Coordinator) Artifact(ctx context.Context, participantId int64) ([]byte, error) {
	cert, err := c.Issued(ctx, participantId)
	if err != nil {
		return nil, err
	}

	return c.storage.Retrieve(ctx, cert.ArtifactPath)
}

// ArtifactByToken resolves a public download token to its certificate.
func (c *Coordinator) ArtifactByToken(ctx context.Context, token string) (*model.IssuedCertificate, []byte, error) {
	cert, err := c.issued.GetByDownloadToken(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	if cert == nil {
		return nil, nil, certerr.ErrCertificateNotFound
	}

	pdfBytes, err := c.storage.Retrieve(ctx, cert.ArtifactPath)
	if err != nil {
		return nil, nil, err
	}
	return cert, pdfBytes, nil
}

func (c *Coordinator) issueOne(ctx context.Context, snapshot *certtemplate.Snapshot, participantId int64) error {
	name, err := c.directory.GetDisplayName(ctx, participantId)
	if err != nil {
		return err
	}

	pdfBytes, err := c.render(snapshot, name)
	if err != nil {
		return err
	}

	pdfBytes, signed := c.signer.SignPDF(pdfBytes, participantId)

	key := fmt.Sprintf("%d/%s", participantId, uuid.NewString())
	artifactPath, err := c.storage.Store(ctx, pdfBytes, util.CategoryCertificate, key, contentTypePDF)
	if err != nil {
		return fmt.Errorf("store certificate: %w", err)
	}

	previousPath, err := c.issued.Upsert(ctx, &model.IssuedCertificate{
		ParticipantID: participantId,
		ArtifactPath:  artifactPath,
		TemplateID:    snapshot.Info.ID,
		Signed:        signed,
	})
	if err != nil {
		if removeErr := c.storage.Remove(ctx, artifactPath); removeErr != nil {
			slog.Warn("Issuance orphaned artifact", "path", artifactPath, "error", removeErr)
		}
		return fmt.Errorf("record certificate: %w", err)
	}

	if previousPath != "" {
		if removeErr := c.storage.Remove(ctx, previousPath); removeErr != nil {
			slog.Warn("Issuance failed to remove superseded artifact",
				"participant_id", participantId,
				"path", previousPath,
				"error", removeErr)
		}
	}

	slog.Debug("Certificate issued", "participant_id", participantId, "path", artifactPath, "signed", signed)
	return nil
}

func (c *Coordinator) render(snapshot *certtemplate.Snapshot, name string) ([]byte, error) {
	started := time.Now()
	defer func() {
		c.metrics.observeRender(time.Since(started))
	}()

	return c.engine.Render(renderer.Input{
		TemplateBytes: snapshot.TemplateBytes,
		FontBytes:     snapshot.FontBytes,
		Settings:      snapshot.Info.RenderSettings(),
		Text:          name,
	})
}

// distinct drops repeated ids, keeping first-seen order.
func distinct(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
