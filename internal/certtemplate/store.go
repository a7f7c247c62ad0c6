// Package certtemplate owns the single active certificate template: the PDF
// design, an optional custom font and the text layout stamped onto it.
package certtemplate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	templatemodel "github.com/sunthewhat/olymp-cert-api/api/model/templateModel"
	"github.com/sunthewhat/olymp-cert-api/common/util"
	"github.com/sunthewhat/olymp-cert-api/internal/certerr"
	"github.com/sunthewhat/olymp-cert-api/internal/coordinate"
	"github.com/sunthewhat/olymp-cert-api/internal/renderer"
	"github.com/sunthewhat/olymp-cert-api/type/shared/model"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeFont = "font/ttf"
)

// PartialSettings carries layout fields to change. Nil fields are kept.
type PartialSettings struct {
	TextX     *float64 `json:"textX" validate:"omitempty,gte=0"`
	TextY     *float64 `json:"textY" validate:"omitempty,gte=0"`
	FontSize  *int     `json:"fontSize" validate:"omitempty,min=1,max=500"`
	FontColor *string  `json:"fontColor" validate:"omitempty,hexcolor"`
}

// IsEmpty reports whether no field is set.
func (p PartialSettings) IsEmpty() bool {
	return p.TextX == nil && p.TextY == nil && p.FontSize == nil && p.FontColor == nil
}

// Position is a text anchor picked in the admin preview, in display pixels.
// CSSX is optional; when nil only the vertical position moves.
type Position struct {
	CSSX           *float64 `json:"cssX" validate:"omitempty,gte=0"`
	CSSY           *float64 `json:"cssY" validate:"required,gte=0"`
	ContainerWidth *float64 `json:"containerWidth" validate:"required,gt=0"`
}

// TemplateInfo is the public view of the active template.
type TemplateInfo struct {
	ID        uint      `json:"id"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	TextX     float64   `json:"textX"`
	TextY     float64   `json:"textY"`
	FontSize  int       `json:"fontSize"`
	FontColor string    `json:"fontColor"`
	HasFont   bool      `json:"hasFont"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RenderSettings is the layout in the form the render engine takes.
func (i TemplateInfo) RenderSettings() renderer.Settings {
	return renderer.Settings{
		TextX:     i.TextX,
		TextY:     i.TextY,
		FontSize:  i.FontSize,
		FontColor: i.FontColor,
	}
}

// Snapshot is one consistent read of everything a render needs.
type Snapshot struct {
	Info          TemplateInfo
	TemplateBytes []byte
	FontBytes     []byte
}

type Store struct {
	repo    templatemodel.ITemplateRepository
	storage util.ObjectStorage
}

func NewStore(repo templatemodel.ITemplateRepository, storage util.ObjectStorage) *Store {
	return &Store{repo: repo, storage: storage}
}

// SetTemplate validates pdfBytes and makes it the active template. Layout
// fields missing from settings are inherited from the previous template, or
// defaulted when there is none. Nothing changes on error.
func (s *Store) SetTemplate(ctx context.Context, pdfBytes []byte, settings PartialSettings) (*TemplateInfo, error) {
	width, height, err := renderer.PageSize(pdfBytes)
	if err != nil {
		return nil, err
	}
	if err := validateSettings(settings); err != nil {
		return nil, err
	}

	previous, err := s.repo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	tpl := &model.CertificateTemplate{
		PageWidth:  width,
		PageHeight: height,
		FontSize:   model.DefaultFontSize,
		FontColor:  model.DefaultFontColor,
	}
	if previous != nil {
		tpl.TextX = previous.TextX
		tpl.TextY = previous.TextY
		tpl.FontSize = previous.FontSize
		tpl.FontColor = previous.FontColor
		tpl.FontPath = previous.FontPath
	}
	applySettings(tpl, settings)

	templatePath, err := s.storage.Store(ctx, pdfBytes, util.CategoryTemplate, "", contentTypePDF)
	if err != nil {
		return nil, fmt.Errorf("store template: %w", err)
	}
	tpl.TemplatePath = templatePath

	if err := s.repo.Activate(ctx, tpl); err != nil {
		if removeErr := s.storage.Remove(ctx, templatePath); removeErr != nil {
			slog.Warn("Template orphaned object", "path", templatePath, "error", removeErr)
		}
		return nil, err
	}

	slog.Info("Template uploaded",
		"template_id", tpl.ID,
		"width", width,
		"height", height,
		"inherited", previous != nil)

	info := toInfo(tpl)
	return &info, nil
}

// SetFont validates fontBytes and attaches it to the active template.
func (s *Store) SetFont(ctx context.Context, fontBytes []byte) (*TemplateInfo, error) {
	if err := renderer.ValidateFont(fontBytes); err != nil {
		return nil, err
	}

	active, err := s.active(ctx)
	if err != nil {
		return nil, err
	}

	fontPath, err := s.storage.Store(ctx, fontBytes, util.CategoryFont, "", contentTypeFont)
	if err != nil {
		return nil, fmt.Errorf("store font: %w", err)
	}

	if err := s.repo.SetFontPath(ctx, active.ID, &fontPath); err != nil {
		return nil, err
	}
	active.FontPath = &fontPath

	slog.Info("Template font set", "template_id", active.ID, "path", fontPath)
	info := toInfo(active)
	return &info, nil
}

// ClearFont reverts the active template to the built-in font.
func (s *Store) ClearFont(ctx context.Context) (*TemplateInfo, error) {
	active, err := s.active(ctx)
	if err != nil {
		return nil, err
	}

	if active.FontPath != nil {
		if err := s.repo.SetFontPath(ctx, active.ID, nil); err != nil {
			return nil, err
		}
		active.FontPath = nil
	}

	info := toInfo(active)
	return &info, nil
}

func (s *Store) GetSettings(ctx context.Context) (*TemplateInfo, error) {
	active, err := s.active(ctx)
	if err != nil {
		return nil, err
	}
	info := toInfo(active)
	return &info, nil
}

func (s *Store) GetTemplateBytes(ctx context.Context) ([]byte, error) {
	active, err := s.active(ctx)
	if err != nil {
		return nil, err
	}
	return s.storage.Retrieve(ctx, active.TemplatePath)
}

// GetFontBytes returns nil without error when the built-in font is in use.
func (s *Store) GetFontBytes(ctx context.Context) ([]byte, error) {
	active, err := s.active(ctx)
	if err != nil {
		return nil, err
	}
	return s.fontBytes(ctx, active)
}

// UpdateSettings merges the non-nil fields of partial into the active
// template. Text coordinates are clamped to the page.
func (s *Store) UpdateSettings(ctx context.Context, partial PartialSettings) (*TemplateInfo, error) {
	if err := validateSettings(partial); err != nil {
		return nil, err
	}

	active, err := s.active(ctx)
	if err != nil {
		return nil, err
	}

	merged := *active
	applySettings(&merged, partial)

	updates := map[string]any{}
	if partial.TextX != nil {
		updates["text_x"] = merged.TextX
	}
	if partial.TextY != nil {
		updates["text_y"] = merged.TextY
	}
	if partial.FontSize != nil {
		updates["font_size"] = merged.FontSize
	}
	if partial.FontColor != nil {
		updates["font_color"] = merged.FontColor
	}

	updated, err := s.repo.UpdateSettings(ctx, active.ID, updates)
	if err != nil {
		return nil, err
	}

	info := toInfo(updated)
	return &info, nil
}

// UpdatePosition converts a point picked in a preview of containerWidth
// pixels into PDF points and stores it as the text anchor.
func (s *Store) UpdatePosition(ctx context.Context, position Position) (*TemplateInfo, error) {
	if err := util.ValidateStruct(position); err != nil {
		return nil, fmt.Errorf("%w: %v", certerr.ErrInvalidSettings, util.GetValidationErrors(err))
	}

	active, err := s.active(ctx)
	if err != nil {
		return nil, err
	}

	scale := coordinate.DisplayScale(*position.ContainerWidth, active.PageWidth)
	textY := coordinate.ToPdf(*position.CSSY, active.PageHeight, scale)
	partial := PartialSettings{TextY: &textY}
	if position.CSSX != nil {
		textX := coordinate.ToPdfX(*position.CSSX, active.PageWidth, scale)
		partial.TextX = &textX
	}

	return s.UpdateSettings(ctx, partial)
}

// Snapshot reads the active template with its bytes in one go.
func (s *Store) Snapshot(ctx context.Context) (*Snapshot, error) {
	active, err := s.active(ctx)
	if err != nil {
		return nil, err
	}

	templateBytes, err := s.storage.Retrieve(ctx, active.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}

	fontBytes, err := s.fontBytes(ctx, active)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Info:          toInfo(active),
		TemplateBytes: templateBytes,
		FontBytes:     fontBytes,
	}, nil
}

func (s *Store) active(ctx context.Context) (*model.CertificateTemplate, error) {
	active, err := s.repo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, certerr.ErrNotFound
	}
	return active, nil
}

func (s *Store) fontBytes(ctx context.Context, tpl *model.CertificateTemplate) ([]byte, error) {
	if tpl.FontPath == nil || *tpl.FontPath == "" {
		return nil, nil
	}
	fontBytes, err := s.storage.Retrieve(ctx, *tpl.FontPath)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return fontBytes, nil
}

func validateSettings(settings PartialSettings) error {
	if settings.TextX != nil && math.IsNaN(*settings.TextX) || settings.TextY != nil && math.IsNaN(*settings.TextY) {
		return fmt.Errorf("%w: coordinates must be numbers", certerr.ErrInvalidSettings)
	}
	if err := util.ValidateStruct(settings); err != nil {
		return fmt.Errorf("%w: %v", certerr.ErrInvalidSettings, util.GetValidationErrors(err))
	}
	return nil
}

func applySettings(tpl *model.CertificateTemplate, settings PartialSettings) {
	if settings.TextX != nil {
		tpl.TextX = *settings.TextX
	}
	if settings.TextY != nil {
		tpl.TextY = *settings.TextY
	}
	if settings.FontSize != nil {
		tpl.FontSize = *settings.FontSize
	}
	if settings.FontColor != nil {
		tpl.FontColor = *settings.FontColor
	}
	tpl.TextX = coordinate.Clamp(tpl.TextX, 0, tpl.PageWidth)
	tpl.TextY = coordinate.Clamp(tpl.TextY, 0, tpl.PageHeight)
}

func toInfo(tpl *model.CertificateTemplate) TemplateInfo {
	return TemplateInfo{
		ID:        tpl.ID,
		Width:     tpl.PageWidth,
		Height:    tpl.PageHeight,
		TextX:     tpl.TextX,
		TextY:     tpl.TextY,
		FontSize:  tpl.FontSize,
		FontColor: tpl.FontColor,
		HasFont:   tpl.FontPath != nil && *tpl.FontPath != "",
		UpdatedAt: tpl.UpdatedAt,
	}
}

// IsNotConfigured reports whether err means no template was uploaded yet.
func IsNotConfigured(err error) bool {
	return errors.Is(err, certerr.ErrNotFound)
}
