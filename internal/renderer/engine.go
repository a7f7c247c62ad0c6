package renderer

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"
	"github.com/sunthewhat/olymp-cert-api/internal/certerr"
	"golang.org/x/image/font/gofont/goregular"
)

// PlaceholderName is stamped on previews instead of a real participant.
const PlaceholderName = "Ivanov Ivan"

// renderEpoch is written as the document creation date so identical input
// gives identical output.
var renderEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Settings is the text layout in PDF points, origin bottom-left.
type Settings struct {
	TextX     float64
	TextY     float64
	FontSize  int
	FontColor string
}

// Input is everything one render needs. FontBytes may be nil.
type Input struct {
	TemplateBytes []byte
	FontBytes     []byte
	Settings      Settings
	Text          string
}

// Engine stamps a single line of text onto the first page of a PDF template.
type Engine struct {
	compress bool
}

type Option func(*Engine)

// WithCompression toggles content stream compression (on by default).
func WithCompression(compress bool) Option {
	return func(e *Engine) {
		e.compress = compress
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{compress: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render returns a one-page PDF: the template's first page with Input.Text
// drawn with its baseline starting at (TextX, TextY).
func (e *Engine) Render(in Input) (out []byte, err error) {
	if len(in.TemplateBytes) == 0 {
		return nil, fmt.Errorf("%w: template is empty", certerr.ErrRender)
	}

	// the page importer panics on malformed input
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("%w: %v", certerr.ErrRender, r)
		}
	}()

	width, height, sizeErr := PageSize(in.TemplateBytes)
	if sizeErr != nil {
		return nil, fmt.Errorf("%w: %v", certerr.ErrRender, sizeErr)
	}

	red, green, blue, colorErr := ParseHexColor(in.Settings.FontColor)
	if colorErr != nil {
		return nil, fmt.Errorf("%w: %v", certerr.ErrRender, colorErr)
	}

	if in.Settings.FontSize <= 0 {
		return nil, fmt.Errorf("%w: font size must be positive", certerr.ErrRender)
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetCreationDate(renderEpoch)
	pdf.SetCatalogSort(true)
	pdf.SetCompression(e.compress)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	importer := gofpdi.NewImporter()
	source := io.ReadSeeker(bytes.NewReader(in.TemplateBytes))
	templateID := importer.ImportPageFromStream(pdf, &source, 1, "/MediaBox")
	importer.UseImportedTemplate(pdf, templateID, 0, 0, width, height)

	fontBytes := in.FontBytes
	if len(fontBytes) == 0 {
		fontBytes = goregular.TTF
	}
	if coverErr := checkCoverage(fontBytes, in.Text); coverErr != nil {
		return nil, fmt.Errorf("%w: %v", certerr.ErrRender, coverErr)
	}
	pdf.AddUTF8FontFromBytes(fontFamily, "", fontBytes)

	pdf.SetFont(fontFamily, "", float64(in.Settings.FontSize))
	pdf.SetTextColor(red, green, blue)
	// gofpdf measures Y from the top edge
	pdf.Text(in.Settings.TextX, height-in.Settings.TextY, in.Text)

	if pdf.Err() {
		return nil, fmt.Errorf("%w: %v", certerr.ErrRender, pdf.Error())
	}

	var buf bytes.Buffer
	if outputErr := pdf.Output(&buf); outputErr != nil {
		return nil, fmt.Errorf("%w: %v", certerr.ErrRender, outputErr)
	}

	slog.Debug("Renderer rendered certificate",
		"page_width", width,
		"page_height", height,
		"custom_font", len(in.FontBytes) > 0,
		"size", buf.Len())

	return buf.Bytes(), nil
}

// Preview renders the placeholder name with the given layout.
func (e *Engine) Preview(templateBytes []byte, fontBytes []byte, settings Settings) ([]byte, error) {
	return e.Render(Input{
		TemplateBytes: templateBytes,
		FontBytes:     fontBytes,
		Settings:      settings,
		Text:          PlaceholderName,
	})
}
