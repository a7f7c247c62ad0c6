package renderer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunthewhat/olymp-cert-api/internal/certerr"
	"github.com/sunthewhat/olymp-cert-api/test/helpers"
	"golang.org/x/image/font/gofont/goregular"
)

func defaultSettings() Settings {
	return Settings{TextX: 300, TextY: 400, FontSize: 110, FontColor: "#023664"}
}

func TestPageSize(t *testing.T) {
	template := helpers.TemplatePDF(t, 600, 800)

	width, height, err := PageSize(template)

	require.NoError(t, err)
	assert.InDelta(t, 600.0, width, 0.01)
	assert.InDelta(t, 800.0, height, 0.01)
}

func TestPageSize_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		input []byte
	}{
		{"empty", nil},
		{"not a pdf", []byte("hello, this is a text file")},
		{"truncated pdf", []byte("%PDF-1.4\n1 0 obj\n<<")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := PageSize(tc.input)
			assert.ErrorIs(t, err, certerr.ErrInvalidTemplate)
		})
	}
}

func TestRender_PlacesTextAtConfiguredPosition(t *testing.T) {
	engine := NewEngine(WithCompression(false))
	template := helpers.TemplatePDF(t, 600, 800)

	out, err := engine.Render(Input{
		TemplateBytes: template,
		Settings:      defaultSettings(),
		Text:          "Ivanov Ivan",
	})

	require.NoError(t, err)
	require.NotEmpty(t, out)
	// baseline-left at (300, 400) in bottom-left origin points
	assert.Contains(t, string(out), helpers.TextOp(300, 400, "Ivanov Ivan"))
	assert.Contains(t, string(out), " 110.00 Tf")
	assert.Contains(t, string(out), "0.008 0.212 0.392 rg")

	width, height, err := PageSize(out)
	require.NoError(t, err)
	assert.InDelta(t, 600.0, width, 0.01)
	assert.InDelta(t, 800.0, height, 0.01)
}

func TestRender_Deterministic(t *testing.T) {
	engine := NewEngine(WithCompression(false))
	input := Input{
		TemplateBytes: helpers.TemplatePDF(t, 842, 595),
		Settings:      Settings{TextX: 120.5, TextY: 300.25, FontSize: 48, FontColor: "#aa0000"},
		Text:          "Petrova Anna",
	}

	first, err := engine.Render(input)
	require.NoError(t, err)
	second, err := engine.Render(input)
	require.NoError(t, err)

	for _, marker := range []string{
		helpers.TextOp(120.5, 300.25, "Petrova Anna"),
		" 48.00 Tf",
		"0.667 0.000 0.000 rg",
		"/CreationDate (D:20000101000000",
	} {
		assert.Equal(t, bytes.Count(first, []byte(marker)), bytes.Count(second, []byte(marker)), marker)
		assert.Contains(t, string(first), marker)
	}
}

func TestRender_CustomFont(t *testing.T) {
	engine := NewEngine()

	out, err := engine.Render(Input{
		TemplateBytes: helpers.TemplatePDF(t, 600, 800),
		FontBytes:     goregular.TTF,
		Settings:      defaultSettings(),
		Text:          "Иванов Иван",
	})

	require.NoError(t, err)
	assert.Contains(t, string(out), "/FontFile2")
}

func TestRender_CyrillicWithBuiltInFont(t *testing.T) {
	engine := NewEngine(WithCompression(false))

	out, err := engine.Render(Input{
		TemplateBytes: helpers.TemplatePDF(t, 600, 800),
		Settings:      defaultSettings(),
		Text:          "Иванов Иван",
	})

	require.NoError(t, err)
	assert.Contains(t, string(out), helpers.TextOp(300, 400, "Иванов Иван"))
	assert.NotContains(t, string(out), "(...... ....)")
	assert.Contains(t, string(out), "/FontFile2")
}

func TestRender_MissingGlyph(t *testing.T) {
	engine := NewEngine()

	out, err := engine.Render(Input{
		TemplateBytes: helpers.TemplatePDF(t, 600, 800),
		Settings:      defaultSettings(),
		Text:          "王小明",
	})

	assert.ErrorIs(t, err, certerr.ErrRender)
	assert.Nil(t, out)
}

func TestRender_Errors(t *testing.T) {
	template := helpers.TemplatePDF(t, 600, 800)
	engine := NewEngine()

	testCases := []struct {
		name  string
		input Input
	}{
		{"missing template", Input{Settings: defaultSettings(), Text: "x"}},
		{"corrupt template", Input{TemplateBytes: []byte("%PDF-garbage"), Settings: defaultSettings(), Text: "x"}},
		{"bad color", Input{TemplateBytes: template, Settings: Settings{FontSize: 10, FontColor: "navy"}, Text: "x"}},
		{"zero font size", Input{TemplateBytes: template, Settings: Settings{FontColor: "#000"}, Text: "x"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := engine.Render(tc.input)
			assert.ErrorIs(t, err, certerr.ErrRender)
			assert.Nil(t, out)
		})
	}
}

func TestPreview_UsesPlaceholderName(t *testing.T) {
	engine := NewEngine(WithCompression(false))

	out, err := engine.Preview(helpers.TemplatePDF(t, 600, 800), nil, defaultSettings())

	require.NoError(t, err)
	assert.Contains(t, string(out), helpers.TextOp(300, 400, PlaceholderName))
}

func TestValidateFont(t *testing.T) {
	assert.NoError(t, ValidateFont(goregular.TTF))
	assert.ErrorIs(t, ValidateFont(nil), certerr.ErrInvalidFont)
	assert.ErrorIs(t, ValidateFont([]byte("definitely not a font")), certerr.ErrInvalidFont)
}

func TestParseHexColor(t *testing.T) {
	testCases := []struct {
		input   string
		r, g, b int
		wantErr bool
	}{
		{input: "#023664", r: 2, g: 54, b: 100},
		{input: "023664", r: 2, g: 54, b: 100},
		{input: "#fff", r: 255, g: 255, b: 255},
		{input: "#FfA500", r: 255, g: 165, b: 0},
		{input: "#12345", wantErr: true},
		{input: "#zzzzzz", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			r, g, b, err := ParseHexColor(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []int{tc.r, tc.g, tc.b}, []int{r, g, b})
		})
	}
}
