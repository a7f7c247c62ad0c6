package renderer

import (
	"fmt"
	"unicode"

	"github.com/jung-kurt/gofpdf"
	"github.com/sunthewhat/olymp-cert-api/internal/certerr"
	"golang.org/x/image/font/sfnt"
)

// fontFamily names whichever TrueType font a render embeds; the bundled
// Go Regular face is used when no custom font is uploaded.
const fontFamily = "certfont"

// ValidateFont checks that fontBytes is an outline font the engine can embed.
func ValidateFont(fontBytes []byte) (err error) {
	if len(fontBytes) == 0 {
		return fmt.Errorf("%w: empty file", certerr.ErrInvalidFont)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", certerr.ErrInvalidFont, r)
		}
	}()

	if _, parseErr := sfnt.Parse(fontBytes); parseErr != nil {
		return fmt.Errorf("%w: %v", certerr.ErrInvalidFont, parseErr)
	}

	// sfnt accepts CFF outlines, the PDF writer only embeds TrueType ones
	trial := gofpdf.New("P", "pt", "A4", "")
	trial.AddUTF8FontFromBytes(fontFamily, "", fontBytes)
	if trial.Err() {
		return fmt.Errorf("%w: %v", certerr.ErrInvalidFont, trial.Error())
	}

	return nil
}

// checkCoverage fails when text has a rune the font has no glyph for, so a
// name is never stamped as blank boxes.
func checkCoverage(fontBytes []byte, text string) error {
	font, err := sfnt.Parse(fontBytes)
	if err != nil {
		return err
	}

	var buf sfnt.Buffer
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		index, glyphErr := font.GlyphIndex(&buf, r)
		if glyphErr != nil {
			return glyphErr
		}
		if index == 0 {
			return fmt.Errorf("font has no glyph for %q", r)
		}
	}
	return nil
}
