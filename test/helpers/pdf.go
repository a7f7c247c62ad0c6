package helpers

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/require"
)

// TemplatePDF builds a one-page template of the given size in points with a
// framed border, standing in for an uploaded certificate design.
func TemplatePDF(t testing.TB, width, height float64) []byte {
	t.Helper()

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetCompression(false)
	pdf.AddPage()
	pdf.SetDrawColor(180, 140, 20)
	pdf.SetLineWidth(4)
	pdf.Rect(20, 20, width-40, height-40, "D")
	pdf.SetFont("Helvetica", "B", 36)
	pdf.Text(40, 80, "CERTIFICATE")

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf), "template fixture should render")
	return buf.Bytes()
}

// TextOp returns the text-showing operator the renderer writes for text
// placed at (x, y) points, as it appears in an uncompressed content stream.
// Embedded TrueType text is stored as escaped UTF-16BE.
func TextOp(x, y float64, text string) string {
	var encoded strings.Builder
	for _, unit := range utf16.Encode([]rune(text)) {
		encoded.WriteByte(byte(unit >> 8))
		encoded.WriteByte(byte(unit))
	}

	escaped := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`, "\r", `\r`).Replace(encoded.String())
	return fmt.Sprintf("BT %.2f %.2f Td (%s) Tj ET", x, y, escaped)
}
