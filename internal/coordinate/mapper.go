// Package coordinate converts between PDF page space (points, origin
// bottom-left, Y up) and the admin preview's display space (pixels at a
// display scale, origin top-left, Y down).
package coordinate

// DisplayScale is the pixels-per-point factor of a preview container that
// shows the page at containerWidth pixels. It returns 0 for degenerate input.
func DisplayScale(containerWidth, pageWidth float64) float64 {
	if containerWidth <= 0 || pageWidth <= 0 {
		return 0
	}
	return containerWidth / pageWidth
}

// ToDisplay maps a PDF Y coordinate to a display Y coordinate.
func ToDisplay(pdfY, pageHeight, scale float64) float64 {
	if !(scale > 0) {
		return 0
	}
	return (pageHeight - pdfY) * scale
}

// ToPdf maps a display Y coordinate back to PDF space, clamped to the page.
// A non-positive or NaN scale cannot be inverted and yields the page bottom.
func ToPdf(cssY, pageHeight, scale float64) float64 {
	if !(scale > 0) {
		return 0
	}
	return Clamp(pageHeight-cssY/scale, 0, pageHeight)
}

// ToDisplayX maps a PDF X coordinate to display space. X is not flipped.
func ToDisplayX(pdfX, scale float64) float64 {
	if !(scale > 0) {
		return 0
	}
	return pdfX * scale
}

// ToPdfX maps a display X coordinate to PDF space, clamped to the page.
func ToPdfX(cssX, pageWidth, scale float64) float64 {
	if !(scale > 0) {
		return 0
	}
	return Clamp(cssX/scale, 0, pageWidth)
}

// Clamp limits v to [lo, hi]. NaN collapses to lo.
func Clamp(v, lo, hi float64) float64 {
	if v != v || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
