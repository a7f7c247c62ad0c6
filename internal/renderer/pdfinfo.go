package renderer

import (
	"bytes"
	"fmt"

	digitorus_pdf "github.com/digitorus/pdf"
	"github.com/sunthewhat/olymp-cert-api/internal/certerr"
)

// PageSize returns the first page's MediaBox width and height in points.
// The box is looked up through the page tree since it is inheritable.
func PageSize(pdfBytes []byte) (width float64, height float64, err error) {
	if len(pdfBytes) == 0 {
		return 0, 0, fmt.Errorf("%w: empty file", certerr.ErrInvalidTemplate)
	}

	defer func() {
		if r := recover(); r != nil {
			width, height = 0, 0
			err = fmt.Errorf("%w: malformed pdf: %v", certerr.ErrInvalidTemplate, r)
		}
	}()

	reader, readErr := digitorus_pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if readErr != nil {
		return 0, 0, fmt.Errorf("%w: %v", certerr.ErrInvalidTemplate, readErr)
	}

	if reader.NumPage() < 1 {
		return 0, 0, fmt.Errorf("%w: document has no pages", certerr.ErrInvalidTemplate)
	}

	node := reader.Page(1).V
	for depth := 0; depth < 32 && !node.IsNull(); depth++ {
		box := node.Key("MediaBox")
		if box.Kind() == digitorus_pdf.Array && box.Len() == 4 {
			width = box.Index(2).Float64() - box.Index(0).Float64()
			height = box.Index(3).Float64() - box.Index(1).Float64()
			if width < 0 {
				width = -width
			}
			if height < 0 {
				height = -height
			}
			if width == 0 || height == 0 {
				return 0, 0, fmt.Errorf("%w: zero sized page", certerr.ErrInvalidTemplate)
			}
			return width, height, nil
		}
		node = node.Key("Parent")
	}

	return 0, 0, fmt.Errorf("%w: first page has no MediaBox", certerr.ErrInvalidTemplate)
}
