// Package pdf renders statement PDFs into per-page raster images.
package pdf

import (
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// DefaultDPI is the target render resolution. Scanned statements need a
// high DPI for the model to read small table print reliably.
const DefaultDPI = 300

// UnreadableError indicates the input could not be opened as a PDF.
type UnreadableError struct {
	Err error
}

func (e *UnreadableError) Error() string {
	return fmt.Sprintf("unreadable PDF: %v", e.Err)
}

func (e *UnreadableError) Unwrap() error { return e.Err }

// Rasterize converts every page of the given PDF bytes into a PNG image
// at the requested DPI. Images are returned in page order.
func Rasterize(data []byte, dpi float64) ([][]byte, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, &UnreadableError{Err: err}
	}
	defer doc.Close()

	return renderPages(doc, dpi)
}

// RasterizeFile is like Rasterize but reads the PDF from disk.
func RasterizeFile(path string, dpi float64) ([][]byte, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, &UnreadableError{Err: err}
	}
	defer doc.Close()

	return renderPages(doc, dpi)
}

func renderPages(doc *fitz.Document, dpi float64) ([][]byte, error) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	total := doc.NumPage()
	images := make([][]byte, 0, total)
	for n := 0; n < total; n++ {
		png, err := doc.ImagePNG(n, dpi)
		if err != nil {
			return nil, fmt.Errorf("rasterize page %d: %w", n+1, err)
		}
		images = append(images, png)
	}

	return images, nil
}
