package assets

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// Source is a piece of artwork with one or more pages.
type Source interface {
	PageCount() int
	RenderPage(index int, dpi int) (image.Image, error)
	Close() error
}

// Open picks a source implementation by file extension: PDF documents go
// through MuPDF, everything else through the image decoders.
func Open(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return NewPDFSource(path)
	case ".png", ".jpg", ".jpeg":
		return &RasterSource{path: path}, nil
	}
	return nil, fmt.Errorf("unsupported artwork format: %s", path)
}

// PDFSource renders vector artwork exported as PDF.
type PDFSource struct {
	doc *fitz.Document
}

func NewPDFSource(path string) (*PDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	return &PDFSource{doc: doc}, nil
}

func (s *PDFSource) PageCount() int {
	return s.doc.NumPage()
}

func (s *PDFSource) RenderPage(index int, dpi int) (image.Image, error) {
	if index < 0 || index >= s.doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range (%d pages)", index, s.doc.NumPage())
	}
	return s.doc.ImageDPI(index, float64(dpi))
}

func (s *PDFSource) Close() error {
	return s.doc.Close()
}

// RasterSource is a single PNG or JPEG file.
type RasterSource struct {
	path string
}

func (s *RasterSource) PageCount() int {
	return 1
}

func (s *RasterSource) RenderPage(index int, dpi int) (image.Image, error) {
	if index != 0 {
		return nil, fmt.Errorf("page %d out of range (1 page)", index)
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.path, err)
	}
	return img, nil
}

func (s *RasterSource) Close() error {
	return nil
}
