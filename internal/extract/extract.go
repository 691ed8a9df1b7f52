// Package extract turns uploaded documents into plain text: PDFs page by
// page, raster images through an OCR engine.
package extract

import (
	"context"
	"fmt"

	"github.com/gabriel-vasile/mimetype"

	apperrors "studybuddy/internal/errors"
)

// Kind is the detected document family.
type Kind string

const (
	KindPDF   Kind = "pdf"
	KindImage Kind = "image"
)

// Document is the result of an extraction.
type Document struct {
	Kind      Kind
	MediaType string
	Text      string
}

// Label is the prompt side of the conversation entry for an upload.
func (d Document) Label() string {
	if d.Kind == KindPDF {
		return "Uploaded PDF"
	}
	return "Uploaded Image"
}

// TextExtractor extracts plain text from raw document bytes.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (Document, error)
}

// PageReader returns the plain text of every PDF page, in page order.
type PageReader interface {
	Pages(data []byte) ([]string, error)
}

// Recognizer runs OCR over an encoded image.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// Extractor dispatches on the sniffed media type.
type Extractor struct {
	pdf PageReader
	ocr Recognizer
}

var _ TextExtractor = (*Extractor)(nil)

// New builds an Extractor.
func New(pdf PageReader, ocr Recognizer) *Extractor {
	return &Extractor{pdf: pdf, ocr: ocr}
}

// Extract returns the document text. PDF page texts are joined with no
// separator, so the last word of one page runs into the first of the next.
func (e *Extractor) Extract(ctx context.Context, data []byte) (Document, error) {
	mt := mimetype.Detect(data)

	switch {
	case mt.Is("application/pdf"):
		pages, err := e.pdf.Pages(data)
		if err != nil {
			return Document{}, fmt.Errorf("%w: %v", apperrors.ErrExtraction, err)
		}
		var text string
		for _, p := range pages {
			text += p
		}
		return Document{Kind: KindPDF, MediaType: mt.String(), Text: text}, nil

	case mt.Is("image/png"), mt.Is("image/jpeg"):
		text, err := e.ocr.Recognize(ctx, data)
		if err != nil {
			return Document{}, fmt.Errorf("%w: %v", apperrors.ErrExtraction, err)
		}
		return Document{Kind: KindImage, MediaType: mt.String(), Text: text}, nil
	}

	return Document{}, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedDocument, mt.String())
}
