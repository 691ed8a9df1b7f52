// Package ocr recognises text in raster images with tesseract.
package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract runs one gosseract client per call; clients are not safe for
// concurrent use.
type Tesseract struct {
	languages []string
}

// NewTesseract builds a recogniser. With no languages tesseract uses eng.
func NewTesseract(languages ...string) *Tesseract {
	return &Tesseract{languages: languages}
}

// Recognize returns the raw tesseract output for an encoded image.
func (t *Tesseract) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if len(t.languages) > 0 {
		if err := client.SetLanguage(t.languages...); err != nil {
			return "", fmt.Errorf("set language: %w", err)
		}
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("load image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	return text, nil
}
