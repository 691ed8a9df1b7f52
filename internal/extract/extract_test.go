package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "studybuddy/internal/errors"
)

var (
	pdfHeader = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	jpgHeader = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")
)

type fakePages struct {
	pages []string
	err   error
}

func (f fakePages) Pages([]byte) ([]string, error) { return f.pages, f.err }

// MockRecognizer is a mock implementation of Recognizer.
type MockRecognizer struct {
	mock.Mock
}

func (m *MockRecognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	args := m.Called(ctx, image)
	return args.String(0), args.Error(1)
}

func TestExtract_PDFPagesConcatenatedWithoutSeparator(t *testing.T) {
	ocr := new(MockRecognizer)
	e := New(fakePages{pages: []string{"A", "B"}}, ocr)

	doc, err := e.Extract(context.Background(), pdfHeader)
	require.NoError(t, err)
	assert.Equal(t, "AB", doc.Text)
	assert.Equal(t, KindPDF, doc.Kind)
	assert.Equal(t, "Uploaded PDF", doc.Label())
	ocr.AssertNotCalled(t, "Recognize", mock.Anything, mock.Anything)
}

func TestExtract_ImagesGoThroughOCR(t *testing.T) {
	for name, data := range map[string][]byte{"png": pngHeader, "jpeg": jpgHeader} {
		t.Run(name, func(t *testing.T) {
			ocr := new(MockRecognizer)
			ocr.On("Recognize", mock.Anything, data).Return("raw ocr\n", nil)
			e := New(fakePages{}, ocr)

			doc, err := e.Extract(context.Background(), data)
			require.NoError(t, err)
			assert.Equal(t, "raw ocr\n", doc.Text)
			assert.Equal(t, KindImage, doc.Kind)
			assert.Equal(t, "Uploaded Image", doc.Label())
			ocr.AssertExpectations(t)
		})
	}
}

func TestExtract_Failures(t *testing.T) {
	ocr := new(MockRecognizer)
	ocr.On("Recognize", mock.Anything, mock.Anything).Return("", errors.New("tesseract died"))

	e := New(fakePages{err: errors.New("xref broken")}, ocr)

	_, err := e.Extract(context.Background(), pdfHeader)
	assert.ErrorIs(t, err, apperrors.ErrExtraction)

	_, err = e.Extract(context.Background(), pngHeader)
	assert.ErrorIs(t, err, apperrors.ErrExtraction)

	_, err = e.Extract(context.Background(), []byte("just some text"))
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedDocument)
}

func TestPDFReader_RejectsGarbage(t *testing.T) {
	_, err := PDFReader{}.Pages(append(pdfHeader, []byte("not really a pdf")...))
	assert.Error(t, err)
}
