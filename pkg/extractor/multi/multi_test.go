package multi_test

import (
	"context"
	"errors"
	"testing"

	"github.com/adrianliechti/narrator/pkg/extractor"
	"github.com/adrianliechti/narrator/pkg/extractor/multi"
	"github.com/adrianliechti/narrator/pkg/extractor/pdf"
	"github.com/adrianliechti/narrator/pkg/extractor/text"

	"github.com/stretchr/testify/require"
)

type stubExtractor struct {
	types []string
	calls int

	doc *extractor.Document
	err error
}

func (s *stubExtractor) Supports(contentType string) bool {
	for _, t := range s.types {
		if t == contentType {
			return true
		}
	}

	return false
}

func (s *stubExtractor) Extract(ctx context.Context, file extractor.File, options *extractor.ExtractOptions) (*extractor.Document, error) {
	s.calls++
	return s.doc, s.err
}

func TestExtractOrder(t *testing.T) {
	unavailable := &stubExtractor{}
	first := &stubExtractor{types: []string{"application/pdf"}, doc: &extractor.Document{Text: "first"}}
	second := &stubExtractor{types: []string{"application/pdf"}, doc: &extractor.Document{Text: "second"}}

	e := multi.New(unavailable, first, second)

	doc, err := e.Extract(context.Background(), extractor.File{ContentType: "application/pdf"}, nil)
	require.NoError(t, err)
	require.Equal(t, "first", doc.Text)

	require.Zero(t, unavailable.calls)
	require.Zero(t, second.calls)
}

func TestExtractFailure(t *testing.T) {
	failing := &stubExtractor{types: []string{"application/pdf"}, err: &extractor.ExtractionError{Err: errors.New("boom")}}
	next := &stubExtractor{types: []string{"application/pdf"}, doc: &extractor.Document{Text: "next"}}

	_, err := multi.New(failing, next).Extract(context.Background(), extractor.File{ContentType: "application/pdf"}, nil)

	var eerr *extractor.ExtractionError
	require.ErrorAs(t, err, &eerr)
	require.Zero(t, next.calls)
}

func TestExtractUnsupported(t *testing.T) {
	textExtractor, _ := text.New()
	pdfExtractor, _ := pdf.New()

	e := multi.New(textExtractor, pdfExtractor)

	_, err := e.Extract(context.Background(), extractor.File{
		Name:        "letter.docx",
		ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Content:     []byte("PK"),
	}, nil)

	var uerr *extractor.UnsupportedFormatError
	require.ErrorAs(t, err, &uerr)
	require.ErrorIs(t, err, extractor.ErrUnsupported)

	require.True(t, e.Supports("application/pdf"))
	require.False(t, e.Supports("image/png"))
}
