package pdf

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/adrianliechti/narrator/pkg/extractor"

	"github.com/ledongthuc/pdf"
)

var _ extractor.Provider = &Extractor{}
var _ extractor.Capability = &Extractor{}

// Extractor reads the text layer of a PDF in process. Image-only pages yield no text.
type Extractor struct {
}

func New() (*Extractor, error) {
	return &Extractor{}, nil
}

func (e *Extractor) Supports(contentType string) bool {
	return slices.Contains(SupportedMimeTypes, contentType)
}

func (e *Extractor) Extract(ctx context.Context, file extractor.File, options *extractor.ExtractOptions) (doc *extractor.Document, err error) {
	if options == nil {
		options = new(extractor.ExtractOptions)
	}

	if !isSupported(file) {
		return nil, extractor.ErrUnsupported
	}

	// the parser panics on some malformed input
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = &extractor.ExtractionError{
				Err: fmt.Errorf("malformed pdf: %v", r),
			}
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(file.Content), int64(len(file.Content)))

	if err != nil {
		return nil, &extractor.ExtractionError{
			Err: err,
		}
	}

	count := r.NumPage()
	pages := make([]string, 0, count)

	for i := 1; i <= count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := r.Page(i)

		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)

		if err != nil {
			return nil, &extractor.ExtractionError{
				Err: fmt.Errorf("page %d: %w", i, err),
			}
		}

		pages = append(pages, text)
	}

	text := strings.TrimSpace(strings.Join(pages, "\n"))

	if text == "" {
		return nil, &extractor.ExtractionError{
			Err: extractor.ErrNoText,
		}
	}

	return &extractor.Document{
		Text:  text,
		Pages: count,
	}, nil
}

func isSupported(file extractor.File) bool {
	if file.ContentType != "" && file.ContentType != "application/octet-stream" {
		return slices.Contains(SupportedMimeTypes, file.ContentType)
	}

	if file.Name != "" {
		ext := strings.ToLower(path.Ext(file.Name))

		if slices.Contains(SupportedExtensions, ext) {
			return true
		}
	}

	return false
}
