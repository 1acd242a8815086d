package text

import (
	"context"
	"path"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/adrianliechti/narrator/pkg/extractor"
	"github.com/adrianliechti/narrator/pkg/provider"
)

var _ extractor.Provider = &Extractor{}
var _ extractor.Capability = &Extractor{}

// Extractor returns text files verbatim.
type Extractor struct {
}

func New() (*Extractor, error) {
	return &Extractor{}, nil
}

func (e *Extractor) Supports(contentType string) bool {
	return slices.Contains(SupportedMimeTypes, contentType)
}

func (e *Extractor) Extract(ctx context.Context, file extractor.File, options *extractor.ExtractOptions) (*extractor.Document, error) {
	if options == nil {
		options = new(extractor.ExtractOptions)
	}

	if !isSupported(file) {
		return nil, extractor.ErrUnsupported
	}

	if !utf8.Valid(file.Content) {
		return nil, &extractor.DecodeError{
			Offset: invalidOffset(file.Content),
		}
	}

	return &extractor.Document{
		Text:  string(file.Content),
		Pages: 1,
	}, nil
}

func invalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])

		if r == utf8.RuneError && size <= 1 {
			return i
		}

		i += size
	}

	return len(data)
}

func isSupported(file provider.File) bool {
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
