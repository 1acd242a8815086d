package multi

import (
	"context"
	"errors"

	"github.com/adrianliechti/narrator/pkg/extractor"
)

var _ extractor.Provider = &Extractor{}
var _ extractor.Capability = &Extractor{}

// Extractor tries providers in order. Providers that cannot handle the
// content type are skipped; the first real failure is returned.
type Extractor struct {
	providers []extractor.Provider
}

func New(provider ...extractor.Provider) *Extractor {
	return &Extractor{
		providers: provider,
	}
}

func (e *Extractor) Supports(contentType string) bool {
	for _, p := range e.providers {
		if extractor.Supports(p, contentType) {
			return true
		}
	}

	return false
}

func (e *Extractor) Extract(ctx context.Context, file extractor.File, options *extractor.ExtractOptions) (*extractor.Document, error) {
	if options == nil {
		options = new(extractor.ExtractOptions)
	}

	for _, p := range e.providers {
		if !extractor.Supports(p, file.ContentType) {
			continue
		}

		result, err := p.Extract(ctx, file, options)

		if err != nil {
			if errors.Is(err, extractor.ErrUnsupported) {
				continue
			}

			return nil, err
		}

		return result, nil
	}

	return nil, &extractor.UnsupportedFormatError{
		ContentType: file.ContentType,
	}
}
