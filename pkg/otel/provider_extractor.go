package otel

import (
	"context"

	"github.com/adrianliechti/narrator/pkg/extractor"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type Extractor interface {
	Observable
	extractor.Provider
	extractor.Capability
}

type observableExtractor struct {
	name string

	extractor extractor.Provider
}

func NewExtractor(name string, p extractor.Provider) Extractor {
	return &observableExtractor{
		extractor: p,

		name: name,
	}
}

func (p *observableExtractor) otelSetup() {
}

func (p *observableExtractor) Supports(contentType string) bool {
	return extractor.Supports(p.extractor, contentType)
}

func (p *observableExtractor) Extract(ctx context.Context, file extractor.File, options *extractor.ExtractOptions) (*extractor.Document, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "extract "+p.name)
	defer span.End()

	span.SetAttributes(
		attribute.String("document.type", file.ContentType),
		attribute.Int("document.size", len(file.Content)),
	)

	span.SetAttributes(EndUserAttrs(ctx)...)

	result, err := p.extractor.Extract(ctx, file, options)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	span.SetAttributes(attribute.Int("document.characters", len([]rune(result.Text))))

	return result, nil
}
