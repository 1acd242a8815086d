package otel

import (
	"context"
	"time"

	"github.com/adrianliechti/narrator/pkg/provider"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

type Synthesizer interface {
	Observable
	provider.Synthesizer
}

type observableSynthesizer struct {
	name string

	synthesizer provider.Synthesizer

	requests metric.Int64Counter
	duration metric.Float64Histogram
}

func NewSynthesizer(name string, p provider.Synthesizer) Synthesizer {
	meter := otel.Meter(instrumentationName)

	requests, _ := meter.Int64Counter("narrator.synthesis.requests",
		metric.WithDescription("Number of synthesis requests sent to vendors"),
	)

	duration, _ := meter.Float64Histogram("narrator.synthesis.duration",
		metric.WithDescription("Vendor synthesis latency"),
		metric.WithUnit("s"),
	)

	return &observableSynthesizer{
		synthesizer: p,

		name: name,

		requests: requests,
		duration: duration,
	}
}

func (p *observableSynthesizer) otelSetup() {
}

func (p *observableSynthesizer) Synthesize(ctx context.Context, content string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "synthesize "+p.name)
	defer span.End()

	if options != nil {
		span.SetAttributes(attribute.String("synthesis.voice", options.Voice))
	}

	span.SetAttributes(attribute.Int("synthesis.characters", len([]rune(content))))
	span.SetAttributes(EndUserAttrs(ctx)...)

	start := time.Now()

	result, err := p.synthesizer.Synthesize(ctx, content, options)

	status := "ok"

	if err != nil {
		status = "error"

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	attrs := metric.WithAttributes(
		attribute.String("synthesizer", p.name),
		attribute.String("status", status),
	)

	if p.requests != nil {
		p.requests.Add(ctx, 1, attrs)
	}

	if p.duration != nil {
		p.duration.Record(ctx, time.Since(start).Seconds(), attrs)
	}

	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("synthesis.bytes", len(result.Content)))

	return result, nil
}
