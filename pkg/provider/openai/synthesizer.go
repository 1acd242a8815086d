package openai

import (
	"context"
	"io"

	"github.com/adrianliechti/narrator/pkg/provider"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
)

var _ provider.Synthesizer = (*Synthesizer)(nil)

type Synthesizer struct {
	*Config
	speech openai.AudioSpeechService
}

func NewSynthesizer(url, model string, options ...Option) (*Synthesizer, error) {
	cfg := &Config{
		url:   url,
		model: model,
	}

	if cfg.model == "" {
		cfg.model = "gpt-4o-mini-tts"
	}

	for _, option := range options {
		option(cfg)
	}

	return &Synthesizer{
		Config: cfg,
		speech: openai.NewAudioSpeechService(cfg.Options()...),
	}, nil
}

func (s *Synthesizer) Synthesize(ctx context.Context, content string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	if options == nil {
		options = new(provider.SynthesizeOptions)
	}

	voice := options.Voice

	if voice == "" {
		voice = "alloy"
	}

	result, err := s.speech.New(ctx, openai.AudioSpeechNewParams{
		Model: s.model,
		Input: content,

		Voice: openai.AudioSpeechNewParamsVoiceUnion{OfString: openai.String(voice)},
		Speed: openai.Float(speed(options.Speed)),

		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatWAV,
	})

	if err != nil {
		return nil, provider.NetworkError(ctx, convertError(err))
	}

	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)

	if err != nil {
		return nil, provider.NetworkError(ctx, err)
	}

	return &provider.Synthesis{
		ID:    uuid.NewString(),
		Model: s.model,

		Content:     data,
		ContentType: "audio/wav",
	}, nil
}
