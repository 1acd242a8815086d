package google

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/adrianliechti/narrator/pkg/audio"
	"github.com/adrianliechti/narrator/pkg/provider"

	"github.com/google/uuid"
	"google.golang.org/genai"
)

var _ provider.Synthesizer = (*Synthesizer)(nil)

// Synthesizer uses Gemini speech generation, which returns raw 16-bit PCM.
type Synthesizer struct {
	*Config
}

func NewSynthesizer(model string, options ...Option) (*Synthesizer, error) {
	cfg := &Config{
		model: model,
	}

	if cfg.model == "" {
		cfg.model = "gemini-2.5-flash-preview-tts"
	}

	for _, option := range options {
		option(cfg)
	}

	return &Synthesizer{
		Config: cfg,
	}, nil
}

func (s *Synthesizer) Synthesize(ctx context.Context, input string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	if options == nil {
		options = new(provider.SynthesizeOptions)
	}

	client, err := s.newClient(ctx)

	if err != nil {
		return nil, err
	}

	voice := options.Voice

	if voice == "" {
		voice = "Kore"
	}

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},

		SpeechConfig: &genai.SpeechConfig{
			LanguageCode: s.language,

			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: voice,
				},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, s.model, genai.Text(input), config)

	if err != nil {
		return nil, provider.NetworkError(ctx, convertError(err))
	}

	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}

		for _, p := range c.Content.Parts {
			if p.InlineData == nil || len(p.InlineData.Data) == 0 {
				continue
			}

			data, err := audio.EncodeWAV(p.InlineData.Data, sampleRate(p.InlineData.MIMEType), 1, 16)

			if err != nil {
				return nil, err
			}

			return &provider.Synthesis{
				ID:    uuid.NewString(),
				Model: s.model,

				Content:     data,
				ContentType: "audio/wav",
			}, nil
		}
	}

	return &provider.Synthesis{
		ID:    uuid.NewString(),
		Model: s.model,

		ContentType: "audio/wav",
	}, nil
}

// sampleRate reads the rate parameter of a mime type like "audio/L16;codec=pcm;rate=24000".
func sampleRate(mimeType string) int {
	for param := range strings.SplitSeq(mimeType, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")

		if !ok || key != "rate" {
			continue
		}

		if rate, err := strconv.Atoi(value); err == nil && rate > 0 {
			return rate
		}
	}

	return 24000
}

func convertError(err error) error {
	var apierr genai.APIError

	if errors.As(err, &apierr) {
		return &provider.StatusError{
			StatusCode: apierr.Code,
			Message:    apierr.Message,
		}
	}

	var apierrp *genai.APIError

	if errors.As(err, &apierrp) {
		return &provider.StatusError{
			StatusCode: apierrp.Code,
			Message:    apierrp.Message,
		}
	}

	return err
}
