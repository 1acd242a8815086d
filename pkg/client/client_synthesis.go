package client

import (
	"context"
	"net/http"

	"github.com/adrianliechti/narrator/pkg/voice"
	"github.com/adrianliechti/narrator/server/api"
)

type SynthesisService struct {
	Options []RequestOption
}

func NewSynthesisService(opts ...RequestOption) SynthesisService {
	return SynthesisService{
		Options: opts,
	}
}

type Synthesis = api.SynthesizeResponse
type VoiceConfig = voice.Config

type SynthesizeRequest struct {
	Text  string
	Voice *VoiceConfig
}

func (r *SynthesisService) New(ctx context.Context, input SynthesizeRequest, opts ...RequestOption) (*Synthesis, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	body := api.SynthesizeRequest{
		Text:        input.Text,
		VoiceConfig: input.Voice,
	}

	var result Synthesis

	if err := c.doJson(ctx, http.MethodPost, "/api/tts", body, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Preview returns a short audio sample spoken with the given voice.
func (r *SynthesisService) Preview(ctx context.Context, input VoiceConfig, opts ...RequestOption) ([]byte, string, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	return c.doBytes(ctx, http.MethodPost, "/api/preview", previewRequest(input))
}

func previewRequest(config VoiceConfig) api.PreviewRequest {
	return api.PreviewRequest{
		VoiceID: config.VoiceID,

		Speed:  &config.Speed,
		Volume: &config.Volume,
	}
}
