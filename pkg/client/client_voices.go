package client

import (
	"context"
	"net/http"

	"github.com/adrianliechti/narrator/pkg/voice"
	"github.com/adrianliechti/narrator/server/api"
)

type VoiceService struct {
	Options []RequestOption
}

func NewVoiceService(opts ...RequestOption) VoiceService {
	return VoiceService{
		Options: opts,
	}
}

type Voice = voice.Voice
type Voices = api.VoicesResponse

func (r *VoiceService) List(ctx context.Context, opts ...RequestOption) (*Voices, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	var result Voices

	if err := c.doJson(ctx, http.MethodGet, "/api/voices", nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
