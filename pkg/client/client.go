package client

import (
	"net/http"
)

type Client struct {
	Voices    VoiceService
	Syntheses SynthesisService

	Documents DocumentService
	Segments  SegmentService

	Sessions SessionService
}

func New(url string, opts ...RequestOption) *Client {
	opts = append(opts, WithURL(url))

	return &Client{
		Voices:    NewVoiceService(opts...),
		Syntheses: NewSynthesisService(opts...),

		Documents: NewDocumentService(opts...),
		Segments:  NewSegmentService(opts...),

		Sessions: NewSessionService(opts...),
	}
}

func newRequestConfig(opts ...RequestOption) *RequestConfig {
	c := &RequestConfig{
		Client: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func Ptr[T any](v T) *T {
	return &v
}
