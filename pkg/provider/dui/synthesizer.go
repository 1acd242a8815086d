package dui

import (
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/adrianliechti/narrator/pkg/provider"

	"github.com/google/uuid"
)

var _ provider.Synthesizer = (*Synthesizer)(nil)

// Synthesizer talks to the DUI runtime, which answers a GET request with raw audio bytes.
type Synthesizer struct {
	*Config
}

func NewSynthesizer(url string, options ...Option) (*Synthesizer, error) {
	cfg := &Config{
		url: url,

		userAgent: DefaultUserAgent,

		client: http.DefaultClient,
	}

	if cfg.url == "" {
		cfg.url = DefaultURL
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

	u, err := url.Parse(s.url)

	if err != nil {
		return nil, err
	}

	format := options.Format

	if format == "" {
		format = "wav"
	}

	query := u.Query()
	query.Set("voiceId", options.Voice)
	query.Set("text", input)
	query.Set("audioType", format)

	if options.Speed != nil {
		query.Set("speed", strconv.Itoa(*options.Speed))
	}

	if options.Volume != nil {
		query.Set("volume", strconv.Itoa(*options.Volume))
	}

	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)

	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)

	if err != nil {
		return nil, provider.NetworkError(ctx, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, provider.NewStatusError(resp)
	}

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, provider.NetworkError(ctx, err)
	}

	return &provider.Synthesis{
		ID:    uuid.NewString(),
		Model: options.Voice,

		Content:     data,
		ContentType: contentType(resp.Header.Get("Content-Type"), format),
	}, nil
}

func contentType(header, format string) string {
	if mediatype, _, err := mime.ParseMediaType(header); err == nil && strings.HasPrefix(mediatype, "audio/") {
		return mediatype
	}

	return "audio/" + format
}
