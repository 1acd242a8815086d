package tts

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/adrianliechti/narrator/pkg/audio"
	"github.com/adrianliechti/narrator/pkg/document"
	"github.com/adrianliechti/narrator/pkg/provider"
	"github.com/adrianliechti/narrator/pkg/voice"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

// Client validates text, normalizes voice settings, and calls a vendor synthesizer.
type Client struct {
	synthesizer provider.Synthesizer
	normalizer  *voice.Normalizer

	maxLength int

	retries  int
	interval time.Duration
}

type Option func(*Client)

func WithMaxLength(n int) Option {
	return func(c *Client) {
		c.maxLength = n
	}
}

// WithRetries retries service-side and network failures up to n times with exponential backoff.
func WithRetries(n int, interval time.Duration) Option {
	return func(c *Client) {
		c.retries = n
		c.interval = interval
	}
}

func New(synthesizer provider.Synthesizer, normalizer *voice.Normalizer, options ...Option) *Client {
	c := &Client{
		synthesizer: synthesizer,
		normalizer:  normalizer,

		maxLength: document.MaxSynthesisLength,

		interval: 500 * time.Millisecond,
	}

	if c.normalizer == nil {
		c.normalizer = voice.NewNormalizer(nil, voice.DefaultRange, voice.DefaultRange)
	}

	for _, option := range options {
		option(c)
	}

	return c
}

func (c *Client) MaxLength() int {
	return c.maxLength
}

func (c *Client) Catalog() *voice.Catalog {
	return c.normalizer.Catalog()
}

// WithCatalog returns a client resolving voices against another catalog.
func (c *Client) WithCatalog(catalog *voice.Catalog) *Client {
	clone := *c
	clone.normalizer = c.normalizer.WithCatalog(catalog)

	return &clone
}

// Synthesize speaks text. The length limit applies to text as given, surrounding whitespace included.
func (c *Client) Synthesize(ctx context.Context, text string, config voice.Config) (*Result, error) {
	input := strings.TrimSpace(text)

	if input == "" {
		return nil, ErrEmptyText
	}

	if n := utf8.RuneCountInString(text); c.maxLength > 0 && n > c.maxLength {
		return nil, &TextTooLongError{
			Length: n,
			Limit:  c.maxLength,
		}
	}

	params := c.normalizer.Normalize(config)

	options := &provider.SynthesizeOptions{
		Voice: params.Voice,

		Speed:  &params.Speed,
		Volume: &params.Volume,

		Format: params.Format,
	}

	synthesis, err := c.synthesize(ctx, input, options)

	if err != nil {
		return nil, err
	}

	if len(synthesis.Content) == 0 {
		return nil, ErrEmptyAudio
	}

	contentType := synthesis.ContentType

	if contentType == "" {
		contentType = "audio/" + params.Format
	}

	return &Result{
		ID: uuid.NewString(),

		Content:     synthesis.Content,
		ContentType: contentType,

		Size:   len(synthesis.Content),
		Format: params.Format,

		Duration: audio.Duration(synthesis.Content),

		Text:  text,
		Voice: config,

		CreatedAt: time.Now().UTC(),
	}, nil
}

func (c *Client) synthesize(ctx context.Context, text string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	if c.retries <= 0 {
		result, err := c.synthesizer.Synthesize(ctx, text, options)
		return result, classify(err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.interval

	var result *provider.Synthesis

	op := func() error {
		var err error

		result, err = c.synthesizer.Synthesize(ctx, text, options)

		if err == nil {
			return nil
		}

		err = classify(err)

		var verr *VendorError

		if errors.As(err, &verr) && verr.Retryable() {
			slog.WarnContext(ctx, "synthesis failed, retrying", "voice", options.Voice, "error", err)
			return err
		}

		return backoff.Permanent(err)
	}

	if err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.retries)), ctx)); err != nil {
		return nil, err
	}

	return result, nil
}
