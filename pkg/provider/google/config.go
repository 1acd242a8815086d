package google

import (
	"context"
	"net/http"

	"google.golang.org/genai"
)

type Config struct {
	url   string
	token string

	model    string
	language string

	client *http.Client
}

type Option func(*Config)

func WithClient(client *http.Client) Option {
	return func(c *Config) {
		c.client = client
	}
}

func WithToken(token string) Option {
	return func(c *Config) {
		c.token = token
	}
}

// WithURL points the client at a Gemini API compatible endpoint instead of the public one.
func WithURL(url string) Option {
	return func(c *Config) {
		c.url = url
	}
}

// WithLanguage pins the speech language (BCP-47, e.g. "cmn-CN") instead of letting the model detect it.
func WithLanguage(language string) Option {
	return func(c *Config) {
		c.language = language
	}
}

func (c *Config) newClient(ctx context.Context) (*genai.Client, error) {
	config := &genai.ClientConfig{
		APIKey:  c.token,
		Backend: genai.BackendGeminiAPI,

		HTTPClient: c.client,
	}

	if c.url != "" {
		config.HTTPOptions.BaseURL = c.url
	}

	return genai.NewClient(ctx, config)
}
