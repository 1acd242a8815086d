package client

import (
	"net/http"
	"strings"
)

type RequestConfig struct {
	URL   string
	Token string

	Language string

	Client *http.Client
}

type RequestOption func(*RequestConfig)

func WithURL(url string) RequestOption {
	return func(c *RequestConfig) {
		c.URL = strings.TrimRight(url, "/")
	}
}

func WithToken(token string) RequestOption {
	return func(c *RequestConfig) {
		c.Token = token
	}
}

// WithLanguage sets the Accept-Language for localized error messages.
func WithLanguage(language string) RequestOption {
	return func(c *RequestConfig) {
		c.Language = language
	}
}

func WithClient(client *http.Client) RequestOption {
	return func(c *RequestConfig) {
		c.Client = client
	}
}
