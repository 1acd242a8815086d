package kreuzberg

import (
	"net/http"
)

var SupportedExtensions = []string{
	".pdf",
}

var SupportedMimeTypes = []string{
	"application/pdf",
}

type Option func(*Client)

func WithClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}
