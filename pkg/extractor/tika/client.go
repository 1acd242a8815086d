package tika

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strings"

	"github.com/adrianliechti/narrator/pkg/extractor"
	"github.com/adrianliechti/narrator/pkg/provider"
	"github.com/adrianliechti/narrator/pkg/text"
)

var _ extractor.Provider = &Client{}
var _ extractor.Capability = &Client{}

// Client extracts PDF text through an Apache Tika server.
type Client struct {
	client *http.Client

	url string
}

type tikaResponse struct {
	Content string `json:"X-TIKA:content"`
}

func New(url string, options ...Option) (*Client, error) {
	if url == "" {
		return nil, errors.New("invalid url")
	}

	c := &Client{
		client: http.DefaultClient,

		url: url,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Client) Supports(contentType string) bool {
	return slices.Contains(SupportedMimeTypes, contentType)
}

func (c *Client) Extract(ctx context.Context, file extractor.File, options *extractor.ExtractOptions) (*extractor.Document, error) {
	if options == nil {
		options = new(extractor.ExtractOptions)
	}

	if !isSupported(file) {
		return nil, extractor.ErrUnsupported
	}

	u, _ := url.JoinPath(c.url, "/tika/text")
	req, _ := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(file.Content))
	req.Header.Set("Accept", "application/json")

	if file.ContentType != "" {
		req.Header.Set("Content-Type", file.ContentType)
	}

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, provider.NetworkError(ctx, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &extractor.ExtractionError{
			Err: provider.NewStatusError(resp),
		}
	}

	var response tikaResponse

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, &extractor.ExtractionError{
			Err: fmt.Errorf("invalid tika response: %w", err),
		}
	}

	content := text.Normalize(response.Content)

	if content == "" {
		return nil, &extractor.ExtractionError{
			Err: extractor.ErrNoText,
		}
	}

	return &extractor.Document{
		Text: content,
	}, nil
}

func isSupported(file extractor.File) bool {
	if file.ContentType != "" && file.ContentType != "application/octet-stream" {
		return slices.Contains(SupportedMimeTypes, file.ContentType)
	}

	if file.Name != "" {
		ext := strings.ToLower(path.Ext(file.Name))

		if slices.Contains(SupportedExtensions, ext) {
			return true
		}
	}

	return false
}
