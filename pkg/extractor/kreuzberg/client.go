package kreuzberg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path"
	"slices"
	"strings"

	"github.com/adrianliechti/narrator/pkg/extractor"
	"github.com/adrianliechti/narrator/pkg/provider"

	"github.com/google/uuid"
)

var _ extractor.Provider = &Client{}
var _ extractor.Capability = &Client{}

// Client extracts PDF text through a Kreuzberg server, which also handles OCR.
type Client struct {
	client *http.Client

	url   string
	token string
}

type extractionResult struct {
	Content  string `json:"content"`
	MimeType string `json:"mime_type"`
}

func New(url string, options ...Option) (*Client, error) {
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

	var body bytes.Buffer

	w := multipart.NewWriter(&body)

	if file.ContentType == "" {
		file.ContentType = "application/pdf"
	}

	if file.Name == "" {
		file.Name = uuid.NewString() + ".pdf"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", multipart.FileContentDisposition("files", file.Name))
	h.Set("Content-Type", file.ContentType)

	f, err := w.CreatePart(h)

	if err != nil {
		return nil, err
	}

	if _, err := f.Write(file.Content); err != nil {
		return nil, err
	}

	w.Close()

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.url, "/")+"/extract", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
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

	var result []extractionResult

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &extractor.ExtractionError{
			Err: fmt.Errorf("invalid kreuzberg response: %w", err),
		}
	}

	if len(result) == 0 || strings.TrimSpace(result[0].Content) == "" {
		return nil, &extractor.ExtractionError{
			Err: extractor.ErrNoText,
		}
	}

	return &extractor.Document{
		Text: strings.TrimSpace(result[0].Content),
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
