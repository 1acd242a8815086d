package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/adrianliechti/narrator/server/api"
)

// Error is a failed API call, carrying the server's error category and localized message.
type Error struct {
	StatusCode int

	Category string
	Message  string

	Retryable bool
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}

	return fmt.Sprintf("%s (%s)", e.Message, e.Category)
}

func (c *RequestConfig) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.URL+path, body)

	if err != nil {
		return nil, err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	if c.Language != "" {
		req.Header.Set("Accept-Language", c.Language)
	}

	return req, nil
}

func (c *RequestConfig) do(req *http.Request) (*http.Response, error) {
	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer resp.Body.Close()

	result := &Error{
		StatusCode: resp.StatusCode,
	}

	var body api.ErrorResponse

	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		result.Category = body.Error
		result.Message = body.Message
		result.Retryable = body.Retryable
	}

	return nil, result
}

func (c *RequestConfig) doJson(ctx context.Context, method, path string, input, output any) error {
	var body io.Reader
	var contentType string

	if input != nil {
		data, err := json.Marshal(input)

		if err != nil {
			return err
		}

		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, body, contentType)

	if err != nil {
		return err
	}

	resp, err := c.do(req)

	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if output == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(output)
}

func (c *RequestConfig) doBytes(ctx context.Context, method, path string, input any) ([]byte, string, error) {
	var body io.Reader
	var contentType string

	if input != nil {
		data, err := json.Marshal(input)

		if err != nil {
			return nil, "", err
		}

		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, body, contentType)

	if err != nil {
		return nil, "", err
	}

	resp, err := c.do(req)

	if err != nil {
		return nil, "", err
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, "", err
	}

	return data, resp.Header.Get("Content-Type"), nil
}
