package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/adrianliechti/narrator/server/api"
)

type DocumentService struct {
	Options []RequestOption
}

func NewDocumentService(opts ...RequestOption) DocumentService {
	return DocumentService{
		Options: opts,
	}
}

type Upload = api.UploadResponse

type DocumentRequest struct {
	Name   string
	Reader io.Reader
}

// New uploads a document and returns the text extracted from it.
func (r *DocumentService) New(ctx context.Context, input DocumentRequest, opts ...RequestOption) (*Upload, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	req, err := c.newUpload(ctx, "/api/upload", input)

	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	var result Upload

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *RequestConfig) newUpload(ctx context.Context, path string, input DocumentRequest) (*http.Request, error) {
	var data bytes.Buffer
	w := multipart.NewWriter(&data)

	file, err := w.CreateFormFile("file", input.Name)

	if err != nil {
		return nil, err
	}

	if _, err := io.Copy(file, input.Reader); err != nil {
		return nil, err
	}

	w.Close()

	return c.newRequest(ctx, http.MethodPost, path, &data, w.FormDataContentType())
}
