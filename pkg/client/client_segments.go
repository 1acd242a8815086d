package client

import (
	"context"
	"net/http"

	"github.com/adrianliechti/narrator/pkg/text"
	"github.com/adrianliechti/narrator/server/api"
)

type SegmentService struct {
	Options []RequestOption
}

func NewSegmentService(opts ...RequestOption) SegmentService {
	return SegmentService{
		Options: opts,
	}
}

type Segment = api.Segment
type Stats = text.Stats

type SegmentRequest struct {
	Text string

	// Limit is the maximum segment length in characters, the server's synthesis limit when zero.
	Limit int
}

func (r *SegmentService) New(ctx context.Context, input SegmentRequest, opts ...RequestOption) ([]Segment, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	var result api.SegmentResponse

	if err := c.doJson(ctx, http.MethodPost, "/api/text/segment", api.TextRequest{Text: input.Text, Limit: input.Limit}, &result); err != nil {
		return nil, err
	}

	return result.Segments, nil
}

// Format tidies whitespace the way the editor's format action does.
func (r *SegmentService) Format(ctx context.Context, input string, opts ...RequestOption) (string, *Stats, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	var result api.FormatResponse

	if err := c.doJson(ctx, http.MethodPost, "/api/text/format", api.TextRequest{Text: input}, &result); err != nil {
		return "", nil, err
	}

	return result.Text, &result.Stats, nil
}

func (r *SegmentService) Count(ctx context.Context, input string, opts ...RequestOption) (*Stats, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	var result Stats

	if err := c.doJson(ctx, http.MethodPost, "/api/text/count", api.TextRequest{Text: input}, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
