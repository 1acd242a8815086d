package openai

import (
	"errors"

	"github.com/adrianliechti/narrator/pkg/provider"

	"github.com/openai/openai-go/v3"
)

func convertError(err error) error {
	var apierr *openai.Error

	if errors.As(err, &apierr) {
		return &provider.StatusError{
			StatusCode: apierr.StatusCode,
			Message:    apierr.Message,
		}
	}

	return err
}

// speed maps the 0..9 speed scale onto the 0.5x..1.4x playback rate accepted by the API.
func speed(value *int) float64 {
	if value == nil {
		return 1
	}

	return 0.5 + float64(*value)*0.1
}
