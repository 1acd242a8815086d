package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var ErrNetwork = errors.New("network failure")

// StatusError is a non-success response from a vendor.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("vendor returned status %d", e.StatusCode)
	}

	return fmt.Sprintf("vendor returned status %d: %s", e.StatusCode, e.Message)
}

func NewStatusError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	return &StatusError{
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(string(data)),
	}
}

// NetworkError marks transport failures. Status errors and cancellation of ctx pass through unchanged.
func NetworkError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	var serr *StatusError

	if errors.As(err, &serr) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrNetwork, err)
}
