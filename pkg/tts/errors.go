package tts

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/adrianliechti/narrator/pkg/provider"
)

var (
	ErrEmptyText  = errors.New("text is empty")
	ErrEmptyAudio = errors.New("vendor returned empty audio")
)

// TextTooLongError is returned before any vendor call when the text exceeds the per-request limit.
type TextTooLongError struct {
	Length int
	Limit  int
}

func (e *TextTooLongError) Error() string {
	return fmt.Sprintf("text has %d characters, at most %d can be synthesized at once", e.Length, e.Limit)
}

type Category string

const (
	CategoryServiceUnavailable Category = "service_unavailable"
	CategoryNetwork            Category = "network"
	CategoryBadInput           Category = "bad_input"
	CategoryFailed             Category = "failed"
)

// VendorError classifies a failed vendor call.
type VendorError struct {
	Category   Category
	StatusCode int

	Err error
}

func (e *VendorError) Error() string {
	return fmt.Sprintf("synthesis failed (%s): %v", e.Category, e.Err)
}

func (e *VendorError) Unwrap() error {
	return e.Err
}

// Retryable reports whether trying again later may succeed.
func (e *VendorError) Retryable() bool {
	return e.Category == CategoryServiceUnavailable || e.Category == CategoryNetwork
}

func classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var verr *VendorError

	if errors.As(err, &verr) {
		return err
	}

	var serr *provider.StatusError

	if errors.As(err, &serr) {
		return &VendorError{
			Category:   statusCategory(serr.StatusCode),
			StatusCode: serr.StatusCode,

			Err: err,
		}
	}

	if errors.Is(err, provider.ErrNetwork) {
		return &VendorError{
			Category: CategoryNetwork,
			Err:      err,
		}
	}

	return &VendorError{
		Category: CategoryFailed,
		Err:      err,
	}
}

func statusCategory(code int) Category {
	switch {
	case code == http.StatusBadRequest,
		code == http.StatusRequestEntityTooLarge,
		code == http.StatusRequestURITooLong,
		code == http.StatusUnprocessableEntity:
		return CategoryBadInput

	case code == http.StatusRequestTimeout,
		code == http.StatusTooManyRequests,
		code >= 500:
		return CategoryServiceUnavailable
	}

	return CategoryFailed
}
