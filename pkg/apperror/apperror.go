package apperror

import (
	"context"
	"errors"
	"net/http"

	"github.com/adrianliechti/narrator/pkg/auth"
	"github.com/adrianliechti/narrator/pkg/document"
	"github.com/adrianliechti/narrator/pkg/extractor"
	"github.com/adrianliechti/narrator/pkg/tts"
	"github.com/adrianliechti/narrator/pkg/wizard"
)

type Category string

const (
	CategoryBadRequest   Category = "bad_request"
	CategoryUnauthorized Category = "unauthorized"
	CategoryNotFound     Category = "not_found"

	CategoryFileTooLarge     Category = "file_too_large"
	CategoryUnsupportedType  Category = "unsupported_type"
	CategoryExtractionFailed Category = "extraction_failed"
	CategoryDecodeFailed     Category = "decode_failed"
	CategoryNoText           Category = "no_text_extracted"

	CategoryEmptyText        Category = "empty_text"
	CategoryTextTooLong      Category = "text_too_long"
	CategorySynthesisTooLong Category = "synthesis_text_too_long"

	CategoryServiceUnavailable Category = "service_unavailable"
	CategoryNetwork            Category = "network"
	CategoryEmptyAudio         Category = "empty_audio"
	CategorySynthesisFailed    Category = "synthesis_failed"

	CategoryInvalidStep Category = "invalid_step"
	CategoryGenerating  Category = "generating"

	CategoryInternal Category = "internal"
)

var ErrNotFound = errors.New("not found")

// Error is a failure with a user-facing category and HTTP status.
type Error struct {
	Category Category
	Status   int

	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Category)
	}

	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the same request may succeed later.
func (e *Error) Retryable() bool {
	return e.Category == CategoryServiceUnavailable || e.Category == CategoryNetwork || e.Category == CategoryEmptyAudio
}

func New(category Category, err error) *Error {
	return &Error{
		Category: category,
		Status:   statusCodes[category],

		Err: err,
	}
}

var statusCodes = map[Category]int{
	CategoryBadRequest:   http.StatusBadRequest,
	CategoryUnauthorized: http.StatusUnauthorized,
	CategoryNotFound:     http.StatusNotFound,

	CategoryFileTooLarge:     http.StatusBadRequest,
	CategoryUnsupportedType:  http.StatusBadRequest,
	CategoryExtractionFailed: http.StatusInternalServerError,
	CategoryDecodeFailed:     http.StatusBadRequest,
	CategoryNoText:           http.StatusBadRequest,

	CategoryEmptyText:        http.StatusBadRequest,
	CategoryTextTooLong:      http.StatusBadRequest,
	CategorySynthesisTooLong: http.StatusBadRequest,

	CategoryServiceUnavailable: http.StatusServiceUnavailable,
	CategoryNetwork:            http.StatusServiceUnavailable,
	CategoryEmptyAudio:         http.StatusInternalServerError,
	CategorySynthesisFailed:    http.StatusInternalServerError,

	CategoryInvalidStep: http.StatusConflict,
	CategoryGenerating:  http.StatusConflict,

	CategoryInternal: http.StatusInternalServerError,
}

// From classifies any error returned by the domain packages.
func From(err error) *Error {
	if err == nil {
		return nil
	}

	var aerr *Error

	if errors.As(err, &aerr) {
		return aerr
	}

	var verr *document.ValidationError

	if errors.As(err, &verr) {
		switch verr.Reason {
		case document.ReasonSizeExceeded:
			return New(CategoryFileTooLarge, err)
		case document.ReasonUnsupportedType:
			return New(CategoryUnsupportedType, err)
		case document.ReasonTextTooLong:
			return New(CategoryTextTooLong, err)
		}

		return New(CategoryBadRequest, err)
	}

	var derr *extractor.DecodeError

	if errors.As(err, &derr) {
		return New(CategoryDecodeFailed, err)
	}

	var eerr *extractor.ExtractionError

	if errors.As(err, &eerr) {
		if errors.Is(err, extractor.ErrNoText) {
			return New(CategoryNoText, err)
		}

		return New(CategoryExtractionFailed, err)
	}

	if errors.Is(err, extractor.ErrUnsupported) {
		return New(CategoryUnsupportedType, err)
	}

	var terr *tts.TextTooLongError

	if errors.As(err, &terr) {
		return New(CategorySynthesisTooLong, err)
	}

	var vendorErr *tts.VendorError

	if errors.As(err, &vendorErr) {
		switch vendorErr.Category {
		case tts.CategoryServiceUnavailable:
			return New(CategoryServiceUnavailable, err)
		case tts.CategoryNetwork:
			return New(CategoryNetwork, err)
		case tts.CategoryBadInput:
			return New(CategorySynthesisTooLong, err)
		}

		return New(CategorySynthesisFailed, err)
	}

	switch {
	case errors.Is(err, tts.ErrEmptyText), errors.Is(err, wizard.ErrEmptyText):
		return New(CategoryEmptyText, err)

	case errors.Is(err, tts.ErrEmptyAudio), errors.Is(err, wizard.ErrNoAudio):
		return New(CategoryEmptyAudio, err)

	case errors.Is(err, wizard.ErrInvalidStep):
		return New(CategoryInvalidStep, err)

	case errors.Is(err, wizard.ErrGenerating):
		return New(CategoryGenerating, err)

	case errors.Is(err, ErrNotFound):
		return New(CategoryNotFound, err)

	case errors.Is(err, auth.ErrUnauthorized):
		return New(CategoryUnauthorized, err)

	case errors.Is(err, context.DeadlineExceeded):
		return New(CategoryServiceUnavailable, err)
	}

	return New(CategoryInternal, err)
}
