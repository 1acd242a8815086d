package extractor

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupported = errors.New("unsupported type")

	ErrNoText = errors.New("document contains no extractable text")
)

// ExtractionError means the document could not be parsed, or parsed to nothing.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// DecodeError means text content is not valid UTF-8.
type DecodeError struct {
	Offset int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid utf-8 at byte %d", e.Offset)
}

type UnsupportedFormatError struct {
	ContentType string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("no extractor for %q", e.ContentType)
}

func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupported
}
