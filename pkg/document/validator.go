package document

import (
	"fmt"
	"unicode/utf8"
)

type Reason string

const (
	ReasonSizeExceeded    Reason = "size_exceeded"
	ReasonUnsupportedType Reason = "unsupported_type"
	ReasonTextTooLong     Reason = "text_too_long"
	ReasonEmpty           Reason = "empty"
)

type ValidationError struct {
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type Validator struct {
	MaxFileSize   int64
	MaxTextLength int
}

func NewValidator(limits Limits) *Validator {
	if limits.MaxFileSize <= 0 {
		limits.MaxFileSize = MaxFileSize
	}

	if limits.MaxTextLength <= 0 {
		limits.MaxTextLength = MaxTextLength
	}

	return &Validator{
		MaxFileSize:   limits.MaxFileSize,
		MaxTextLength: limits.MaxTextLength,
	}
}

// Validate checks size and type of a candidate file before any extraction is attempted.
func (v *Validator) Validate(name string, size int64, contentType string) (Type, error) {
	if size > v.MaxFileSize {
		return Type{}, &ValidationError{
			Reason:  ReasonSizeExceeded,
			Message: fmt.Sprintf("file size must not exceed %dMB", v.MaxFileSize/1024/1024),
		}
	}

	t, ok := LookupType(contentType, name)

	if !ok {
		return Type{}, &ValidationError{
			Reason:  ReasonUnsupportedType,
			Message: fmt.Sprintf("unsupported file type %q, supported are PDF, TXT and Markdown", MediaType(contentType)),
		}
	}

	if !t.Implemented {
		return Type{}, &ValidationError{
			Reason:  ReasonUnsupportedType,
			Message: "Word documents are not supported yet, convert the file to PDF or plain text",
		}
	}

	return t, nil
}

// ValidateText checks the length of editable text in characters.
func (v *Validator) ValidateText(text string) error {
	if n := utf8.RuneCountInString(text); n > v.MaxTextLength {
		return &ValidationError{
			Reason:  ReasonTextTooLong,
			Message: fmt.Sprintf("text has %d characters, at most %d are allowed", n, v.MaxTextLength),
		}
	}

	return nil
}
