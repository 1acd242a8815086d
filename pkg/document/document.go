package document

import (
	"mime"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	TypePDF      = "application/pdf"
	TypeText     = "text/plain"
	TypeMarkdown = "text/markdown"

	TypeDoc  = "application/msword"
	TypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

type Type struct {
	ContentType string
	Extensions  []string

	// Implemented is false for formats that are declared but cannot be extracted yet.
	Implemented bool
}

var Types = []Type{
	{ContentType: TypePDF, Extensions: []string{".pdf"}, Implemented: true},
	{ContentType: TypeText, Extensions: []string{".txt", ".text"}, Implemented: true},
	{ContentType: TypeMarkdown, Extensions: []string{".md", ".markdown"}, Implemented: true},

	{ContentType: TypeDocx, Extensions: []string{".docx"}},
	{ContentType: TypeDoc, Extensions: []string{".doc"}},
}

// LookupType resolves the declared content type of a file, falling back to
// its extension when the declared type is missing or generic.
func LookupType(contentType, name string) (Type, bool) {
	contentType = MediaType(contentType)

	for _, t := range Types {
		if t.ContentType == contentType {
			return t, true
		}
	}

	if contentType != "" && contentType != "application/octet-stream" {
		return Type{}, false
	}

	ext := strings.ToLower(path.Ext(name))

	if ext == "" {
		return Type{}, false
	}

	for _, t := range Types {
		if slices.Contains(t.Extensions, ext) {
			return t, true
		}
	}

	return Type{}, false
}

// MediaType strips parameters such as charset from a content type.
func MediaType(contentType string) string {
	contentType = strings.TrimSpace(contentType)

	if mediatype, _, err := mime.ParseMediaType(contentType); err == nil {
		return mediatype
	}

	return strings.ToLower(contentType)
}

type Document struct {
	ID string `json:"id"`

	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`

	UploadedAt time.Time `json:"uploadedAt"`
}

func New(name string, size int64, contentType string) Document {
	return Document{
		ID: uuid.NewString(),

		Name: name,
		Size: size,
		Type: contentType,

		UploadedAt: time.Now().UTC(),
	}
}
