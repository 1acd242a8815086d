package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/adrianliechti/narrator/pkg/apperror"
	"github.com/adrianliechti/narrator/pkg/document"
	"github.com/adrianliechti/narrator/pkg/extractor"
	"github.com/adrianliechti/narrator/pkg/wizard"

	"github.com/go-chi/chi/v5"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "narrator_session"
)

// multipart framing on top of the file itself
const uploadOverhead = 1 << 20

var errNoFile = &document.ValidationError{
	Reason:  document.ReasonEmpty,
	Message: "no file uploaded",
}

func errBadRequest(err error) error {
	return apperror.New(apperror.CategoryBadRequest, err)
}

func readJson(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errBadRequest(fmt.Errorf("invalid request body: %w", err))
	}

	return nil
}

func (h *Handler) readFile(w http.ResponseWriter, r *http.Request) (*extractor.File, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Limits.MaxFileSize+uploadOverhead)

	file, header, err := r.FormFile("file")

	switch {
	case err == nil:
		defer file.Close()

		data, err := io.ReadAll(file)

		if err != nil {
			return nil, sizeError(err)
		}

		return &extractor.File{
			Name: header.Filename,

			Content:     data,
			ContentType: header.Header.Get("Content-Type"),
		}, nil

	case errors.Is(err, http.ErrMissingFile):
		return nil, errNoFile

	case !errors.Is(err, http.ErrNotMultipart):
		if serr := sizeError(err); serr != err {
			return nil, serr
		}

		return nil, errBadRequest(err)
	}

	contentType := r.Header.Get("Content-Type")
	contentDisposition := r.Header.Get("Content-Disposition")

	_, params, _ := mime.ParseMediaType(contentDisposition)

	filename := params["filename*"]
	filename = strings.TrimPrefix(filename, "UTF-8''")
	filename = strings.TrimPrefix(filename, "utf-8''")

	if filename == "" {
		filename = params["filename"]
	}

	data, err := io.ReadAll(r.Body)

	if err != nil {
		return nil, sizeError(err)
	}

	if len(data) == 0 {
		return nil, errNoFile
	}

	return &extractor.File{
		Name: filename,

		Content:     data,
		ContentType: contentType,
	}, nil
}

func sizeError(err error) error {
	var maxErr *http.MaxBytesError

	if errors.As(err, &maxErr) {
		return &document.ValidationError{
			Reason:  document.ReasonSizeExceeded,
			Message: fmt.Sprintf("file size must not exceed %dMB", (maxErr.Limit-uploadOverhead)/1024/1024),
		}
	}

	return err
}

func sessionID(r *http.Request) string {
	if id := chi.URLParam(r, "id"); id != "" && id != "current" {
		return id
	}

	if id := r.Header.Get(SessionHeader); id != "" {
		return id
	}

	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}

	return ""
}

func (h *Handler) session(r *http.Request) (*wizard.Session, error) {
	id := sessionID(r)

	if id == "" {
		return nil, apperror.ErrNotFound
	}

	s, ok := h.sessions.Get(id)

	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, apperror.ErrNotFound)
	}

	return s, nil
}
