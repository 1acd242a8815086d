package openai

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/adrianliechti/narrator/config"
	"github.com/adrianliechti/narrator/pkg/apperror"

	"github.com/go-chi/chi/v5"
)

// Handler serves the speech part of the OpenAI API on top of the configured synthesizers.
type Handler struct {
	*config.Config
}

func New(cfg *config.Config) (*Handler, error) {
	h := &Handler{
		Config: cfg,
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Get("/models", h.handleModels)
	r.Get("/models/{id}", h.handleModel)

	r.Post("/audio/speech", h.handleAudioSpeech)
}

func writeJson(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}

// writeError reports request errors as-is; classified failures get the localized
// message, with the underlying error attached outside production.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, code int, err error) {
	errorType := "invalid_request_error"

	if code >= 500 {
		errorType = "internal_server_error"
	}

	resp := ErrorResponse{
		Error: Error{
			Type:    errorType,
			Message: err.Error(),
		},
	}

	if aerr := apperror.From(err); aerr.Category != apperror.CategoryInternal || code >= 500 {
		if aerr.Category != apperror.CategoryInternal {
			resp.Error.Code = string(aerr.Category)
		}

		resp.Error.Message = aerr.Message(apperror.Language(r.Header.Get("Accept-Language")))

		if !h.Production() {
			resp.Error.Message += " (" + err.Error() + ")"
		}
	}

	if code >= 500 {
		slog.ErrorContext(r.Context(), "speech request failed", "path", r.URL.Path, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(resp)
}
