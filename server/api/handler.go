package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/adrianliechti/narrator/config"
	"github.com/adrianliechti/narrator/pkg/apperror"
	"github.com/adrianliechti/narrator/pkg/auth"
	"github.com/adrianliechti/narrator/pkg/document"
	"github.com/adrianliechti/narrator/pkg/session"
	"github.com/adrianliechti/narrator/pkg/wizard"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	*config.Config

	wizard   *wizard.Wizard
	sessions *session.Store
}

func New(cfg *config.Config) (*Handler, error) {
	extractor, err := cfg.Extractor("")

	if err != nil {
		return nil, err
	}

	speech, err := cfg.Speech("")

	if err != nil {
		return nil, err
	}

	w := wizard.New(document.NewValidator(cfg.Limits), extractor, speech)

	h := &Handler{
		Config: cfg,

		wizard:   w,
		sessions: session.New(w, cfg.SessionSize, cfg.SessionTTL),
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Use(h.Authenticate)

	r.Get("/voices", h.handleVoices)
	r.Post("/preview", h.handlePreview)

	r.Post("/upload", h.handleUpload)
	r.Post("/tts", h.handleSynthesize)

	r.Post("/text/format", h.handleFormat)
	r.Post("/text/count", h.handleCount)
	r.Post("/text/segment", h.handleSegment)

	r.Post("/sessions", h.handleSessionCreate)

	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/", h.handleSessionGet)
		r.Delete("/", h.handleSessionDelete)

		r.Post("/upload", h.handleSessionUpload)
		r.Post("/text", h.handleSessionText)
		r.Post("/confirm", h.handleSessionConfirm)
		r.Post("/reset", h.handleSessionReset)

		r.Get("/voices", h.handleSessionVoices)
		r.Put("/voice", h.handleSessionVoice)
		r.Post("/preview", h.handleSessionPreview)

		r.Post("/synthesize", h.handleSessionSynthesize)

		r.Get("/audio", h.handleSessionAudio)
		r.Get("/audio/download", h.handleSessionDownload)
	})
}

func writeJson(w http.ResponseWriter, v any) {
	writeJsonStatus(w, http.StatusOK, v)
}

func writeJsonStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	aerr := apperror.From(err)

	if aerr.Status >= 500 {
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "category", aerr.Category, "error", err)
	} else {
		slog.WarnContext(r.Context(), "request rejected", "path", r.URL.Path, "category", aerr.Category, "error", err)
	}

	resp := ErrorResponse{
		Error:   string(aerr.Category),
		Message: aerr.Message(apperror.Language(r.Header.Get("Accept-Language"))),

		Retryable: aerr.Retryable(),
	}

	if !h.Production() {
		resp.Details = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(aerr.Status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(resp)
}

// Authenticate admits requests accepted by any configured authorizer.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(h.Authorizers) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		var result error

		for _, a := range h.Authorizers {
			ctx, err := a.Authenticate(r.Context(), r)

			if err == nil {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			result = errors.Join(result, err)
		}

		h.writeError(w, r, fmt.Errorf("%w: %w", auth.ErrUnauthorized, result))
	})
}
