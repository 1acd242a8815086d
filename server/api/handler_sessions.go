package api

import (
	"bytes"
	"fmt"
	"log/slog"
	"mime"
	"net/http"

	"github.com/adrianliechti/narrator/pkg/voice"
	"github.com/adrianliechti/narrator/pkg/wizard"
)

type SessionTextRequest struct {
	Text string `json:"text"`
}

type SessionResponse struct {
	Success bool `json:"success"`

	wizard.Snapshot
}

func (h *Handler) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()
	s.UseCatalog(h.Voices.Load(r.Context()))

	slog.InfoContext(r.Context(), "session created", "session", s.ID, "sessions", h.sessions.Len())

	w.Header().Set(SessionHeader, s.ID)

	http.SetCookie(w, &http.Cookie{
		Name:  SessionCookie,
		Value: s.ID,

		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.Production(),
	})

	writeJsonStatus(w, http.StatusCreated, SessionResponse{
		Success:  true,
		Snapshot: s.Snapshot(),
	})
}

func (h *Handler) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)

	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSession(w, s)
}

func (h *Handler) handleSessionDelete(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)

	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.sessions.Delete(s.ID)

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSessionUpload(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)

	if err != nil {
		h.writeError(w, r, err)
		return
	}

	file, err := h.readFile(w, r)

	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if _, err := s.Upload(r.Context(), *file); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSession(w, s)
}

// handleSessionText edits the text in the edit step and starts over with pasted text otherwise.
func (h *Handler) handleSessionText(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)

	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req SessionTextRequest

	if err := readJson(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if _, ok := s.State().(wizard.Edit); ok {
		err = s.Edit(req.Text)
	} else {
		err = s.Paste(req.Text)
	}

	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSession(w, s)
}

func (h *Handler) handleSessionConfirm(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)

	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := s.Confirm(); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSession(w, s)
}

func (h *Handler) handleSessionReset(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)

	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := s.Reset(); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSession(w, s)
}

func (h *Handler) handleSessionVoices(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)

	if err != nil {
		h.writeError(w, r, err)
		return
	}

	voices := s.Voices()

	resp := VoicesResponse{
		Voices: voices,
	}

	if len(voices) > 0 {
		resp.Default = voices[0].ID
	}

	if v := s.Snapshot().Voice; v.VoiceID != "" {
		resp.Default = v.VoiceID
	}

	writeJson(w, resp)
}

func (h *Handler) handleSessionVoice(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)

	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var config voice.Config

	if err := readJson(r, &config); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := s.SetVoice(config); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSession(w, s)
}

func (h *Handler) handleSessionPreview(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)

	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req PreviewRequest

	if err := readJson(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := s.Preview(r.Context(), req.config())

	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeAudio(w, result)
}

func (h *Handler) handleSessionSynthesize(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)

	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := s.Generate(r.Context())

	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJson(w, synthesizeResponse(result))
}

func (h *Handler) handleSessionAudio(w http.ResponseWriter, r *http.Request) {
	h.serveAudio(w, r, "inline")
}

func (h *Handler) handleSessionDownload(w http.ResponseWriter, r *http.Request) {
	h.serveAudio(w, r, "attachment")
}

func (h *Handler) serveAudio(w http.ResponseWriter, r *http.Request, disposition string) {
	s, err := h.session(r)

	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, ok := s.Audio()

	if !ok {
		h.writeError(w, r, fmt.Errorf("no audio generated: %w", wizard.ErrInvalidStep))
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": result.FileName()}))

	http.ServeContent(w, r, result.FileName(), result.CreatedAt, bytes.NewReader(result.Content))
}

func writeSession(w http.ResponseWriter, s *wizard.Session) {
	writeJson(w, SessionResponse{
		Success:  true,
		Snapshot: s.Snapshot(),
	})
}
