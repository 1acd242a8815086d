package openai

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) handleModels(w http.ResponseWriter, r *http.Request) {
	result := &ModelList{
		Object: "list",
	}

	for _, id := range h.SpeechIDs() {
		result.Models = append(result.Models, Model{
			Object: "model",

			ID:      id,
			OwnedBy: "narrator",
		})
	}

	writeJson(w, result)
}

func (h *Handler) handleModel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.Speech(id); err != nil || id == "" {
		h.writeError(w, r, http.StatusNotFound, errors.New("model not found"))
		return
	}

	writeJson(w, &Model{
		Object: "model",

		ID:      id,
		OwnedBy: "narrator",
	})
}
