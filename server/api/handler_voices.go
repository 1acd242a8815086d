package api

import (
	"net/http"
)

func (h *Handler) handleVoices(w http.ResponseWriter, r *http.Request) {
	catalog := h.wizard.Speech().WithCatalog(h.Voices.Load(r.Context())).Catalog()

	writeJson(w, VoicesResponse{
		Voices:  catalog.Voices(),
		Default: catalog.Default().ID,
	})
}
