package api

import (
	"log/slog"
	"net/http"
)

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, err := h.readFile(w, r)

	if err != nil {
		h.writeError(w, r, err)
		return
	}

	doc, text, err := h.wizard.Load(r.Context(), *file)

	if err != nil {
		h.writeError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "document extracted", "document", doc.ID, "name", doc.Name, "type", doc.Type, "size", doc.Size)

	writeJson(w, UploadResponse{
		Success: true,

		FileData: doc,
		Text:     text,
	})
}
