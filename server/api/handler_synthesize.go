package api

import (
	"net/http"

	"github.com/adrianliechti/narrator/pkg/tts"
	"github.com/adrianliechti/narrator/pkg/voice"
)

func (h *Handler) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var req SynthesizeRequest

	if err := readJson(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	config := voice.DefaultConfig()

	if req.VoiceConfig != nil {
		config = *req.VoiceConfig
	}

	speech := h.wizard.Speech().WithCatalog(h.Voices.Load(r.Context()))

	result, err := speech.Synthesize(r.Context(), req.Text, config)

	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJson(w, synthesizeResponse(result))
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest

	if err := readJson(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	speech := h.wizard.Speech().WithCatalog(h.Voices.Load(r.Context()))

	result, err := speech.Synthesize(r.Context(), voice.PreviewText, req.config())

	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeAudio(w, result)
}

func (req PreviewRequest) config() voice.Config {
	config := voice.DefaultConfig()

	if req.VoiceID != "" {
		config.VoiceID = req.VoiceID
	}

	if req.Speed != nil {
		config.Speed = *req.Speed
	}

	if req.Volume != nil {
		config.Volume = *req.Volume
	}

	return config
}

func synthesizeResponse(result *tts.Result) SynthesizeResponse {
	url := result.URL()

	return SynthesizeResponse{
		Success: true,

		ID: result.ID,

		AudioURL:    url,
		DownloadURL: url,

		FileName: result.FileName(),
		Format:   result.Format,
		Size:     result.Size,

		Duration: result.Duration.Seconds(),

		CreatedAt: result.CreatedAt,
	}
}

func writeAudio(w http.ResponseWriter, result *tts.Result) {
	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Cache-Control", "no-store")

	w.Write(result.Content)
}
