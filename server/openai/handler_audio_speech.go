package openai

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/adrianliechti/narrator/pkg/apperror"
	"github.com/adrianliechti/narrator/pkg/voice"
)

func (h *Handler) handleAudioSpeech(w http.ResponseWriter, r *http.Request) {
	var req SpeechRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	if req.ResponseFormat != "" && req.ResponseFormat != voice.Format {
		h.writeError(w, r, http.StatusBadRequest, errors.New("unsupported response_format, only wav is available"))
		return
	}

	speech, err := h.Speech(req.Model)

	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	config := voice.DefaultConfig()

	if req.Voice != "" {
		config.VoiceID = req.Voice
	}

	if req.Speed != nil {
		config.Speed = speedLevel(*req.Speed)
	}

	result, err := speech.Synthesize(r.Context(), req.Input, config)

	if err != nil {
		h.writeError(w, r, apperror.From(err).Status, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Write(result.Content)
}

// speedLevel maps an OpenAI playback rate (1.0 is normal) onto the 0..9 speed scale.
func speedLevel(rate float32) int {
	level := int(math.Round(float64(rate-0.5) * 10))
	return voice.DefaultRange.Clamp(level)
}
