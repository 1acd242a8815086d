package api

import (
	"net/http"
	"unicode/utf8"

	"github.com/adrianliechti/narrator/pkg/text"
)

func (h *Handler) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req TextRequest

	if err := readJson(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.wizard.Validator().ValidateText(req.Text); err != nil {
		h.writeError(w, r, err)
		return
	}

	result := text.Format(req.Text)

	writeJson(w, FormatResponse{
		Text:  result,
		Stats: text.Count(result),
	})
}

func (h *Handler) handleCount(w http.ResponseWriter, r *http.Request) {
	var req TextRequest

	if err := readJson(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJson(w, text.Count(req.Text))
}

func (h *Handler) handleSegment(w http.ResponseWriter, r *http.Request) {
	var req TextRequest

	if err := readJson(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	limit := req.Limit

	if limit <= 0 {
		limit = h.wizard.Speech().MaxLength()
	}

	result := SegmentResponse{
		Segments: make([]Segment, 0),
	}

	for _, s := range text.Segment(text.Speakable(req.Text), limit) {
		segment := Segment{
			Text:       s,
			Characters: utf8.RuneCountInString(s),
		}

		result.Segments = append(result.Segments, segment)
	}

	writeJson(w, result)
}
