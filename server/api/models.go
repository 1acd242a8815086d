package api

import (
	"time"

	"github.com/adrianliechti/narrator/pkg/document"
	"github.com/adrianliechti/narrator/pkg/text"
	"github.com/adrianliechti/narrator/pkg/voice"
)

type ErrorResponse struct {
	Success bool `json:"success"`

	Error   string `json:"error"`
	Message string `json:"message"`

	Retryable bool `json:"retryable,omitempty"`

	Details string `json:"details,omitempty"`
}

type UploadResponse struct {
	Success bool `json:"success"`

	FileData *document.Document `json:"fileData"`
	Text     string             `json:"text"`
}

type SynthesizeRequest struct {
	Text        string        `json:"text"`
	VoiceConfig *voice.Config `json:"voiceConfig"`
}

type SynthesizeResponse struct {
	Success bool `json:"success"`

	ID string `json:"id"`

	AudioURL    string `json:"audioUrl"`
	DownloadURL string `json:"downloadUrl"`

	FileName string `json:"fileName"`
	Format   string `json:"format"`
	Size     int    `json:"size"`

	// Duration in seconds, 0 when unknown.
	Duration float64 `json:"duration"`

	CreatedAt time.Time `json:"createdAt"`
}

type PreviewRequest struct {
	VoiceID string `json:"voiceId"`

	Speed  *int `json:"speed,omitempty"`
	Volume *int `json:"volume,omitempty"`
}

type VoicesResponse struct {
	Voices  []voice.Voice `json:"voices"`
	Default string        `json:"default"`
}

type TextRequest struct {
	Text string `json:"text"`

	Limit int `json:"limit,omitempty"`
}

type FormatResponse struct {
	Text string `json:"text"`

	Stats text.Stats `json:"stats"`
}

type SegmentResponse struct {
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Text string `json:"text"`

	Characters int `json:"characters"`
}
