package tts

import (
	"time"

	"github.com/adrianliechti/narrator/pkg/audio"
	"github.com/adrianliechti/narrator/pkg/voice"
)

// Result is one synthesized clip. It is never mutated after creation.
type Result struct {
	ID string `json:"id"`

	Content     []byte `json:"-"`
	ContentType string `json:"contentType"`

	Size   int    `json:"size"`
	Format string `json:"format"`

	Duration time.Duration `json:"duration"`

	Text  string       `json:"text"`
	Voice voice.Config `json:"voice"`

	CreatedAt time.Time `json:"createdAt"`
}

func (r *Result) FileName() string {
	return "audio_" + r.ID + "." + r.Format
}

// URL returns the clip as a self-contained data URL.
func (r *Result) URL() string {
	return audio.DataURL(r.Content, r.ContentType)
}
