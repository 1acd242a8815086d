package wizard

import (
	"errors"
	"strings"

	"github.com/adrianliechti/narrator/pkg/document"
	"github.com/adrianliechti/narrator/pkg/tts"
	"github.com/adrianliechti/narrator/pkg/voice"
)

type Step int

const (
	StepUpload Step = iota + 1
	StepEdit
	StepConfigure
	StepPlay
)

func (s Step) String() string {
	switch s {
	case StepUpload:
		return "upload"
	case StepEdit:
		return "edit"
	case StepConfigure:
		return "configure"
	case StepPlay:
		return "play"
	}

	return "unknown"
}

var (
	ErrEmptyText   = errors.New("text must not be empty")
	ErrNoAudio     = errors.New("no audio was generated")
	ErrInvalidStep = errors.New("operation not allowed in current step")
	ErrGenerating  = errors.New("audio generation already in progress")
)

// State is one of Upload, Edit, Configure, or Play. Each variant holds
// exactly the data its step needs, and transitions return the next
// variant without modifying the receiver.
type State interface {
	Step() Step

	state()
}

type Upload struct{}

type Edit struct {
	// Document is nil when the text was pasted.
	Document *document.Document

	Text string
}

type Configure struct {
	Document *document.Document

	Text  string
	Voice voice.Config
}

type Play struct {
	Document *document.Document

	Text  string
	Voice voice.Config

	Audio *tts.Result
}

func (Upload) Step() Step { return StepUpload }
func (Edit) Step() Step { return StepEdit }
func (Configure) Step() Step { return StepConfigure }
func (Play) Step() Step { return StepPlay }

func (Upload) state() {}
func (Edit) state() {}
func (Configure) state() {}
func (Play) state() {}

func Start() Upload {
	return Upload{}
}

// Extracted moves to editing once a document produced text.
func (s Upload) Extracted(doc document.Document, text string) (Edit, error) {
	if strings.TrimSpace(text) == "" {
		return Edit{}, ErrEmptyText
	}

	return Edit{
		Document: &doc,
		Text:     text,
	}, nil
}

// Paste skips the upload and starts editing the given text.
func (s Upload) Paste(text string) (Edit, error) {
	if strings.TrimSpace(text) == "" {
		return Edit{}, ErrEmptyText
	}

	return Edit{
		Text: text,
	}, nil
}

// Update replaces the edited text. Empty text is allowed while editing.
func (s Edit) Update(text string) Edit {
	s.Text = text
	return s
}

func (s Edit) Confirm(config voice.Config) (Configure, error) {
	if strings.TrimSpace(s.Text) == "" {
		return Configure{}, ErrEmptyText
	}

	return Configure{
		Document: s.Document,

		Text:  s.Text,
		Voice: config,
	}, nil
}

func (s Configure) WithVoice(config voice.Config) Configure {
	s.Voice = config
	return s
}

func (s Configure) Generated(audio *tts.Result) (Play, error) {
	if audio == nil || audio.Size == 0 {
		return Play{}, ErrNoAudio
	}

	return Play{
		Document: s.Document,

		Text:  s.Text,
		Voice: s.Voice,

		Audio: audio,
	}, nil
}
