package wizard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/adrianliechti/narrator/pkg/document"
	"github.com/adrianliechti/narrator/pkg/extractor"
	"github.com/adrianliechti/narrator/pkg/text"
	"github.com/adrianliechti/narrator/pkg/tts"
	"github.com/adrianliechti/narrator/pkg/voice"
)

// Session is one user's pass through upload, edit, configure, and play.
// A failed operation leaves the session in the step it was in.
type Session struct {
	ID string

	wizard *Wizard
	speech *tts.Client

	mu sync.Mutex

	state State
	voice voice.Config

	generating bool
}

type Snapshot struct {
	ID string `json:"id"`

	Step     Step   `json:"step"`
	StepName string `json:"stepName"`

	Document *document.Document `json:"document,omitempty"`

	Text  string       `json:"text"`
	Voice voice.Config `json:"voice"`

	Audio *tts.Result `json:"audio,omitempty"`

	Generating bool `json:"generating"`
}

func defaultVoice(speech *tts.Client) voice.Config {
	config := voice.DefaultConfig()

	if speech != nil {
		config.VoiceID = speech.Catalog().Default().ID
	}

	return config
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := Snapshot{
		ID: s.ID,

		Step:     s.state.Step(),
		StepName: s.state.Step().String(),

		Voice: s.voice,

		Generating: s.generating,
	}

	switch state := s.state.(type) {
	case Edit:
		snapshot.Document = state.Document
		snapshot.Text = state.Text

	case Configure:
		snapshot.Document = state.Document
		snapshot.Text = state.Text

	case Play:
		snapshot.Document = state.Document
		snapshot.Text = state.Text
		snapshot.Audio = state.Audio
	}

	return snapshot
}

// Upload validates and extracts a file, then restarts the session at the edit step.
func (s *Session) Upload(ctx context.Context, file extractor.File) (*document.Document, error) {
	if err := s.idle(); err != nil {
		return nil, err
	}

	doc, content, err := s.wizard.Load(ctx, file)

	if err != nil {
		slog.WarnContext(ctx, "upload rejected", "session", s.ID, "document", file.Name, "error", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generating {
		return nil, ErrGenerating
	}

	next, err := Start().Extracted(*doc, content)

	if err != nil {
		return nil, &extractor.ExtractionError{Err: extractor.ErrNoText}
	}

	s.state = next

	return doc, nil
}

// Paste restarts the session at the edit step with text typed or pasted by the user.
func (s *Session) Paste(text string) error {
	if err := s.wizard.validator.ValidateText(text); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generating {
		return ErrGenerating
	}

	next, err := Start().Paste(text)

	if err != nil {
		return err
	}

	s.state = next

	return nil
}

// Edit replaces the text while in the edit step.
func (s *Session) Edit(text string) error {
	if err := s.wizard.validator.ValidateText(text); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.state.(Edit)

	if !ok {
		return ErrInvalidStep
	}

	s.state = state.Update(text)

	return nil
}

func (s *Session) Confirm() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.state.(Edit)

	if !ok {
		return ErrInvalidStep
	}

	next, err := state.Confirm(s.voice)

	if err != nil {
		return err
	}

	s.state = next

	return nil
}

func (s *Session) SetVoice(config voice.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.state.(Configure)

	if !ok {
		return ErrInvalidStep
	}

	if s.generating {
		return ErrGenerating
	}

	s.voice = config
	s.state = state.WithVoice(config)

	return nil
}

// Generate synthesizes the confirmed text. Only one generation may run per session.
func (s *Session) Generate(ctx context.Context) (*tts.Result, error) {
	s.mu.Lock()

	state, ok := s.state.(Configure)

	if !ok {
		s.mu.Unlock()
		return nil, ErrInvalidStep
	}

	if s.generating {
		s.mu.Unlock()
		return nil, ErrGenerating
	}

	s.generating = true

	speech := s.speech

	s.mu.Unlock()

	result, err := speech.Synthesize(ctx, text.Speakable(state.Text), state.Voice)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.generating = false

	if err != nil {
		return nil, err
	}

	result.Text = state.Text

	next, err := state.Generated(result)

	if err != nil {
		return nil, err
	}

	s.state = next

	slog.InfoContext(ctx, "audio generated", "session", s.ID, "audio", result.ID, "size", result.Size, "duration", result.Duration)

	return result, nil
}

// Preview speaks a fixed sample with the given voice. The session state is not touched.
func (s *Session) Preview(ctx context.Context, config voice.Config) (*tts.Result, error) {
	s.mu.Lock()
	speech := s.speech
	s.mu.Unlock()

	return speech.Synthesize(ctx, voice.PreviewText, config)
}

// UseCatalog switches the voices offered to this session.
func (s *Session) UseCatalog(catalog *voice.Catalog) {
	if catalog == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.speech = s.wizard.speech.WithCatalog(catalog)
}

func (s *Session) Voices() []voice.Voice {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.speech.Catalog().Voices()
}

func (s *Session) Audio() (*tts.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.state.(Play)

	if !ok {
		return nil, false
	}

	return state.Audio, true
}

// Reset returns to the upload step.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generating {
		return ErrGenerating
	}

	s.state = Start()

	return nil
}

func (s *Session) idle() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generating {
		return ErrGenerating
	}

	return nil
}
