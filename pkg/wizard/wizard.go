package wizard

import (
	"context"
	"strings"

	"github.com/adrianliechti/narrator/pkg/document"
	"github.com/adrianliechti/narrator/pkg/extractor"
	"github.com/adrianliechti/narrator/pkg/tts"

	"github.com/google/uuid"
)

// Wizard holds the collaborators shared by all sessions.
type Wizard struct {
	validator *document.Validator
	extractor extractor.Provider
	speech    *tts.Client
}

func New(validator *document.Validator, extractor extractor.Provider, speech *tts.Client) *Wizard {
	if validator == nil {
		validator = document.NewValidator(document.DefaultLimits())
	}

	return &Wizard{
		validator: validator,
		extractor: extractor,
		speech:    speech,
	}
}

func (w *Wizard) NewSession() *Session {
	return &Session{
		ID: uuid.NewString(),

		wizard: w,
		speech: w.speech,

		state: Start(),
		voice: defaultVoice(w.speech),
	}
}

// Load validates a file and extracts its text without touching any session.
func (w *Wizard) Load(ctx context.Context, file extractor.File) (*document.Document, string, error) {
	typ, err := w.validator.Validate(file.Name, int64(len(file.Content)), file.ContentType)

	if err != nil {
		return nil, "", err
	}

	file.ContentType = typ.ContentType

	doc := document.New(file.Name, int64(len(file.Content)), typ.ContentType)

	result, err := w.extractor.Extract(ctx, file, nil)

	if err != nil {
		return nil, "", err
	}

	if strings.TrimSpace(result.Text) == "" {
		return nil, "", &extractor.ExtractionError{Err: extractor.ErrNoText}
	}

	if err := w.validator.ValidateText(result.Text); err != nil {
		return nil, "", err
	}

	return &doc, result.Text, nil
}

func (w *Wizard) Speech() *tts.Client {
	return w.speech
}

func (w *Wizard) Validator() *document.Validator {
	return w.validator
}
