package wizard_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/adrianliechti/narrator/pkg/document"
	"github.com/adrianliechti/narrator/pkg/extractor"
	"github.com/adrianliechti/narrator/pkg/extractor/multi"
	"github.com/adrianliechti/narrator/pkg/extractor/pdf"
	"github.com/adrianliechti/narrator/pkg/extractor/text"
	"github.com/adrianliechti/narrator/pkg/provider"
	"github.com/adrianliechti/narrator/pkg/tts"
	"github.com/adrianliechti/narrator/pkg/voice"
	"github.com/adrianliechti/narrator/pkg/wizard"

	"github.com/stretchr/testify/require"
)

type stubSynthesizer struct {
	err   error
	block chan struct{}

	mu     sync.Mutex
	inputs []string
}

func (s *stubSynthesizer) Synthesize(ctx context.Context, input string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	s.mu.Lock()
	s.inputs = append(s.inputs, input)
	s.mu.Unlock()

	if s.block != nil {
		<-s.block
	}

	if s.err != nil {
		return nil, s.err
	}

	return &provider.Synthesis{
		Content:     []byte("RIFF....WAVE"),
		ContentType: "audio/wav",
	}, nil
}

func newSession(t *testing.T, s *stubSynthesizer) *wizard.Session {
	t.Helper()

	textExtractor, err := text.New()
	require.NoError(t, err)

	pdfExtractor, err := pdf.New()
	require.NoError(t, err)

	w := wizard.New(
		document.NewValidator(document.DefaultLimits()),
		multi.New(textExtractor, pdfExtractor),
		tts.New(s, nil),
	)

	return w.NewSession()
}

func TestUploadText(t *testing.T) {
	session := newSession(t, &stubSynthesizer{})

	content := strings.Repeat("Hello World. ", 400)

	doc, err := session.Upload(context.Background(), extractor.File{
		Name:        "hello.txt",
		ContentType: "text/plain",
		Content:     []byte(content),
	})

	require.NoError(t, err)
	require.Equal(t, "hello.txt", doc.Name)

	snapshot := session.Snapshot()

	require.Equal(t, wizard.StepEdit, snapshot.Step)
	require.Equal(t, content, snapshot.Text)
	require.Equal(t, doc, snapshot.Document)
}

func TestUploadRejected(t *testing.T) {
	session := newSession(t, &stubSynthesizer{})

	tests := []struct {
		name string
		file extractor.File
	}{
		{"too large", extractor.File{Name: "big.txt", ContentType: "text/plain", Content: make([]byte, document.MaxFileSize+1)}},
		{"image", extractor.File{Name: "photo.png", ContentType: "image/png", Content: []byte("png")}},
		{"word", extractor.File{Name: "letter.docx", ContentType: document.TypeDocx, Content: []byte("PK")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := session.Upload(context.Background(), tt.file)

			var verr *document.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, wizard.StepUpload, session.State().Step())
		})
	}
}

func TestUploadExtractionFailure(t *testing.T) {
	session := newSession(t, &stubSynthesizer{})

	_, err := session.Upload(context.Background(), extractor.File{Name: "broken.pdf", ContentType: "application/pdf", Content: []byte("garbage")})

	var eerr *extractor.ExtractionError
	require.ErrorAs(t, err, &eerr)

	_, err = session.Upload(context.Background(), extractor.File{Name: "blank.txt", ContentType: "text/plain", Content: []byte(" \n ")})
	require.ErrorAs(t, err, &eerr)

	_, err = session.Upload(context.Background(), extractor.File{Name: "latin1.txt", ContentType: "text/plain", Content: []byte{0xe9, 't', 0xe9}})

	var derr *extractor.DecodeError
	require.ErrorAs(t, err, &derr)

	require.Equal(t, wizard.StepUpload, session.State().Step())
}

func TestGenerate(t *testing.T) {
	s := &stubSynthesizer{}
	session := newSession(t, s)

	text := strings.Repeat("b", 50)

	require.NoError(t, session.Paste(text))
	require.NoError(t, session.Confirm())
	require.NoError(t, session.SetVoice(voice.Config{VoiceID: "1", Speed: 5, Volume: 5}))

	result, err := session.Generate(context.Background())
	require.NoError(t, err)

	require.Equal(t, "wav", result.Format)
	require.Greater(t, result.Size, 0)

	state, ok := session.State().(wizard.Play)
	require.True(t, ok)
	require.Same(t, result, state.Audio)
	require.Equal(t, []string{text}, s.inputs)

	audio, ok := session.Audio()
	require.True(t, ok)
	require.Same(t, result, audio)
}

func TestGenerateSourceText(t *testing.T) {
	s := &stubSynthesizer{}
	session := newSession(t, s)

	source := "# Title\n\n- one\n- two"

	require.NoError(t, session.Paste(source))
	require.NoError(t, session.Confirm())

	result, err := session.Generate(context.Background())
	require.NoError(t, err)

	require.Equal(t, source, result.Text)

	require.Len(t, s.inputs, 1)
	require.NotContains(t, s.inputs[0], "#")
}

func TestGenerateTooLong(t *testing.T) {
	s := &stubSynthesizer{}
	session := newSession(t, s)

	require.NoError(t, session.Paste(strings.Repeat("a", 201)))
	require.NoError(t, session.Confirm())

	_, err := session.Generate(context.Background())

	var terr *tts.TextTooLongError
	require.ErrorAs(t, err, &terr)

	require.Equal(t, wizard.StepConfigure, session.State().Step())
	require.Empty(t, s.inputs)
}

func TestGenerateVendorUnavailable(t *testing.T) {
	s := &stubSynthesizer{err: &provider.StatusError{StatusCode: http.StatusServiceUnavailable}}
	session := newSession(t, s)

	require.NoError(t, session.Paste("hello"))
	require.NoError(t, session.Confirm())

	_, err := session.Generate(context.Background())

	var verr *tts.VendorError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, tts.CategoryServiceUnavailable, verr.Category)

	require.Equal(t, wizard.StepConfigure, session.State().Step())
	require.False(t, session.Snapshot().Generating)
}

func TestGenerateConcurrent(t *testing.T) {
	s := &stubSynthesizer{block: make(chan struct{})}
	session := newSession(t, s)

	require.NoError(t, session.Paste("hello"))
	require.NoError(t, session.Confirm())

	done := make(chan error)

	go func() {
		_, err := session.Generate(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool {
		return session.Snapshot().Generating
	}, time.Second, time.Millisecond)

	_, err := session.Generate(context.Background())
	require.ErrorIs(t, err, wizard.ErrGenerating)

	require.ErrorIs(t, session.Paste("other"), wizard.ErrGenerating)
	require.ErrorIs(t, session.SetVoice(voice.DefaultConfig()), wizard.ErrGenerating)

	close(s.block)

	require.NoError(t, <-done)
	require.Equal(t, wizard.StepPlay, session.State().Step())
}

func TestStepGuards(t *testing.T) {
	session := newSession(t, &stubSynthesizer{})

	require.ErrorIs(t, session.Confirm(), wizard.ErrInvalidStep)
	require.ErrorIs(t, session.Edit("x"), wizard.ErrInvalidStep)
	require.ErrorIs(t, session.SetVoice(voice.DefaultConfig()), wizard.ErrInvalidStep)

	_, err := session.Generate(context.Background())
	require.ErrorIs(t, err, wizard.ErrInvalidStep)

	require.ErrorIs(t, session.Paste("   "), wizard.ErrEmptyText)

	require.NoError(t, session.Paste("draft"))
	require.NoError(t, session.Edit(""))
	require.ErrorIs(t, session.Confirm(), wizard.ErrEmptyText)
	require.Equal(t, wizard.StepEdit, session.State().Step())

	var verr *document.ValidationError
	require.True(t, errors.As(session.Edit(strings.Repeat("x", document.MaxTextLength+1)), &verr))
}

func TestReupload(t *testing.T) {
	session := newSession(t, &stubSynthesizer{})

	require.NoError(t, session.Paste("first"))
	require.NoError(t, session.Confirm())

	_, err := session.Generate(context.Background())
	require.NoError(t, err)

	_, err = session.Upload(context.Background(), extractor.File{Name: "second.md", ContentType: "text/markdown", Content: []byte("# Second")})
	require.NoError(t, err)

	snapshot := session.Snapshot()
	require.Equal(t, wizard.StepEdit, snapshot.Step)
	require.Equal(t, "# Second", snapshot.Text)
	require.Nil(t, snapshot.Audio)

	_, ok := session.Audio()
	require.False(t, ok)
}

func TestPreview(t *testing.T) {
	s := &stubSynthesizer{}
	session := newSession(t, s)

	result, err := session.Preview(context.Background(), voice.Config{VoiceID: "3", Speed: 5, Volume: 5})
	require.NoError(t, err)
	require.NotEmpty(t, result.ID)

	require.Equal(t, []string{voice.PreviewText}, s.inputs)
	require.Equal(t, wizard.StepUpload, session.State().Step())
}
