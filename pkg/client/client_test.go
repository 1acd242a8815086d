package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adrianliechti/narrator/config"
	"github.com/adrianliechti/narrator/pkg/audio"
	"github.com/adrianliechti/narrator/pkg/client"
	"github.com/adrianliechti/narrator/pkg/document"
	"github.com/adrianliechti/narrator/pkg/extractor/text"
	"github.com/adrianliechti/narrator/pkg/provider/dui"
	"github.com/adrianliechti/narrator/pkg/tts"
	"github.com/adrianliechti/narrator/pkg/voice"
	"github.com/adrianliechti/narrator/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, vendor http.HandlerFunc) *client.Client {
	t.Helper()

	vendorServer := httptest.NewServer(vendor)
	t.Cleanup(vendorServer.Close)

	synthesizer, err := dui.NewSynthesizer(vendorServer.URL)
	require.NoError(t, err)

	extractor, err := text.New()
	require.NoError(t, err)

	cfg := &config.Config{
		Limits: document.DefaultLimits(),

		Voices: &voice.Source{
			Fallback: voice.DefaultCatalog(),
		},
	}

	cfg.RegisterExtractor("", extractor)
	cfg.RegisterSpeech("dui", tts.New(synthesizer, nil))

	s, err := server.New(cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)

	return client.New(srv.URL, client.WithLanguage("en"))
}

func wav(w http.ResponseWriter, r *http.Request) {
	data, _ := audio.EncodeWAV(make([]byte, 16000), 8000, 1, 16)

	w.Header().Set("Content-Type", "audio/wav")
	w.Write(data)
}

func TestSessionWorkflow(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, wav)

	session, err := c.Sessions.New(ctx)
	require.NoError(t, err)

	session, err = c.Sessions.Upload(ctx, session.ID, client.DocumentRequest{
		Name:   "chapter.txt",
		Reader: strings.NewReader("It was a bright cold day in April."),
	})
	require.NoError(t, err)
	assert.Equal(t, "edit", session.StepName)

	session, err = c.Sessions.Text(ctx, session.ID, "It was a bright cold day.")
	require.NoError(t, err)
	assert.Equal(t, "It was a bright cold day.", session.Text)

	session, err = c.Sessions.Confirm(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "configure", session.StepName)

	voices, err := c.Sessions.Voices(ctx, session.ID)
	require.NoError(t, err)
	require.NotEmpty(t, voices.Voices)

	_, err = c.Sessions.SetVoice(ctx, session.ID, client.VoiceConfig{VoiceID: voices.Voices[2].ID, Speed: 5, Volume: 5})
	require.NoError(t, err)

	synthesis, err := c.Sessions.Synthesize(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "wav", synthesis.Format)

	data, contentType, err := c.Sessions.Download(ctx, session.ID)
	require.NoError(t, err)

	assert.Equal(t, "audio/wav", contentType)
	assert.Equal(t, synthesis.Size, len(data))

	require.NoError(t, c.Sessions.Delete(ctx, session.ID))

	_, err = c.Sessions.Get(ctx, session.ID)

	var apiErr *client.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "not_found", apiErr.Category)
}

func TestSynthesisError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Syntheses.New(context.Background(), client.SynthesizeRequest{Text: "hello"})

	var apiErr *client.Error
	require.ErrorAs(t, err, &apiErr)

	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.True(t, apiErr.Retryable)
	assert.NotEmpty(t, apiErr.Message)
}

func TestDocumentsAndText(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, wav)

	upload, err := c.Documents.New(ctx, client.DocumentRequest{
		Name:   "notes.md",
		Reader: strings.NewReader("# Notes\n\n- one\n- two"),
	})
	require.NoError(t, err)
	assert.Equal(t, document.TypeMarkdown, upload.FileData.Type)

	formatted, stats, err := c.Segments.Format(ctx, " a \n\n\n b ")
	require.NoError(t, err)
	assert.Equal(t, "a\n\nb", formatted)
	assert.Equal(t, 2, stats.Words)

	segments, err := c.Segments.New(ctx, client.SegmentRequest{Text: strings.Repeat("Hello world. ", 40)})
	require.NoError(t, err)
	assert.Greater(t, len(segments), 1)

	voices, err := c.Voices.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", voices.Default)

	preview, contentType, err := c.Syntheses.Preview(ctx, client.VoiceConfig{VoiceID: "3", Speed: 5, Volume: 5})
	require.NoError(t, err)
	assert.Equal(t, "audio/wav", contentType)
	assert.NotEmpty(t, preview)
}
