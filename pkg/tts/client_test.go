package tts_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/adrianliechti/narrator/pkg/audio"
	"github.com/adrianliechti/narrator/pkg/provider"
	"github.com/adrianliechti/narrator/pkg/tts"
	"github.com/adrianliechti/narrator/pkg/voice"

	"github.com/stretchr/testify/require"
)

type stubSynthesizer struct {
	calls atomic.Int32

	errs    []error
	content []byte

	input   string
	options *provider.SynthesizeOptions
}

func (s *stubSynthesizer) Synthesize(ctx context.Context, input string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	n := int(s.calls.Add(1)) - 1
	s.input = input
	s.options = options

	if n < len(s.errs) && s.errs[n] != nil {
		return nil, s.errs[n]
	}

	return &provider.Synthesis{
		Content:     s.content,
		ContentType: "audio/wav",
	}, nil
}

func silence(t *testing.T) []byte {
	data, err := audio.EncodeWAV(make([]byte, 16000*2), 16000, 1, 16)
	require.NoError(t, err)

	return data
}

func TestSynthesize(t *testing.T) {
	s := &stubSynthesizer{content: silence(t)}
	c := tts.New(s, nil)

	text := "  " + strings.Repeat("a", 50) + "\n"

	result, err := c.Synthesize(context.Background(), text, voice.Config{VoiceID: "2", Speed: 12, Volume: 3})
	require.NoError(t, err)

	require.NotEmpty(t, result.ID)
	require.Equal(t, "wav", result.Format)
	require.Equal(t, "audio/wav", result.ContentType)
	require.Equal(t, len(s.content), result.Size)
	require.Equal(t, time.Second, result.Duration)
	require.Equal(t, text, result.Text)
	require.Equal(t, strings.Repeat("a", 50), s.input)
	require.Equal(t, "audio_"+result.ID+".wav", result.FileName())
	require.True(t, strings.HasPrefix(result.URL(), "data:audio/wav;base64,"))

	require.Equal(t, "xijunm", s.options.Voice)
	require.Equal(t, 9, *s.options.Speed)
	require.Equal(t, 3, *s.options.Volume)
	require.Equal(t, "wav", s.options.Format)
}

func TestSynthesizeTooLong(t *testing.T) {
	s := &stubSynthesizer{content: []byte("RIFF")}
	c := tts.New(s, nil)

	_, err := c.Synthesize(context.Background(), strings.Repeat("字", 201), voice.DefaultConfig())

	var terr *tts.TextTooLongError
	require.ErrorAs(t, err, &terr)
	require.Equal(t, 201, terr.Length)
	require.Equal(t, 200, terr.Limit)
	require.Zero(t, s.calls.Load())

	_, err = c.Synthesize(context.Background(), strings.Repeat("a", 200)+"\n", voice.DefaultConfig())
	require.ErrorAs(t, err, &terr)
	require.Equal(t, 201, terr.Length)
	require.Zero(t, s.calls.Load())

	_, err = c.Synthesize(context.Background(), strings.Repeat("字", 200), voice.DefaultConfig())
	require.NoError(t, err)
	require.EqualValues(t, 1, s.calls.Load())
}

func TestSynthesizeEmpty(t *testing.T) {
	s := &stubSynthesizer{}
	c := tts.New(s, nil)

	_, err := c.Synthesize(context.Background(), "  ", voice.DefaultConfig())
	require.ErrorIs(t, err, tts.ErrEmptyText)
	require.Zero(t, s.calls.Load())

	_, err = c.Synthesize(context.Background(), "hello", voice.DefaultConfig())
	require.ErrorIs(t, err, tts.ErrEmptyAudio)
}

func TestSynthesizeErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category tts.Category
	}{
		{"unavailable", &provider.StatusError{StatusCode: http.StatusServiceUnavailable}, tts.CategoryServiceUnavailable},
		{"rate limited", &provider.StatusError{StatusCode: http.StatusTooManyRequests}, tts.CategoryServiceUnavailable},
		{"bad request", &provider.StatusError{StatusCode: http.StatusBadRequest}, tts.CategoryBadInput},
		{"uri too long", &provider.StatusError{StatusCode: http.StatusRequestURITooLong}, tts.CategoryBadInput},
		{"forbidden", &provider.StatusError{StatusCode: http.StatusForbidden}, tts.CategoryFailed},
		{"network", provider.NetworkError(context.Background(), errors.New("connection refused")), tts.CategoryNetwork},
		{"unknown", errors.New("boom"), tts.CategoryFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tts.New(&stubSynthesizer{errs: []error{tt.err}}, nil)

			_, err := c.Synthesize(context.Background(), "hello", voice.DefaultConfig())

			var verr *tts.VendorError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tt.category, verr.Category)
		})
	}
}

func TestSynthesizeRetry(t *testing.T) {
	unavailable := &provider.StatusError{StatusCode: http.StatusBadGateway}

	s := &stubSynthesizer{
		errs:    []error{unavailable, unavailable},
		content: []byte("RIFF"),
	}

	c := tts.New(s, nil, tts.WithRetries(2, time.Millisecond))

	result, err := c.Synthesize(context.Background(), "hello", voice.DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, 4, result.Size)
	require.EqualValues(t, 3, s.calls.Load())
}

func TestSynthesizeNoRetryOnBadInput(t *testing.T) {
	s := &stubSynthesizer{
		errs: []error{&provider.StatusError{StatusCode: http.StatusBadRequest}},
	}

	c := tts.New(s, nil, tts.WithRetries(3, time.Millisecond))

	_, err := c.Synthesize(context.Background(), "hello", voice.DefaultConfig())

	var verr *tts.VendorError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, tts.CategoryBadInput, verr.Category)
	require.EqualValues(t, 1, s.calls.Load())
}

func TestWithCatalog(t *testing.T) {
	s := &stubSynthesizer{content: []byte("RIFF")}
	c := tts.New(s, nil)

	catalog, err := voice.NewCatalog([]voice.Voice{{ID: "x", Vendor: "custom"}}, "x")
	require.NoError(t, err)

	_, err = c.WithCatalog(catalog).Synthesize(context.Background(), "hello", voice.Config{VoiceID: "1"})
	require.NoError(t, err)
	require.Equal(t, "custom", s.options.Voice)

	_, err = c.Synthesize(context.Background(), "hello", voice.Config{VoiceID: "1"})
	require.NoError(t, err)
	require.Equal(t, "zhilingf", s.options.Voice)
}
