package voice_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adrianliechti/narrator/pkg/voice"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	n := voice.NewNormalizer(voice.DefaultCatalog(), voice.DefaultRange, voice.DefaultRange)

	tests := []struct {
		name   string
		config voice.Config
		want   voice.Params
	}{
		{"defaults", voice.DefaultConfig(), voice.Params{Voice: "zhilingf", Speed: 5, Volume: 5, Format: "wav"}},
		{"known voice", voice.Config{VoiceID: "4", Speed: 2, Volume: 8}, voice.Params{Voice: "kaolam", Speed: 2, Volume: 8, Format: "wav"}},
		{"unknown voice", voice.Config{VoiceID: "42", Speed: 5, Volume: 5}, voice.Params{Voice: "zhilingf", Speed: 5, Volume: 5, Format: "wav"}},
		{"empty voice", voice.Config{Speed: 5, Volume: 5}, voice.Params{Voice: "zhilingf", Speed: 5, Volume: 5, Format: "wav"}},
		{"clamp high", voice.Config{VoiceID: "2", Speed: 15, Volume: 100}, voice.Params{Voice: "xijunm", Speed: 9, Volume: 9, Format: "wav"}},
		{"clamp low", voice.Config{VoiceID: "2", Speed: -3, Volume: -1}, voice.Params{Voice: "xijunm", Speed: 0, Volume: 0, Format: "wav"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, n.Normalize(tt.config))
		})
	}
}

func TestNormalizeCustomRange(t *testing.T) {
	n := voice.NewNormalizer(nil, voice.Range{Min: 1, Max: 3}, voice.Range{Min: 2, Max: 4})

	p := n.Normalize(voice.Config{VoiceID: "1", Speed: 9, Volume: 0})

	require.Equal(t, 3, p.Speed)
	require.Equal(t, 2, p.Volume)
}

func TestCatalog(t *testing.T) {
	_, err := voice.NewCatalog(nil, "")
	require.Error(t, err)

	_, err = voice.NewCatalog([]voice.Voice{{ID: "a"}, {ID: "a"}}, "")
	require.Error(t, err)

	c, err := voice.NewCatalog([]voice.Voice{{ID: "a"}, {ID: "b"}}, "missing")
	require.NoError(t, err)
	require.Equal(t, "a", c.Default().ID)

	c = voice.DefaultCatalog().WithVendors(map[string]string{"1": "alloy"})
	v, ok := c.Lookup("1")

	require.True(t, ok)
	require.Equal(t, "alloy", v.Vendor)
	require.Len(t, c.Voices(), len(voice.DefaultVoices))
}

func TestSourceLoad(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"default": "4", "voices": [{"id": "4", "name": "Koala"}, {"id": "9", "name": "Nine"}]}`))
	}))

	defer server.Close()

	source := &voice.Source{
		URL:      server.URL,
		Fallback: voice.DefaultCatalog(),
	}

	c := source.Load(context.Background())

	require.Len(t, c.Voices(), 2)
	require.Equal(t, "4", c.Default().ID)
	require.Equal(t, "kaolam", c.Default().Vendor)

	n := voice.NewNormalizer(c, voice.DefaultRange, voice.DefaultRange)
	require.Equal(t, "9", n.Normalize(voice.Config{VoiceID: "9"}).Voice)
	require.Equal(t, "kaolam", n.Normalize(voice.Config{VoiceID: "1"}).Voice)
}

func TestSourceFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))

	defer server.Close()

	fallback := voice.DefaultCatalog()

	source := &voice.Source{
		URL:      server.URL,
		Fallback: fallback,
	}

	require.Same(t, fallback, source.Load(context.Background()))
}
