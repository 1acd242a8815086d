package api_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/adrianliechti/narrator/config"
	"github.com/adrianliechti/narrator/pkg/audio"
	"github.com/adrianliechti/narrator/pkg/auth"
	"github.com/adrianliechti/narrator/pkg/auth/static"
	"github.com/adrianliechti/narrator/pkg/document"
	"github.com/adrianliechti/narrator/pkg/extractor/multi"
	"github.com/adrianliechti/narrator/pkg/extractor/pdf"
	"github.com/adrianliechti/narrator/pkg/extractor/text"
	"github.com/adrianliechti/narrator/pkg/provider/dui"
	"github.com/adrianliechti/narrator/pkg/tts"
	"github.com/adrianliechti/narrator/pkg/voice"
	"github.com/adrianliechti/narrator/server/api"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vendor struct {
	calls  atomic.Int32
	status int
	voice  atomic.Value
}

func (v *vendor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	v.calls.Add(1)
	v.voice.Store(r.URL.Query().Get("voiceId"))

	if v.status != 0 {
		w.WriteHeader(v.status)
		return
	}

	data, _ := audio.EncodeWAV(make([]byte, 32000), 16000, 1, 16)

	w.Header().Set("Content-Type", "audio/wav")
	w.Write(data)
}

func newTestServer(t *testing.T, v *vendor, options ...func(*config.Config)) http.Handler {
	t.Helper()

	vendorServer := httptest.NewServer(v)
	t.Cleanup(vendorServer.Close)

	synthesizer, err := dui.NewSynthesizer(vendorServer.URL)
	require.NoError(t, err)

	textExtractor, err := text.New()
	require.NoError(t, err)

	pdfExtractor, err := pdf.New()
	require.NoError(t, err)

	cfg := &config.Config{
		Limits: document.DefaultLimits(),

		Voices: &voice.Source{
			Fallback: voice.DefaultCatalog(),
		},
	}

	for _, option := range options {
		option(cfg)
	}

	normalizer := voice.NewNormalizer(voice.DefaultCatalog(), voice.DefaultRange, voice.DefaultRange)

	cfg.RegisterExtractor("", multi.New(textExtractor, pdfExtractor))
	cfg.RegisterSpeech("dui", tts.New(synthesizer, normalizer, tts.WithMaxLength(cfg.Limits.MaxSynthesisLength)))

	h, err := api.New(cfg)
	require.NoError(t, err)

	r := chi.NewRouter()
	h.Attach(r)

	return r
}

func uploadRequest(t *testing.T, path, name string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)

	_, err = fw.Write(content)
	require.NoError(t, err)

	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func jsonRequest(t *testing.T, method, path string, v any) *http.Request {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))

	return v
}

func TestUploadText(t *testing.T) {
	h := newTestServer(t, &vendor{})

	rec := serve(h, uploadRequest(t, "/upload", "notes.txt", []byte("Hello\nWorld")))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[api.UploadResponse](t, rec)

	assert.True(t, resp.Success)
	assert.Equal(t, "Hello\nWorld", resp.Text)
	assert.Equal(t, "notes.txt", resp.FileData.Name)
	assert.Equal(t, document.TypeText, resp.FileData.Type)
	assert.EqualValues(t, 11, resp.FileData.Size)
}

func TestUploadRejected(t *testing.T) {
	h := newTestServer(t, &vendor{}, func(cfg *config.Config) {
		cfg.Limits.MaxFileSize = 1024
	})

	tests := []struct {
		name    string
		file    string
		content []byte

		status   int
		category string
	}{
		{"unsupported type", "image.png", []byte("png"), http.StatusBadRequest, "unsupported_type"},
		{"word document", "report.docx", []byte("docx"), http.StatusBadRequest, "unsupported_type"},
		{"too large", "big.txt", bytes.Repeat([]byte("a"), 2048), http.StatusBadRequest, "file_too_large"},
		{"invalid utf-8", "broken.txt", []byte{0xff, 0xfe, 0xfd}, http.StatusBadRequest, "decode_failed"},
		{"blank text", "blank.txt", []byte("   \n  "), http.StatusBadRequest, "no_text_extracted"},
		{"corrupt pdf", "broken.pdf", []byte("not a pdf"), http.StatusInternalServerError, "extraction_failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, uploadRequest(t, "/upload", tt.file, tt.content))
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			resp := decode[api.ErrorResponse](t, rec)

			assert.False(t, resp.Success)
			assert.Equal(t, tt.category, resp.Error)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestSynthesize(t *testing.T) {
	v := &vendor{}
	h := newTestServer(t, v)

	req := jsonRequest(t, http.MethodPost, "/tts", api.SynthesizeRequest{
		Text: "你好，世界",

		VoiceConfig: &voice.Config{VoiceID: "4", Speed: 5, Volume: 5},
	})

	rec := serve(h, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[api.SynthesizeResponse](t, rec)

	assert.True(t, resp.Success)
	assert.True(t, strings.HasPrefix(resp.AudioURL, "data:audio/wav;base64,"))
	assert.Equal(t, resp.AudioURL, resp.DownloadURL)
	assert.Equal(t, "wav", resp.Format)
	assert.Equal(t, "audio_"+resp.ID+".wav", resp.FileName)
	assert.InDelta(t, 1.0, resp.Duration, 0.01)

	assert.Equal(t, "kaolam", v.voice.Load())
}

func TestSynthesizeTooLong(t *testing.T) {
	v := &vendor{}
	h := newTestServer(t, v)

	req := jsonRequest(t, http.MethodPost, "/tts", api.SynthesizeRequest{
		Text: strings.Repeat("字", 201),
	})

	rec := serve(h, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode[api.ErrorResponse](t, rec)
	assert.Equal(t, "synthesis_text_too_long", resp.Error)

	assert.Zero(t, v.calls.Load())
}

func TestSynthesizeServiceUnavailable(t *testing.T) {
	h := newTestServer(t, &vendor{status: http.StatusServiceUnavailable})

	req := jsonRequest(t, http.MethodPost, "/tts", api.SynthesizeRequest{
		Text: "hello",
	})
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")

	rec := serve(h, req)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	resp := decode[api.ErrorResponse](t, rec)

	assert.Equal(t, "service_unavailable", resp.Error)
	assert.Equal(t, "语音合成服务暂时不可用，请稍后重试。", resp.Message)
	assert.True(t, resp.Retryable)
	assert.NotEmpty(t, resp.Details)
}

func TestVoices(t *testing.T) {
	h := newTestServer(t, &vendor{})

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/voices", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[api.VoicesResponse](t, rec)

	assert.Len(t, resp.Voices, 8)
	assert.Equal(t, "1", resp.Default)
	assert.NotContains(t, rec.Body.String(), "zhilingf")
}

func TestPreview(t *testing.T) {
	v := &vendor{}
	h := newTestServer(t, v)

	rec := serve(h, jsonRequest(t, http.MethodPost, "/preview", api.PreviewRequest{VoiceID: "2"}))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "audio/wav", rec.Header().Get("Content-Type"))
	assert.Equal(t, "xijunm", v.voice.Load())
}

func TestTextHelpers(t *testing.T) {
	h := newTestServer(t, &vendor{})

	rec := serve(h, jsonRequest(t, http.MethodPost, "/text/format", api.TextRequest{Text: "  a  \n\n\n\n b "}))
	require.Equal(t, http.StatusOK, rec.Code)

	formatted := decode[api.FormatResponse](t, rec)
	assert.Equal(t, "a\n\nb", formatted.Text)

	rec = serve(h, jsonRequest(t, http.MethodPost, "/text/segment", api.TextRequest{Text: "One. Two. Three.", Limit: 10}))
	require.Equal(t, http.StatusOK, rec.Code)

	segments := decode[api.SegmentResponse](t, rec)
	require.NotEmpty(t, segments.Segments)

	for _, s := range segments.Segments {
		assert.LessOrEqual(t, s.Characters, 10)
	}
}

func TestSessionFlow(t *testing.T) {
	v := &vendor{}
	h := newTestServer(t, v)

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/sessions", nil))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	created := decode[api.SessionResponse](t, rec)

	id := created.ID
	require.NotEmpty(t, id)
	assert.Equal(t, id, rec.Header().Get(api.SessionHeader))
	assert.EqualValues(t, 1, created.Step)

	base := "/sessions/" + id

	rec = serve(h, jsonRequest(t, http.MethodPost, base+"/confirm", nil))
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "invalid_step", decode[api.ErrorResponse](t, rec).Error)

	rec = serve(h, jsonRequest(t, http.MethodPost, base+"/text", api.SessionTextRequest{Text: "第一段"}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decode[api.SessionResponse](t, rec).Step)

	rec = serve(h, jsonRequest(t, http.MethodPost, base+"/text", api.SessionTextRequest{Text: "第一段。第二段。"}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "第一段。第二段。", decode[api.SessionResponse](t, rec).Text)

	rec = serve(h, httptest.NewRequest(http.MethodPost, base+"/confirm", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 3, decode[api.SessionResponse](t, rec).Step)

	rec = serve(h, jsonRequest(t, http.MethodPut, base+"/voice", voice.Config{VoiceID: "6", Speed: 7, Volume: 3}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "6", decode[api.SessionResponse](t, rec).Voice.VoiceID)

	rec = serve(h, httptest.NewRequest(http.MethodPost, base+"/synthesize", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "qiumum", v.voice.Load())

	rec = serve(h, httptest.NewRequest(http.MethodGet, base, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	snapshot := decode[api.SessionResponse](t, rec)
	assert.EqualValues(t, 4, snapshot.Step)
	require.NotNil(t, snapshot.Audio)

	req := httptest.NewRequest(http.MethodGet, base+"/audio", nil)
	req.Header.Set("Range", "bytes=0-43")

	rec = serve(h, req)
	require.Equal(t, http.StatusPartialContent, rec.Code)
	assert.Equal(t, 44, rec.Body.Len())

	rec = serve(h, httptest.NewRequest(http.MethodGet, base+"/audio/download", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), snapshot.Audio.ID)
	assert.Equal(t, snapshot.Audio.Size, rec.Body.Len())
}

func TestSessionUpload(t *testing.T) {
	h := newTestServer(t, &vendor{})

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/sessions", nil))
	id := decode[api.SessionResponse](t, rec).ID

	rec = serve(h, uploadRequest(t, "/sessions/"+id+"/upload", "story.md", []byte("# Title\n\nOnce upon a time.")))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[api.SessionResponse](t, rec)

	assert.EqualValues(t, 2, resp.Step)
	require.NotNil(t, resp.Document)
	assert.Equal(t, "story.md", resp.Document.Name)
	assert.Equal(t, document.TypeMarkdown, resp.Document.Type)

	rec = serve(h, uploadRequest(t, "/sessions/"+id+"/upload", "image.png", []byte("png")))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/sessions/"+id, nil))
	assert.EqualValues(t, 2, decode[api.SessionResponse](t, rec).Step)
}

func TestSessionByCookie(t *testing.T) {
	h := newTestServer(t, &vendor{})

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/sessions", nil))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/sessions/current", nil)
	req.AddCookie(cookies[0])

	rec = serve(h, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, cookies[0].Value, decode[api.SessionResponse](t, rec).ID)
}

func TestSessionNotFound(t *testing.T) {
	h := newTestServer(t, &vendor{})

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/sessions/missing", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, "not_found", decode[api.ErrorResponse](t, rec).Error)
}

func TestAuthorization(t *testing.T) {
	authorizer, err := static.New("secret")
	require.NoError(t, err)

	h := newTestServer(t, &vendor{}, func(cfg *config.Config) {
		cfg.Environment = config.EnvironmentProduction
		cfg.Authorizers = []auth.Provider{authorizer}
	})

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/voices", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	resp := decode[api.ErrorResponse](t, rec)
	assert.Equal(t, "unauthorized", resp.Error)
	assert.Empty(t, resp.Details)

	req := httptest.NewRequest(http.MethodGet, "/voices", nil)
	req.Header.Set("Authorization", "Bearer secret")

	rec = serve(h, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
