package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/adrianliechti/narrator/server/api"
)

type SessionService struct {
	Options []RequestOption
}

func NewSessionService(opts ...RequestOption) SessionService {
	return SessionService{
		Options: opts,
	}
}

type Session = api.SessionResponse

func sessionPath(id string, parts ...string) string {
	path := "/api/sessions/" + url.PathEscape(id)

	for _, p := range parts {
		path += "/" + p
	}

	return path
}

func (r *SessionService) New(ctx context.Context, opts ...RequestOption) (*Session, error) {
	return r.call(ctx, http.MethodPost, "/api/sessions", nil, opts...)
}

func (r *SessionService) Get(ctx context.Context, id string, opts ...RequestOption) (*Session, error) {
	return r.call(ctx, http.MethodGet, sessionPath(id), nil, opts...)
}

func (r *SessionService) Delete(ctx context.Context, id string, opts ...RequestOption) error {
	c := newRequestConfig(append(r.Options, opts...)...)

	return c.doJson(ctx, http.MethodDelete, sessionPath(id), nil, nil)
}

// Upload replaces the session's document and moves it to the edit step.
func (r *SessionService) Upload(ctx context.Context, id string, input DocumentRequest, opts ...RequestOption) (*Session, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	req, err := c.newUpload(ctx, sessionPath(id, "upload"), input)

	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	var result Session

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Text edits the text in the edit step, or starts over with pasted text in any other step.
func (r *SessionService) Text(ctx context.Context, id, text string, opts ...RequestOption) (*Session, error) {
	return r.call(ctx, http.MethodPost, sessionPath(id, "text"), api.SessionTextRequest{Text: text}, opts...)
}

func (r *SessionService) Confirm(ctx context.Context, id string, opts ...RequestOption) (*Session, error) {
	return r.call(ctx, http.MethodPost, sessionPath(id, "confirm"), nil, opts...)
}

func (r *SessionService) Reset(ctx context.Context, id string, opts ...RequestOption) (*Session, error) {
	return r.call(ctx, http.MethodPost, sessionPath(id, "reset"), nil, opts...)
}

func (r *SessionService) Voices(ctx context.Context, id string, opts ...RequestOption) (*Voices, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	var result Voices

	if err := c.doJson(ctx, http.MethodGet, sessionPath(id, "voices"), nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *SessionService) SetVoice(ctx context.Context, id string, input VoiceConfig, opts ...RequestOption) (*Session, error) {
	return r.call(ctx, http.MethodPut, sessionPath(id, "voice"), input, opts...)
}

func (r *SessionService) Preview(ctx context.Context, id string, input VoiceConfig, opts ...RequestOption) ([]byte, string, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	return c.doBytes(ctx, http.MethodPost, sessionPath(id, "preview"), previewRequest(input))
}

func (r *SessionService) Synthesize(ctx context.Context, id string, opts ...RequestOption) (*Synthesis, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	var result Synthesis

	if err := c.doJson(ctx, http.MethodPost, sessionPath(id, "synthesize"), nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// AudioURL is the address the session's audio is streamed from.
func (r *SessionService) AudioURL(id string, opts ...RequestOption) string {
	c := newRequestConfig(append(r.Options, opts...)...)

	u := c.URL + sessionPath(id, "audio")

	if c.Token != "" {
		u += "?access_token=" + url.QueryEscape(c.Token)
	}

	return u
}

func (r *SessionService) Download(ctx context.Context, id string, opts ...RequestOption) ([]byte, string, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	return c.doBytes(ctx, http.MethodGet, sessionPath(id, "audio", "download"), nil)
}

func (r *SessionService) call(ctx context.Context, method, path string, input any, opts ...RequestOption) (*Session, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	var result Session

	if err := c.doJson(ctx, method, path, input, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
