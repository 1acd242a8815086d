package voice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
)

// Catalog is an immutable list of selectable voices.
type Catalog struct {
	voices   []Voice
	fallback string
}

func NewCatalog(voices []Voice, defaultID string) (*Catalog, error) {
	if len(voices) == 0 {
		return nil, errors.New("catalog has no voices")
	}

	ids := map[string]bool{}

	for _, v := range voices {
		if v.ID == "" {
			return nil, errors.New("voice without id")
		}

		if ids[v.ID] {
			return nil, fmt.Errorf("duplicate voice %q", v.ID)
		}

		ids[v.ID] = true
	}

	if defaultID == "" || !ids[defaultID] {
		defaultID = voices[0].ID
	}

	return &Catalog{
		voices:   slices.Clone(voices),
		fallback: defaultID,
	}, nil
}

func DefaultCatalog() *Catalog {
	c, _ := NewCatalog(DefaultVoices, DefaultVoiceID)
	return c
}

func (c *Catalog) Voices() []Voice {
	return slices.Clone(c.voices)
}

func (c *Catalog) Lookup(id string) (Voice, bool) {
	for _, v := range c.voices {
		if v.ID == id {
			return v, true
		}
	}

	return Voice{}, false
}

func (c *Catalog) Default() Voice {
	v, _ := c.Lookup(c.fallback)
	return v
}

// WithVendors returns a copy whose vendor identifiers are replaced for the given voice ids.
func (c *Catalog) WithVendors(vendors map[string]string) *Catalog {
	voices := c.Voices()

	for i, v := range voices {
		if vendor, ok := vendors[v.ID]; ok {
			voices[i].Vendor = vendor
		}
	}

	return &Catalog{
		voices:   voices,
		fallback: c.fallback,
	}
}

// Source loads the catalog from a remote endpoint and falls back to a static one.
type Source struct {
	URL    string
	Client *http.Client

	Fallback *Catalog
}

type catalogResponse struct {
	Default string  `json:"default"`
	Voices  []Voice `json:"voices"`
}

func (s *Source) Load(ctx context.Context) *Catalog {
	if s.URL == "" {
		return s.Fallback
	}

	c, err := s.fetch(ctx)

	if err != nil {
		slog.WarnContext(ctx, "voice catalog unavailable, using defaults", "url", s.URL, "error", err)
		return s.Fallback
	}

	return c
}

func (s *Source) fetch(ctx context.Context) (*Catalog, error) {
	client := s.Client

	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)

	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var result catalogResponse

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	// remote entries carry no vendor ids, keep the ones known locally
	if s.Fallback != nil {
		vendors := map[string]string{}

		for _, v := range s.Fallback.voices {
			vendors[v.ID] = v.Vendor
		}

		for i, v := range result.Voices {
			if v.Vendor == "" {
				result.Voices[i].Vendor = vendors[v.ID]
			}
		}
	}

	return NewCatalog(result.Voices, result.Default)
}
