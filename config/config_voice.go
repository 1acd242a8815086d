package config

import (
	"github.com/adrianliechti/narrator/pkg/voice"
)

type voicesConfig struct {
	URL     string `yaml:"url"`
	Default string `yaml:"default"`

	Static []voice.Voice `yaml:"static"`

	clientConfig `yaml:",inline"`
}

func (c *Config) registerVoices(f *configFile) error {
	voices := voice.DefaultVoices

	if len(f.Voices.Static) > 0 {
		voices = f.Voices.Static
	}

	defaultID := f.Voices.Default

	if defaultID == "" {
		defaultID = voice.DefaultVoiceID
	}

	catalog, err := voice.NewCatalog(voices, defaultID)

	if err != nil {
		return err
	}

	client, err := f.Voices.httpClient(catalogTimeout)

	if err != nil {
		return err
	}

	c.Voices = &voice.Source{
		URL:    f.Voices.URL,
		Client: client,

		Fallback: catalog,
	}

	return nil
}
