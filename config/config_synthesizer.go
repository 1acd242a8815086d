package config

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/adrianliechti/narrator/pkg/limiter"
	"github.com/adrianliechti/narrator/pkg/otel"
	"github.com/adrianliechti/narrator/pkg/provider"
	"github.com/adrianliechti/narrator/pkg/provider/dui"
	"github.com/adrianliechti/narrator/pkg/provider/google"
	"github.com/adrianliechti/narrator/pkg/provider/openai"
	"github.com/adrianliechti/narrator/pkg/tts"
	"github.com/adrianliechti/narrator/pkg/voice"

	"gopkg.in/yaml.v3"
)

func (cfg *Config) RegisterSpeech(id string, c *tts.Client) {
	if cfg.speech == nil {
		cfg.speech = make(map[string]*tts.Client)
	}

	if _, ok := cfg.speech[""]; !ok {
		cfg.speech[""] = c
	}

	if _, ok := cfg.speech[id]; !ok && id != "" {
		cfg.speechIDs = append(cfg.speechIDs, id)
	}

	cfg.speech[id] = c
}

// Speech returns the synthesis client for id. The empty id is the first configured synthesizer.
func (cfg *Config) Speech(id string) (*tts.Client, error) {
	if cfg.speech != nil {
		if c, ok := cfg.speech[id]; ok {
			return c, nil
		}
	}

	return nil, errors.New("synthesizer not found: " + id)
}

type synthesizerConfig struct {
	Type string `yaml:"type"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`
	Model string `yaml:"model"`

	UserAgent string `yaml:"user_agent"`

	Voices map[string]string `yaml:"voices"`

	Speed  *voice.Range `yaml:"speed"`
	Volume *voice.Range `yaml:"volume"`

	Retries       int           `yaml:"retries"`
	RetryInterval time.Duration `yaml:"retry_interval"`

	Language string `yaml:"language"`

	clientConfig `yaml:",inline"`

	Limit *int `yaml:"limit"`
}

type synthesizerContext struct {
	Client *http.Client
}

func (cfg *Config) registerSynthesizers(f *configFile) error {
	ids, configs, err := decodeSynthesizers(f.Synthesizers)

	if err != nil {
		return err
	}

	for _, id := range ids {
		config := configs[id]

		client, err := config.httpClient(synthesisTimeout)

		if err != nil {
			return err
		}

		context := synthesizerContext{
			Client: client,
		}

		s, err := createSynthesizer(config, context)

		if err != nil {
			return err
		}

		if _, ok := s.(limiter.Synthesizer); !ok {
			s = limiter.NewSynthesizer(createLimiter(config.Limit), s)
		}

		if _, ok := s.(otel.Synthesizer); !ok {
			s = otel.NewSynthesizer(id, s)
		}

		cfg.RegisterSpeech(id, createSpeech(s, config, cfg))
	}

	return nil
}

func decodeSynthesizers(node yaml.Node) ([]string, map[string]synthesizerConfig, error) {
	if node.Kind == 0 {
		configs := map[string]synthesizerConfig{
			"dui": {Type: "dui"},
		}

		return []string{"dui"}, configs, nil
	}

	var configs map[string]synthesizerConfig

	if err := node.Decode(&configs); err != nil {
		return nil, nil, err
	}

	var ids []string

	for i := 0; i+1 < len(node.Content); i += 2 {
		ids = append(ids, node.Content[i].Value)
	}

	return ids, configs, nil
}

func createSpeech(s provider.Synthesizer, config synthesizerConfig, cfg *Config) *tts.Client {
	catalog := cfg.Voices.Fallback

	if len(config.Voices) > 0 {
		catalog = catalog.WithVendors(config.Voices)
	}

	speed := voice.DefaultRange
	volume := voice.DefaultRange

	if config.Speed != nil {
		speed = *config.Speed
	}

	if config.Volume != nil {
		volume = *config.Volume
	}

	options := []tts.Option{
		tts.WithMaxLength(cfg.Limits.MaxSynthesisLength),
	}

	if config.Retries > 0 {
		interval := config.RetryInterval

		if interval <= 0 {
			interval = 500 * time.Millisecond
		}

		options = append(options, tts.WithRetries(config.Retries, interval))
	}

	return tts.New(s, voice.NewNormalizer(catalog, speed, volume), options...)
}

func createSynthesizer(cfg synthesizerConfig, context synthesizerContext) (provider.Synthesizer, error) {
	switch strings.ToLower(cfg.Type) {
	case "dui":
		return duiSynthesizer(cfg, context)

	case "openai":
		return openaiSynthesizer(cfg, context)

	case "google", "gemini":
		return googleSynthesizer(cfg, context)

	default:
		return nil, errors.New("invalid synthesizer type: " + cfg.Type)
	}
}

func duiSynthesizer(cfg synthesizerConfig, context synthesizerContext) (provider.Synthesizer, error) {
	var options []dui.Option

	if cfg.UserAgent != "" {
		options = append(options, dui.WithUserAgent(cfg.UserAgent))
	}

	if context.Client != nil {
		options = append(options, dui.WithClient(context.Client))
	}

	return dui.NewSynthesizer(cfg.URL, options...)
}

func openaiSynthesizer(cfg synthesizerConfig, context synthesizerContext) (provider.Synthesizer, error) {
	var options []openai.Option

	if cfg.Token != "" {
		options = append(options, openai.WithToken(cfg.Token))
	}

	if context.Client != nil {
		options = append(options, openai.WithClient(context.Client))
	}

	return openai.NewSynthesizer(cfg.URL, cfg.Model, options...)
}

func googleSynthesizer(cfg synthesizerConfig, context synthesizerContext) (provider.Synthesizer, error) {
	var options []google.Option

	if cfg.URL != "" {
		options = append(options, google.WithURL(cfg.URL))
	}

	if cfg.Language != "" {
		options = append(options, google.WithLanguage(cfg.Language))
	}

	if cfg.Token != "" {
		options = append(options, google.WithToken(cfg.Token))
	}

	if context.Client != nil {
		options = append(options, google.WithClient(context.Client))
	}

	return google.NewSynthesizer(cfg.Model, options...)
}

// SpeechIDs lists the configured synthesizers in file order.
func (cfg *Config) SpeechIDs() []string {
	return cfg.speechIDs
}
