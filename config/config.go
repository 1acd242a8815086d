package config

import (
	"bytes"
	"os"
	"time"

	"github.com/adrianliechti/narrator/pkg/auth"
	"github.com/adrianliechti/narrator/pkg/document"
	"github.com/adrianliechti/narrator/pkg/extractor"
	"github.com/adrianliechti/narrator/pkg/limiter"
	"github.com/adrianliechti/narrator/pkg/tts"
	"github.com/adrianliechti/narrator/pkg/voice"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

const (
	EnvironmentProduction  = "production"
	EnvironmentDevelopment = "development"
)

type Config struct {
	Address     string
	Environment string

	Limits document.Limits

	Authorizers []auth.Provider

	SessionSize int
	SessionTTL  time.Duration

	Voices *voice.Source

	extractors map[string]extractor.Provider
	speech     map[string]*tts.Client
	speechIDs  []string
}

// Production hides error details from API responses.
func (cfg *Config) Production() bool {
	return cfg.Environment == EnvironmentProduction
}

// Default returns a configuration with local text and PDF extraction and the DUI vendor.
func Default() (*Config, error) {
	return build(&configFile{})
}

func Parse(path string) (*Config, error) {
	file, err := parseFile(path)

	if err != nil {
		return nil, err
	}

	return build(file)
}

func build(file *configFile) (*Config, error) {
	c := &Config{
		Address:     ":8080",
		Environment: EnvironmentDevelopment,

		Limits: document.DefaultLimits(),
	}

	if file.Address != "" {
		c.Address = file.Address
	}

	if file.Environment != "" {
		c.Environment = file.Environment
	}

	c.registerLimits(file)
	c.registerSessions(file)

	if err := c.registerAuthorizer(file); err != nil {
		return nil, err
	}

	if err := c.registerVoices(file); err != nil {
		return nil, err
	}

	if err := c.registerExtractors(file); err != nil {
		return nil, err
	}

	if err := c.registerSynthesizers(file); err != nil {
		return nil, err
	}

	return c, nil
}

type configFile struct {
	Address     string `yaml:"address"`
	Environment string `yaml:"environment"`

	Limits   limitsConfig   `yaml:"limits"`
	Sessions sessionsConfig `yaml:"sessions"`

	Authorizers []authorizerConfig `yaml:"authorizers"`

	Voices voicesConfig `yaml:"voices"`

	Extractors   yaml.Node `yaml:"extractors"`
	Synthesizers yaml.Node `yaml:"synthesizers"`
}

type limitsConfig struct {
	MaxFileSize        int64 `yaml:"max_file_size"`
	MaxTextLength      int   `yaml:"max_text_length"`
	MaxSynthesisLength int   `yaml:"max_synthesis_length"`
}

type sessionsConfig struct {
	Size int           `yaml:"size"`
	TTL  time.Duration `yaml:"ttl"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) registerLimits(f *configFile) {
	if f.Limits.MaxFileSize > 0 {
		c.Limits.MaxFileSize = f.Limits.MaxFileSize
	}

	if f.Limits.MaxTextLength > 0 {
		c.Limits.MaxTextLength = f.Limits.MaxTextLength
	}

	if f.Limits.MaxSynthesisLength > 0 {
		c.Limits.MaxSynthesisLength = f.Limits.MaxSynthesisLength
	}
}

func (c *Config) registerSessions(f *configFile) {
	c.SessionSize = f.Sessions.Size
	c.SessionTTL = f.Sessions.TTL
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil {
		return nil
	}

	return limiter.New(*limit)
}
