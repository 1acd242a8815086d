package config

import (
	"errors"
	"net/http"
	"strings"

	"github.com/adrianliechti/narrator/pkg/extractor"
	"github.com/adrianliechti/narrator/pkg/extractor/kreuzberg"
	"github.com/adrianliechti/narrator/pkg/extractor/multi"
	"github.com/adrianliechti/narrator/pkg/extractor/pdf"
	"github.com/adrianliechti/narrator/pkg/extractor/text"
	"github.com/adrianliechti/narrator/pkg/extractor/tika"
	"github.com/adrianliechti/narrator/pkg/limiter"
	"github.com/adrianliechti/narrator/pkg/otel"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

func (cfg *Config) RegisterExtractor(id string, p extractor.Provider) {
	if cfg.extractors == nil {
		cfg.extractors = make(map[string]extractor.Provider)
	}

	cfg.extractors[id] = p
}

// Extractor returns a configured extractor. The empty id is the chain of all extractors in file order.
func (cfg *Config) Extractor(id string) (extractor.Provider, error) {
	if cfg.extractors != nil {
		if e, ok := cfg.extractors[id]; ok {
			return e, nil
		}
	}

	return nil, errors.New("extractor not found: " + id)
}

type extractorConfig struct {
	Type string `yaml:"type"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	clientConfig `yaml:",inline"`

	Limit *int `yaml:"limit"`
}

type extractorContext struct {
	Client  *http.Client
	Limiter *rate.Limiter
}

var defaultExtractors = []string{"text", "pdf"}

func (cfg *Config) registerExtractors(f *configFile) error {
	ids, configs, err := decodeExtractors(f.Extractors)

	if err != nil {
		return err
	}

	var extractors []extractor.Provider

	for _, id := range ids {
		config := configs[id]

		client, err := config.httpClient(extractionTimeout)

		if err != nil {
			return err
		}

		context := extractorContext{
			Client:  client,
			Limiter: createLimiter(config.Limit),
		}

		e, err := createExtractor(config, context)

		if err != nil {
			return err
		}

		if _, ok := e.(limiter.Extractor); !ok {
			e = limiter.NewExtractor(context.Limiter, e)
		}

		if _, ok := e.(otel.Extractor); !ok {
			e = otel.NewExtractor(id, e)
		}

		extractors = append(extractors, e)

		cfg.RegisterExtractor(id, e)
	}

	cfg.RegisterExtractor("", multi.New(extractors...))

	return nil
}

// decodeExtractors keeps the order of the yaml mapping, which is the order extractors are tried in.
func decodeExtractors(node yaml.Node) ([]string, map[string]extractorConfig, error) {
	var configs map[string]extractorConfig

	if node.Kind == 0 {
		configs = map[string]extractorConfig{}

		for _, id := range defaultExtractors {
			configs[id] = extractorConfig{Type: id}
		}

		return defaultExtractors, configs, nil
	}

	if err := node.Decode(&configs); err != nil {
		return nil, nil, err
	}

	var ids []string

	for i := 0; i+1 < len(node.Content); i += 2 {
		ids = append(ids, node.Content[i].Value)
	}

	return ids, configs, nil
}

func createExtractor(cfg extractorConfig, context extractorContext) (extractor.Provider, error) {
	switch strings.ToLower(cfg.Type) {
	case "text":
		return textExtractor(cfg)

	case "pdf":
		return pdfExtractor(cfg)

	case "tika":
		return tikaExtractor(cfg, context)

	case "kreuzberg":
		return kreuzbergExtractor(cfg, context)

	default:
		return nil, errors.New("invalid extractor type: " + cfg.Type)
	}
}

func textExtractor(cfg extractorConfig) (extractor.Provider, error) {
	return text.New()
}

func pdfExtractor(cfg extractorConfig) (extractor.Provider, error) {
	return pdf.New()
}

func tikaExtractor(cfg extractorConfig, context extractorContext) (extractor.Provider, error) {
	var options []tika.Option

	if context.Client != nil {
		options = append(options, tika.WithClient(context.Client))
	}

	return tika.New(cfg.URL, options...)
}

func kreuzbergExtractor(cfg extractorConfig, context extractorContext) (extractor.Provider, error) {
	var options []kreuzberg.Option

	if cfg.Token != "" {
		options = append(options, kreuzberg.WithToken(cfg.Token))
	}

	if context.Client != nil {
		options = append(options, kreuzberg.WithClient(context.Client))
	}

	return kreuzberg.New(cfg.URL, options...)
}
